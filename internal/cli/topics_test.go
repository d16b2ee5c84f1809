package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/citekit/pkg/testutil"
)

func writeTopicDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "styles-guide.md", "# Styles\n\nWhere styles come from.\n")
	testutil.CreateFile(t, dir, "option-smart-quotes.txt", "Straight quotes become curly.\n")
	testutil.CreateFile(t, dir, "notes.rst", "not a topic\n")
	return dir
}

// newTopicRoot builds a root command with the topic help system wired to
// the given directory and its output captured.
func newTopicRoot(t *testing.T, dir string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := NewRootCmd()
	require.NoError(t, initTopics(cmd, dir))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	return cmd, &out
}

func TestTopicManagerScan(t *testing.T) {
	tm := newTopicManager(writeTopicDir(t), plainRenderer{})
	require.NoError(t, tm.scan())

	assert.ElementsMatch(t, []string{"styles-guide", "option-smart-quotes"}, tm.list())

	topic, ok := tm.get("styles-guide")
	require.True(t, ok)
	assert.Equal(t, "# Styles\n\nWhere styles come from.\n", topic.body)
}

func TestTopicManagerGet(t *testing.T) {
	tm := newTopicManager(writeTopicDir(t), plainRenderer{})
	require.NoError(t, tm.scan())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"styles-guide", "styles-guide", true},
		{"option-smart-quotes", "option-smart-quotes", true},
		// flag spellings resolve to the option- file
		{"smart-quotes", "option-smart-quotes", true},
		{"--smart-quotes", "option-smart-quotes", true},
		{"-smart-quotes", "option-smart-quotes", true},
		{"-s", "", false},
		{"notes", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := tm.get(tt.input)
			require.Equal(t, tt.exists, ok)
			if ok {
				assert.Equal(t, tt.expected, topic.name)
			}
		})
	}
}

func TestTopicManagerMissingDir(t *testing.T) {
	tm := newTopicManager(filepath.Join(t.TempDir(), "absent"), plainRenderer{})
	require.NoError(t, tm.scan())
	assert.Empty(t, tm.list())
}

func TestTopicManagerSubdirectories(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(dir, "advanced"), "abbreviations.txt", "Abbreviation help\n")

	tm := newTopicManager(dir, plainRenderer{})
	require.NoError(t, tm.scan())

	// topics in subdirectories register under their base name
	topic, ok := tm.get("abbreviations")
	require.True(t, ok)
	assert.Equal(t, "Abbreviation help\n", topic.body)
}

func TestTopicRenderers(t *testing.T) {
	t.Run("plain passes markdown through", func(t *testing.T) {
		assert.Equal(t, "# Heading\n", plainRenderer{}.render("# Heading\n", ".md"))
	})

	t.Run("glamour leaves text topics alone", func(t *testing.T) {
		assert.Equal(t, "plain text\n", glamourRenderer{}.render("plain text\n", ".txt"))
	})

	t.Run("glamour renders markdown", func(t *testing.T) {
		out := glamourRenderer{}.render("# Styles\n", ".md")
		assert.Contains(t, out, "Styles")
	})
}

func TestInitTopics(t *testing.T) {
	cmd, _ := newTopicRoot(t, writeTopicDir(t))

	helpCmd, _, err := cmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpShowsTopic(t *testing.T) {
	cmd, out := newTopicRoot(t, writeTopicDir(t))

	cmd.SetArgs([]string{"help", "smart-quotes"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Straight quotes become curly.\n", out.String())
}

func TestHelpListsTopics(t *testing.T) {
	cmd, out := newTopicRoot(t, writeTopicDir(t))

	cmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "General topics:")
	assert.Contains(t, got, "  styles-guide\n")
	assert.Contains(t, got, "Option topics:")
	assert.Contains(t, got, "  --smart-quotes\n")
	assert.Contains(t, got, "citekit help <topic>")
}

func TestHelpUnknownTopicShowsRootHelp(t *testing.T) {
	cmd, out := newTopicRoot(t, writeTopicDir(t))

	cmd.SetArgs([]string{"help", "no-such-topic"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "citekit renders citations and bibliographies")
}

func TestTopicsCmd(t *testing.T) {
	cmd, out := newTopicRoot(t, writeTopicDir(t))

	cmd.SetArgs([]string{"topics"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Available help topics:")
}

func TestTopicsCmdWithoutTopics(t *testing.T) {
	_, err := runCmd(t, "topics")
	require.Error(t, err)
	assert.EqualError(t, err, "help command not found")
}
