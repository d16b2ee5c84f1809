package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// topicExtensions are the file extensions recognized as help topics
var topicExtensions = []string{".md", ".txt"}

// topic is one help topic loaded from the docs directory
type topic struct {
	name string
	path string
	body string
}

// topicManager loads help topics from a directory and swaps itself in as
// the root command's help system, so "citekit help styles-guide" works
// alongside "citekit help bibliography".
type topicManager struct {
	dir          string
	topics       map[string]*topic
	originalHelp func(*cobra.Command, []string)
	renderer     topicRenderer
}

func newTopicManager(dir string, r topicRenderer) *topicManager {
	return &topicManager{
		dir:      dir,
		topics:   make(map[string]*topic),
		renderer: r,
	}
}

// scan walks the topics directory and loads every file with a recognized
// extension. A missing directory is not an error, just no topics.
func (tm *topicManager) scan() error {
	if _, err := os.Stat(tm.dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(tm.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		supported := false
		for _, validExt := range topicExtensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		tm.topics[name] = &topic{name: name, path: path, body: string(content)}
		return nil
	})
}

// get retrieves a topic by name. Flag spellings resolve to their
// "option-" file: "--smart-quotes" finds option-smart-quotes.md.
func (tm *topicManager) get(name string) (*topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if t, ok := tm.topics[name]; ok {
		return t, true
	}
	t, ok := tm.topics["option-"+name]
	return t, ok
}

// list returns all topic names, unsorted
func (tm *topicManager) list() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	return names
}

// render formats one topic for display
func (tm *topicManager) render(t *topic) string {
	return tm.renderer.render(t.body, filepath.Ext(t.path))
}

// printTopicList writes the sorted topic index, option topics shown in
// their flag spelling
func (tm *topicManager) printTopicList(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	names := tm.list()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}
	sort.Strings(names)

	var options []string
	var general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", cmd.Root().Name())
}

// initTopics wires the topic help system into the root command: a help
// command that knows both commands and topics, and a help func that
// resolves topics for --help style lookups.
func initTopics(rootCmd *cobra.Command, dir string) error {
	tm := newTopicManager(dir, defaultTopicRenderer())
	if err := tm.scan(); err != nil {
		return fmt.Errorf("failed to scan help topics: %w", err)
	}

	tm.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.list()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}
			if args[0] == "topics" {
				tm.printTopicList(cmd)
				return
			}
			if t, ok := tm.get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), tm.render(t))
				return
			}
			// not a topic, fall back to command help
			tm.originalHelp(rootCmd, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	// --help on the root with a topic argument resolves topics too
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := tm.get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), tm.render(t))
				return
			}
		}
		tm.originalHelp(cmd, args)
	})

	return nil
}

// topicRenderer formats topic content for display
type topicRenderer interface {
	render(content, ext string) string
}

// defaultTopicRenderer renders markdown through glamour on a terminal
// and passes everything through untouched when piped
func defaultTopicRenderer() topicRenderer {
	if stdoutIsTerminal() {
		return glamourRenderer{}
	}
	return plainRenderer{}
}

// plainRenderer returns content as-is
type plainRenderer struct{}

func (plainRenderer) render(content, ext string) string { return content }

// glamourRenderer renders markdown topics for the terminal. Non-markdown
// topics and render failures fall back to the raw content.
type glamourRenderer struct{}

func (glamourRenderer) render(content, ext string) string {
	if ext != ".md" {
		return content
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
