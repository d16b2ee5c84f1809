package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "A CSL citation processor for the command line"
	MsgBibliographyShort = "Generate a bibliography from a CSL-JSON file"
	MsgCitationShort     = "Generate a citation from a CSL-JSON file"
	MsgStylesShort       = "List citation styles found in the search path"
	MsgLocalesShort      = "List available citation locales"
	MsgFormatsShort      = "List registered output formats"
	MsgVersionShort      = "Print version information"
	MsgTopicsShort       = "Display available documentation topics"
	MsgTopicsLong        = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort   = "Generate shell completion script"

	// Status messages
	MsgNoStyles       = "No styles found. Add .csl files to one of:"
	MsgSearchPathItem = "  %s\n"

	// Error messages
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrLoadItems     = "failed to load items: %w"
	MsgErrReadStyle     = "failed to read style %s: %w"
	MsgErrReadLocale    = "failed to read locale %s: %w"
	MsgErrStyleNotFound = "style %q not found (run 'citekit styles' to list available styles)"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagItems       = "CSL-JSON file with the citation items, or - for stdin"
	MsgFlagStyle       = "Citation style: a name from the search path or a .csl file"
	MsgFlagLocale      = "Citation locale, e.g. en-US or de-DE"
	MsgFlagFormat      = "Output format: text, html, markdown, asciidoc, fo or term"
	MsgFlagSmartQuotes = "Convert straight quotes and apostrophes to typographic ones"
	MsgFlagNoLinks     = "Do not render URLs and DOIs as links"
	MsgFlagNoColor     = "Disable ANSI styling in term output"
)

// Long descriptions and examples
const (
	MsgRootLong = `citekit renders citations and bibliographies from CSL-JSON item data
through Citation Style Language styles. Styles and locales are plain
files looked up in a configurable search path, and the output targets
plain text, HTML, Markdown, AsciiDoc, XSL-FO or the terminal.`

	MsgBibliographyLong = `Bibliography registers the given item ids (all items in the input file
when none are given) and prints the bibliography the style produces,
sorted and disambiguated.

The style is a name resolved against the style search path or a path to
a .csl file. Defaults for style, locale and format come from the config
file; without one the format is term on a terminal and text otherwise.`

	MsgBibliographyExample = `  # All items, IEEE style, plain text
  citekit bibliography -i items.json -s ieee -f text

  # Only two items, style from a file
  citekit bibliography -i items.json -s ./apa.csl doe2020 smith2019

  # Read items from stdin
  cat items.json | citekit bibliography -i - -s ieee`

	MsgCitationLong = `Citation registers the given item ids (all items in the input file when
none are given) and prints the citation for one cluster containing all
of them, e.g. "(Doe, 2020; Smith, 2019)" in an author-date style.`

	MsgCitationExample = `  # Cite two items together
  citekit citation -i items.json -s apa doe2020 smith2019

  # Cite everything in the file
  citekit citation -i items.json -s apa`

	MsgStylesLong = `Styles lists the citation styles discovered in the style search path:
the styles directory under the XDG data home plus any style_dirs from
the config file. Every .csl file counts as one style, named after its
file name.`

	MsgLocalesLong = `Locales lists the available citation locales: the set embedded in the
binary plus any locale files found in the locale search path.`

	MsgFormatsLong = `Formats lists the registered output formats accepted by --format.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(citekit completion bash)
  # To load completions for each session, execute once:
  $ citekit completion bash > /etc/bash_completion.d/citekit

Zsh:
  $ citekit completion zsh > "${fpath[1]}/_citekit"

Fish:
  $ citekit completion fish | source
  # To load completions for each session, execute once:
  $ citekit completion fish > ~/.config/fish/completions/citekit.fish

PowerShell:
  PS> citekit completion powershell | Out-String | Invoke-Expression`
)

// MsgUsageTemplate is the root usage template. It follows the stock cobra
// template with the section headers run through the formatting funcs.
const MsgUsageTemplate = `{{boldUpper "Usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases"}}:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples"}}:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands"}}:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands"}}:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

{{boldUpper "Additional help topics"}}:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
