package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/citekit/internal/version"
	"github.com/arthur-debert/citekit/pkg/citeproc"
	"github.com/arthur-debert/citekit/pkg/config"
	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/output"
	"github.com/arthur-debert/citekit/pkg/provider"
	"github.com/arthur-debert/citekit/pkg/style"
)

// defaultStyle is assumed when neither the command line nor the config
// file names a style
const defaultStyle = "ieee"

// renderOptions carries the flags shared by the bibliography and citation
// commands and resolves them against the config file defaults.
type renderOptions struct {
	items       string
	style       string
	locale      string
	format      string
	smartQuotes bool
	noLinks     bool
	noColor     bool
}

func (o *renderOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.items, "items", "i", "", MsgFlagItems)
	cmd.Flags().StringVarP(&o.style, "style", "s", "", MsgFlagStyle)
	cmd.Flags().StringVarP(&o.locale, "locale", "l", "", MsgFlagLocale)
	cmd.Flags().StringVarP(&o.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().BoolVar(&o.smartQuotes, "smart-quotes", false, MsgFlagSmartQuotes)
	cmd.Flags().BoolVar(&o.noLinks, "no-links", false, MsgFlagNoLinks)
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, MsgFlagNoColor)
	_ = cmd.MarkFlagRequired("items")
	_ = cmd.MarkFlagFilename("items", "json")
	_ = cmd.MarkFlagFilename("style", "csl")
}

// fillDefaults resolves unset flags from the config file, then from the
// built-in fallbacks: ieee, en-US, and term on a terminal / text when
// piped.
func (o *renderOptions) fillDefaults(cfg config.Config) {
	if o.style == "" {
		o.style = cfg.Style
	}
	if o.style == "" {
		o.style = defaultStyle
	}
	if o.locale == "" {
		o.locale = cfg.Locale
	}
	if o.locale == "" {
		o.locale = "en-US"
	}
	if o.format == "" {
		o.format = cfg.Format
	}
	if o.format == "" {
		if stdoutIsTerminal() {
			o.format = "term"
		} else {
			o.format = "text"
		}
	}
}

// loadItems reads the CSL-JSON input named by --items, with - for stdin
func (o *renderOptions) loadItems() (*provider.ListProvider, error) {
	var opts []provider.JSONOption
	if o.smartQuotes {
		opts = append(opts, provider.WithSmartQuotes())
	}
	if o.items == "-" {
		return provider.ParseJSON(os.Stdin, opts...)
	}
	return provider.LoadJSONFile(o.items, opts...)
}

// loadStyle resolves --style through the search path and parses it
func (o *renderOptions) loadStyle(cfg config.Config) (*style.Style, error) {
	path, ok := cfg.FindStyle(o.style)
	if !ok {
		return nil, fmt.Errorf(MsgErrStyleNotFound, o.style)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(MsgErrReadStyle, path, err)
	}
	return style.ParseBytes(data)
}

// localeOption prefers a locale file from the search path over the
// embedded set, so user-supplied locales shadow the built-in ones
func (o *renderOptions) localeOption(cfg config.Config) (citeproc.Option, error) {
	if path, ok := cfg.FindLocale(o.locale); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(MsgErrReadLocale, path, err)
		}
		return citeproc.WithLocaleXML(data), nil
	}
	return citeproc.WithLocale(o.locale), nil
}

// newProcessor builds a processor from the resolved flags and returns it
// together with the ids to register: the command line arguments, or every
// item in the input file when none are given.
func (o *renderOptions) newProcessor(args []string) (*citeproc.Processor, []string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	o.fillDefaults(cfg)

	log.Debug().
		Str("items", o.items).
		Str("style", o.style).
		Str("locale", o.locale).
		Str("format", o.format).
		Msg("Render options resolved")

	prov, err := o.loadItems()
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadItems, err)
	}

	st, err := o.loadStyle(cfg)
	if err != nil {
		return nil, nil, err
	}

	lopt, err := o.localeOption(cfg)
	if err != nil {
		return nil, nil, err
	}

	p, err := citeproc.New(prov, st,
		lopt,
		citeproc.WithFormat(o.format),
		citeproc.WithConvertLinks(!o.noLinks),
		citeproc.WithNoColor(o.noColor),
	)
	if err != nil {
		return nil, nil, err
	}

	ids := args
	if len(ids) == 0 {
		ids = prov.IDs()
	}
	return p, ids, nil
}

func newBibliographyCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:     "bibliography [ids...]",
		Aliases: []string{"bib"},
		Short:   MsgBibliographyShort,
		Long:    MsgBibliographyLong,
		Example: MsgBibliographyExample,
		GroupID: "render",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ids, err := opts.newProcessor(args)
			if err != nil {
				return err
			}

			if err := p.RegisterCitationItems(ids...); err != nil {
				return err
			}

			bib, err := p.MakeBibliography()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), bib.MakeString())
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newCitationCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:     "citation [ids...]",
		Aliases: []string{"cite"},
		Short:   MsgCitationShort,
		Long:    MsgCitationLong,
		Example: MsgCitationExample,
		GroupID: "render",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ids, err := opts.newProcessor(args)
			if err != nil {
				return err
			}

			// register everything first so numbering and year suffixes
			// are settled before the cluster renders
			if err := p.RegisterCitationItems(ids...); err != nil {
				return err
			}

			cites, err := p.MakeCitation(citeproc.Cite(ids...))
			if err != nil {
				return err
			}

			for _, c := range cites {
				fmt.Fprintln(cmd.OutOrStdout(), c.Text)
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "styles",
		Short:   MsgStylesShort,
		Long:    MsgStylesLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			w := cmd.OutOrStdout()
			names := cfg.ListStyles()
			if len(names) == 0 {
				fmt.Fprintln(w, MsgNoStyles)
				for _, dir := range cfg.StyleSearchPath() {
					fmt.Fprintf(w, MsgSearchPathItem, dir)
				}
				return nil
			}

			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "locales",
		Short:   MsgLocalesShort,
		Long:    MsgLocalesLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			// embedded locales first, then files from the search path
			seen := make(map[string]bool)
			var codes []string
			for _, code := range append(locale.Available(), cfg.ListLocales()...) {
				if !seen[code] {
					seen[code] = true
					codes = append(codes, code)
				}
			}
			sort.Strings(codes)

			w := cmd.OutOrStdout()
			for _, code := range codes {
				fmt.Fprintln(w, code)
			}
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "formats",
		Short:   MsgFormatsShort,
		Long:    MsgFormatsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range output.Names() {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    `Print detailed version information including commit hash and build date`,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "citekit version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(w, "  commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(w, "  built:  %s\n", version.Date)
			}
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
