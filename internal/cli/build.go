package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/apidoc/internal/config"
	"github.com/example/apidoc/internal/site"
)

// BuildConfig holds the options of "apidoc build". Site values given on
// the command line override those from the configuration file.
type BuildConfig struct {
	ConfigPath string
	Force      bool
	Site       config.Site
}

func newBuildCommand() *cobra.Command {
	var cfg BuildConfig
	defaults := config.Default().Site

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the documentation site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSiteConfig(&cfg, cmd.Flags())
			if err != nil {
				return err
			}
			b, err := site.New(*s)
			if err != nil {
				return err
			}
			b.Force = cfg.Force

			res, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			switch {
			case res.UpToDate:
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", s.Output)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d modules and %d guides to %s\n", len(res.Modules), len(res.Guides), s.Output)
			}
			if len(res.Skipped) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d modules with errors\n", len(res.Skipped))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.ConfigPath, "config", "c", config.DefaultPath, "Path to apidoc.yml config file")
	f.BoolVar(&cfg.Force, "force", false, "Rebuild even if the sources are unchanged")
	f.StringVar(&cfg.Site.Title, "title", defaults.Title, "Site title")
	f.StringVar(&cfg.Site.Version, "site-version", defaults.Version, "Version shown on every page")
	f.StringVar(&cfg.Site.Source, "source", defaults.Source, "Directory containing modules/, guides/ and static/")
	f.StringVar(&cfg.Site.Output, "output", defaults.Output, "Output directory")
	f.StringVar(&cfg.Site.Markdown, "markdown", defaults.Markdown, "Markdown engine: goldmark or blackfriday")
	f.StringVar(&cfg.Site.OnError, "on-error", defaults.OnError, "What to do with unparsable modules: abort or skip")
	f.StringVar(&cfg.Site.Archive, "archive", defaults.Archive, "Also write a .tgz of the output directory")
	f.BoolVar(&cfg.Site.EmitJSON, "emit-json", defaults.EmitJSON, "Write the parsed JSON next to every module page")

	return cmd
}

// loadSiteConfig reads the configuration file and applies the flags that
// were set explicitly. The default config path may be absent.
func loadSiteConfig(cfg *BuildConfig, flags *pflag.FlagSet) (*config.Site, error) {
	optional := !flags.Changed("config")
	file, err := config.Load(cfg.ConfigPath, optional)
	if err != nil {
		return nil, err
	}

	s := file.Site
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("title", &s.Title, cfg.Site.Title)
	override("site-version", &s.Version, cfg.Site.Version)
	override("source", &s.Source, cfg.Site.Source)
	override("output", &s.Output, cfg.Site.Output)
	override("markdown", &s.Markdown, cfg.Site.Markdown)
	override("on-error", &s.OnError, cfg.Site.OnError)
	override("archive", &s.Archive, cfg.Site.Archive)
	if flags.Changed("emit-json") {
		s.EmitJSON = cfg.Site.EmitJSON
	}

	file.Site = s
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file.Site, nil
}
