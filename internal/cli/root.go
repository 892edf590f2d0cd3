// Package cli wires the otmget commands: download (the root command) and list.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/datallboy/otmget/internal/app"
	"github.com/datallboy/otmget/internal/catalog"
	"github.com/datallboy/otmget/internal/infra/config"
	"github.com/datallboy/otmget/internal/infra/logger"
)

type rootOptions struct {
	configPath string
	plain      bool
	countries  []string
}

// session holds what one invocation shares between its commands.
type session struct {
	app *app.Context
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	// Ctrl+C cancels the running downloads; finished files stay on disk
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{}
	defer s.close()

	if err := newRootCmd(s).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(s *session) *cobra.Command {
	v := config.New()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "otmget [name...]",
		Short: "Download OpenTopoMap Garmin maps",
		Long: `otmget lists the areas published on garmin.opentopomap.org, lets you pick
some of them and downloads their map, contour and (for Europe) BaseCamp
archives in parallel.

Areas can be named with -c or as arguments; without names, or when none
of them matches, you pick from a numbered list.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return s.open(v, opts.configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(opts.countries)+len(args))
			names = append(names, opts.countries...)
			names = append(names, args...)
			return s.download(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), names, opts.plain)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultConfigFile+" when present)")
	pf.String("base-url", config.DefaultBaseURL, "catalog and archive server")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	bindFlag(v, "catalog.base_url", pf.Lookup("base-url"))
	bindFlag(v, "log.level", pf.Lookup("log-level"))

	f := cmd.Flags()
	f.StringArrayVarP(&opts.countries, "country", "c", nil, "area to download by name, repeatable")
	f.StringP("out", "o", "", "download folder (default ~/Downloads/OTM-Garmin)")
	f.IntP("workers", "w", config.DefaultWorkers, "parallel downloads")
	f.String("basecamp", config.BaseCampAsk, "BaseCamp archives for European areas: ask, yes or no")
	f.BoolVar(&opts.plain, "plain", false, "line based progress even on a terminal")
	bindFlag(v, "download.out_dir", f.Lookup("out"))
	bindFlag(v, "download.workers", f.Lookup("workers"))
	bindFlag(v, "download.basecamp", f.Lookup("basecamp"))

	cmd.AddCommand(newListCmd(s))

	return cmd
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}

// open loads the configuration and builds the application context.
func (s *session) open(v *viper.Viper, configPath string) error {
	cfg, err := config.LoadWith(v, configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), cfg.Log.IncludeStdout)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	a := app.NewContext(cfg, log)
	a.Catalog = catalog.New(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, a.HTTPClient, log)
	s.app = a

	log.Debug("Run %s against %s", a.RunID, cfg.Catalog.BaseURL)
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Logger.Close()
}
