package commands

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-customer-directory/directory"
	"github.com/goliatone/go-customer-directory/httpstore"
	"github.com/goliatone/go-customer-directory/internal/config"
	"github.com/goliatone/go-customer-directory/pkg/di"
)

var (
	cfgPath string
	apiURL  string
	timeout time.Duration
	verbose bool

	svc *directory.Service
)

func Execute() error {
	root := &cobra.Command{
		Use:          "customerctl",
		Short:        "Manage customers against a remote directory store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			if timeout > 0 {
				cfg.API.Timeout = timeout
			}

			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()

			container, err := di.NewContainer(cfg.Cache)
			if err != nil {
				return err
			}

			store := httpstore.New(httpstore.Config{
				BaseURL:    cfg.API.BaseURL,
				HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
				Logger:     log,
			})
			svc = di.NewDirectory(container, store, log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config dir (default .)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "store base URL (overrides config)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(listCmd(), addCmd(), removeCmd())
	return root.Execute()
}
