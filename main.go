package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/andareed/shopfront/clipboard"
	"github.com/andareed/shopfront/config"
	"github.com/andareed/shopfront/logging"
	"github.com/andareed/shopfront/loop"
	"github.com/andareed/shopfront/storefront"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type options struct {
	configPath string
	apiURL     string
	logFile    string
	latency    time.Duration
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "shopfront [catalog.csv]",
		Short:        "Browse a shop catalog, fill a cart and place orders from the terminal",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shopfront/config.toml)")
	f.StringVar(&opts.apiURL, "api", "", "shop API base URL; without it the catalog file is served offline")
	f.StringVar(&opts.logFile, "debug", "", "write debug logs to file")
	f.DurationVar(&opts.latency, "latency", 0, "artificial latency of the offline backend")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Version:", Version)
		},
	})
	return cmd
}

func run(cmd *cobra.Command, opts options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if len(args) == 1 {
		cfg.Catalog.Path = args[0]
	}
	if cmd.Flags().Changed("latency") {
		cfg.Catalog.Latency = opts.latency
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
		cfg.Log.Level = "debug"
	}

	cleanup, err := logging.SetupLogging(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanup()

	logging.Infof("shopfront %s: Started", Version)

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	lp := loop.NewProgram()
	m, err := newModel(appDeps{
		Ctx:         ctx,
		Backend:     backend,
		Loop:        lp,
		SettleDelay: cfg.UI.SettleDelay,
		MinSpinner:  cfg.UI.MinSpinner,
		Copy:        clipboard.Copy,
	})
	if err != nil {
		return err
	}

	var popts []tea.ProgramOption
	if cfg.UI.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		popts = append(popts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, popts...)
	lp.Attach(ctx, p)

	if _, err := p.Run(); err != nil {
		logging.Errorf("Tea program error: %v", err)
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// newBackend talks to the API when one is configured and otherwise serves
// the catalog file from memory.
func newBackend(cfg config.Config) (storefront.Backend, error) {
	if !cfg.Offline() {
		logging.Infof("backend: %s", cfg.API.BaseURL)
		return storefront.NewClient(storefront.ClientConfig{
			BaseURL:       cfg.API.BaseURL,
			Timeout:       cfg.API.Timeout,
			RatePerSecond: cfg.API.RatePerSecond,
		}), nil
	}
	if cfg.Catalog.Path == "" {
		return nil, errors.New("no catalog file and no API configured; pass a CSV or --api")
	}
	products, err := storefront.LoadCatalogCSV(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", cfg.Catalog.Path, err)
	}
	mem := storefront.NewMemory(products)
	mem.Latency = cfg.Catalog.Latency
	logging.Infof("backend: offline, %d products from %s", len(products), cfg.Catalog.Path)
	return mem, nil
}
