package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beastmode-on/ai-journal-app/internal/config"
	"github.com/beastmode-on/ai-journal-app/internal/drafts"
	"github.com/beastmode-on/ai-journal-app/internal/hooks"
	"github.com/beastmode-on/ai-journal-app/internal/logging"
	"github.com/beastmode-on/ai-journal-app/internal/prefs"
	"github.com/beastmode-on/ai-journal-app/internal/storage"
	"github.com/beastmode-on/ai-journal-app/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Write and browse journal entries in the terminal.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $"+config.EnvConfigPath+" or ~/.config/journal/config.toml)")

	addDarkMode(cmd, &configPath)
	return cmd
}

func addDarkMode(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "dark-mode [on|off|toggle]",
		Short: "show or change the dark mode preference",
		Example: `
journal dark-mode
journal dark-mode toggle
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			on, err := setDarkMode(prefs.File{Path: cfg.PrefsPath}, args)
			if err != nil {
				return err
			}
			state := "off"
			if on {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dark mode: %s\n", state)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// setDarkMode applies the optional on/off/toggle argument and returns the
// resulting preference.
func setDarkMode(p ui.PrefStore, args []string) (bool, error) {
	current := p.DarkMode()
	if len(args) == 0 {
		return current, nil
	}
	var next bool
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "on", "true", "dark":
		next = true
	case "off", "false", "light":
		next = false
	case "toggle":
		next = !current
	default:
		return current, fmt.Errorf("unknown value %q (want on, off or toggle)", args[0])
	}
	if err := p.SetDarkMode(next); err != nil {
		return current, fmt.Errorf("save preference: %w", err)
	}
	return next, nil
}

func loadConfig(path string) (config.Config, string, bool, error) {
	if strings.TrimSpace(path) == "" {
		path = config.ResolveConfigPath()
	}
	firstLaunch := false
	if _, err := os.Stat(path); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, path, false, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, firstLaunch, nil
}

func runUI(configPath string) error {
	cfg, path, firstLaunch, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	opts := ui.Options{
		Config:  cfg,
		Entries: store,
		Prefs:   prefs.File{Path: cfg.PrefsPath},
		Hooks:   hooks.NewLogging(logger),
		Logger:  logger,
	}
	if ds, err := drafts.Open(cfg.DraftsDir); err != nil {
		logger.Warn("drafts disabled", "dir", cfg.DraftsDir, "err", err)
	} else {
		opts.Drafts = ds
	}
	if firstLaunch {
		opts.Ready = func(ns *ui.Namespace) {
			ns.ShowNotification("Created config at "+path, "info")
		}
	}

	logger.Info("starting journal", "config", path, "db", cfg.DBPath)
	if err := ui.Run(opts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
