package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/bmitracker/internal/config"
	"github.com/mmynk/bmitracker/internal/storage/sqlite"
	"github.com/mmynk/bmitracker/pkg/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	viper      *viper.Viper
	configFile string
	settings   *config.Settings
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	a := &app{viper: config.New()}

	rootCmd := &cobra.Command{
		Use:          "bmi",
		Short:        "BMI calculator with a local record history",
		SilenceUsage: true,
	}

	if err := setupFlags(rootCmd, a); err != nil {
		panic(err) // flag names are static
	}

	rootCmd.AddCommand(
		serveCommand(a),
		calcCommand(a),
		addCommand(a),
		formCommand(a),
		historyCommand(a),
		trendCommand(a),
		hashPasswordCommand(),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(a.viper, a.configFile)
		if err != nil {
			return err
		}
		level, err := config.ParseLevel(settings.Log.Level)
		if err != nil {
			return err
		}
		logging.Setup(cmd.ErrOrStderr(), level)
		a.settings = settings
		return nil
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
func setupFlags(rootCmd *cobra.Command, a *app) error {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a YAML config file (default ./bmi.yaml if present)")
	flags.String("db", "", "Path to the SQLite database file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	if err := a.viper.BindPFlag("database.path", flags.Lookup("db")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	if err := a.viper.BindPFlag("log.level", flags.Lookup("log-level")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}

// openStore opens the configured database.
func (a *app) openStore() (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(a.settings.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", a.settings.Database.Path, err)
	}
	return store, nil
}
