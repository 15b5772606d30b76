package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/api"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/clock"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/config"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/display"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/session"
)

// Global flags shared across all subcommands.
var (
	FlagCity     string
	FlagCountry  string
	FlagMethod   int
	FlagConfig   string
	FlagLogLevel string
	FlagNoColor  bool
)

// loadedConfig holds the effective config resolved during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// clk is the reference time source for every action.
var clk clock.Clock = clock.Real()

// NewRootCmd creates the root command for the jadwal-sholat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jadwal-sholat",
		Short: "Jadwal sholat untuk kota-kota di Indonesia",
		Long: "Menampilkan jadwal sholat harian dari API Aladhan (metode KEMENAG) dan\n" +
			"mencari waktu sholat terdekat. Tanpa subcommand, menu interaktif dijalankan.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = effectiveConfig(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupOutput(cfg)
			loadedConfig = cfg
			return nil
		},
		// Default action: the interactive menu.
		RunE:          runMenu,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Nama kota (melewati prompt kota)")
	pf.StringVar(&FlagCountry, "country", "", "Negara (default: Indonesia)")
	pf.IntVar(&FlagMethod, "method", api.MethodKemenag, "Metode perhitungan (0-23)")
	pf.StringVar(&FlagConfig, "config", "", "Path file konfigurasi (default: ~/.config/jadwal-sholat/config.yaml)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Level log: debug, info, warn, error")
	pf.BoolVar(&FlagNoColor, "no-color", false, "Matikan warna")

	// Register subcommands.
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newTomorrowCmd())
	rootCmd.AddCommand(newDateCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if FlagConfig != "" {
		return config.LoadFrom(FlagConfig)
	}
	return config.Load()
}

// effectiveConfig applies explicitly set CLI flags on top of the loaded
// config, giving the priority: CLI flags > env > config file > defaults.
func effectiveConfig(cmd *cobra.Command, cfg *config.Config) *config.Config {
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "method") {
		cfg.Method = FlagMethod
	}
	if flagWasSet(flags, root, "log-level") {
		cfg.LogLevel = FlagLogLevel
	}
	if flagWasSet(flags, root, "no-color") && FlagNoColor {
		cfg.Color = false
	}

	return cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// setupOutput configures the global logger and terminal styling.
func setupOutput(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !cfg.Color})

	if !cfg.Color {
		display.SetEnabled(false)
	}
}

// newClient builds an API client from the effective config.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
	)
}

// newSession starts a session for city using the effective config.
func newSession(cfg *config.Config, city string) (*session.Session, error) {
	return session.New(newClient(cfg), clk, city, cfg.Country, cfg.Method)
}
