package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/display"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/menu"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/prayer"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/session"
)

// FlagFormat selects the one-line output of the next command.
var FlagFormat string

// errNoCity is returned by single-shot commands run without a city.
var errNoCity = fmt.Errorf("%w: use --city or set city in the config file", session.ErrEmptyCity)

// runMenu starts the interactive menu. The city prompt is skipped when a
// city comes from flags, env or the config file.
func runMenu(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	out := cmd.OutOrStdout()

	in, err := lineReader(cmd)
	if err != nil {
		return err
	}
	defer in.Close()

	m := menu.New(in, out, func(city string) (*session.Session, error) {
		return newSession(cfg, city)
	})
	return m.Run(cmd.Context(), cfg.City)
}

// lineReader uses readline on an interactive terminal and a plain scanner
// otherwise.
func lineReader(cmd *cobra.Command) (menu.LineReader, error) {
	if cmd.InOrStdin() == os.Stdin && readline.IsTerminal(int(os.Stdin.Fd())) {
		return menu.NewReadline()
	}
	return menu.NewScanner(cmd.InOrStdin(), cmd.OutOrStdout()), nil
}

// startSession opens a session for single-shot commands. A missing city is
// an error here, unlike in the menu where the operator is asked for one.
func startSession() (*session.Session, error) {
	sess, err := newSession(loadedConfig, loadedConfig.City)
	if errors.Is(err, session.ErrEmptyCity) {
		return nil, errNoCity
	}
	return sess, err
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Tampilkan jadwal sholat hari ini",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := startSession()
			if err != nil {
				return err
			}
			day, err := sess.Today(cmd.Context())
			if err != nil {
				return err
			}

			highlight := display.NoHighlight
			if sel := sess.NextIn(day); sel.Found {
				highlight = sel.Prayer
			}
			display.Schedule(cmd.OutOrStdout(), day.Date, day.Schedule, highlight)
			return nil
		},
	}
}

func newTomorrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tomorrow",
		Short: "Tampilkan jadwal sholat besok",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := startSession()
			if err != nil {
				return err
			}
			day, err := sess.Tomorrow(cmd.Context())
			if err != nil {
				return err
			}
			display.Schedule(cmd.OutOrStdout(), day.Date, day.Schedule, display.NoHighlight)
			return nil
		},
	}
}

func newDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "date <DD-MM-YYYY>",
		Short:   "Tampilkan jadwal sholat pada tanggal tertentu",
		Example: "  jadwal-sholat date 25-12-2024 --city Jakarta",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := startSession()
			if err != nil {
				return err
			}
			day, err := sess.OnDate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			display.Schedule(cmd.OutOrStdout(), day.Date, day.Schedule, display.NoHighlight)
			return nil
		},
	}
}

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Cari waktu sholat terdekat",
		Long: "Cari waktu sholat terdekat dari jadwal hari ini.\n\n" +
			"With --format the result is printed on one line, suitable for status bars.\n" +
			"Formats: time-remaining, next-prayer-time, name-and-time, full, or a Go\n" +
			"template such as '{{.Label}} {{.Time}}'. Template fields: .Name, .Label,\n" +
			".Time, .Remaining, .Hours, .Minutes",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := startSession()
			if err != nil {
				return err
			}
			sel, _, err := sess.Nearest(cmd.Context())
			if err != nil {
				return err
			}

			if FlagFormat != "" {
				fmt.Fprintln(cmd.OutOrStdout(), prayer.FormatOutput(sel, FlagFormat))
				return nil
			}
			display.Nearest(cmd.OutOrStdout(), sel)
			return nil
		},
	}

	cmd.Flags().StringVar(&FlagFormat, "format", "", "One-line output format")

	return cmd
}
