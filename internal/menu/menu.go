// Package menu runs the interactive numbered menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/display"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/session"
)

// Prompts shown to the operator.
const (
	promptCity   = "\n  Kota: "
	promptChoice = "\nPilih menu (1-6): "
	promptDate   = "Tanggal: "
	promptPause  = "\nTekan ENTER untuk melanjutkan..."
)

// Starter opens a session for the city the operator typed.
type Starter func(city string) (*session.Session, error)

// Menu is one interactive run.
type Menu struct {
	in    LineReader
	out   io.Writer
	start Starter
}

// New creates a menu reading from in and writing to out.
func New(in LineReader, out io.Writer, start Starter) *Menu {
	return &Menu{in: in, out: out, start: start}
}

// Run shows the header, asks for a city unless one is given, and loops
// over the menu until the operator exits, input ends or ctx is canceled.
// A blank starting city ends the run after printing a message.
func (m *Menu) Run(ctx context.Context, city string) error {
	display.Header(m.out)

	if city == "" {
		fmt.Fprintln(m.out, "Masukkan nama kota di Indonesia:")
		fmt.Fprintln(m.out, display.Dim("Contoh: Jakarta, Surabaya, Bandung, Yogyakarta, Medan, dll."))
		line, err := m.in.Prompt(promptCity)
		if err != nil {
			return ignoreEOF(err)
		}
		city = line
	}

	sess, err := m.start(city)
	if err != nil {
		display.Problem(m.out, err)
		if errors.Is(err, session.ErrEmptyCity) {
			return nil
		}
		return err
	}
	log.Debug().Str("city", sess.City).Msg("session started")

	for {
		// An interrupt during an action cancels ctx; the run ends like EOF.
		if ctx.Err() != nil {
			log.Debug().Err(ctx.Err()).Msg("menu interrupted")
			return nil
		}

		display.Menu(m.out, sess.City)

		choice, err := m.in.Prompt(promptChoice)
		if err != nil {
			return ignoreEOF(err)
		}
		log.Debug().Str("choice", choice).Msg("menu selection")

		switch choice {
		case "1":
			m.showToday(ctx, sess)
		case "2":
			m.showTomorrow(ctx, sess)
		case "3":
			if err := m.showDate(ctx, sess); err != nil {
				return ignoreEOF(err)
			}
		case "4":
			m.showNearest(ctx, sess)
		case "5":
			if err := m.changeCity(sess); err != nil {
				return ignoreEOF(err)
			}
		case "6":
			display.Farewell(m.out)
			return nil
		default:
			fmt.Fprintf(m.out, "\n %s\n", display.Warn("Pilihan tidak valid! Silakan pilih 1-6."))
		}

		if ctx.Err() != nil {
			continue
		}
		if _, err := m.in.Prompt(promptPause); err != nil {
			return ignoreEOF(err)
		}
	}
}

func (m *Menu) fetching(sess *session.Session) {
	fmt.Fprintf(m.out, "\n %s\n", display.Dim(fmt.Sprintf("Mengambil data untuk %s...", sess.City)))
}

func (m *Menu) showToday(ctx context.Context, sess *session.Session) {
	m.fetching(sess)
	day, err := sess.Today(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	highlight := display.NoHighlight
	if sel := sess.NextIn(day); sel.Found {
		highlight = sel.Prayer
	}
	display.Schedule(m.out, day.Date, day.Schedule, highlight)
}

func (m *Menu) showTomorrow(ctx context.Context, sess *session.Session) {
	m.fetching(sess)
	day, err := sess.Tomorrow(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	display.Schedule(m.out, day.Date, day.Schedule, display.NoHighlight)
}

func (m *Menu) showDate(ctx context.Context, sess *session.Session) error {
	fmt.Fprintln(m.out, "\nMasukkan tanggal (format: DD-MM-YYYY)")
	fmt.Fprintln(m.out, display.Dim("Contoh: 25-12-2024"))
	date, err := m.in.Prompt(promptDate)
	if err != nil {
		return err
	}

	if !session.ValidDate(date) {
		m.fail(session.ErrBadDate)
		return nil
	}

	m.fetching(sess)
	day, err := sess.OnDate(ctx, date)
	if err != nil {
		m.fail(err)
		return nil
	}
	display.Schedule(m.out, day.Date, day.Schedule, display.NoHighlight)
	return nil
}

func (m *Menu) showNearest(ctx context.Context, sess *session.Session) {
	m.fetching(sess)
	sel, _, err := sess.Nearest(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	display.Nearest(m.out, sel)
}

func (m *Menu) changeCity(sess *session.Session) error {
	fmt.Fprintln(m.out, "\nMasukkan nama kota baru:")
	name, err := m.in.Prompt("Kota: ")
	if err != nil {
		return err
	}
	if err := sess.SetCity(name); err != nil {
		m.fail(err)
		return nil
	}
	display.Notice(m.out, "Kota berhasil diganti ke: "+sess.City)
	return nil
}

func (m *Menu) fail(err error) {
	log.Debug().Err(err).Msg("menu action failed")
	display.Problem(m.out, err)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
