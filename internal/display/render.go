package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/api"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/prayer"
)

// Width is the width of banners and rules.
const Width = 60

// NoHighlight passed to Schedule accents no row.
const NoHighlight prayer.Name = -1

// Rule returns a full-width "=" rule.
func Rule() string {
	return Dim(strings.Repeat("=", Width))
}

func centered(text string) string {
	return lipgloss.PlaceHorizontal(Width, lipgloss.Center, text)
}

// Header prints the application banner.
func Header(w io.Writer) {
	fmt.Fprintln(w, Rule())
	fmt.Fprintln(w, Bold(centered("APLIKASI JADWAL SHOLAT INDONESIA")))
	fmt.Fprintln(w, Rule())
	fmt.Fprintln(w)
}

// Menu prints the numbered menu.
func Menu(w io.Writer, city string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule())
	fmt.Fprintf(w, "MENU %s\n", Dim("(kota: "+city+")"))
	fmt.Fprintln(w, "1. Lihat jadwal sholat hari ini")
	fmt.Fprintln(w, "2. Lihat jadwal sholat besok")
	fmt.Fprintln(w, "3. Lihat jadwal sholat pada tanggal tertentu")
	fmt.Fprintln(w, "4. Cari waktu sholat terdekat")
	fmt.Fprintln(w, "5. Ganti kota")
	fmt.Fprintln(w, "6. Keluar")
	fmt.Fprintln(w, Rule())
}

// Schedule prints one day's schedule with the row of highlight accented.
func Schedule(w io.Writer, date api.DateInfo, s prayer.Schedule, highlight prayer.Name) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule())
	fmt.Fprintf(w, " Tanggal: %s\n", Bold(date.Readable))
	if hijri := date.Hijri.Format(); hijri != "" {
		fmt.Fprintf(w, " Hijriah: %s\n", hijri)
	}
	fmt.Fprintln(w, Rule())
	fmt.Fprintln(w)

	tbl := NewTable([]string{"WAKTU SHOLAT", "JAM"})
	for i, n := range prayer.Names {
		tbl.AddRow([]string{n.Label(), s.Time(n).String()})
		if n == highlight {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())

	fmt.Fprintln(w)
	fmt.Fprintf(w, " Imsak (10 menit sebelum Subuh): %s\n", aux(s.Imsak))
	fmt.Fprintf(w, " Terbit Matahari (Sunrise): %s\n", aux(s.Sunrise))
	fmt.Fprintf(w, " Tengah Malam (Midnight): %s\n", aux(s.Midnight))
}

func aux(t *prayer.TimeOfDay) string {
	if t == nil {
		return "-"
	}
	return t.String()
}

// Nearest prints the outcome of a nearest-prayer lookup.
func Nearest(w io.Writer, sel prayer.Selection) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule())
	fmt.Fprintln(w, Bold(" WAKTU SHOLAT TERDEKAT"))
	fmt.Fprintln(w, Rule())
	fmt.Fprintln(w)

	if !sel.Found {
		fmt.Fprintln(w, " Semua waktu sholat hari ini telah berlalu.")
		fmt.Fprintln(w, "   Waktu sholat berikutnya: Subuh besok")
		return
	}

	fmt.Fprintf(w, " Waktu sholat terdekat: %s\n",
		Accent(fmt.Sprintf("%s (%s)", sel.Prayer.Label(), sel.Time)))
	fmt.Fprintf(w, "  Sisa waktu: %s\n", prayer.FormatRemaining(sel.Hours(), sel.Minutes()))
}

// Farewell prints the exit banner.
func Farewell(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule())
	fmt.Fprintln(w, Success(centered("Terima kasih telah menggunakan aplikasi ini!")))
	fmt.Fprintln(w, centered("Jangan lupa sholat tepat waktu!"))
	fmt.Fprintln(w, Rule())
}

// Problem prints an error message line.
func Problem(w io.Writer, err error) {
	fmt.Fprintf(w, " %s\n", Error(Message(err)))
}

// Notice prints an informational line.
func Notice(w io.Writer, msg string) {
	fmt.Fprintf(w, " %s\n", Success(msg))
}
