package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Format constants for the `next` command.
const (
	FormatTimeRemaining  = "time-remaining"
	FormatNextPrayerTime = "next-prayer-time"
	FormatNameAndTime    = "name-and-time"
	FormatFull           = "full"
)

// NoMorePrayers is printed by the compact formats when every prayer of the
// day has passed.
const NoMorePrayers = "Subuh besok"

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // API name, e.g. "Asr"
	Label     string // Indonesian label, e.g. "Ashar"
	Time      string // "HH:MM"
	Remaining string // e.g. "2 jam 15 menit"
	Hours     int
	Minutes   int
}

// FormatRemaining formats hours and minutes as "X jam Y menit".
func FormatRemaining(hours, minutes int) string {
	return fmt.Sprintf("%d jam %d menit", hours, minutes)
}

// FormatOutput renders a selection for one-line output.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available template fields: .Name, .Label, .Time, .Remaining, .Hours, .Minutes
//
// Example: "{{.Label}} {{.Time}}" -> "Ashar 15:15"
func FormatOutput(s Selection, mode string) string {
	if !s.Found {
		return NoMorePrayers
	}

	remaining := FormatRemaining(s.Hours(), s.Minutes())

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      s.Prayer.String(),
			Label:     s.Prayer.Label(),
			Time:      s.Time.String(),
			Remaining: remaining,
			Hours:     s.Hours(),
			Minutes:   s.Minutes(),
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return s.Time.String()
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", s.Prayer.Label(), s.Time)
	default:
		return fmt.Sprintf("%s %s (%s)", s.Prayer.Label(), s.Time, remaining)
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
