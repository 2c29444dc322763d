package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	monthsLong = [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	monthsShort = [...]string{
		"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
		"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
	}
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate accepts the timestamp shapes the backend and the report form
// produce. Values without a zone are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as "4 Desember 2025, 17.00" in local time.
func FormatDate(s string) string {
	return FormatDateIn(s, time.Local)
}

func FormatDateIn(s string, loc *time.Location) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	t, ok := ParseDate(s, loc)
	if !ok {
		return "Tanggal tidak valid"
	}
	return fmt.Sprintf("%d %s %d, %02d.%02d", t.Day(), monthsLong[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthsShort[t.Month()-1], t.Year())
}

var agoMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "Baru saja", DivBy: time.Second},
	{D: time.Hour, Format: "%d menit %s", DivBy: time.Minute},
	{D: 24 * time.Hour, Format: "%d jam %s", DivBy: time.Hour},
	{D: 7 * 24 * time.Hour, Format: "%d hari %s", DivBy: 24 * time.Hour},
}

// FormatTimeAgo renders s relative to now: "Baru saja", "5 menit yang
// lalu", and so on up to a week, then a short date such as "4 Des 2025".
func FormatTimeAgo(s string) string {
	return FormatTimeAgoAt(s, time.Now(), time.Local)
}

func FormatTimeAgoAt(s string, now time.Time, loc *time.Location) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	t, ok := ParseDate(s, loc)
	if !ok {
		return "-"
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Baru saja"
	case diff >= 7*24*time.Hour:
		return shortDate(t)
	}
	return humanize.CustomRelTime(t, now, "yang lalu", "lagi", agoMagnitudes)
}
