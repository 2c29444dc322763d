package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/lostfound/internal/client/flow"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	tabStyle   = lipgloss.NewStyle().Bold(true).Underline(true)

	lostBadge  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	foundBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	noticeStyles = map[services.Level]lipgloss.Style{
		services.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		services.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		services.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		services.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func badge(it models.Item) string {
	if it.IsLost() {
		return lostBadge.Render(it.Badge())
	}
	return foundBadge.Render(it.Badge())
}

func renderTabs(w io.Writer, f models.Filter) {
	labels := make([]string, 0, len(models.Tabs))
	for _, t := range models.Tabs {
		label := fmt.Sprintf("%s (%s)", t.Label(), t)
		if t == f.Tab {
			label = tabStyle.Render(label)
		}
		labels = append(labels, label)
	}
	fmt.Fprintln(w, strings.Join(labels, "  "))
	if f.Query != "" {
		fmt.Fprintf(w, "Cari: %q\n", f.Query)
	}
}

func renderItems(w io.Writer, items []models.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("Tidak ada laporan."))
		return
	}
	for _, it := range items {
		line := fmt.Sprintf("%s #%s %s | %s | %s",
			badge(it), it.ID, titleStyle.Render(it.Title), it.Location, models.FormatTimeAgo(it.CreatedAt))
		if it.IsCompleted() {
			line = dimStyle.Render(line + " (selesai)")
		}
		fmt.Fprintln(w, line)
	}
}

func renderItem(w io.Writer, it models.Item, acts services.Actions, placeholder string) {
	fmt.Fprintf(w, "%s %s\n", badge(it), titleStyle.Render(it.Title))
	if it.IsCompleted() {
		fmt.Fprintln(w, dimStyle.Render("Status: "+it.Status))
	}
	fmt.Fprintf(w, "Lokasi:    %s\n", it.Location)
	fmt.Fprintf(w, "Tanggal:   %s\n", models.FormatDate(it.Date))
	fmt.Fprintf(w, "Pelapor:   %s", it.Reporter())
	if it.ReporterNPM != "" {
		fmt.Fprintf(w, " (%s)", it.ReporterNPM)
	}
	fmt.Fprintln(w)
	if it.GuardName != "" {
		fmt.Fprintf(w, "Satpam:    %s\n", it.GuardName)
	}
	fmt.Fprintf(w, "Foto:      %s\n", it.ImageURL(placeholder))
	if it.Description != "" {
		fmt.Fprintln(w, it.Description)
	}
	fmt.Fprintf(w, "Dilaporkan %s\n", models.FormatTimeAgo(it.CreatedAt))

	if acts.ContactURL != "" {
		fmt.Fprintf(w, "Hubungi:   %s\n", acts.ContactURL)
	}
	if acts.ConfirmFound {
		fmt.Fprintf(w, "Sudah ketemu? ketik: found %s\n", it.ID)
	}
	if acts.ConfirmPickup {
		fmt.Fprintf(w, "Konfirmasi pengambilan: pickup %s\n", it.ID)
	}
}

func renderNotice(w io.Writer, n services.Notice) {
	if n.IsZero() {
		return
	}
	style, ok := noticeStyles[n.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	text := n.Title
	if n.Message != "" && n.Message != n.Title {
		text += ": " + n.Message
	}
	fmt.Fprintln(w, style.Render(text))
}

// renderValidation prints one line per invalid field in key order.
func renderValidation(w io.Writer, err error) bool {
	var v models.ValidationErrors
	if !errors.As(err, &v) {
		return false
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, v[k])
	}
	return true
}

func renderPhoto(w io.Writer, p flow.Photo) {
	fmt.Fprintf(w, "  + %s (%s)\n", p.Name, humanize.Bytes(uint64(p.Size)))
}
