package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/client/flow"
	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
)

var errNotLoggedIn = errors.New("not logged in")

// dateInputLayout is what the report form accepts and pre-fills.
const dateInputLayout = "2006-01-02 15:04"

// wireDateLayout matches what a datetime-local input submits.
const wireDateLayout = "2006-01-02T15:04"

func parseKind(s string) (models.ReportKind, bool) {
	switch strings.ToLower(s) {
	case "hilang", "lost":
		return models.KindLost, true
	case "ditemukan", "found":
		return models.KindFound, true
	}
	return "", false
}

// Report walks the user through a new lost or found report. A rejected
// submission can be corrected and sent again; every prompt then offers the
// previous answer, kept on an empty line.
func (a *App) Report(ctx context.Context, args []string) error {
	var kind models.ReportKind
	ok := len(args) == 1
	if ok {
		kind, ok = parseKind(args[0])
	}
	if !ok {
		fmt.Fprintln(a.out, "Usage: report <hilang|ditemukan>")
		return errUsage
	}
	if !a.loggedIn(ctx) {
		a.notify(services.Notice{Level: services.LevelWarning, Title: "Login dulu", Message: "Silakan login untuk membuat laporan."})
		a.navigate(ctx, guard.LoginPath)
		return errNotLoggedIn
	}

	form, err := a.reports.NewForm(kind)
	if err != nil {
		return err
	}
	defer form.Close()

	date := time.Now().Format(dateInputLayout)
	for {
		if err := a.fillReport(ctx, form, &date); err != nil {
			return err
		}

		res, err := form.Submit(ctx)
		if err == nil {
			_ = a.renderHome(ctx)
			return a.apply(ctx, res, nil)
		}
		err = a.apply(ctx, res, err)
		if errors.Is(err, flow.ErrBusy) || res.Navigate != "" {
			return err
		}
		answer, aerr := getSimpleText(a.reader, "Perbaiki dan kirim ulang? (y/N)", a.out)
		if aerr != nil || !strings.EqualFold(answer, "y") {
			return err
		}
	}
}

// fillReport prompts for every field of form. date holds the typed date in
// dateInputLayout between rounds.
func (a *App) fillReport(ctx context.Context, form *services.ReportForm, date *string) error {
	r := &form.Report
	var err error
	if r.Title, err = a.ask("Judul laporan", r.Title); err != nil {
		return err
	}
	if r.Location, err = a.ask("Lokasi", r.Location); err != nil {
		return err
	}
	if *date, err = a.ask("Tanggal (YYYY-MM-DD HH:MM)", *date); err != nil {
		return err
	}
	r.Date = *date
	if t, ok := models.ParseDate(*date, time.Local); ok {
		r.Date = t.Format(wireDateLayout)
	}

	label := "Deskripsi"
	if r.Description != "" {
		label = "Deskripsi (kosong = tetap)"
	}
	desc, err := GetMultiline(a.reader, label, a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		r.Description = desc
	}

	label = "Path foto (maks 5 MB)"
	if form.Photo.Len() > 0 {
		label += " [tetap]"
	}
	path, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return err
	}
	if path != "" {
		p, err := form.Photo.Replace(path)
		if err != nil {
			// A missing photo is then reported by validation.
			a.notify(services.Notice{Level: services.LevelError, Title: "Foto ditolak", Message: err.Error()})
		} else {
			renderPhoto(a.out, p)
		}
	}

	if form.Report.Kind == models.KindFound {
		if r.GuardID, err = a.pickGuard(ctx, r.GuardID); err != nil {
			return err
		}
	}
	return nil
}

// ask prompts for one value, showing cur as the default.
func (a *App) ask(label, cur string) (string, error) {
	if cur != "" {
		label = fmt.Sprintf("%s [%s]", label, cur)
	}
	v, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return cur, nil
	}
	return v, nil
}

// pickGuard lists the guards and returns the id of the chosen one, or cur
// when nothing valid was chosen.
func (a *App) pickGuard(ctx context.Context, cur string) (string, error) {
	guards, err := a.items.Guards(ctx)
	if err != nil {
		a.notify(services.Notice{Level: services.LevelError, Title: "Gagal memuat satpam", Message: err.Error()})
		return "", err
	}
	for i, g := range guards {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, g.Name)
	}
	choice, err := getSimpleText(a.reader, "Diserahkan ke satpam (nomor)", a.out)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(guards) {
		// An empty id is reported by validation.
		return cur, nil
	}
	return guards[n-1].ID.String(), nil
}
