package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
)

var errUsage = errors.New("usage")

func isTab(s string) bool {
	for _, t := range models.Tabs {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Home shows the listing. An optional first argument naming a tab switches
// to it; the remaining arguments become the search text.
func (a *App) Home(ctx context.Context, args []string) error {
	if len(args) > 0 && isTab(args[0]) {
		a.filter.Tab = models.ParseTab(args[0])
		args = args[1:]
	}
	if len(args) > 0 {
		a.filter.Query = strings.Join(args, " ")
	}
	return a.renderHome(ctx)
}

func (a *App) Tab(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: tab <all|lost|found|done>")
		return errUsage
	}
	a.filter.Tab = models.ParseTab(args[0])
	return a.renderHome(ctx)
}

// Search with no arguments clears the search text.
func (a *App) Search(ctx context.Context, args []string) error {
	a.filter.Query = strings.Join(args, " ")
	return a.renderHome(ctx)
}

func (a *App) Refresh(ctx context.Context) error {
	a.items.Refresh()
	return a.renderHome(ctx)
}

func (a *App) renderHome(ctx context.Context) error {
	a.navigate(ctx, guard.HomePath)
	if a.items.ListState().Loading() {
		fmt.Fprintln(a.out, dimStyle.Render("Memuat..."))
	}

	items, err := a.items.List(ctx, a.filter)
	if err != nil {
		if !client.IsCanceled(err) {
			a.notify(services.Notice{
				Level:   services.LevelError,
				Title:   "Gagal memuat laporan",
				Message: client.MessageOf(err, "Terjadi kesalahan."),
			})
		}
		return err
	}

	renderTabs(a.out, a.filter)
	renderItems(a.out, items)
	return nil
}

// Show prints the detail view of one item with the actions it offers.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return errUsage
	}
	it, err := a.findItem(ctx, args[0])
	if err != nil {
		return err
	}
	renderItem(a.out, it, a.items.Actions(ctx, it), a.placeholder)
	return nil
}

func (a *App) findItem(ctx context.Context, id string) (models.Item, error) {
	it, err := a.items.Find(ctx, strings.TrimPrefix(id, "#"))
	if err != nil {
		msg := "Laporan tidak ditemukan."
		if !errors.Is(err, services.ErrItemNotFound) {
			msg = client.MessageOf(err, "Terjadi kesalahan.")
		}
		a.notify(services.Notice{Level: services.LevelError, Title: "Gagal", Message: msg})
		return models.Item{}, err
	}
	return it, nil
}
