package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// Deps are the collaborators of an App. cmd/cli builds them from config.
type Deps struct {
	Auth     services.AuthService
	Items    services.ItemService
	Reports  services.ReportService
	CloseOut services.CloseOutService
	Tokens   guard.TokenChecker
	Log      logging.Logger

	// Placeholder replaces missing item images.
	Placeholder string
}

type App struct {
	auth     services.AuthService
	items    services.ItemService
	reports  services.ReportService
	closeOut services.CloseOutService
	log      logging.Logger

	placeholder string
	reader      *bufio.Reader
	out         io.Writer

	nav     *navigator
	filter  models.Filter
	expired atomic.Bool
}

// NewApp builds the REPL reading commands and answers from in.
func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	return &App{
		auth:        d.Auth,
		items:       d.Items,
		reports:     d.Reports,
		closeOut:    d.CloseOut,
		log:         d.Log,
		placeholder: d.Placeholder,
		reader:      bufio.NewReader(in),
		out:         out,
		nav:         newNavigator(d.Tokens),
	}
}

// OnUnauthorized is the API client's 401 hook. The session is already
// cleared by then; the REPL moves to the login view before the next prompt.
func (a *App) OnUnauthorized(ctx context.Context) {
	a.expired.Store(true)
}

func (a *App) checkSession(ctx context.Context) {
	if !a.expired.Swap(false) {
		return
	}
	a.notify(services.Notice{Level: services.LevelWarning, Title: "Sesi berakhir", Message: "Silakan login kembali."})
	a.navigate(ctx, guard.LoginPath)
}

func (a *App) loggedIn(ctx context.Context) bool {
	return a.auth.LoggedIn(ctx)
}

// Location is the current view.
func (a *App) Location() string {
	return a.nav.location
}

func (a *App) status() string {
	who := "guest"
	if claims, err := a.auth.Claims(context.Background()); err == nil {
		who = claims.Name
		if who == "" {
			who = claims.Email
		}
		if claims.IsGuard() {
			who += " [satpam]"
		}
	}
	return fmt.Sprintf("(%s) %s", who, a.nav.location)
}

// Run shows the listing and serves commands until EOF or "exit".
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, titleStyle.Render("Lost & Found KEMA UKRI")+" (type 'help' for commands)")
	_ = a.Home(ctx, nil)
	runREPL(ctx, a, a.status, a.reader)
}
