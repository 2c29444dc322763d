package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	loggedIn(ctx context.Context) bool
	checkSession(ctx context.Context)

	Home(ctx context.Context, args []string) error
	Tab(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Report(ctx context.Context, args []string) error
	ConfirmFound(ctx context.Context, args []string) error
	Pickup(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the Lost & Found CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on context cancellation, or when the user
// types "exit" or "quit".
//
// Commands
//
//	home | list [tab] [query]  show the listing
//	tab <all|lost|found|done>  switch the listing tab
//	search [text]              filter by title or location; empty clears
//	show <id>                  item detail
//	refresh                    refetch the listing
//	report <hilang|ditemukan>  file a new report
//	found <id>                 mark your lost report as recovered
//	pickup <id>                record the handover of a found item (satpam)
//	login | register | logout | whoami
//	exit | quit
//
// Errors returned by command handlers have already been shown to the user;
// they are dropped here so one failed command never ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("lf %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.loggedIn(ctx) {
				printlnFn("Available commands: home, tab, search, show, refresh, report, found, pickup, whoami, logout, exit")
			} else {
				printlnFn("Available commands: home, tab, search, show, refresh, login, register, exit")
			}

		case "home", "list", "l":
			_ = a.Home(ctx, args)

		case "tab":
			_ = a.Tab(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "report":
			_ = a.Report(ctx, args)

		case "found":
			_ = a.ConfirmFound(ctx, args)

		case "pickup":
			_ = a.Pickup(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.checkSession(ctx)
	}
}
