// Package cli is the interactive terminal frontend: the navigation
// controller over the application's pages, the command loop, and the
// rendering of salon previews, the booking flow, and the user's
// appointments.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mkalinina/salonbook/internal/client/api"
	"github.com/mkalinina/salonbook/internal/client/booking"
	"github.com/mkalinina/salonbook/internal/client/config"
	"github.com/mkalinina/salonbook/internal/client/session"
	"github.com/mkalinina/salonbook/internal/logging"
)

// App wires the session store, API client, and booking wizard behind the
// command loop.
type App struct {
	cfg    *config.Config
	store  *session.Store
	api    api.Client
	wizard *booking.Wizard
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

func NewApp(cfg *config.Config, store *session.Store, client api.Client, log logging.Logger) *App {
	return &App{
		cfg:    cfg,
		store:  store,
		api:    client,
		wizard: booking.New(client, log),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    log,
	}
}

// Run shows the home page and enters the command loop until exit, EOF, or
// context cancellation.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to salonbook (type 'help' for commands)")
	a.Home(ctx)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.store.Credential() != ""
}

func (a *App) status() string {
	if name := a.store.DisplayName(); name != "" {
		return "(" + name + ")"
	}
	return ""
}

// ShowPage resolves the navigation request against the access rules and
// renders the resulting page.
func (a *App) ShowPage(ctx context.Context, p Page) {
	r := Resolve(p, a.isLoggedIn())
	if r.Confirm {
		if !Confirm(a.reader, "You need to sign in to book. Sign in now?", a.out) {
			r.Target = PageHome
		}
	}

	switch r.Target {
	case PageHome:
		a.showHome(ctx)
	case PageLogin:
		a.showLogin(ctx)
	case PageRegister:
		a.showRegister(ctx)
	case PageProfile:
		a.showProfile(ctx)
	case PageBooking:
		a.showBooking(ctx)
	}
}

func (a *App) Home(ctx context.Context)     { a.ShowPage(ctx, PageHome) }
func (a *App) Login(ctx context.Context)    { a.ShowPage(ctx, PageLogin) }
func (a *App) Register(ctx context.Context) { a.ShowPage(ctx, PageRegister) }
func (a *App) Profile(ctx context.Context)  { a.ShowPage(ctx, PageProfile) }
func (a *App) Book(ctx context.Context)     { a.ShowPage(ctx, PageBooking) }

// Logout clears the cached session and returns to the home page.
func (a *App) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		fmt.Fprintf(a.out, "Failed to sign out: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Signed out.")
	a.Home(ctx)
}
