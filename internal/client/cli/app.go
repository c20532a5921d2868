package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/secondwear/internal/client/services"
	"github.com/dmitrijs2005/secondwear/internal/client/session"
	"github.com/dmitrijs2005/secondwear/internal/logging"
)

// Deps groups everything App needs. Session, Listing and History are
// required; a nil service disables the commands that use it.
type Deps struct {
	Session     *session.Session
	Auth        services.AuthService
	Listing     *services.ListingService
	History     *services.History
	Items       services.ItemService
	Messages    services.MessageService
	Orders      services.OrderService
	Profiles    *services.ProfileService
	Preferences *services.PreferencesService
	Log         logging.Logger

	In  io.Reader
	Out io.Writer
}

type App struct {
	session  *session.Session
	auth     services.AuthService
	listing  *services.ListingService
	history  *services.History
	items    services.ItemService
	messages services.MessageService
	orders   services.OrderService
	profiles *services.ProfileService
	prefs    *services.PreferencesService
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

var errUnavailable = errors.New("command is not available")

func NewApp(d Deps) (*App, error) {
	if d.Session == nil || d.Listing == nil || d.History == nil {
		return nil, errors.New("cli: session, listing and history are required")
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	return &App{
		session:  d.Session,
		auth:     d.Auth,
		listing:  d.Listing,
		history:  d.History,
		items:    d.Items,
		messages: d.Messages,
		orders:   d.Orders,
		profiles: d.Profiles,
		prefs:    d.Preferences,
		log:      d.Log.With("component", "cli"),
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}, nil
}

// Run greets the user and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to secondwear (type 'help' for commands)\n")
	if u, ok := a.session.User(); ok {
		a.printf("Signed in as %s\n", u.DisplayName())
	}
	if a.prefs != nil {
		p := a.prefs.Current()
		a.printf("Theme: %s, language: %s (%s)\n", p.Theme, p.Language, p.Direction)
	}

	a.log.Debug(ctx, "repl started", "session", a.session.State().String())
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	name := "guest"
	if u, ok := a.session.User(); ok {
		name = u.Username
	}
	if q := a.listing.Serialized(); q != "" {
		return fmt.Sprintf("(%s ?%s)", name, q)
	}
	return fmt.Sprintf("(%s)", name)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return services.ErrNotAuthenticated
	}
	return nil
}
