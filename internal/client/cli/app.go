package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/catalog"
	"github.com/ovasilenko/breedbook/internal/client/config"
	"github.com/ovasilenko/breedbook/internal/client/session"
	"github.com/ovasilenko/breedbook/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	api      api.Client
	sessions *session.Manager
	guard    *session.Guard
	catalog  *catalog.Catalog
	images   *catalog.Images
	search   *catalog.Search
	reader   *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.BaseURL, c.APIKey, c.RequestTimeout, log)

	sessions := session.NewManager(apiClient, session.NewSQLiteStore(db), log)
	// The client needs a credential source and the manager needs the client;
	// the token source is bound late to break the cycle.
	apiClient.SetTokenSource(sessions)

	cat := catalog.NewCatalog(apiClient, c.CacheTTL, log)

	return &App{
		config:   c,
		log:      log,
		api:      apiClient,
		sessions: sessions,
		guard:    session.NewGuard(sessions, log),
		catalog:  cat,
		images:   catalog.NewImages(apiClient, log),
		search:   catalog.NewSearch(apiClient, cat, c.SearchDebounce, log),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session, starts the session watcher and hands
// control to the REPL. It blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.api.Close() }()

	if err := a.sessions.Restore(ctx); err != nil {
		a.log.Warn(ctx, "restoring session", "error", err)
	}

	go a.StartSessionWatcher(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// StartSessionWatcher announces sign-in and sign-out transitions. The first
// delivery on the stream is the state at subscription time and is skipped.
func (a *App) StartSessionWatcher(ctx context.Context) {
	states := a.sessions.Subscribe(ctx)

	first := true
	var last bool
	for st := range states {
		if first {
			first = false
			last = st.Authenticated
			continue
		}
		if st.Authenticated == last {
			continue
		}
		last = st.Authenticated
		if st.Authenticated {
			printlnFn("Signed in as", st.Session.Email)
		} else {
			printlnFn("Signed out")
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

func (a *App) status() string {
	if sess, ok := a.sessions.Current(); ok {
		return "(" + sess.Email + ")"
	}
	return ""
}

// guarded runs fn only when the route guard admits the target screen.
func (a *App) guarded(ctx context.Context, target string, fn func(context.Context) error) error {
	d := a.guard.Check(ctx, target)
	if !d.Admit {
		printlnFn("Please sign in first (redirected to " + d.RedirectTo + ")")
		return session.ErrNotAuthenticated
	}
	return fn(ctx)
}
