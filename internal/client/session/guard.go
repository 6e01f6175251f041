package session

import (
	"context"
	"net/url"

	"github.com/ovasilenko/breedbook/internal/logging"
)

// Decision is the outcome of a guard check: either admit, or redirect to
// the login screen with the original target preserved.
type Decision struct {
	Admit      bool
	RedirectTo string
}

// Guard gates access to screens that require an authenticated session.
type Guard struct {
	sessions *Manager
	log      logging.Logger
}

func NewGuard(m *Manager, log logging.Logger) *Guard {
	return &Guard{sessions: m, log: log}
}

// Check admits an authenticated session outright. Otherwise it attempts one
// revalidation against the stored credential and redirects to login when
// that fails.
func (g *Guard) Check(ctx context.Context, target string) Decision {
	if g.sessions.IsAuthenticated() {
		return Decision{Admit: true}
	}
	if err := g.sessions.Revalidate(ctx); err != nil {
		g.log.Info(ctx, "access denied", "target", target, "error", err)
		return Decision{RedirectTo: loginRedirect(target)}
	}
	return Decision{Admit: true}
}

func loginRedirect(target string) string {
	return "/login?returnUrl=" + url.QueryEscape(target)
}
