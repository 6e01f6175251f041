package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/logging"
)

// sessionKey is the single record key the manager owns in the Store.
const sessionKey = "current_session"

// subscriberBuffer bounds the per-subscriber queue. A subscriber that falls
// this far behind loses intermediate states but always receives a later one.
const subscriberBuffer = 8

// State is one observation of the session, as delivered on the stream.
type State struct {
	Authenticated bool
	Session       models.Session
}

// Manager is the only component that transitions the session. All reads go
// through it; the rest of the client observes changes via Subscribe.
type Manager struct {
	api   api.Client
	store Store
	log   logging.Logger

	mu      sync.RWMutex
	current *models.Session

	subMu   sync.Mutex
	subs    map[uint64]chan State
	nextSub uint64
}

func NewManager(client api.Client, store Store, log logging.Logger) *Manager {
	return &Manager{
		api:   client,
		store: store,
		log:   log,
		subs:  make(map[uint64]chan State),
	}
}

// Login exchanges credentials for a session. The record is persisted before
// the in-memory transition, so a crash right after Login still restores.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	u, err := m.api.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.NewSession(u)
	if err := m.persist(ctx, sess); err != nil {
		return models.Session{}, err
	}

	m.setSession(&sess)
	m.log.Info(ctx, "session started", "email", sess.Email)
	return sess, nil
}

// Register creates an account. It does not sign the user in; the caller
// decides whether to follow up with Login.
func (m *Manager) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return m.api.Register(ctx, name, email, password)
}

// CheckEmail reports whether an account exists for the given address.
func (m *Manager) CheckEmail(ctx context.Context, email string) (bool, error) {
	return m.api.CheckEmail(ctx, email)
}

// Logout clears the in-memory session first, then the stored record, so the
// client is anonymous even if the store write fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.setSession(nil)
	if err := m.store.Remove(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to remove stored session: %w", err)
	}
	m.log.Info(ctx, "session ended")
	return nil
}

// Restore loads the persisted session record, if any. An absent record is
// not an error; the client simply stays anonymous. A record that no longer
// unmarshals is dropped from the store.
func (m *Manager) Restore(ctx context.Context) error {
	data, err := m.store.Get(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to read stored session: %w", err)
	}
	if data == nil {
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		m.log.Warn(ctx, "dropping unreadable session record", "error", err)
		_ = m.store.Remove(ctx, sessionKey)
		return nil
	}

	m.setSession(&sess)
	m.log.Info(ctx, "session restored", "email", sess.Email)
	return nil
}

// Revalidate confirms the current credential against the remote profile
// endpoint. On failure the session is terminated before the error is
// returned, so callers observe a consistent anonymous state.
func (m *Manager) Revalidate(ctx context.Context) error {
	u, err := m.api.Me(ctx)
	if err != nil {
		if lerr := m.Logout(ctx); lerr != nil {
			m.log.Warn(ctx, "logout after failed revalidation", "error", lerr)
		}
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	sess := models.NewSession(u)
	if sess.Token == "" {
		// The profile endpoint does not reissue tokens; keep the one we have.
		if tok, ok := m.Token(); ok {
			sess.Token = tok
		}
	}
	if err := m.persist(ctx, sess); err != nil {
		return err
	}
	m.setSession(&sess)
	return nil
}

// Current returns the active session, if any.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

// Token implements api.TokenSource.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.Token == "" {
		return "", false
	}
	return m.current.Token, true
}

// Subscribe returns a stream of session states. The current state is
// delivered immediately, then every later transition in order. The channel
// is closed when ctx is cancelled.
func (m *Manager) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, subscriberBuffer)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.state()
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		delete(m.subs, id)
		close(ch)
		m.subMu.Unlock()
	}()
	return ch
}

func (m *Manager) persist(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.Set(ctx, sessionKey, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// setSession is the single transition point. It never runs under subMu, and
// broadcast never runs under mu, so state reads inside Subscribe stay safe.
func (m *Manager) setSession(s *models.Session) {
	m.mu.Lock()
	m.current = s
	st := m.stateLocked()
	m.mu.Unlock()
	m.broadcast(st)
}

func (m *Manager) state() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	if m.current == nil {
		return State{}
	}
	return State{Authenticated: true, Session: *m.current}
}

func (m *Manager) broadcast(st State) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- st:
		default:
			// Slow subscriber: drop this state rather than block a transition.
		}
	}
}
