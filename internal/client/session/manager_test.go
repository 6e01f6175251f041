package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
)

var _ api.TokenSource = (*Manager)(nil)

func testUser() models.User {
	return models.User{
		ID:        "u-1",
		Name:      "Olga",
		Email:     "olga@example.com",
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Token:     "tok-123",
	}
}

func TestLogin_PersistsBeforeTransition(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{loginUser: testUser()}
	store := NewMemoryStore()
	m := NewManager(f, store, testLogger())

	sess, err := m.Login(ctx, "olga@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "u-1", sess.UserID)

	tok, ok := m.Token()
	require.True(t, ok)
	require.Equal(t, "tok-123", tok)

	data, err := store.Get(ctx, sessionKey)
	require.NoError(t, err)
	require.NotNil(t, data)

	var stored models.Session
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Equal(t, sess, stored)
}

func TestLogin_RemoteFailureStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{loginErr: api.ErrUnauthorized}
	store := NewMemoryStore()
	m := NewManager(f, store, testLogger())

	_, err := m.Login(ctx, "olga@example.com", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.False(t, m.IsAuthenticated())

	data, err := store.Get(ctx, sessionKey)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestLogout_ClearsMemoryAndStore(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{loginUser: testUser()}
	store := NewMemoryStore()
	m := NewManager(f, store, testLogger())

	_, err := m.Login(ctx, "olga@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	require.False(t, m.IsAuthenticated())

	data, err := store.Get(ctx, sessionKey)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestRestore_NoRecordStaysAnonymous(t *testing.T) {
	m := NewManager(&fakeClient{}, NewMemoryStore(), testLogger())
	require.NoError(t, m.Restore(context.Background()))
	require.False(t, m.IsAuthenticated())
}

func TestRestore_LoadsStoredRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := models.NewSession(testUser())
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, sessionKey, data))

	m := NewManager(&fakeClient{}, store, testLogger())
	require.NoError(t, m.Restore(ctx))

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, sess, got)
}

func TestRestore_DropsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, sessionKey, []byte("{not json")))

	m := NewManager(&fakeClient{}, store, testLogger())
	require.NoError(t, m.Restore(ctx))
	require.False(t, m.IsAuthenticated())

	data, err := store.Get(ctx, sessionKey)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestRevalidate_KeepsExistingToken(t *testing.T) {
	ctx := context.Background()
	refreshed := testUser()
	refreshed.Name = "Olga V."
	refreshed.Token = ""
	f := &fakeClient{loginUser: testUser(), meUser: refreshed}
	m := NewManager(f, NewMemoryStore(), testLogger())

	_, err := m.Login(ctx, "olga@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, m.Revalidate(ctx))

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, "Olga V.", got.Name)
	require.Equal(t, "tok-123", got.Token)
}

func TestRevalidate_FailureTerminatesSession(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{loginUser: testUser(), meErr: api.ErrUnauthorized}
	store := NewMemoryStore()
	m := NewManager(f, store, testLogger())

	_, err := m.Login(ctx, "olga@example.com", "secret")
	require.NoError(t, err)

	err = m.Revalidate(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.False(t, m.IsAuthenticated())

	data, err := store.Get(ctx, sessionKey)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestRegister_DoesNotSignIn(t *testing.T) {
	f := &fakeClient{registerUser: models.User{ID: "u-2", Email: "new@example.com"}}
	m := NewManager(f, NewMemoryStore(), testLogger())

	u, err := m.Register(context.Background(), "New", "new@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "u-2", u.ID)
	require.False(t, m.IsAuthenticated())
}

func TestSubscribe_ReplaysThenStreamsTransitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeClient{loginUser: testUser()}
	m := NewManager(f, NewMemoryStore(), testLogger())

	states := m.Subscribe(ctx)

	first := <-states
	require.False(t, first.Authenticated)

	_, err := m.Login(ctx, "olga@example.com", "secret")
	require.NoError(t, err)

	st := <-states
	require.True(t, st.Authenticated)
	require.Equal(t, "olga@example.com", st.Session.Email)

	require.NoError(t, m.Logout(ctx))
	st = <-states
	require.False(t, st.Authenticated)
}

func TestSubscribe_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager(&fakeClient{}, NewMemoryStore(), testLogger())

	states := m.Subscribe(ctx)
	<-states

	cancel()
	select {
	case _, open := <-states:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestSubscribe_LateSubscriberSeesCurrentState(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{loginUser: testUser()}
	m := NewManager(f, NewMemoryStore(), testLogger())

	_, err := m.Login(ctx, "olga@example.com", "secret")
	require.NoError(t, err)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	st := <-m.Subscribe(subCtx)
	require.True(t, st.Authenticated)
}

func TestLogout_StoreFailureStillAnonymous(t *testing.T) {
	f := &fakeClient{loginUser: testUser()}
	store := &failingStore{Store: NewMemoryStore(), removeErr: errors.New("disk gone")}
	m := NewManager(f, store, testLogger())

	_, err := m.Login(context.Background(), "olga@example.com", "secret")
	require.NoError(t, err)

	err = m.Logout(context.Background())
	require.Error(t, err)
	require.False(t, m.IsAuthenticated())
}

type failingStore struct {
	Store
	removeErr error
}

func (s *failingStore) Remove(ctx context.Context, key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.Store.Remove(ctx, key)
}
