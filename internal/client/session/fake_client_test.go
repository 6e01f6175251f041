package session

import (
	"context"
	"io"
	"sync"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewDefault(io.Discard, "error")
}

// fakeClient implements api.Client for session tests. Only the auth
// operations matter here; the catalog ones are never reached.
type fakeClient struct {
	mu sync.Mutex

	loginUser models.User
	loginErr  error
	logins    int

	meUser models.User
	meErr  error
	meSeen int

	registerUser models.User
	registerErr  error

	emailExists bool
	emailErr    error
}

func (f *fakeClient) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	panic("unexpected ListBreeds")
}

func (f *fakeClient) SearchBreeds(ctx context.Context, req models.SearchRequest) ([]models.Breed, error) {
	panic("unexpected SearchBreeds")
}

func (f *fakeClient) BreedImages(ctx context.Context, breedID string, limit int) ([]models.BreedImage, error) {
	panic("unexpected BreedImages")
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return f.loginUser, f.loginErr
}

func (f *fakeClient) Me(ctx context.Context) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meSeen++
	return f.meUser, f.meErr
}

func (f *fakeClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	return f.emailExists, f.emailErr
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) meCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meSeen
}

var _ api.Client = (*fakeClient)(nil)
