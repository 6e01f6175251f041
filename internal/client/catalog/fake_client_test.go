package catalog

import (
	"context"
	"io"
	"sync"

	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewDefault(io.Discard, "error")
}

// fakeClient implements api.Client for unit tests. Gates let a test hold a
// fetch open while concurrent callers pile up; hooks let it vary behavior
// per call.
type fakeClient struct {
	mu sync.Mutex

	ListCalls int
	ListRet   []models.Breed
	ListErr   error
	ListGate  chan struct{} // when non-nil, ListBreeds blocks until closed

	SearchCalls   int
	SearchErr     error
	SearchHook    func(req models.SearchRequest) []models.Breed
	LastSearchReq models.SearchRequest

	ImagesCalls     int
	ImagesRet       []models.BreedImage
	ImagesErr       error
	LastImagesID    string
	LastImagesLimit int
}

func (f *fakeClient) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	f.mu.Lock()
	f.ListCalls++
	gate := f.ListGate
	ret := append([]models.Breed(nil), f.ListRet...)
	err := f.ListErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *fakeClient) SearchBreeds(ctx context.Context, req models.SearchRequest) ([]models.Breed, error) {
	f.mu.Lock()
	f.SearchCalls++
	f.LastSearchReq = req
	hook := f.SearchHook
	err := f.SearchErr
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if hook != nil {
		return hook(req), nil
	}
	return nil, nil
}

func (f *fakeClient) BreedImages(ctx context.Context, breedID string, limit int) ([]models.BreedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ImagesCalls++
	f.LastImagesID = breedID
	f.LastImagesLimit = limit
	if f.ImagesErr != nil {
		return nil, f.ImagesErr
	}
	ret := f.ImagesRet
	if limit < len(ret) {
		ret = ret[:limit]
	}
	return append([]models.BreedImage(nil), ret...), nil
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeClient) Me(ctx context.Context) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls
}

func (f *fakeClient) searchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SearchCalls
}
