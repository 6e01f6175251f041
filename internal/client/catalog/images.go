package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/logging"
)

// Images caches image lists per breed id. The cache key is the breed id
// alone; the limit only affects how many cached items are returned, not
// cache identity. Concurrent fetches for the same breed are collapsed into
// one remote call.
type Images struct {
	api api.Client
	log logging.Logger

	mu    sync.Mutex
	table map[string][]models.BreedImage

	group singleflight.Group
}

func NewImages(c api.Client, log logging.Logger) *Images {
	return &Images{api: c, log: log, table: make(map[string][]models.BreedImage)}
}

// Breed returns up to limit images for breedID. A cached entry is served
// synchronously (possibly with fewer than limit items) unless forceRefresh
// is set. On a miss the full fetched sequence is stored, overwriting any
// prior entry; failed fetches store nothing.
func (i *Images) Breed(ctx context.Context, breedID string, limit int, forceRefresh bool) ([]models.BreedImage, error) {
	if limit <= 0 {
		limit = 1
	}

	if !forceRefresh {
		i.mu.Lock()
		if cached, ok := i.table[breedID]; ok {
			out := copyImages(firstN(cached, limit))
			i.mu.Unlock()
			return out, nil
		}
		i.mu.Unlock()
	}

	ch := i.group.DoChan(breedID, func() (any, error) {
		// Detached from the caller so a shared fetch survives one waiter's
		// cancellation; the API client bounds it with its own timeout.
		images, err := i.api.BreedImages(context.WithoutCancel(ctx), breedID, limit)
		if err != nil {
			i.log.Warn(ctx, "image fetch failed", "breed", breedID, "error", err)
			return nil, fmt.Errorf("%s: %w", msgImagesFailed, err)
		}

		i.mu.Lock()
		i.table[breedID] = images
		i.mu.Unlock()

		i.log.Debug(ctx, "images fetched", "breed", breedID, "count", len(images))
		return images, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyImages(firstN(res.Val.([]models.BreedImage), limit)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Clear removes the entries for the given breed ids, or the entire table
// when none are given.
func (i *Images) Clear(breedIDs ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(breedIDs) == 0 {
		i.table = make(map[string][]models.BreedImage)
		return
	}
	for _, id := range breedIDs {
		delete(i.table, id)
	}
}

func firstN(images []models.BreedImage, n int) []models.BreedImage {
	if n > len(images) {
		n = len(images)
	}
	return images[:n]
}

func copyImages(images []models.BreedImage) []models.BreedImage {
	return append([]models.BreedImage(nil), images...)
}
