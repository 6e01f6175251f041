// Package catalog holds the client-side data-access layer for the breeds
// catalog: a TTL-bounded cache of the full list, a per-breed image cache,
// and the search orchestrator. Each cache owns its state exclusively and
// is safe for concurrent use.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/logging"
)

// User-facing failure messages, kept verbatim from the product's Spanish
// copy. The original cause stays wrapped underneath for logging.
const (
	msgBreedsFailed = "Error al obtener razas"
	msgImagesFailed = "No se pudieron cargar las imágenes"
	msgSearchFailed = "Error en búsqueda"
)

// ErrBreedNotFound is returned by BreedByID for unknown ids.
var ErrBreedNotFound = errors.New("breed not found")

// flight is one shared fetch attempt. Waiters block on done; breeds/err
// must only be read after done is closed.
type flight struct {
	done   chan struct{}
	gen    uint64
	breeds []models.Breed
	err    error
}

// Catalog caches the full breeds list. At most one fetch is in flight at a
// time; concurrent callers join it and share its single result. A cached
// value older than ttl is treated as absent.
type Catalog struct {
	api api.Client
	ttl time.Duration
	log logging.Logger

	mu        sync.Mutex
	breeds    []models.Breed
	fetchedAt time.Time
	pending   *flight
	gen       uint64

	now func() time.Time // test seam
}

func NewCatalog(c api.Client, ttl time.Duration, log logging.Logger) *Catalog {
	return &Catalog{api: c, ttl: ttl, log: log, now: time.Now}
}

// Breeds returns the catalog list.
//
// A fresh cached value is returned as-is unless forceRefresh is set. When a
// fetch is already in flight, the caller joins it regardless of
// forceRefresh — the in-flight result is shared, never duplicated.
// Otherwise exactly one remote fetch is issued. Failed fetches are never
// cached; the next call retries.
func (c *Catalog) Breeds(ctx context.Context, forceRefresh bool) ([]models.Breed, error) {
	c.mu.Lock()
	if f := c.pending; f != nil {
		c.mu.Unlock()
		return c.await(ctx, f)
	}
	if c.breeds != nil && !forceRefresh && !c.expiredLocked() {
		out := copyBreeds(c.breeds)
		c.mu.Unlock()
		return out, nil
	}
	f := &flight{done: make(chan struct{}), gen: c.gen}
	c.pending = f
	c.mu.Unlock()

	go c.fetch(ctx, f)
	return c.await(ctx, f)
}

// Peek returns the cached list without ever triggering a fetch. ok is false
// when the cache is empty or expired.
func (c *Catalog) Peek() ([]models.Breed, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.breeds == nil || c.expiredLocked() {
		return nil, false
	}
	return copyBreeds(c.breeds), true
}

// BreedByID looks a single breed up in the cached list, fetching the list
// first if needed. There is no dedicated remote endpoint for this.
func (c *Catalog) BreedByID(ctx context.Context, id string) (models.Breed, error) {
	breeds, err := c.Breeds(ctx, false)
	if err != nil {
		return models.Breed{}, err
	}
	for _, b := range breeds {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Breed{}, fmt.Errorf("%w: %s", ErrBreedNotFound, id)
}

// Clear drops the cached list and its timestamp; the next Breeds call
// refetches regardless of forceRefresh. A fetch already in flight still
// resolves for its waiters but no longer populates the cache.
func (c *Catalog) Clear() {
	c.mu.Lock()
	c.breeds = nil
	c.fetchedAt = time.Time{}
	c.pending = nil
	c.gen++
	c.mu.Unlock()
}

func (c *Catalog) fetch(ctx context.Context, f *flight) {
	// A joining caller must not be able to cancel the shared fetch for
	// everyone else. The API client bounds the request with its own timeout.
	breeds, err := c.api.ListBreeds(context.WithoutCancel(ctx))

	c.mu.Lock()
	if err != nil {
		f.err = fmt.Errorf("%s: %w", msgBreedsFailed, err)
	} else {
		f.breeds = breeds
		if c.gen == f.gen {
			c.breeds = breeds
			c.fetchedAt = c.now()
		}
	}
	if c.pending == f {
		c.pending = nil
	}
	c.mu.Unlock()
	close(f.done)

	if err != nil {
		c.log.Warn(ctx, "catalog fetch failed", "error", err)
	} else {
		c.log.Debug(ctx, "catalog fetched", "breeds", len(breeds))
	}
}

func (c *Catalog) await(ctx context.Context, f *flight) ([]models.Breed, error) {
	select {
	case <-f.done:
		if f.err != nil {
			return nil, f.err
		}
		return copyBreeds(f.breeds), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Catalog) expiredLocked() bool {
	return c.now().Sub(c.fetchedAt) > c.ttl
}

func copyBreeds(breeds []models.Breed) []models.Breed {
	return append([]models.Breed(nil), breeds...)
}
