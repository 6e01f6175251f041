// Package api implements the REST client for the catalog and auth APIs.
// It owns the raw wire representations and the transforms that turn them
// into models types, so every consumer sees identical defaults.
package api

import (
	"context"

	"github.com/ovasilenko/breedbook/internal/client/models"
)

// Client defines the remote operations used by the caches, the search
// orchestrator and the session manager.
//
// Contract:
//   - ListBreeds: fetch the full catalog list.
//   - SearchBreeds: server-side search with query/limit/page/order.
//   - BreedImages: fetch up to limit images for one breed.
//   - Register: create a new account; does not authenticate.
//   - Login: authenticate; the returned user carries the bearer credential.
//   - Me: fetch the current user for the active credential.
//   - CheckEmail: probe whether an email is still available.
//   - Close: release underlying transport resources.
//
// All methods must honor context cancellation/timeouts. Failures map to the
// package sentinels where possible (ErrUnauthorized, ErrUnavailable).
type Client interface {
	ListBreeds(ctx context.Context) ([]models.Breed, error)
	SearchBreeds(ctx context.Context, req models.SearchRequest) ([]models.Breed, error)
	BreedImages(ctx context.Context, breedID string, limit int) ([]models.BreedImage, error)
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Me(ctx context.Context) (models.User, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	Close() error
}
