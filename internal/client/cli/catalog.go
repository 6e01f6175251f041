package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ovasilenko/breedbook/internal/client/models"
)

const defaultImageLimit = 5

// Breeds prints the cached catalog, fetching it on a cold or expired cache.
func (a *App) Breeds(ctx context.Context) error {
	return a.guarded(ctx, "/breeds", func(ctx context.Context) error {
		breeds, err := a.catalog.Breeds(ctx, false)
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		printBreedList(breeds)
		return nil
	})
}

// Refresh forces a catalog refetch, bypassing the TTL.
func (a *App) Refresh(ctx context.Context) error {
	return a.guarded(ctx, "/breeds", func(ctx context.Context) error {
		breeds, err := a.catalog.Breeds(ctx, true)
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		printlnFn(fmt.Sprintf("Catalog refreshed, %d breeds.", len(breeds)))
		return nil
	})
}

// Search runs one search. Flags understood after the query words:
// page=N, limit=N, order=asc|desc.
func (a *App) Search(ctx context.Context, args []string) error {
	return a.guarded(ctx, "/breeds", func(ctx context.Context) error {
		req := parseSearchArgs(args)
		breeds, err := a.search.Do(ctx, req)
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		if len(breeds) == 0 {
			printlnFn("No breeds matched.")
			return nil
		}
		printBreedList(breeds)
		return nil
	})
}

// Images fetches and prints image URLs for one breed.
// Usage: images <breed-id> [count]
func (a *App) Images(ctx context.Context, args []string) error {
	return a.guarded(ctx, "/breeds", func(ctx context.Context) error {
		if len(args) == 0 {
			printlnFn("Usage: images <breed-id> [count]")
			return nil
		}
		limit := defaultImageLimit
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil {
				limit = n
			}
		}

		images, err := a.images.Breed(ctx, args[0], limit, false)
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		for _, img := range images {
			printlnFn(fmt.Sprintf("%s (%dx%d)", img.URL, img.Width, img.Height))
		}
		return nil
	})
}

// Detail prints the full record of one breed, attaching its image list.
// Usage: show <breed-id>
func (a *App) Detail(ctx context.Context, args []string) error {
	return a.guarded(ctx, "/breeds", func(ctx context.Context) error {
		if len(args) == 0 {
			printlnFn("Usage: show <breed-id>")
			return nil
		}

		breed, err := a.catalog.BreedByID(ctx, args[0])
		if err != nil {
			printlnFn(err.Error())
			return err
		}

		if images, err := a.images.Breed(ctx, breed.ID, defaultImageLimit, false); err == nil {
			breed.Images = images
		} else {
			a.log.Warn(ctx, "fetching breed images", "breed", breed.ID, "error", err)
		}

		printBreedDetail(breed)
		return nil
	})
}

func parseSearchArgs(args []string) models.SearchRequest {
	req := models.SearchRequest{Limit: 10, Page: 1}

	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "page="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "page=")); err == nil {
				req.Page = n
			}
		case strings.HasPrefix(arg, "limit="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "limit=")); err == nil {
				req.Limit = n
			}
		case strings.HasPrefix(arg, "order="):
			if strings.EqualFold(strings.TrimPrefix(arg, "order="), "desc") {
				req.Order = models.OrderDesc
			} else {
				req.Order = models.OrderAsc
			}
		default:
			words = append(words, arg)
		}
	}
	req.Query = strings.Join(words, " ")
	return req
}

func printBreedList(breeds []models.Breed) {
	for _, b := range breeds {
		printlnFn(fmt.Sprintf("%-8s %-24s %s", b.ID, b.Name, b.Origin))
	}
	printlnFn(fmt.Sprintf("%d breeds", len(breeds)))
}

func printBreedDetail(b models.Breed) {
	printlnFn(fmt.Sprintf("%s (%s)", b.Name, b.ID))
	printlnFn("Origin:      " + b.Origin)
	printlnFn("Life span:   " + b.LifeSpan)
	printlnFn("Weight:      " + b.WeightKg() + " kg")
	printlnFn("Temperament: " + strings.Join(b.TemperamentTraits(), ", "))
	printlnFn(b.Description)
	if b.Image != nil {
		printlnFn("Image:       " + b.Image.URL)
	}
	for _, img := range b.Images {
		printlnFn("  " + img.URL)
	}
}
