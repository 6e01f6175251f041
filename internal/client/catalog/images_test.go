package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
)

func someImages() []models.BreedImage {
	return []models.BreedImage{
		{ID: "a", URL: "https://cdn/a.jpg"},
		{ID: "b", URL: "https://cdn/b.jpg"},
		{ID: "c", URL: "https://cdn/c.jpg"},
	}
}

func TestImages_CachedSliceWithoutTransport(t *testing.T) {
	f := &fakeClient{ImagesRet: someImages()}
	i := NewImages(f, testLogger())

	got, err := i.Breed(context.Background(), "beng", 3, false)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 1, f.ImagesCalls)

	got, err = i.Breed(context.Background(), "beng", 2, false)
	require.NoError(t, err)
	require.Equal(t, []models.BreedImage{someImages()[0], someImages()[1]}, got)
	require.Equal(t, 1, f.ImagesCalls, "cached entry must be served without a transport call")
}

func TestImages_FewerCachedThanLimitIsFine(t *testing.T) {
	f := &fakeClient{ImagesRet: someImages()[:1]}
	i := NewImages(f, testLogger())

	_, err := i.Breed(context.Background(), "beng", 1, false)
	require.NoError(t, err)

	got, err := i.Breed(context.Background(), "beng", 5, false)
	require.NoError(t, err)
	require.Len(t, got, 1, "a short cached sequence is returned as-is")
	require.Equal(t, 1, f.ImagesCalls)
}

func TestImages_LimitDefaultsToOne(t *testing.T) {
	f := &fakeClient{ImagesRet: someImages()}
	i := NewImages(f, testLogger())

	got, err := i.Breed(context.Background(), "beng", 0, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, f.LastImagesLimit)
}

func TestImages_ForceRefreshOverwrites(t *testing.T) {
	f := &fakeClient{ImagesRet: someImages()[:2]}
	i := NewImages(f, testLogger())

	_, err := i.Breed(context.Background(), "beng", 2, false)
	require.NoError(t, err)

	f.mu.Lock()
	f.ImagesRet = someImages()
	f.mu.Unlock()

	got, err := i.Breed(context.Background(), "beng", 3, true)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 2, f.ImagesCalls)

	// the new full sequence replaced the old entry
	got, err = i.Breed(context.Background(), "beng", 3, false)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 2, f.ImagesCalls)
}

func TestImages_CacheKeyIsBreedID(t *testing.T) {
	f := &fakeClient{ImagesRet: someImages()}
	i := NewImages(f, testLogger())

	_, err := i.Breed(context.Background(), "beng", 1, false)
	require.NoError(t, err)
	_, err = i.Breed(context.Background(), "siam", 1, false)
	require.NoError(t, err)
	require.Equal(t, 2, f.ImagesCalls, "different breeds are independent entries")
}

func TestImages_FailureLeavesCacheUnchanged(t *testing.T) {
	f := &fakeClient{ImagesErr: api.ErrUnavailable}
	i := NewImages(f, testLogger())

	_, err := i.Breed(context.Background(), "beng", 1, false)
	require.Error(t, err)
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.Contains(t, err.Error(), "No se pudieron cargar las imágenes")

	f.mu.Lock()
	f.ImagesErr = nil
	f.mu.Unlock()

	_, err = i.Breed(context.Background(), "beng", 1, false)
	require.NoError(t, err)
	require.Equal(t, 2, f.ImagesCalls, "nothing was cached for the failed attempt")
}

func TestImages_Clear(t *testing.T) {
	f := &fakeClient{ImagesRet: someImages()}
	i := NewImages(f, testLogger())

	_, err := i.Breed(context.Background(), "beng", 1, false)
	require.NoError(t, err)
	_, err = i.Breed(context.Background(), "siam", 1, false)
	require.NoError(t, err)

	i.Clear("beng")
	_, err = i.Breed(context.Background(), "beng", 1, false)
	require.NoError(t, err)
	require.Equal(t, 3, f.ImagesCalls)
	_, err = i.Breed(context.Background(), "siam", 1, false)
	require.NoError(t, err)
	require.Equal(t, 3, f.ImagesCalls, "other entries survive a single-key clear")

	i.Clear()
	_, err = i.Breed(context.Background(), "siam", 1, false)
	require.NoError(t, err)
	require.Equal(t, 4, f.ImagesCalls, "a full clear empties the table")
}
