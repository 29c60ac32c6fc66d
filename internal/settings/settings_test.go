package settings

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jana-studio/taller/internal/rowstore"
)

func newFixture(t *testing.T) (*Service, *rowstore.Memory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })
	store := rowstore.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, cache, logger), store, mr
}

func TestGetWithoutRowReturnsEmptySettings(t *testing.T) {
	svc, _, _ := newFixture(t)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, BrandRowID, got.ID)
	require.Empty(t, got.LogoDataURL)
	require.Empty(t, got.ContactNumber)
}

func TestSaveRefreshesBootstrapCopy(t *testing.T) {
	svc, store, mr := newFixture(t)
	ctx := context.Background()

	err := svc.Save(ctx, BrandSettings{ContactNumber: "5491155550000"})
	require.NoError(t, err)
	require.Equal(t, 1, store.Count(rowstore.TableBrandSettings))

	cached, err := mr.Get("taller:brand_settings")
	require.NoError(t, err)
	require.Contains(t, cached, "5491155550000")
}

func TestBootstrapServesCachedCopyWhenStoreIsDown(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, BrandSettings{ContactNumber: "5491155550000"}))

	// A service pointed at an unconfigured store but the same cache must
	// still serve the device-local copy.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	offline := NewService(rowstore.NewUnconfigured(), svc.cache, logger)

	_, err := offline.Get(ctx)
	require.ErrorIs(t, err, rowstore.ErrNotConfigured)

	cached, err := offline.Bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, "5491155550000", cached.ContactNumber)
}

func TestBootstrapEmptyCacheYieldsDefaults(t *testing.T) {
	svc, _, _ := newFixture(t)

	got, err := svc.Bootstrap(context.Background())
	require.NoError(t, err)
	require.Equal(t, BrandRowID, got.ID)
	require.Empty(t, got.ContactNumber)
}

func TestSetLogoEncodesImage(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	png := []byte("\x89PNG\r\n\x1a\n0123456789")
	got, err := svc.SetLogo(ctx, png)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got.LogoDataURL, "data:image/png;base64,"))
	require.True(t, IsImageDataURL(got.LogoDataURL))
	require.Empty(t, got.BannerDataURL)

	// The banner upload must not clobber the stored logo.
	got, err = svc.SetBanner(ctx, png)
	require.NoError(t, err)
	require.NotEmpty(t, got.LogoDataURL)
	require.True(t, IsImageDataURL(got.BannerDataURL))
}

func TestEncodeDataURLSniffsContentType(t *testing.T) {
	require.True(t, strings.HasPrefix(EncodeDataURL([]byte("\xff\xd8\xff\xe0anything")), "data:image/jpeg"))
	require.False(t, IsImageDataURL(EncodeDataURL([]byte("plain text"))))
}
