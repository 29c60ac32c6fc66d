package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jana-studio/taller/internal/rowstore"
)

const (
	bootstrapKey = "taller:brand_settings"
	bootstrapTTL = 30 * 24 * time.Hour
)

type Service struct {
	store  rowstore.Store
	cache  *redis.Client
	logger *slog.Logger
}

func NewService(store rowstore.Store, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

// Get returns the authoritative brand settings from the row store and
// refreshes the bootstrap copy. A table without the singleton row yields
// empty settings, not an error.
func (s *Service) Get(ctx context.Context) (*BrandSettings, error) {
	rows, err := s.store.FetchAll(ctx, rowstore.TableBrandSettings)
	if err != nil {
		return nil, err
	}

	settings := BrandSettings{ID: BrandRowID}
	decoded, err := rowstore.Decode[BrandSettings](rowstore.TableBrandSettings, rows)
	if err != nil {
		return nil, err
	}
	for _, row := range decoded {
		if row.ID == BrandRowID {
			settings = row
			break
		}
	}

	s.refreshBootstrap(ctx, settings)
	return &settings, nil
}

// Bootstrap returns the device-local copy, for use before the first
// successful fetch only. It is never written back to the row store.
func (s *Service) Bootstrap(ctx context.Context) (*BrandSettings, error) {
	if s.cache == nil {
		return &BrandSettings{ID: BrandRowID}, nil
	}
	raw, err := s.cache.Get(ctx, bootstrapKey).Result()
	if errors.Is(err, redis.Nil) {
		return &BrandSettings{ID: BrandRowID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read bootstrap copy: %w", err)
	}
	var settings BrandSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("settings: decode bootstrap copy: %w", err)
	}
	return &settings, nil
}

// Save persists the settings row and refreshes the bootstrap copy.
func (s *Service) Save(ctx context.Context, settings BrandSettings) error {
	settings.ID = BrandRowID
	if err := s.store.Upsert(ctx, rowstore.TableBrandSettings, settings); err != nil {
		return err
	}
	s.refreshBootstrap(ctx, settings)
	return nil
}

// SetLogo encodes an uploaded image and stores it on the brand row.
func (s *Service) SetLogo(ctx context.Context, image []byte) (*BrandSettings, error) {
	return s.setImage(ctx, image, func(b *BrandSettings, url string) { b.LogoDataURL = url })
}

// SetBanner encodes an uploaded image and stores it on the brand row.
func (s *Service) SetBanner(ctx context.Context, image []byte) (*BrandSettings, error) {
	return s.setImage(ctx, image, func(b *BrandSettings, url string) { b.BannerDataURL = url })
}

func (s *Service) setImage(ctx context.Context, image []byte, assign func(*BrandSettings, string)) (*BrandSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	assign(current, EncodeDataURL(image))
	if err := s.Save(ctx, *current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) refreshBootstrap(ctx context.Context, settings BrandSettings) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, bootstrapKey, data, bootstrapTTL).Err(); err != nil {
		s.logger.Warn("refresh settings bootstrap copy", slog.Any("error", err))
	}
}
