package service

import (
	"context"
	"log/slog"

	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/cache"
	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/keicha2025/keicha-shop/internal/config"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/models"
)

// CatalogLoader is the sheet-fetching side of the catalog, satisfied by
// catalog.Loader.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (*models.Catalog, error)
	LoadSettings(ctx context.Context) (*models.Settings, error)
	LoadShippingRules(ctx context.Context) ([]cart.ShippingRule, error)
	LoadProductsJSON(ctx context.Context) ([]models.Product, error)
}

// CatalogService serves sheet data through the cache so shoppers don't wait
// on Google for every page.
type CatalogService struct {
	loader CatalogLoader
	cache  cache.Cache
	cfg    config.Sheets
}

func NewCatalogService(loader CatalogLoader, c cache.Cache, cfg config.Sheets) *CatalogService {
	return &CatalogService{loader: loader, cache: c, cfg: cfg}
}

// GetCatalog returns the cached catalog, loading it from the sheets on a
// miss. When the CSV path fails the Apps Script endpoint is tried as a
// fallback before giving up.
func (s *CatalogService) GetCatalog(ctx context.Context) (*models.Catalog, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CatalogKeyPrefix, "all")

	var cached models.Catalog

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Catalog cache read failed", slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	catalog, err := s.loader.LoadCatalog(ctx)
	if err != nil {
		logger.Warn("CSV catalog load failed, trying Apps Script endpoint", slog.Any("error", err))

		products, jsonErr := s.loader.LoadProductsJSON(ctx)
		if jsonErr != nil || len(products) == 0 {
			return nil, errors.UpstreamError("Catalog is unavailable").WithError(err)
		}

		catalog = &models.Catalog{Products: products}
	}

	if err := s.cache.Set(ctx, key, catalog, s.cfg.CatalogCacheTTL); err != nil {
		logger.Warn("Catalog cache write failed", slog.Any("error", err))
	}

	return catalog, nil
}

// GetSettings returns the cached site settings.
func (s *CatalogService) GetSettings(ctx context.Context) (*models.Settings, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.SettingsKeyPrefix, "site")

	var cached models.Settings

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Settings cache read failed", slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	settings, err := s.loader.LoadSettings(ctx)
	if err != nil {
		return nil, errors.UpstreamError("Site settings are unavailable").WithError(err)
	}

	if err := s.cache.Set(ctx, key, settings, s.cfg.CatalogCacheTTL); err != nil {
		logger.Warn("Settings cache write failed", slog.Any("error", err))
	}

	return settings, nil
}

// ShippingRules returns the rate table built from the cached tier sheet. An
// unconfigured sheet yields an empty table, which quotes zero fees.
func (s *CatalogService) ShippingRules(ctx context.Context) (*cart.RateTable, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ShippingKeyPrefix, "rules")

	var cached []cart.ShippingRule

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Shipping rules cache read failed", slog.Any("error", err))
	}

	if found {
		return cart.NewRateTable(cached), nil
	}

	rules, err := s.loader.LoadShippingRules(ctx)
	if err != nil {
		return nil, errors.UpstreamError("Shipping rates are unavailable").WithError(err)
	}

	if err := s.cache.Set(ctx, key, rules, s.cfg.CatalogCacheTTL); err != nil {
		logger.Warn("Shipping rules cache write failed", slog.Any("error", err))
	}

	return cart.NewRateTable(rules), nil
}

// RefreshCatalog busts the cached sheet data and reloads the catalog, for
// the admin "reload" action after editing the sheets.
func (s *CatalogService) RefreshCatalog(ctx context.Context) (*models.Catalog, error) {
	logger := middleware.LoggerFromContext(ctx)

	for _, key := range []string{
		cache.Key(cache.CatalogKeyPrefix, "all"),
		cache.Key(cache.SettingsKeyPrefix, "site"),
		cache.Key(cache.ShippingKeyPrefix, "rules"),
	} {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Warn("Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return s.GetCatalog(ctx)
}
