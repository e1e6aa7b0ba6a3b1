package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/keicha2025/keicha-shop/internal/config"
	"github.com/keicha2025/keicha-shop/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// Loader fetches the published sheets over HTTP. It has no retry policy:
// the storefront tolerates a missed refresh and the caller caches results.
type Loader struct {
	client    *http.Client
	cfg       config.Sheets
	sanitizer *bluemonday.Policy
}

func NewLoader(cfg config.Sheets) *Loader {
	return &Loader{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		cfg:       cfg,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// fetch downloads one sheet with the cache-busting the published CSV
// endpoints need: a no-store request plus a throwaway query parameter, since
// Google's CDN otherwise serves stale exports for minutes.
func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http") {
		return "", fmt.Errorf("invalid or missing sheet url: %q", url)
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s_t=%d", url, sep, time.Now().Unix()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build sheet request: %w", err)
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sheet fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet body: %w", err)
	}

	return string(body), nil
}

// LoadCatalog fetches the master sheet and every available brand's product
// sheet. A brand whose product sheet fails to load is skipped with a warning
// rather than failing the whole catalog, matching how the storefront always
// degraded.
func (l *Loader) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	masterText, err := l.fetch(ctx, l.cfg.MasterCSVURL)
	if err != nil {
		return nil, fmt.Errorf("master sheet: %w", err)
	}

	brands, err := ParseBrands(masterText)
	if err != nil {
		return nil, fmt.Errorf("master sheet: %w", err)
	}

	catalog := &models.Catalog{Brands: brands}

	for _, brand := range brands {
		if !brand.Available() || brand.ProductCSVURL == "" {
			continue
		}

		productText, err := l.fetch(ctx, brand.ProductCSVURL)
		if err != nil {
			slog.Warn("Skipping brand, product sheet fetch failed",
				slog.String("brand", brand.Key), slog.String("error", err.Error()))

			continue
		}

		products, err := ParseProducts(productText)
		if err != nil {
			slog.Warn("Skipping brand, product sheet malformed",
				slog.String("brand", brand.Key), slog.String("error", err.Error()))

			continue
		}

		for i := range products {
			if products[i].BrandKey == "" {
				products[i].BrandKey = brand.Key
			}

			products[i].BrandName = brand.Name
		}

		catalog.Products = append(catalog.Products, products...)
	}

	return catalog, nil
}

// LoadSettings fetches and sanitizes the site-wide settings sheet. The notes
// value historically carried literal "\n" sequences for line breaks; they
// become <br> before sanitization.
func (l *Loader) LoadSettings(ctx context.Context) (*models.Settings, error) {
	if l.cfg.SettingsCSVURL == "" {
		return &models.Settings{}, nil
	}

	text, err := l.fetch(ctx, l.cfg.SettingsCSVURL)
	if err != nil {
		return nil, fmt.Errorf("settings sheet: %w", err)
	}

	raw, err := ParseSettings(text)
	if err != nil {
		return nil, fmt.Errorf("settings sheet: %w", err)
	}

	notes := strings.ReplaceAll(raw["general_notes"], `\n`, "<br>")
	notes = strings.ReplaceAll(notes, "\n", "<br>")

	return &models.Settings{
		Announcement:  raw["announcement"],
		GeneralNotes:  l.sanitizer.Sanitize(notes),
		ContactLineID: raw["contact_line_id"],
		ContactEmail:  raw["contact_email"],
	}, nil
}

// LoadShippingRules fetches the rate-tier sheet. No sheet configured means
// no rules, which the cart engine treats as free shipping everywhere; the
// caller decides how loudly to complain.
func (l *Loader) LoadShippingRules(ctx context.Context) ([]cart.ShippingRule, error) {
	if l.cfg.ShippingCSVURL == "" {
		return nil, nil
	}

	text, err := l.fetch(ctx, l.cfg.ShippingCSVURL)
	if err != nil {
		return nil, fmt.Errorf("shipping sheet: %w", err)
	}

	rules, err := ParseShippingRules(text)
	if err != nil {
		return nil, fmt.Errorf("shipping sheet: %w", err)
	}

	return rules, nil
}

// appsScriptPayload mirrors the Apps Script endpoint's JSON. The endpoint
// serializes raw sheet cells, so numeric fields arrive as numbers, numeric
// strings or empty strings; they are coerced with the same defaults as the
// CSV path.
type appsScriptPayload struct {
	Products []struct {
		ProductID   string          `json:"product_id"`
		ProductName string          `json:"product_name"`
		Price       json.RawMessage `json:"price"`
		PriceMulti  json.RawMessage `json:"price_multi"`
		Stock       json.RawMessage `json:"stock"`
		MaxLimit    json.RawMessage `json:"max_limit"`
		Status      string          `json:"status"`
		Category    string          `json:"category"`
		Subcategory string          `json:"subcategory"`
		ImageURL    string          `json:"image_url"`
	} `json:"products"`
}

// LoadProductsJSON fetches the legacy Apps Script endpoint, the JSON twin of
// the product sheets.
func (l *Loader) LoadProductsJSON(ctx context.Context) ([]models.Product, error) {
	if l.cfg.AppsScriptURL == "" {
		return nil, nil
	}

	body, err := l.fetch(ctx, l.cfg.AppsScriptURL)
	if err != nil {
		return nil, fmt.Errorf("apps script endpoint: %w", err)
	}

	var payload appsScriptPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("apps script endpoint: malformed json: %w", err)
	}

	products := make([]models.Product, 0, len(payload.Products))

	for _, raw := range payload.Products {
		if raw.ProductName == "" {
			continue
		}

		p := models.Product{
			ID:             raw.ProductID,
			Name:           raw.ProductName,
			UnitPrice:      numberDefault(raw.Price, 0),
			MultiUnitPrice: numberDefault(raw.PriceMulti, 0),
			Status:         raw.Status,
			Category:       raw.Category,
			BrandKey:       raw.Subcategory,
			MaxPerCustomer: numberDefault(raw.MaxLimit, cart.DefaultMaxPerCustomer),
			Stock:          numberDefault(raw.Stock, DefaultStock),
			ImageURL:       raw.ImageURL,
		}

		if p.ID == "" {
			p.ID = slugify(p.Name)
		}

		products = append(products, p)
	}

	return products, nil
}

func numberDefault(raw json.RawMessage, def int) int {
	return atoiDefault(strings.Trim(string(raw), `"`), def)
}
