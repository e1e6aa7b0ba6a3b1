// Package catalog loads the storefront dataset from published Google Sheets
// CSV exports (or the legacy Apps Script JSON endpoint) and parses it into
// validated records. All numeric coercion and defaulting happens here, once,
// so downstream components never see a raw sheet cell.
package catalog

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/keicha2025/keicha-shop/internal/models"
)

const (
	// DefaultStock is assumed when a product row leaves the stock cell
	// blank; the sheet only fills it in for limited runs.
	DefaultStock = 999
)

// sheet is a parsed CSV with header-indexed access to each row.
type sheet struct {
	index map[string]int
	rows  [][]string
}

// parseSheet reads CSV text and verifies the required header columns are
// present. Headers are cleaned of BOM, quotes and padding the same way the
// sheets have always needed.
func parseSheet(text string, required []string) (*sheet, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed csv: %w", err)
	}

	if len(records) < 2 {
		return &sheet{index: map[string]int{}}, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[cleanHeader(h)] = i
	}

	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header is missing required column %q", col)
		}
	}

	return &sheet{index: index, rows: records[1:]}, nil
}

func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.TrimPrefix(h, "\ufeff")

	return strings.Trim(h, `"'`)
}

// cell returns the named column of a row, trimmed, or "" when the row is
// short or the column unknown.
func (s *sheet) cell(row []string, column string) string {
	i, ok := s.index[column]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// atoiDefault coerces a sheet cell to an int. Thousands separators are
// stripped; blank or unparseable cells yield the named default rather than
// an error.
func atoiDefault(value string, def int) int {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	return n
}

// ParseBrands parses the master sheet: key,name,status,product_csv_url.
func ParseBrands(text string) ([]models.Brand, error) {
	s, err := parseSheet(text, []string{"key", "name", "status", "product_csv_url"})
	if err != nil {
		return nil, err
	}

	brands := make([]models.Brand, 0, len(s.rows))

	for _, row := range s.rows {
		key := s.cell(row, "key")
		if key == "" {
			continue
		}

		brands = append(brands, models.Brand{
			Key:           key,
			Name:          s.cell(row, "name"),
			Status:        s.cell(row, "status"),
			ProductCSVURL: s.cell(row, "product_csv_url"),
		})
	}

	return brands, nil
}

// ParseProducts parses one brand's product sheet. Rows flagged hidden are
// dropped here; everything else reaches the storefront, sold out or not.
func ParseProducts(text string) ([]models.Product, error) {
	s, err := parseSheet(text, []string{"product_name", "price", "price_multi", "status"})
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(s.rows))

	for _, row := range s.rows {
		name := s.cell(row, "product_name")
		if name == "" {
			continue
		}

		if s.cell(row, "status") == "hidden" || strings.EqualFold(s.cell(row, "hidden"), "TRUE") {
			continue
		}

		p := models.Product{
			ID:               s.cell(row, "product_id"),
			Name:             name,
			UnitPrice:        atoiDefault(s.cell(row, "price"), 0),
			MultiUnitPrice:   atoiDefault(s.cell(row, "price_multi"), 0),
			Status:           s.cell(row, "status"),
			Category:         s.cell(row, "category"),
			BrandKey:         s.cell(row, "subcategory"),
			MaxPerCustomer:   atoiDefault(s.cell(row, "max_limit"), cart.DefaultMaxPerCustomer),
			Stock:            atoiDefault(s.cell(row, "stock"), DefaultStock),
			ImageURL:         s.cell(row, "image_url"),
			AvailabilityNote: s.cell(row, "availability_note"),
			Note:             s.cell(row, "note"),
			Tag:              s.cell(row, "tag"),
		}

		if specs := s.cell(row, "specs"); specs != "" {
			for _, part := range strings.Split(specs, "|") {
				if part = strings.TrimSpace(part); part != "" {
					p.Specs = append(p.Specs, part)
				}
			}
		}

		if p.ID == "" {
			p.ID = slugify(name)
		}

		products = append(products, p)
	}

	return products, nil
}

// ParseSettings parses the site-wide key/value sheet into a plain map; the
// caller picks out and sanitizes the keys it serves.
func ParseSettings(text string) (map[string]string, error) {
	s, err := parseSheet(text, []string{"key", "value"})
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(s.rows))

	for _, row := range s.rows {
		if key := s.cell(row, "key"); key != "" {
			settings[key] = s.cell(row, "value")
		}
	}

	return settings, nil
}

// ParseShippingRules parses the rate-tier sheet:
// method,category,t1,f1,t2,f2,t3,f3.
func ParseShippingRules(text string) ([]cart.ShippingRule, error) {
	s, err := parseSheet(text, []string{"method", "category", "t1", "f1", "t2", "f2", "t3", "f3"})
	if err != nil {
		return nil, err
	}

	rules := make([]cart.ShippingRule, 0, len(s.rows))

	for _, row := range s.rows {
		method := s.cell(row, "method")
		if method == "" {
			continue
		}

		rules = append(rules, cart.ShippingRule{
			Method:   method,
			Category: s.cell(row, "category"),
			T1:       atoiDefault(s.cell(row, "t1"), 0),
			F1:       atoiDefault(s.cell(row, "f1"), 0),
			T2:       atoiDefault(s.cell(row, "t2"), 0),
			F2:       atoiDefault(s.cell(row, "f2"), 0),
			T3:       atoiDefault(s.cell(row, "t3"), 0),
			F3:       atoiDefault(s.cell(row, "f3"), 0),
		})
	}

	return rules, nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return r
		}
	}, slug)

	return slug
}
