package handlers_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/keicha2025/keicha-shop/internal/models"
)

// In-memory fakes so handler tests run the real services end to end without
// Redis or the sheets.

type memSnapshotRepo struct {
	snapshots map[string]cart.Snapshot
}

func newMemSnapshotRepo() *memSnapshotRepo {
	return &memSnapshotRepo{snapshots: make(map[string]cart.Snapshot)}
}

func (m *memSnapshotRepo) Load(ctx context.Context, cartID string) (*cart.Snapshot, error) {
	snap, ok := m.snapshots[cartID]
	if !ok {
		return nil, nil
	}

	return &snap, nil
}

func (m *memSnapshotRepo) Save(ctx context.Context, cartID string, snap cart.Snapshot) error {
	m.snapshots[cartID] = snap

	return nil
}

func (m *memSnapshotRepo) Delete(ctx context.Context, cartID string) error {
	delete(m.snapshots, cartID)

	return nil
}

type memMemberRepo struct {
	members map[string]models.Member
}

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{members: make(map[string]models.Member)}
}

func (m *memMemberRepo) GetByPhone(ctx context.Context, phone string) (*models.Member, error) {
	member, ok := m.members[phone]
	if !ok {
		return nil, nil
	}

	return &member, nil
}

func (m *memMemberRepo) Save(ctx context.Context, member *models.Member) error {
	m.members[member.Phone] = *member

	return nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) CheckLoginRateLimit(ctx context.Context, phone string) (bool, int, int, error) {
	return true, 5, 0, nil
}

type throttledLimiter struct{ retryAfter int }

func (l throttledLimiter) CheckLoginRateLimit(ctx context.Context, phone string) (bool, int, int, error) {
	return false, 0, l.retryAfter, nil
}

type staticQuoter struct {
	rules []cart.ShippingRule
}

func (q staticQuoter) ShippingRules(ctx context.Context) (*cart.RateTable, error) {
	return cart.NewRateTable(q.rules), nil
}

type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (m *memCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.entries[key] = data

	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)

	return nil
}

func (m *memCache) Close() error {
	return nil
}

type staticLoader struct {
	catalog  *models.Catalog
	settings *models.Settings
	rules    []cart.ShippingRule
	err      error
}

func (l staticLoader) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	return l.catalog, l.err
}

func (l staticLoader) LoadSettings(ctx context.Context) (*models.Settings, error) {
	return l.settings, l.err
}

func (l staticLoader) LoadShippingRules(ctx context.Context) ([]cart.ShippingRule, error) {
	return l.rules, l.err
}

func (l staticLoader) LoadProductsJSON(ctx context.Context) ([]models.Product, error) {
	return nil, l.err
}
