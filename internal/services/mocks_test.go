package service_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/keicha2025/keicha-shop/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockSnapshotRepo struct {
	mock.Mock
}

func (m *mockSnapshotRepo) Load(ctx context.Context, cartID string) (*cart.Snapshot, error) {
	args := m.Called(ctx, cartID)

	snap, _ := args.Get(0).(*cart.Snapshot)

	return snap, args.Error(1)
}

func (m *mockSnapshotRepo) Save(ctx context.Context, cartID string, snap cart.Snapshot) error {
	args := m.Called(ctx, cartID, snap)

	return args.Error(0)
}

func (m *mockSnapshotRepo) Delete(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

type mockQuoter struct {
	mock.Mock
}

func (m *mockQuoter) ShippingRules(ctx context.Context) (*cart.RateTable, error) {
	args := m.Called(ctx)

	table, _ := args.Get(0).(*cart.RateTable)

	return table, args.Error(1)
}

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) GetByPhone(ctx context.Context, phone string) (*models.Member, error) {
	args := m.Called(ctx, phone)

	member, _ := args.Get(0).(*models.Member)

	return member, args.Error(1)
}

func (m *mockMemberRepo) Save(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

type mockRateLimiter struct {
	mock.Mock
}

func (m *mockRateLimiter) CheckLoginRateLimit(ctx context.Context, phone string) (bool, int, int, error) {
	args := m.Called(ctx, phone)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	args := m.Called(ctx)

	catalog, _ := args.Get(0).(*models.Catalog)

	return catalog, args.Error(1)
}

func (m *mockLoader) LoadSettings(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)

	settings, _ := args.Get(0).(*models.Settings)

	return settings, args.Error(1)
}

func (m *mockLoader) LoadShippingRules(ctx context.Context) ([]cart.ShippingRule, error) {
	args := m.Called(ctx)

	rules, _ := args.Get(0).([]cart.ShippingRule)

	return rules, args.Error(1)
}

func (m *mockLoader) LoadProductsJSON(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)

	products, _ := args.Get(0).([]models.Product)

	return products, args.Error(1)
}

// mockCache is an in-memory Cache: the catalog service tests care about
// hit/miss behavior, not Redis wiring.
type mockCache struct {
	entries map[string][]byte
	setErr  error
	getErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}

	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (m *mockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.entries[key] = data

	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)

	return nil
}

func (m *mockCache) Close() error {
	return nil
}
