package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/metrics"
	"github.com/keicha2025/keicha-shop/internal/models"
	repository "github.com/keicha2025/keicha-shop/internal/repositories"
)

// ShippingQuoter supplies the current rate table, satisfied by
// CatalogService.
type ShippingQuoter interface {
	ShippingRules(ctx context.Context) (*cart.RateTable, error)
}

// CartService runs the cart engine against persisted snapshots: every
// mutation loads the snapshot, applies the change in memory and writes the
// snapshot back whole.
type CartService struct {
	snapshots repository.SnapshotRepository
	quoter    ShippingQuoter
}

func NewCartService(snapshots repository.SnapshotRepository, quoter ShippingQuoter) *CartService {
	return &CartService{snapshots: snapshots, quoter: quoter}
}

func (s *CartService) CreateCart(ctx context.Context) (*models.CartView, error) {
	cartID := uuid.NewString()
	c := cart.New()

	if err := s.snapshots.Save(ctx, cartID, c.Snapshot()); err != nil {
		return nil, errors.StorageError("Failed to create cart").WithError(err)
	}

	return viewFromCart(cartID, c), nil
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.CartView, error) {
	c, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, errors.NotFoundError("Cart not found")
	}

	return viewFromCart(cartID, c), nil
}

// AddItem puts one unit into the cart, creating the cart on first use. An
// add refused by the purchase ceiling surfaces as a conflict.
func (s *CartService) AddItem(ctx context.Context, cartID string, req *models.AddItemRequest) (*models.CartView, error) {
	c, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = cart.New()
	}

	line := cart.Line{
		ItemID:         req.ItemID,
		Name:           req.Name,
		UnitPrice:      req.UnitPrice,
		MultiUnitPrice: req.MultiUnitPrice,
		BrandKey:       req.BrandKey,
		MaxPerCustomer: req.MaxPerCustomer,
		ImageRef:       req.ImageRef,
	}

	if c.AddItem(line) == cart.StatusLimitReached {
		limit := req.MaxPerCustomer
		if limit <= 0 {
			limit = cart.DefaultMaxPerCustomer
		}

		return nil, errors.LimitReachedError(req.Name, limit)
	}

	if err := s.snapshots.Save(ctx, cartID, c.Snapshot()); err != nil {
		return nil, errors.StorageError("Failed to save cart").WithError(err)
	}

	metrics.CartOperation("add")

	return viewFromCart(cartID, c), nil
}

// UpdateQuantity applies a signed delta to the named line. Dropping to zero
// removes the line; exceeding the ceiling is refused.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, itemID string, delta int) (*models.CartView, error) {
	c, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, errors.NotFoundError("Cart not found")
	}

	index, line, found := findLine(c, itemID)
	if !found {
		return nil, errors.NotFoundError("Item not in cart")
	}

	if c.SetQuantity(index, delta) == cart.StatusLimitReached {
		return nil, errors.LimitReachedError(line.Name, line.MaxPerCustomer)
	}

	if err := s.snapshots.Save(ctx, cartID, c.Snapshot()); err != nil {
		return nil, errors.StorageError("Failed to save cart").WithError(err)
	}

	metrics.CartOperation("update")

	return viewFromCart(cartID, c), nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (*models.CartView, error) {
	c, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, errors.NotFoundError("Cart not found")
	}

	index, _, found := findLine(c, itemID)
	if !found {
		return nil, errors.NotFoundError("Item not in cart")
	}

	c.RemoveItem(index)

	if err := s.snapshots.Save(ctx, cartID, c.Snapshot()); err != nil {
		return nil, errors.StorageError("Failed to save cart").WithError(err)
	}

	metrics.CartOperation("remove")

	return viewFromCart(cartID, c), nil
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	if err := s.snapshots.Delete(ctx, cartID); err != nil {
		return errors.StorageError("Failed to clear cart").WithError(err)
	}

	metrics.CartOperation("clear")

	return nil
}

// Summary quotes the checkout page: priced lines, shipping fee for the
// chosen method and the order label. A shipping method without a configured
// rule quotes zero and logs the silent default.
func (s *CartService) Summary(ctx context.Context, cartID, method, category string) (*models.CartSummary, error) {
	c, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, errors.NotFoundError("Cart not found")
	}

	rates, err := s.quoter.ShippingRules(ctx)
	if err != nil {
		return nil, err
	}

	view := viewFromCart(cartID, c)

	fee, configured := rates.Fee(method, category, view.Subtotal)
	if !configured && method != "" {
		middleware.LoggerFromContext(ctx).Warn("No shipping rule configured, quoting zero fee",
			slog.String("method", method), slog.String("category", category))
	}

	return &models.CartSummary{
		CartView:          *view,
		ShippingMethod:    method,
		ShippingCategory:  category,
		ShippingFee:       fee,
		ShippingRuleFound: configured,
		GrandTotal:        view.Subtotal + fee,
		OrderLabel:        c.SummaryLabel(),
	}, nil
}

// loadCart restores the engine state from the snapshot store; a nil cart
// means no snapshot exists.
func (s *CartService) loadCart(ctx context.Context, cartID string) (*cart.Cart, error) {
	snap, err := s.snapshots.Load(ctx, cartID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	if snap == nil {
		return nil, nil
	}

	return cart.Restore(*snap), nil
}

func findLine(c *cart.Cart, itemID string) (int, cart.Line, bool) {
	for i, line := range c.Lines() {
		if line.ItemID == itemID {
			return i, line, true
		}
	}

	return 0, cart.Line{}, false
}

func viewFromCart(cartID string, c *cart.Cart) *models.CartView {
	totals := c.Totals()

	view := &models.CartView{
		ID:            cartID,
		Lines:         make([]models.CartLineView, 0, len(totals.Lines)),
		Subtotal:      totals.Subtotal,
		TotalQuantity: totals.TotalQuantity,
	}

	for _, lv := range totals.Lines {
		view.Lines = append(view.Lines, models.CartLineView{
			ItemID:             lv.ItemID,
			Name:               lv.Name,
			UnitPrice:          lv.UnitPrice,
			MultiUnitPrice:     lv.MultiUnitPrice,
			EffectiveUnitPrice: lv.EffectiveUnitPrice,
			Quantity:           lv.Quantity,
			LineTotal:          lv.LineTotal,
			Discounted:         lv.Discounted,
			BrandKey:           lv.BrandKey,
			MaxPerCustomer:     lv.MaxPerCustomer,
			ImageRef:           lv.ImageRef,
		})
	}

	return view
}
