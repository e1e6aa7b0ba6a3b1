package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/metrics"
	"github.com/keicha2025/keicha-shop/internal/models"
	"github.com/keicha2025/keicha-shop/pkg/sendgrid"
)

// CheckoutService finalizes a cart: it quotes the summary one last time,
// optionally mails a confirmation and clears the cart. Payment happens
// outside the system, at pickup.
type CheckoutService struct {
	carts *CartService
	email sendgrid.EmailService
}

// NewCheckoutService accepts a nil email service when no SendGrid key is
// configured; checkout then never sends mail.
func NewCheckoutService(carts *CartService, email sendgrid.EmailService) *CheckoutService {
	return &CheckoutService{carts: carts, email: email}
}

func (s *CheckoutService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	summary, err := s.carts.Summary(ctx, req.CartID, req.ShippingMethod, req.ShippingCategory)
	if err != nil {
		return nil, err
	}

	if summary.TotalQuantity == 0 {
		return nil, errors.BadRequestError("Cart is empty")
	}

	resp := &models.CheckoutResponse{
		OrderLabel:    summary.OrderLabel,
		Subtotal:      summary.Subtotal,
		ShippingFee:   summary.ShippingFee,
		GrandTotal:    summary.GrandTotal,
		TotalQuantity: summary.TotalQuantity,
	}

	// confirmation mail is best effort, a mail failure never loses the order
	if req.Email != "" && s.email != nil {
		mail := &models.EmailNotificationRequest{
			To:      req.Email,
			Subject: "KEICHA 訂單確認",
			Content: confirmationBody(summary),
		}

		if err := s.email.Send(ctx, mail); err != nil {
			logger.Warn("Confirmation email failed", slog.String("to", req.Email), slog.Any("error", err))
		} else {
			resp.EmailSent = true
		}
	}

	if err := s.carts.ClearCart(ctx, req.CartID); err != nil {
		return nil, err
	}

	metrics.OrderPlaced()

	logger.Info("Checkout completed",
		slog.String("cart_id", req.CartID),
		slog.Int("grand_total", summary.GrandTotal),
		slog.Int("total_quantity", summary.TotalQuantity))

	return resp, nil
}

func confirmationBody(summary *models.CartSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "訂購內容:%s\n", summary.OrderLabel)

	for _, line := range summary.Lines {
		fmt.Fprintf(&b, "%s x%d = %d\n", line.Name, line.Quantity, line.LineTotal)
	}

	fmt.Fprintf(&b, "小計:%d\n", summary.Subtotal)

	if summary.ShippingMethod != "" {
		fmt.Fprintf(&b, "運費(%s):%d\n", summary.ShippingMethod, summary.ShippingFee)
	}

	fmt.Fprintf(&b, "合計:%d\n", summary.GrandTotal)

	return b.String()
}
