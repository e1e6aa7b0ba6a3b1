package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/models"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/keicha2025/keicha-shop/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		resp, err := h.checkoutService.Checkout(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Order placed",
			slog.String("cart_id", req.CartID),
			slog.String("order_label", resp.OrderLabel))
		response.Success(w, http.StatusOK, resp)
	}
}
