package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/models"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/keicha2025/keicha-shop/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		view, err := h.cartService.CreateCart(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Cart created", slog.String("cart_id", view.ID))
		response.Success(w, http.StatusCreated, view)
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := r.PathValue("id")
		if cartID == "" {
			response.Error(w, errors.BadRequestError("Cart ID is required"))

			return
		}

		view, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := r.PathValue("id")
		if cartID == "" {
			response.Error(w, errors.BadRequestError("Cart ID is required"))

			return
		}

		var req models.AddItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		view, err := h.cartService.AddItem(r.Context(), cartID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := r.PathValue("id")
		itemID := r.PathValue("itemID")

		if cartID == "" || itemID == "" {
			response.Error(w, errors.BadRequestError("Cart ID and item ID are required"))

			return
		}

		var req models.QuantityRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		view, err := h.cartService.UpdateQuantity(r.Context(), cartID, itemID, req.Delta)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := r.PathValue("id")
		itemID := r.PathValue("itemID")

		if cartID == "" || itemID == "" {
			response.Error(w, errors.BadRequestError("Cart ID and item ID are required"))

			return
		}

		view, err := h.cartService.RemoveItem(r.Context(), cartID, itemID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := r.PathValue("id")
		if cartID == "" {
			response.Error(w, errors.BadRequestError("Cart ID is required"))

			return
		}

		if err := h.cartService.ClearCart(r.Context(), cartID); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"id": cartID})
	}
}

// Summary quotes the checkout page. The shipping method and category come as
// query parameters so the storefront can re-quote as the shopper toggles
// pickup options.
func (h *CartHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := r.PathValue("id")
		if cartID == "" {
			response.Error(w, errors.BadRequestError("Cart ID is required"))

			return
		}

		method := r.URL.Query().Get("method")
		category := r.URL.Query().Get("category")

		summary, err := h.cartService.Summary(r.Context(), cartID, method, category)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
