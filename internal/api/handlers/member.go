package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/models"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/keicha2025/keicha-shop/internal/utils/response"
)

type MemberHandler struct {
	memberService *service.MemberService
	validator     *validator.Validate
}

func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		validator:     validator.New(),
	}
}

func (h *MemberHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		resp, err := h.memberService.Login(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		if resp.Token == "" {
			response.Success(w, http.StatusTooManyRequests, resp)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *MemberHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Not authenticated"))

			return
		}

		member, err := h.memberService.GetProfile(r.Context(), claims.Phone)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, member)
	}
}

func (h *MemberHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Not authenticated"))

			return
		}

		var req models.UpdateProfileRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		member, err := h.memberService.UpdateProfile(r.Context(), claims.Phone, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, member)
	}
}
