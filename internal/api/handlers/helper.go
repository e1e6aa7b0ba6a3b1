package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	appErrors "github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/utils/response"
)

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	defer r.Body.Close()

	logger := middleware.LoggerFromContext(r.Context())

	err := json.NewDecoder(r.Body).Decode(dest)

	if errors.Is(err, io.EOF) {
		logger.Warn("Empty request body", slog.String("endpoint", r.URL.Path))
		response.Error(w, appErrors.BadRequestError("Request body cannot be empty"))

		return err
	}

	if err != nil {
		logger.Warn("Failed to decode request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		response.Error(w, appErrors.BadRequestError("Malformed request body").WithError(err))

		return err
	}

	return nil
}

func validateStruct(w http.ResponseWriter, r *http.Request, validate *validator.Validate, data any) bool {
	if err := validate.Struct(data); err != nil {
		logger := middleware.LoggerFromContext(r.Context())

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Input validation failed", slog.String("error", validationErrs.Error()))
			response.ValidationError(w, validationErrs)
		} else {
			logger.Error("Unexpected validation error", slog.String("error", err.Error()))
			response.Error(w, appErrors.InternalError("Validation failed").WithError(err))
		}

		return false
	}

	return true
}
