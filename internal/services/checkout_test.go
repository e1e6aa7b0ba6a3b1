package service_test

import (
	"errors"
	"testing"

	"github.com/keicha2025/keicha-shop/internal/cart"
	appErrors "github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/models"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func checkoutFixture(t *testing.T, email *mockEmailService) (*service.CheckoutService, *mockSnapshotRepo, *mockQuoter) {
	t.Helper()

	mockRepo := &mockSnapshotRepo{}
	quoter := &mockQuoter{}
	carts := service.NewCartService(mockRepo, quoter)

	// a typed nil would still satisfy the interface, keep it untyped
	if email == nil {
		return service.NewCheckoutService(carts, nil), mockRepo, quoter
	}

	return service.NewCheckoutService(carts, email), mockRepo, quoter
}

func TestCheckoutService_Checkout(t *testing.T) {
	rules := cart.NewRateTable([]cart.ShippingRule{
		{Method: "7-11", Category: "tea", T1: 500, F1: 100, T2: 1000, F2: 60, T3: 1500, F3: 30},
	})

	req := &models.CheckoutRequest{
		CartID:         "3b86f0c5-3c33-4d9e-9a5a-8f0f8a5bb001",
		ShippingMethod: "7-11",
	}

	filled := func() *cart.Snapshot {
		return snapshotWith(
			cart.SnapshotLine{ItemID: "a", Name: "和光 40g", UnitPrice: 1200, Quantity: 1, MaxPerCustomer: 99},
			cart.SnapshotLine{ItemID: "b", Name: "初昔 40g", UnitPrice: 800, Quantity: 2, MaxPerCustomer: 99},
		)
	}

	t.Run("Success - Cart Cleared, No Email Requested", func(t *testing.T) {
		// Arrange
		checkoutService, mockRepo, quoter := checkoutFixture(t, nil)
		mockRepo.On("Load", mock.Anything, req.CartID).Return(filled(), nil).Once()
		mockRepo.On("Delete", mock.Anything, req.CartID).Return(nil).Once()
		quoter.On("ShippingRules", mock.Anything).Return(rules, nil).Once()

		// Act
		resp, err := checkoutService.Checkout(t.Context(), req)

		// Assert: 2800 is past the free-shipping threshold
		require.NoError(t, err)
		assert.Equal(t, 2800, resp.Subtotal)
		assert.Zero(t, resp.ShippingFee)
		assert.Equal(t, 2800, resp.GrandTotal)
		assert.Equal(t, "和光 40g / 初昔 40g (x2)", resp.OrderLabel)
		assert.False(t, resp.EmailSent)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Confirmation Email Sent", func(t *testing.T) {
		// Arrange
		email := &mockEmailService{}
		checkoutService, mockRepo, quoter := checkoutFixture(t, email)

		mockRepo.On("Load", mock.Anything, req.CartID).Return(filled(), nil).Once()
		mockRepo.On("Delete", mock.Anything, req.CartID).Return(nil).Once()
		quoter.On("ShippingRules", mock.Anything).Return(rules, nil).Once()
		email.On("Send", mock.Anything, mock.AnythingOfType("*models.EmailNotificationRequest")).Return(nil).Once()

		withEmail := *req
		withEmail.Email = "customer@example.com"

		// Act
		resp, err := checkoutService.Checkout(t.Context(), &withEmail)

		// Assert
		require.NoError(t, err)
		assert.True(t, resp.EmailSent)
		email.AssertExpectations(t)
	})

	t.Run("Email Failure Does Not Fail Checkout", func(t *testing.T) {
		// Arrange
		email := &mockEmailService{}
		checkoutService, mockRepo, quoter := checkoutFixture(t, email)

		mockRepo.On("Load", mock.Anything, req.CartID).Return(filled(), nil).Once()
		mockRepo.On("Delete", mock.Anything, req.CartID).Return(nil).Once()
		quoter.On("ShippingRules", mock.Anything).Return(rules, nil).Once()
		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("sendgrid 503")).Once()

		withEmail := *req
		withEmail.Email = "customer@example.com"

		// Act
		resp, err := checkoutService.Checkout(t.Context(), &withEmail)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.EmailSent)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		checkoutService, mockRepo, quoter := checkoutFixture(t, nil)
		mockRepo.On("Load", mock.Anything, req.CartID).Return(snapshotWith(), nil).Once()
		quoter.On("ShippingRules", mock.Anything).Return(rules, nil).Once()

		// Act
		_, err := checkoutService.Checkout(t.Context(), req)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Cart", func(t *testing.T) {
		// Arrange
		checkoutService, mockRepo, _ := checkoutFixture(t, nil)
		mockRepo.On("Load", mock.Anything, req.CartID).Return(nil, nil).Once()

		// Act
		_, err := checkoutService.Checkout(t.Context(), req)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
