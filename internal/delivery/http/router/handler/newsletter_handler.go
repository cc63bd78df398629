package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NewsletterHandler struct {
	newsletter usecase.NewsletterUsecase
}

func NewNewsletterHandler(newsletter usecase.NewsletterUsecase) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// SubscribeRequest is the body of POST /api/newsletter.
type SubscribeRequest struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	subscription, err := h.newsletter.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, subscription, "Thank you for subscribing!")
}
