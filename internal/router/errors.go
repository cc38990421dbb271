package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/GhaniKale/skincare-marketplace/internal/cart"
	"github.com/GhaniKale/skincare-marketplace/internal/catalog"
	"github.com/GhaniKale/skincare-marketplace/internal/checkout"
	"github.com/GhaniKale/skincare-marketplace/pkg/global"
)

// respondError maps a service error onto a status and envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid input", validationErrors(verrs)))
	case errors.Is(err, checkout.ErrInvalidForm), errors.Is(err, cart.ErrMissingSession):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", nil))
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Cart item not found", nil))
	case errors.Is(err, checkout.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, global.ErrorResponse("Your cart is empty", nil))
	case errors.Is(err, checkout.ErrSubmitFailed):
		c.JSON(http.StatusBadGateway, global.ErrorResponse("Failed to place order, please try again", nil))
	case errors.Is(err, catalog.ErrUnavailable), errors.Is(err, cart.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, global.RetryableResponse("Temporarily unavailable, please retry"))
	default:
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Internal server error", nil))
	}
}

func validationErrors(verrs validator.ValidationErrors) []global.ValidationError {
	out := make([]global.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, global.ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// bindError reports a malformed request body.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid input", validationErrors(verrs)))
		return
	}
	c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
		{Field: "body", Message: err.Error(), Code: "json_parse_error"},
	}))
}
