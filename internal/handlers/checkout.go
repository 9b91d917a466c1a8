// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /api/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CheckoutRequest
	if c.Request.ContentLength != 0 && !validated(c, &req) {
		return
	}

	store := stateStore(c)
	cart := store.Snapshot().Cart
	summary, err := h.checkoutService.Checkout(c.Request.Context(), utils.GetSessionID(c), cart, &req)
	if errors.Is(err, services.ErrCartEmpty) {
		utils.ErrorResponse(c, http.StatusBadRequest, "CART_EMPTY", i18n.T(lang, i18n.KeyCartEmpty), nil)
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("session_id", utils.GetSessionID(c)).Error("Checkout failed")
		utils.InternalErrorResponse(c, "PAYMENT_ERROR", i18n.T(lang, i18n.KeyCheckoutFailed))
		return
	}

	store.RemoveCartLines(cart)
	c.JSON(http.StatusOK, utils.APIResponse{
		Success: true,
		Message: i18n.T(lang, i18n.KeyCheckoutComplete),
		Data:    gin.H{"order": summary},
	})
}
