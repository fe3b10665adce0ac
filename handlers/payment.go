package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kleanzilla/middleware"
	"kleanzilla/services/payfast"
	"kleanzilla/utils"
)

// PaymentHandler serves PayFast checkout preparation and the ITN webhook.
type PaymentHandler struct {
	Reconciler *payfast.Reconciler
}

// NewPaymentHandler creates a new PaymentHandler instance.
func NewPaymentHandler(rec *payfast.Reconciler) *PaymentHandler {
	return &PaymentHandler{Reconciler: rec}
}

// PrepareHandler handles POST /api/payfast-prepare.
func (h *PaymentHandler) PrepareHandler(c *gin.Context) {
	var input struct {
		Email     string `json:"email"`
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.BookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing booking details.")
		return
	}

	checkout, err := h.Reconciler.PrepareCheckout(c.Request.Context(),
		utils.NormalizeEmail(input.Email), input.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, payfast.ErrNotConfigured):
			utils.JSONError(c, http.StatusInternalServerError, "Payfast settings not configured.")
		case errors.Is(err, payfast.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "Booking not found.")
		default:
			writeServiceError(c, err, "Payfast prepare failed.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"payfastUrl": checkout.ProcessURL,
		"fields":     checkout.Fields,
	})
}

// ITNHandler handles POST /api/payfast-itn, the gateway's form-encoded
// webhook. The gateway expects a bare "OK" on success. Integrity rejections
// reply with one generic message: the audit log records which check failed,
// the caller never learns it.
func (h *PaymentHandler) ITNHandler(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "Invalid request.")
		return
	}
	data := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}

	err := h.Reconciler.Process(c.Request.Context(), data, middleware.ClientIP(c))
	switch {
	case err == nil:
		c.String(http.StatusOK, "OK")
	case errors.Is(err, payfast.ErrNotConfigured):
		c.String(http.StatusInternalServerError, "Merchant config missing.")
	case errors.Is(err, payfast.ErrBookingNotFound):
		c.String(http.StatusNotFound, "Booking not found.")
	case errors.Is(err, payfast.ErrInvalidSignature),
		errors.Is(err, payfast.ErrInvalidSource),
		errors.Is(err, payfast.ErrMerchantMismatch),
		errors.Is(err, payfast.ErrMissingReference),
		errors.Is(err, payfast.ErrAmountMismatch),
		errors.Is(err, payfast.ErrValidationFailed):
		c.String(http.StatusBadRequest, "Invalid request.")
	default:
		c.String(http.StatusInternalServerError, "Payment processing failed.")
	}
}
