package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kleanzilla/models"
	"kleanzilla/services/booking"
	"kleanzilla/utils"
)

// QuoteHandler serves quote creation and link requests.
type QuoteHandler struct {
	Booking booking.Service
}

// NewQuoteHandler creates a new QuoteHandler instance.
func NewQuoteHandler(svc booking.Service) *QuoteHandler {
	return &QuoteHandler{Booking: svc}
}

// CreateQuoteHandler handles POST /api/create-quote.
func (h *QuoteHandler) CreateQuoteHandler(c *gin.Context) {
	var input models.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	bookingID, err := h.Booking.CreateQuote(c.Request.Context(), input)
	if err != nil {
		// The booking may already be persisted when only the email failed;
		// report the dispatch failure without pretending the data was lost.
		if errors.Is(err, booking.ErrDispatchFailed) {
			utils.JSONError(c, http.StatusInternalServerError, "Quote created but email delivery failed.")
			return
		}
		writeServiceError(c, err, "Quote creation failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "bookingId": bookingID})
}

// RequestMagicLinkHandler handles POST /api/request-magic-link.
func (h *QuoteHandler) RequestMagicLinkHandler(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing email.")
		return
	}

	if err := h.Booking.RequestMagicLink(c.Request.Context(), input.Email); err != nil {
		writeServiceError(c, err, "Magic link request failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RequestAdminLinkHandler handles POST /api/request-admin-link.
func (h *QuoteHandler) RequestAdminLinkHandler(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing email.")
		return
	}

	if err := h.Booking.RequestAdminLink(c.Request.Context(), input.Email); err != nil {
		writeServiceError(c, err, "Admin link request failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SubmitDisputeHandler handles POST /api/submit-dispute.
func (h *QuoteHandler) SubmitDisputeHandler(c *gin.Context) {
	var input struct {
		Token string   `json:"token"`
		Notes string   `json:"notes"`
		Files []string `json:"files"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing token.")
		return
	}

	if err := h.Booking.SubmitDispute(c.Request.Context(), input.Token, input.Notes, input.Files); err != nil {
		writeServiceError(c, err, "Dispute submit failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
