package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kleanzilla/services/notification"
	"kleanzilla/utils"
)

// ContactHandler serves the contact form and the upload-summary email.
type ContactHandler struct {
	Mailer       notification.Mailer
	ContactEmail string
	NotifyEmail  string
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(mailer notification.Mailer, contactEmail, notifyEmail string) *ContactHandler {
	return &ContactHandler{Mailer: mailer, ContactEmail: contactEmail, NotifyEmail: notifyEmail}
}

// SendContactHandler handles POST /api/send-contact.
func (h *ContactHandler) SendContactHandler(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	msg := notification.ContactMessage(name, email, strings.TrimSpace(input.Phone), message, h.ContactEmail)
	if err := h.Mailer.Send(c.Request.Context(), msg); err != nil {
		writeServiceError(c, err, "Unable to send enquiry.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SendUploadEmailHandler handles POST /api/send-upload-email.
func (h *ContactHandler) SendUploadEmailHandler(c *gin.Context) {
	var input notification.UploadSummaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if input.ClientEmail == "" || input.ListingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing clientEmail or listingId.")
		return
	}

	msg := notification.UploadSummaryMessage(input, []string{h.NotifyEmail, utils.NormalizeEmail(input.ClientEmail)})
	if err := h.Mailer.Send(c.Request.Context(), msg); err != nil {
		writeServiceError(c, err, "Email send failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
