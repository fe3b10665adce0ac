package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	bookingRepo "kleanzilla/database/repository/booking"
	"kleanzilla/services/storage"
	"kleanzilla/services/token"
	"kleanzilla/utils"
)

// UploadHandler serves upload-credential issuance and gallery reads. It owns
// the authorization checks; the storage signer itself trusts its callers.
type UploadHandler struct {
	Tokens   token.Service
	Storage  storage.Service
	Bookings bookingRepo.Repository
	AdminKey string
}

// NewUploadHandler creates a new UploadHandler instance.
func NewUploadHandler(tokens token.Service, store storage.Service, bookings bookingRepo.Repository, adminKey string) *UploadHandler {
	return &UploadHandler{Tokens: tokens, Storage: store, Bookings: bookings, AdminKey: adminKey}
}

// GetUploadSASHandler handles POST /api/get-upload-sas: a write credential
// for a client listing photo. Requires any valid token.
func (h *UploadHandler) GetUploadSASHandler(c *gin.Context) {
	var input struct {
		Token       string `json:"token"`
		ClientEmail string `json:"clientEmail"`
		ListingID   string `json:"listingId"`
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		Date        string `json:"date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if input.ClientEmail == "" || input.ListingID == "" || input.FileName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing clientEmail, listingId, or fileName.")
		return
	}

	if _, err := h.Tokens.Validate(c.Request.Context(), input.Token, token.ScopeAny); err != nil {
		writeServiceError(c, err, "Unable to create upload credential.")
		return
	}

	datePart := input.Date
	if datePart == "" {
		datePart = time.Now().UTC().Format("2006-01-02")
	}
	objectPath := storage.SanitizePathPart(input.ClientEmail) + "/" +
		storage.SanitizePathPart(input.ListingID) + "/" + datePart + "/" + input.FileName

	cred, err := h.Storage.IssueCredential(c.Request.Context(), objectPath, storage.ModeWrite, input.ContentType)
	if err != nil {
		writeServiceError(c, err, "Unable to create upload credential.")
		return
	}
	c.JSON(http.StatusOK, cred)
}

// GetDisputeUploadSASHandler handles POST /api/get-dispute-upload-sas: a
// write credential under the token's own booking, dispute stage. Gallery
// scope only; the token pins both the email and booking path segments.
func (h *UploadHandler) GetDisputeUploadSASHandler(c *gin.Context) {
	var input struct {
		Token       string `json:"token"`
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" || input.FileName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing token or fileName.")
		return
	}

	record, err := h.Tokens.Validate(c.Request.Context(), input.Token, token.ScopeGallery)
	if err != nil {
		writeServiceError(c, err, "Unable to create dispute upload credential.")
		return
	}

	objectPath := storage.ObjectPath(record.Email, record.BookingID, storage.StageDispute, input.FileName)
	cred, err := h.Storage.IssueCredential(c.Request.Context(), objectPath, storage.ModeWrite, input.ContentType)
	if err != nil {
		writeServiceError(c, err, "Unable to create dispute upload credential.")
		return
	}
	c.JSON(http.StatusOK, cred)
}

// GetAdminUploadSASHandler handles POST /api/get-admin-upload-sas: a write
// credential for before/after photos on any booking. Authorized by an
// admin-scoped token, or by the shared admin key as a fallback.
func (h *UploadHandler) GetAdminUploadSASHandler(c *gin.Context) {
	var input struct {
		Token       string `json:"token"`
		AdminKey    string `json:"adminKey"`
		Email       string `json:"email"`
		BookingID   string `json:"bookingId"`
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		Stage       string `json:"stage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if input.Email == "" || input.BookingID == "" || input.FileName == "" || input.Stage == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing email, bookingId, stage, or fileName.")
		return
	}

	stage := strings.ToLower(input.Stage)
	if stage != storage.StageBefore && stage != storage.StageAfter {
		utils.JSONError(c, http.StatusBadRequest, "Invalid stage.")
		return
	}

	if input.Token != "" {
		if _, err := h.Tokens.Validate(c.Request.Context(), input.Token, token.ScopeAdmin); err != nil {
			writeServiceError(c, err, "Unable to create admin upload credential.")
			return
		}
	} else {
		adminKey := c.GetHeader("X-Admin-Key")
		if adminKey == "" {
			adminKey = input.AdminKey
		}
		if h.AdminKey == "" || adminKey != h.AdminKey {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized.")
			return
		}
	}

	email := utils.NormalizeEmail(input.Email)
	if _, err := h.Bookings.Get(c.Request.Context(), email, input.BookingID); err != nil {
		writeServiceError(c, err, "Unable to create admin upload credential.")
		return
	}

	objectPath := storage.ObjectPath(email, input.BookingID, stage, input.FileName)
	cred, err := h.Storage.IssueCredential(c.Request.Context(), objectPath, storage.ModeWrite, input.ContentType)
	if err != nil {
		writeServiceError(c, err, "Unable to create admin upload credential.")
		return
	}
	c.JSON(http.StatusOK, cred)
}

// GetGalleryHandler handles GET/POST /api/get-gallery: the token's booking
// summary plus read credentials for every photo grouped by stage.
func (h *UploadHandler) GetGalleryHandler(c *gin.Context) {
	tokenValue := c.Query("token")
	if tokenValue == "" {
		var input struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			tokenValue = input.Token
		}
	}
	if tokenValue == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing token.")
		return
	}

	record, err := h.Tokens.Validate(c.Request.Context(), tokenValue, token.ScopeAny)
	if err != nil {
		writeServiceError(c, err, "Gallery fetch failed.")
		return
	}

	booking, err := h.Bookings.Get(c.Request.Context(), record.Email, record.BookingID)
	if err != nil {
		writeServiceError(c, err, "Gallery fetch failed.")
		return
	}

	gallery, err := h.Storage.ListGallery(c.Request.Context(), record.Email, record.BookingID)
	if err != nil {
		writeServiceError(c, err, "Gallery fetch failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking": gin.H{
			"id":          booking.BookingID,
			"email":       booking.Email,
			"cleanType":   booking.CleanType,
			"bedrooms":    booking.Bedrooms,
			"bookingDate": booking.BookingDate,
			"status":      booking.Status,
		},
		"gallery": gallery,
	})
}
