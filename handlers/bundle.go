package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all endpoint handlers for route registration.
type HandlerBundle struct {
	// Quote and link endpoints.
	CreateQuoteHandler      gin.HandlerFunc
	RequestMagicLinkHandler gin.HandlerFunc
	RequestAdminLinkHandler gin.HandlerFunc
	SubmitDisputeHandler    gin.HandlerFunc

	// Upload credential and gallery endpoints.
	GetUploadSASHandler        gin.HandlerFunc
	GetDisputeUploadSASHandler gin.HandlerFunc
	GetAdminUploadSASHandler   gin.HandlerFunc
	GetGalleryHandler          gin.HandlerFunc

	// Payment endpoints.
	PayfastPrepareHandler gin.HandlerFunc
	PayfastITNHandler     gin.HandlerFunc

	// Email endpoints.
	SendContactHandler     gin.HandlerFunc
	SendUploadEmailHandler gin.HandlerFunc
}
