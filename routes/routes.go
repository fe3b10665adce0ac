package routes

import (
	"net/http"
	"time"

	"kleanzilla/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers the JSON API endpoints.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/create-quote", hb.CreateQuoteHandler)
		api.POST("/request-magic-link", hb.RequestMagicLinkHandler)
		api.POST("/request-admin-link", hb.RequestAdminLinkHandler)
		api.POST("/submit-dispute", hb.SubmitDisputeHandler)

		api.POST("/get-upload-sas", hb.GetUploadSASHandler)
		api.POST("/get-dispute-upload-sas", hb.GetDisputeUploadSASHandler)
		api.POST("/get-admin-upload-sas", hb.GetAdminUploadSASHandler)
		api.GET("/get-gallery", hb.GetGalleryHandler)
		api.POST("/get-gallery", hb.GetGalleryHandler)

		api.POST("/payfast-prepare", hb.PayfastPrepareHandler)
		api.POST("/payfast-itn", hb.PayfastITNHandler)

		api.POST("/send-contact", hb.SendContactHandler)
		api.POST("/send-upload-email", hb.SendUploadEmailHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm KleanZilla"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Admin-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterAPIRoutes(r, hb)
	RegisterHealthRoute(r)
}
