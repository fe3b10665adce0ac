package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"kleanzilla/models"
	"kleanzilla/services/storage"
	"kleanzilla/services/token"
)

func uploadRouter(h *UploadHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/get-upload-sas", h.GetUploadSASHandler)
	r.POST("/api/get-dispute-upload-sas", h.GetDisputeUploadSASHandler)
	r.POST("/api/get-admin-upload-sas", h.GetAdminUploadSASHandler)
	r.GET("/api/get-gallery", h.GetGalleryHandler)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func galleryToken() *fakeTokenService {
	return &fakeTokenService{records: map[string]*models.Token{
		"tok-gallery": {
			Token: "tok-gallery", Email: "jane@example.com", BookingID: "bk-1",
			Scope: string(token.ScopeGallery),
		},
		"tok-admin": {
			Token: "tok-admin", Email: "boss@kleanzilla.co.za", BookingID: "admin",
			Scope: string(token.ScopeAdmin),
		},
	}}
}

func TestGetUploadSASRequiresValidToken(t *testing.T) {
	store := &fakeStorage{}
	h := NewUploadHandler(galleryToken(), store, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-upload-sas",
		`{"token":"bogus","clientEmail":"jane@example.com","listingId":"L-9","fileName":"a.jpg"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(store.issuedPaths) != 0 {
		t.Fatal("credential issued for invalid token")
	}
}

func TestGetUploadSASIssuesScopedCredential(t *testing.T) {
	store := &fakeStorage{}
	h := NewUploadHandler(galleryToken(), store, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-upload-sas",
		`{"token":"tok-gallery","clientEmail":"Jane@Example.com","listingId":"L 9","fileName":"a.jpg","date":"2026-08-30","contentType":"image/jpeg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(store.issuedPaths) != 1 {
		t.Fatalf("issued %d credentials, want 1", len(store.issuedPaths))
	}
	if store.issuedPaths[0] != "jane-at-example-com/l-9/2026-08-30/a.jpg" {
		t.Fatalf("object path = %q", store.issuedPaths[0])
	}
	if store.issuedModes[0] != storage.ModeWrite {
		t.Fatalf("mode = %q, want write", store.issuedModes[0])
	}
}

func TestGetDisputeUploadSASPinsTokenBooking(t *testing.T) {
	store := &fakeStorage{}
	h := NewUploadHandler(galleryToken(), store, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-dispute-upload-sas",
		`{"token":"tok-gallery","fileName":"evidence.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if store.issuedPaths[0] != "jane-at-example-com/bk-1/dispute/evidence.jpg" {
		t.Fatalf("object path = %q", store.issuedPaths[0])
	}
}

func TestGetDisputeUploadSASRejectsAdminToken(t *testing.T) {
	store := &fakeStorage{}
	h := NewUploadHandler(galleryToken(), store, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-dispute-upload-sas",
		`{"token":"tok-admin","fileName":"evidence.jpg"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestGetAdminUploadSASWithToken(t *testing.T) {
	store := &fakeStorage{}
	repo := newFakeBookingRepo(models.Booking{Email: "jane@example.com", BookingID: "bk-1"})
	h := NewUploadHandler(galleryToken(), store, repo, "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-admin-upload-sas",
		`{"token":"tok-admin","email":"jane@example.com","bookingId":"bk-1","stage":"after","fileName":"done.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if store.issuedPaths[0] != "jane-at-example-com/bk-1/after/done.jpg" {
		t.Fatalf("object path = %q", store.issuedPaths[0])
	}
}

func TestGetAdminUploadSASWithSharedKey(t *testing.T) {
	store := &fakeStorage{}
	repo := newFakeBookingRepo(models.Booking{Email: "jane@example.com", BookingID: "bk-1"})
	h := NewUploadHandler(galleryToken(), store, repo, "secret")
	r := uploadRouter(h)

	body := `{"email":"jane@example.com","bookingId":"bk-1","stage":"before","fileName":"start.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/get-admin-upload-sas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Key", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetAdminUploadSASRejectsWrongKey(t *testing.T) {
	store := &fakeStorage{}
	repo := newFakeBookingRepo(models.Booking{Email: "jane@example.com", BookingID: "bk-1"})
	h := NewUploadHandler(galleryToken(), store, repo, "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-admin-upload-sas",
		`{"adminKey":"wrong","email":"jane@example.com","bookingId":"bk-1","stage":"before","fileName":"x.jpg"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(store.issuedPaths) != 0 {
		t.Fatal("credential issued without authorization")
	}
}

func TestGetAdminUploadSASRejectsDisputeStage(t *testing.T) {
	h := NewUploadHandler(galleryToken(), &fakeStorage{}, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-admin-upload-sas",
		`{"token":"tok-admin","email":"jane@example.com","bookingId":"bk-1","stage":"dispute","fileName":"x.jpg"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetAdminUploadSASUnknownBooking(t *testing.T) {
	h := NewUploadHandler(galleryToken(), &fakeStorage{}, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	w := postJSON(r, "/api/get-admin-upload-sas",
		`{"token":"tok-admin","email":"jane@example.com","bookingId":"nope","stage":"after","fileName":"x.jpg"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetGalleryHandler(t *testing.T) {
	store := &fakeStorage{gallery: map[string][]storage.GalleryItem{
		storage.StageBefore:  {{Name: "kitchen.jpg", URL: "https://res.cloudinary.com/x"}},
		storage.StageAfter:   {},
		storage.StageDispute: {},
	}}
	repo := newFakeBookingRepo(models.Booking{
		Email: "jane@example.com", BookingID: "bk-1", CleanType: "deep",
		Status: models.BookingStatusPaid,
	})
	h := NewUploadHandler(galleryToken(), store, repo, "secret")
	r := uploadRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/get-gallery?token=tok-gallery", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "kitchen.jpg") {
		t.Fatalf("gallery items missing: %s", body)
	}
	if !strings.Contains(body, `"status":"paid"`) {
		t.Fatalf("booking summary missing: %s", body)
	}
}

func TestGetGalleryMissingToken(t *testing.T) {
	h := NewUploadHandler(galleryToken(), &fakeStorage{}, newFakeBookingRepo(), "secret")
	r := uploadRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/get-gallery", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
