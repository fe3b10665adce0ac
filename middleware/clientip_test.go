package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestClientIPForwardedFor(t *testing.T) {
	c := testContext("10.0.0.1:1234", map[string]string{
		"X-Forwarded-For": "197.97.145.144, 10.0.0.2",
	})
	if got := ClientIP(c); got != "197.97.145.144" {
		t.Fatalf("ClientIP = %q, want first forwarded hop", got)
	}
}

func TestClientIPRealIP(t *testing.T) {
	c := testContext("10.0.0.1:1234", map[string]string{"X-Real-IP": "197.97.145.145"})
	if got := ClientIP(c); got != "197.97.145.145" {
		t.Fatalf("ClientIP = %q", got)
	}
}

func TestClientIPRemoteAddr(t *testing.T) {
	c := testContext("197.97.145.146:5555", nil)
	if got := ClientIP(c); got != "197.97.145.146" {
		t.Fatalf("ClientIP = %q, want host without port", got)
	}
}
