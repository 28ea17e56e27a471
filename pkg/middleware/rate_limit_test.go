package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/responder/responder/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest("GET", "/limited", nil))
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/limited", nil))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	require.Equal(t, "1", w2.Header().Get("Retry-After"))

	// 0.5 rps refills one token in two seconds
	time.Sleep(2100 * time.Millisecond)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest("GET", "/limited", nil))
	require.Equal(t, http.StatusOK, w3.Code)
}

func TestRateLimitMiddleware_UsesSubjectWhenPresent(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sub", c.GetHeader("X-Test-Sub"))
		c.Next()
	})
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	do := func(sub string) int {
		req := httptest.NewRequest("GET", "/u", nil)
		req.Header.Set("X-Test-Sub", sub)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do("user-123"))
	require.Equal(t, http.StatusTooManyRequests, do("user-123"))
	// a different subject from the same IP has its own bucket
	require.Equal(t, http.StatusOK, do("user-456"))
}

// subjectVerifier accepts "tok-<sub>" and reports <sub> as the subject.
type subjectVerifier struct{}

func (subjectVerifier) Verify(_ context.Context, raw string) (Token, error) {
	sub, ok := strings.CutPrefix(raw, "tok-")
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &fakeToken{data: map[string]interface{}{"sub": sub}}, nil
}

func TestRateLimitMiddleware_KeysOnBearerSubject(t *testing.T) {
	r := gin.New()
	r.Use(IdentifySubject(subjectVerifier{}))
	r.Use(RateLimitMiddleware(0.5, 1))
	r.POST("/w", AuthMiddleware(subjectVerifier{}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("sub"))
	})

	do := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/w", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do("Bearer tok-alice")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice", w.Body.String())
	require.Equal(t, http.StatusTooManyRequests, do("Bearer tok-alice").Code)
	// same IP, different subject: separate bucket
	require.Equal(t, http.StatusOK, do("Bearer tok-bob").Code)
	// anonymous requests use the IP bucket, then fail auth on the write route
	require.Equal(t, http.StatusUnauthorized, do("").Code)
	require.Equal(t, http.StatusTooManyRequests, do("Bearer junk").Code)
}
