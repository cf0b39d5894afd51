package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmbook/internal/core/auth"
	"farmbook/internal/domain"
)

func testEngine(t *testing.T, j *auth.JWTer, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(j)}, extra...)
	r.GET("/protected", append(chain, func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"uid": claims.UID})
	})...)
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func issuer(t *testing.T, ttl time.Duration) (*auth.JWTer, string) {
	t.Helper()
	j := &auth.JWTer{Secret: []byte("test-secret"), TTL: ttl}
	token, err := j.Issue(&domain.User{ID: "u-1", Mobile: "9876543210", Role: domain.RoleConsumer})
	require.NoError(t, err)
	return j, token
}

func TestRequireAuth_NoToken(t *testing.T) {
	j, _ := issuer(t, time.Hour)
	r := testEngine(t, j)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", errBody(t, w))

	// a bare token without the Bearer prefix is also absence
	w = get(r, "abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", errBody(t, w))
}

func TestRequireAuth_Expired(t *testing.T) {
	j, _ := issuer(t, time.Hour)
	_, token := issuer(t, -time.Minute) // same secret, already expired

	r := testEngine(t, j)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", errBody(t, w))
}

func TestRequireAuth_Invalid(t *testing.T) {
	j, _ := issuer(t, time.Hour)
	r := testEngine(t, j)

	w := get(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errBody(t, w))

	other := &auth.JWTer{Secret: []byte("other-secret"), TTL: time.Hour}
	token, err := other.Issue(&domain.User{ID: "u-2"})
	require.NoError(t, err)
	w = get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errBody(t, w))
}

func TestRequireAuth_Valid(t *testing.T) {
	j, token := issuer(t, time.Hour)
	r := testEngine(t, j)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestRequireRole(t *testing.T) {
	j, consumerToken := issuer(t, time.Hour)
	adminToken, err := j.Issue(&domain.User{ID: "u-admin", Role: domain.RoleAdmin})
	require.NoError(t, err)
	superToken, err := j.Issue(&domain.User{ID: "u-super", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)

	r := testEngine(t, j, RequireRole(domain.RoleAdmin))

	w := get(r, "Bearer "+consumerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "Bearer "+superToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
