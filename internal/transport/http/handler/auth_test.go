package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmbook/internal/core/auth"
	"farmbook/internal/core/database"
	"farmbook/internal/domain"
	"farmbook/internal/repo"
	mdw "farmbook/internal/transport/http/middleware"
)

type authEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *auth.JWTer
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	jwter, err := auth.NewJWTer("test-secret", time.Hour)
	require.NoError(t, err)

	h := NewAuthHandler(repo.NewUserRepo(db), jwter, zap.NewNop())

	r := gin.New()
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	protected := r.Group("", mdw.RequireAuth(jwter))
	protected.GET("/me", h.Me)

	return &authEnv{engine: r, db: db, jwt: jwter}
}

func (e *authEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func signupBody() map[string]any {
	return map[string]any{
		"name":     "Asha",
		"mobile":   "9876543210",
		"password": "secret1",
	}
}

func TestSignup_CreatesConsumerByDefault(t *testing.T) {
	env := newAuthEnv(t)

	w := env.post(t, "/auth/signup", signupBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Asha", body["name"])
	assert.EqualValues(t, 2, body["role"])
	assert.Equal(t, true, body["isActive"])

	_, leaked := body["passwordHash"]
	assert.False(t, leaked, "password hash must not cross the request boundary")
}

func TestSignup_DuplicateMobile(t *testing.T) {
	env := newAuthEnv(t)

	w := env.post(t, "/auth/signup", signupBody())
	require.Equal(t, http.StatusCreated, w.Code)

	second := signupBody()
	second["name"] = "Someone Else"
	w = env.post(t, "/auth/signup", second)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "mobile already in use", decode(t, w)["error"])
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newAuthEnv(t)

	first := signupBody()
	first["email"] = "asha@example.com"
	require.Equal(t, http.StatusCreated, env.post(t, "/auth/signup", first).Code)

	second := signupBody()
	second["email"] = "ASHA@EXAMPLE.COM" // case-insensitive collision
	second["mobile"] = "1111111111"
	w := env.post(t, "/auth/signup", second)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already in use", decode(t, w)["error"])
}

func TestSignup_Validation(t *testing.T) {
	env := newAuthEnv(t)

	w := env.post(t, "/auth/signup", map[string]any{
		"name":     "A",
		"mobile":   "12345",
		"password": "short",
		"gender":   "unknown",
		"role":     7,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	fields := body["error"].(map[string]any)
	for _, f := range []string{"name", "mobile", "password", "gender", "role"} {
		assert.Contains(t, fields, f)
	}
}

func TestLogin_ByMobile(t *testing.T) {
	env := newAuthEnv(t)
	require.Equal(t, http.StatusCreated, env.post(t, "/auth/signup", signupBody()).Code)

	w := env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "9876543210",
		"password":      "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "9876543210", user["mobile"])

	claims, err := env.jwt.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "Asha", claims.Name)
	assert.Equal(t, domain.RoleConsumer, claims.Role)
}

func TestLogin_ByEmail(t *testing.T) {
	env := newAuthEnv(t)
	in := signupBody()
	in["email"] = "asha@example.com"
	require.Equal(t, http.StatusCreated, env.post(t, "/auth/signup", in).Code)

	w := env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "Asha@Example.com",
		"password":      "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newAuthEnv(t)
	require.Equal(t, http.StatusCreated, env.post(t, "/auth/signup", signupBody()).Code)

	w := env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "9876543210",
		"password":      "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Invalid credentials", body["error"])
	_, hasToken := body["token"]
	assert.False(t, hasToken)
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newAuthEnv(t)

	w := env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "0000000000",
		"password":      "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// same response as a wrong password, no identity enumeration
	assert.Equal(t, "Invalid credentials", decode(t, w)["error"])
}

func TestLogin_DeactivatedUser(t *testing.T) {
	env := newAuthEnv(t)
	w := env.post(t, "/auth/signup", signupBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	require.NoError(t, repo.NewUserRepo(env.db).Deactivate(id))

	w = env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "9876543210",
		"password":      "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_CorruptStoredHash(t *testing.T) {
	env := newAuthEnv(t)
	require.Equal(t, http.StatusCreated, env.post(t, "/auth/signup", signupBody()).Code)

	// simulate a record written without the salt:digest delimiter
	require.NoError(t, env.db.Model(&domain.User{}).
		Where("mobile = ?", "9876543210").
		Update("password_hash", "nodelimiter").Error)

	w := env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "9876543210",
		"password":      "secret1",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogin_Validation(t *testing.T) {
	env := newAuthEnv(t)

	w := env.post(t, "/auth/login", map[string]any{"emailOrMobile": "", "password": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decode(t, w)["message"])
}

func (e *authEnv) getMe(t *testing.T, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestProtectedRoute_TokenLifecycle(t *testing.T) {
	env := newAuthEnv(t)
	w := env.post(t, "/auth/signup", signupBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	login := env.post(t, "/auth/login", map[string]any{
		"emailOrMobile": "9876543210",
		"password":      "secret1",
	})
	require.Equal(t, http.StatusOK, login.Code)
	token := decode(t, login)["token"].(string)

	me := env.getMe(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, id, decode(t, me)["id"])

	// no header
	me = env.getMe(t, "")
	assert.Equal(t, http.StatusUnauthorized, me.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, me.Body.String())

	// expired token signed with the same secret
	expired := &auth.JWTer{Secret: []byte("test-secret"), TTL: -time.Minute}
	expTok, err := expired.Issue(&domain.User{ID: id, Mobile: "9876543210"})
	require.NoError(t, err)
	me = env.getMe(t, "Bearer "+expTok)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
	assert.JSONEq(t, `{"error":"Token expired"}`, me.Body.String())

	// tampered token
	me = env.getMe(t, "Bearer "+token+"x")
	assert.Equal(t, http.StatusUnauthorized, me.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, me.Body.String())
}
