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
	mdw "farmbook/internal/transport/http/middleware"
)

type farmEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	token  string
}

func newFarmEnv(t *testing.T) *farmEnv {
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
	require.NoError(t, db.AutoMigrate(
		&domain.Animal{}, &domain.AnimalTransaction{},
		&domain.MilkTransaction{},
		&domain.FodderPurchase{}, &domain.FodderConsumption{},
	))

	jwter, err := auth.NewJWTer("test-secret", time.Hour)
	require.NoError(t, err)
	token, err := jwter.Issue(&domain.User{ID: "farmer-1", Mobile: "9876543210", Role: domain.RoleConsumer})
	require.NoError(t, err)

	log := zap.NewNop()
	animalH := NewAnimalHandler(db, log)
	milkH := NewMilkHandler(db, log)

	r := gin.New()
	protected := r.Group("", mdw.RequireAuth(jwter))
	protected.GET("/animals", animalH.List)
	protected.POST("/animals", animalH.Create)
	protected.GET("/animals/transactions", animalH.ListTransactions)
	protected.POST("/animals/:id/sale", animalH.Sell)
	protected.POST("/animals/:id/purchase", animalH.Purchase)
	protected.POST("/milk/sale", milkH.CreateSale)
	protected.GET("/milk", milkH.List)

	return &farmEnv{engine: r, db: db, token: token}
}

func (e *farmEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestAnimal_CreateAndList(t *testing.T) {
	env := newFarmEnv(t)

	w := env.do(t, http.MethodPost, "/animals", map[string]any{
		"name": "Lakshmi",
		"type": "buffalo",
		"age":  4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, "farmer-1", created["ownerId"])

	w = env.do(t, http.MethodGet, "/animals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var animals []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &animals))
	assert.Len(t, animals, 1)
}

func TestAnimal_CreateValidation(t *testing.T) {
	env := newFarmEnv(t)
	w := env.do(t, http.MethodPost, "/animals", map[string]any{"breed": "murrah"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnimal_SellFlipsStatus(t *testing.T) {
	env := newFarmEnv(t)

	w := env.do(t, http.MethodPost, "/animals", map[string]any{"name": "Lakshmi", "type": "buffalo"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = env.do(t, http.MethodPost, "/animals/"+id+"/sale", map[string]any{
		"date":  time.Now().UTC().Format(time.RFC3339),
		"price": 45000,
		"buyer": "Ravi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tx := decode(t, w)
	assert.Equal(t, "sale", tx["type"])
	assert.Equal(t, id, tx["animalId"])

	var animal domain.Animal
	require.NoError(t, env.db.First(&animal, "id = ?", id).Error)
	assert.Equal(t, domain.AnimalSold, animal.Status)

	w = env.do(t, http.MethodGet, "/animals/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	assert.Len(t, txs, 1)
}

func TestAnimal_SellUnknown(t *testing.T) {
	env := newFarmEnv(t)
	w := env.do(t, http.MethodPost, "/animals/missing/sale", map[string]any{
		"date":  time.Now().UTC().Format(time.RFC3339),
		"price": 1000,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMilk_SaleAndList(t *testing.T) {
	env := newFarmEnv(t)

	w := env.do(t, http.MethodPost, "/milk/sale", map[string]any{
		"date":          time.Now().UTC().Format(time.RFC3339),
		"quantity":      12.5,
		"pricePerLiter": 60,
		"totalAmount":   750,
		"buyer":         "Dairy Co-op",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "sale", decode(t, w)["type"])

	w = env.do(t, http.MethodGet, "/milk", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	assert.Len(t, txs, 1)
}
