package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmbook/internal/core/auth"
	"farmbook/internal/domain"
	"farmbook/internal/repo"
	"farmbook/internal/transport/http/handler"
	mdw "farmbook/internal/transport/http/middleware"
)

// NewAdminEngine wires the administration surface; every route requires an
// admin-or-higher role.
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	adminH := handler.NewAdminHandler(repo.NewUserRepo(db), l)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.RequireAuth(jwter), mdw.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", adminH.ListUsers)
		admin.POST("/users/:id/deactivate", adminH.Deactivate)
	}

	return r
}
