package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmbook/internal/core/auth"
	"farmbook/internal/core/cache"
	"farmbook/internal/repo"
	"farmbook/internal/transport/http/handler"
	mdw "farmbook/internal/transport/http/middleware"
)

// NewAPIEngine wires the farm API: public auth routes plus the protected
// bookkeeping surface behind the bearer-token gate.
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, cch *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authH := handler.NewAuthHandler(repo.NewUserRepo(db), jwter, l)
	animalH := handler.NewAnimalHandler(db, l)
	milkH := handler.NewMilkHandler(db, l)
	fodderH := handler.NewFodderHandler(db, l)
	reportH := handler.NewReportHandler(cch, l)

	r.POST("/auth/signup", authH.Signup)
	r.POST("/auth/login", authH.Login)

	protected := r.Group("")
	protected.Use(mdw.RequireAuth(jwter))
	{
		protected.GET("/me", authH.Me)

		animals := protected.Group("/animals")
		{
			animals.GET("", animalH.List)
			animals.POST("", animalH.Create)
			animals.GET("/transactions", animalH.ListTransactions)
			animals.POST("/sale", animalH.CreateSale)
			animals.POST("/purchase", animalH.CreatePurchase)
			animals.POST("/:id/purchase", animalH.Purchase)
			animals.POST("/:id/sale", animalH.Sell)
		}

		milk := protected.Group("/milk")
		{
			milk.GET("", milkH.List)
			milk.POST("/sale", milkH.CreateSale)
			milk.POST("/purchase", milkH.CreatePurchase)
		}

		// the mobile client still calls fodder routes "chara"
		chara := protected.Group("/chara")
		{
			chara.GET("/purchases", fodderH.ListPurchases)
			chara.POST("/purchases", fodderH.CreatePurchase)
			chara.GET("/consumptions", fodderH.ListConsumptions)
			chara.POST("/consumptions", fodderH.CreateConsumption)
		}

		protected.GET("/reports/profit-loss", reportH.ProfitLoss)
	}

	return r
}
