package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmbook/internal/core/cache"
)

type ProfitLossDetails struct {
	MilkSales       float64 `json:"milkSales"`
	AnimalSales     float64 `json:"animalSales"`
	MilkPurchases   float64 `json:"milkPurchases"`
	AnimalPurchases float64 `json:"animalPurchases"`
	FodderPurchases float64 `json:"charaPurchases"`
	OtherExpenses   float64 `json:"otherExpenses"`
}

type ProfitLossReport struct {
	Period        string            `json:"period"`
	TotalRevenue  float64           `json:"totalRevenue"`
	TotalExpenses float64           `json:"totalExpenses"`
	Profit        float64           `json:"profit"`
	Loss          float64           `json:"loss"`
	Details       ProfitLossDetails `json:"details"`
}

// ReportHandler serves report skeletons. The aggregation math is still
// pending product design; the shape is fixed so the app can render it.
type ReportHandler struct {
	cache *cache.Cache // nil when redis is not configured
	log   *zap.Logger
}

func NewReportHandler(cch *cache.Cache, log *zap.Logger) *ReportHandler {
	return &ReportHandler{cache: cch, log: log}
}

func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")

	if h.cache == nil {
		c.JSON(http.StatusOK, &ProfitLossReport{Period: period})
		return
	}

	report, err := cache.GetOrLoadJSON(h.cache, c.Request.Context(),
		"reports:profit-loss:"+period, 30*time.Second,
		func(context.Context) (*ProfitLossReport, error) {
			return &ProfitLossReport{Period: period}, nil
		})
	if err != nil {
		h.log.Warn("report cache", zap.Error(err))
		c.JSON(http.StatusOK, &ProfitLossReport{Period: period})
		return
	}
	c.JSON(http.StatusOK, report)
}
