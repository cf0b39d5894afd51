package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmbook/internal/domain"
	resp "farmbook/internal/transport/http/response"
	"farmbook/pkg/utils"
)

// FodderHandler serves the chara (fodder) bookkeeping routes.
type FodderHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewFodderHandler(db *gorm.DB, log *zap.Logger) *FodderHandler {
	return &FodderHandler{db: db, log: log}
}

type fodderPurchaseInput struct {
	Date        time.Time `json:"date" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"min=0"`
	PricePerKg  float64   `json:"pricePerKg" binding:"min=0"`
	TotalAmount float64   `json:"totalAmount" binding:"min=0"`
	Supplier    string    `json:"supplier"`
	Notes       string    `json:"notes"`
}

type fodderConsumptionInput struct {
	Date     time.Time `json:"date" binding:"required"`
	Quantity float64   `json:"quantity" binding:"min=0"`
	AnimalID string    `json:"animalId"`
	Notes    string    `json:"notes"`
}

func (h *FodderHandler) ListPurchases(c *gin.Context) {
	var items []domain.FodderPurchase
	if err := h.db.WithContext(c).Order("date desc").Find(&items).Error; err != nil {
		h.log.Error("list fodder purchases", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to fetch fodder purchases"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *FodderHandler) CreatePurchase(c *gin.Context) {
	var in fodderPurchaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(err.Error()))
		return
	}
	item := domain.FodderPurchase{
		ID:          utils.NewID(),
		OwnerID:     c.GetString("userId"),
		Date:        in.Date,
		Quantity:    in.Quantity,
		PricePerKg:  in.PricePerKg,
		TotalAmount: in.TotalAmount,
		Supplier:    in.Supplier,
		Notes:       in.Notes,
	}
	if err := h.db.WithContext(c).Create(&item).Error; err != nil {
		h.log.Error("create fodder purchase", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to create fodder purchase"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *FodderHandler) ListConsumptions(c *gin.Context) {
	var items []domain.FodderConsumption
	if err := h.db.WithContext(c).Order("date desc").Find(&items).Error; err != nil {
		h.log.Error("list fodder consumptions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to fetch fodder consumptions"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *FodderHandler) CreateConsumption(c *gin.Context) {
	var in fodderConsumptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(err.Error()))
		return
	}
	item := domain.FodderConsumption{
		ID:       utils.NewID(),
		OwnerID:  c.GetString("userId"),
		Date:     in.Date,
		Quantity: in.Quantity,
		AnimalID: in.AnimalID,
		Notes:    in.Notes,
	}
	if err := h.db.WithContext(c).Create(&item).Error; err != nil {
		h.log.Error("create fodder consumption", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to create fodder consumption"))
		return
	}
	c.JSON(http.StatusCreated, item)
}
