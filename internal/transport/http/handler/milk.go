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

type MilkHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMilkHandler(db *gorm.DB, log *zap.Logger) *MilkHandler {
	return &MilkHandler{db: db, log: log}
}

type milkTxInput struct {
	Date          time.Time `json:"date" binding:"required"`
	Quantity      float64   `json:"quantity" binding:"min=0"`
	PricePerLiter float64   `json:"pricePerLiter" binding:"min=0"`
	TotalAmount   float64   `json:"totalAmount" binding:"min=0"`
	Buyer         string    `json:"buyer"`
	BuyerPhone    string    `json:"buyerPhone"`
	Seller        string    `json:"seller"`
	SellerPhone   string    `json:"sellerPhone"`
	Notes         string    `json:"notes"`
}

func (h *MilkHandler) List(c *gin.Context) {
	var txs []domain.MilkTransaction
	if err := h.db.WithContext(c).Order("date desc").Find(&txs).Error; err != nil {
		h.log.Error("list milk transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to fetch milk transactions"))
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *MilkHandler) create(c *gin.Context, txType string) {
	var in milkTxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(err.Error()))
		return
	}
	tx := domain.MilkTransaction{
		ID:            utils.NewID(),
		OwnerID:       c.GetString("userId"),
		Type:          txType,
		Date:          in.Date,
		Quantity:      in.Quantity,
		PricePerLiter: in.PricePerLiter,
		TotalAmount:   in.TotalAmount,
		Buyer:         in.Buyer,
		BuyerPhone:    in.BuyerPhone,
		Seller:        in.Seller,
		SellerPhone:   in.SellerPhone,
		Notes:         in.Notes,
	}
	if err := h.db.WithContext(c).Create(&tx).Error; err != nil {
		h.log.Error("create milk transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to create milk "+txType))
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *MilkHandler) CreateSale(c *gin.Context)     { h.create(c, domain.TxSale) }
func (h *MilkHandler) CreatePurchase(c *gin.Context) { h.create(c, domain.TxPurchase) }
