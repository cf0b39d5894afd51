package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmbook/internal/domain"
	resp "farmbook/internal/transport/http/response"
	"farmbook/pkg/utils"
)

type AnimalHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAnimalHandler(db *gorm.DB, log *zap.Logger) *AnimalHandler {
	return &AnimalHandler{db: db, log: log}
}

type animalInput struct {
	Name          string     `json:"name" binding:"required"`
	Type          string     `json:"type" binding:"required"`
	Breed         string     `json:"breed"`
	Age           int        `json:"age" binding:"omitempty,min=0"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	PurchasePrice float64    `json:"purchasePrice" binding:"omitempty,min=0"`
	Status        string     `json:"status" binding:"omitempty,oneof=active sold deceased"`
}

type animalTxInput struct {
	Date        time.Time `json:"date" binding:"required"`
	Price       float64   `json:"price" binding:"min=0"`
	Buyer       string    `json:"buyer"`
	BuyerPhone  string    `json:"buyerPhone"`
	Seller      string    `json:"seller"`
	SellerPhone string    `json:"sellerPhone"`
	AnimalName  string    `json:"animalName"`
	AnimalType  string    `json:"animalType"`
	Breed       string    `json:"breed"`
	Notes       string    `json:"notes"`
}

func (h *AnimalHandler) List(c *gin.Context) {
	var animals []domain.Animal
	if err := h.db.WithContext(c).Order("created_at desc").Find(&animals).Error; err != nil {
		h.log.Error("list animals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to fetch animals"))
		return
	}
	c.JSON(http.StatusOK, animals)
}

func (h *AnimalHandler) Create(c *gin.Context) {
	var in animalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(err.Error()))
		return
	}
	status := in.Status
	if status == "" {
		status = domain.AnimalActive
	}
	a := domain.Animal{
		ID:            utils.NewID(),
		OwnerID:       c.GetString("userId"),
		Name:          in.Name,
		Type:          in.Type,
		Breed:         in.Breed,
		Age:           in.Age,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		Status:        status,
	}
	if err := h.db.WithContext(c).Create(&a).Error; err != nil {
		h.log.Error("create animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to create animal"))
		return
	}
	c.JSON(http.StatusCreated, a)
}

// recordFor writes a sale or purchase against a herd animal and flips its
// status accordingly.
func (h *AnimalHandler) recordFor(c *gin.Context, txType, newStatus string) {
	id := c.Param("id")

	var animal domain.Animal
	if err := h.db.WithContext(c).First(&animal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, resp.Error("Animal not found"))
			return
		}
		h.log.Error("find animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to record animal "+txType))
		return
	}

	var in animalTxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(err.Error()))
		return
	}

	tx := h.newTx(c, &in, txType)
	tx.AnimalID = id
	if err := h.db.WithContext(c).Create(&tx).Error; err != nil {
		h.log.Error("create animal transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to record animal "+txType))
		return
	}
	if err := h.db.WithContext(c).Model(&domain.Animal{}).Where("id = ?", id).
		Update("status", newStatus).Error; err != nil {
		h.log.Error("update animal status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to record animal "+txType))
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *AnimalHandler) Purchase(c *gin.Context) { h.recordFor(c, domain.TxPurchase, domain.AnimalActive) }
func (h *AnimalHandler) Sell(c *gin.Context)     { h.recordFor(c, domain.TxSale, domain.AnimalSold) }

func (h *AnimalHandler) ListTransactions(c *gin.Context) {
	var txs []domain.AnimalTransaction
	if err := h.db.WithContext(c).Order("date desc").Find(&txs).Error; err != nil {
		h.log.Error("list animal transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to fetch animal transactions"))
		return
	}
	c.JSON(http.StatusOK, txs)
}

// standalone transactions, not tied to a herd animal
func (h *AnimalHandler) createStandalone(c *gin.Context, txType string) {
	var in animalTxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(err.Error()))
		return
	}
	tx := h.newTx(c, &in, txType)
	if err := h.db.WithContext(c).Create(&tx).Error; err != nil {
		h.log.Error("create animal transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to create animal "+txType))
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *AnimalHandler) CreateSale(c *gin.Context)     { h.createStandalone(c, domain.TxSale) }
func (h *AnimalHandler) CreatePurchase(c *gin.Context) { h.createStandalone(c, domain.TxPurchase) }

func (h *AnimalHandler) newTx(c *gin.Context, in *animalTxInput, txType string) domain.AnimalTransaction {
	return domain.AnimalTransaction{
		ID:          utils.NewID(),
		OwnerID:     c.GetString("userId"),
		Type:        txType,
		Date:        in.Date,
		Price:       in.Price,
		Buyer:       in.Buyer,
		BuyerPhone:  in.BuyerPhone,
		Seller:      in.Seller,
		SellerPhone: in.SellerPhone,
		AnimalName:  in.AnimalName,
		AnimalType:  in.AnimalType,
		Breed:       in.Breed,
		Notes:       in.Notes,
	}
}
