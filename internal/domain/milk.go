package domain

import "time"

type MilkTransaction struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID       string    `gorm:"size:36;index" json:"ownerId"`
	Type          string    `gorm:"size:16;not null" json:"type"`
	Date          time.Time `gorm:"not null" json:"date"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	PricePerLiter float64   `gorm:"not null" json:"pricePerLiter"`
	TotalAmount   float64   `gorm:"not null" json:"totalAmount"`
	Buyer         string    `gorm:"size:100" json:"buyer,omitempty"`
	BuyerPhone    string    `gorm:"size:16" json:"buyerPhone,omitempty"`
	Seller        string    `gorm:"size:100" json:"seller,omitempty"`
	SellerPhone   string    `gorm:"size:16" json:"sellerPhone,omitempty"`
	Notes         string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (MilkTransaction) TableName() string { return "milk_transactions" }
