package domain

import "time"

// FodderPurchase is a bulk fodder (chara) buy for the farm.
type FodderPurchase struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"size:36;index" json:"ownerId"`
	Date        time.Time `gorm:"not null" json:"date"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	PricePerKg  float64   `gorm:"not null" json:"pricePerKg"`
	TotalAmount float64   `gorm:"not null" json:"totalAmount"`
	Supplier    string    `gorm:"size:100" json:"supplier,omitempty"`
	Notes       string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (FodderPurchase) TableName() string { return "fodder_purchases" }

// FodderConsumption is a daily feed entry, optionally tied to one animal.
type FodderConsumption struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"size:36;index" json:"ownerId"`
	Date      time.Time `gorm:"not null" json:"date"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	AnimalID  string    `gorm:"size:36;index" json:"animalId,omitempty"`
	Notes     string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (FodderConsumption) TableName() string { return "fodder_consumptions" }
