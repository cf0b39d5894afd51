package domain

import "time"

const (
	AnimalActive   = "active"
	AnimalSold     = "sold"
	AnimalDeceased = "deceased"
)

type Animal struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	OwnerID       string     `gorm:"size:36;index" json:"ownerId"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Type          string     `gorm:"size:64;not null" json:"type"`
	Breed         string     `gorm:"size:64" json:"breed,omitempty"`
	Age           int        `json:"age,omitempty"`
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	PurchasePrice float64    `json:"purchasePrice,omitempty"`
	Status        string     `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Animal) TableName() string { return "animals" }

const (
	TxSale     = "sale"
	TxPurchase = "purchase"
)

// AnimalTransaction records a sale or purchase, either linked to a herd
// animal by AnimalID or standing alone with the animal described inline.
type AnimalTransaction struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"size:36;index" json:"ownerId"`
	AnimalID    string    `gorm:"size:36;index" json:"animalId,omitempty"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Date        time.Time `gorm:"not null" json:"date"`
	Price       float64   `gorm:"not null" json:"price"`
	Buyer       string    `gorm:"size:100" json:"buyer,omitempty"`
	BuyerPhone  string    `gorm:"size:16" json:"buyerPhone,omitempty"`
	Seller      string    `gorm:"size:100" json:"seller,omitempty"`
	SellerPhone string    `gorm:"size:16" json:"sellerPhone,omitempty"`
	AnimalName  string    `gorm:"size:100" json:"animalName,omitempty"`
	AnimalType  string    `gorm:"size:64" json:"animalType,omitempty"`
	Breed       string    `gorm:"size:64" json:"breed,omitempty"`
	Notes       string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (AnimalTransaction) TableName() string { return "animal_transactions" }
