package model

import (
	"time"

	"gorm.io/datatypes"
)

// Variant enums. A variant row only exists for configurable products.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"

	DoughThin        = "thin"
	DoughTraditional = "traditional"
)

const (
	OrderStatusPaid    = "paid"
	OrderStatusRefused = "refused"
	OrderStatusPending = "pending"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Ingredient struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Slug            string    `gorm:"uniqueIndex;not null" json:"slug"`
	PriceDeltaCents int64     `gorm:"not null;default:0" json:"priceDelta"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Product.Available is a soft flag: unavailable rows stay in the table but are
// hidden from listings and slug lookups.
type Product struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"not null" json:"name"`
	Slug            string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description     string           `json:"description,omitempty"`
	BasePriceCents  int64            `gorm:"not null" json:"basePrice"`
	IsConfigurable  bool             `gorm:"not null;default:false" json:"isConfigurable"`
	CategoryID      uint             `gorm:"index;not null" json:"-"`
	Category        Category         `json:"category"`
	PopularityScore int              `gorm:"not null;default:0;index" json:"popularityScore"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Available       bool             `gorm:"not null;default:true" json:"-"`
	Ingredients     []Ingredient     `gorm:"many2many:product_ingredients" json:"ingredients,omitempty"`
	Variants        []ProductVariant `json:"variants"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"-"`
}

type ProductVariant struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ProductID       uint   `gorm:"not null;uniqueIndex:idx_variant_combo" json:"-"`
	Size            string `gorm:"not null;uniqueIndex:idx_variant_combo" json:"size"`
	Dough           string `gorm:"not null;uniqueIndex:idx_variant_combo" json:"dough"`
	PriceDeltaCents int64  `gorm:"not null;default:0" json:"priceDelta"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"-"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

type CartItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CartID            uint      `gorm:"index;not null" json:"-"`
	ProductID         uint      `gorm:"not null" json:"productId"`
	Product           Product   `json:"product"`
	VariantID         *uint     `json:"variantId,omitempty"`
	CustomIngredients []string  `gorm:"serializer:json" json:"customIngredients,omitempty"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	UserID           uint        `gorm:"index;not null" json:"-"`
	Status           string      `gorm:"not null" json:"status"`
	SubtotalCents    int64       `gorm:"not null" json:"subtotal"`
	TaxesCents       int64       `gorm:"not null" json:"taxes"`
	DeliveryFeeCents int64       `gorm:"not null" json:"deliveryFee"`
	TotalCents       int64       `gorm:"not null" json:"total"`
	DeliveryAddress  string      `gorm:"not null" json:"deliveryAddress"`
	DeliveryEta      time.Time   `json:"deliveryEta"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// SnapshotConfig is the configuration of a line item as captured at order
// creation. Later edits to products, variants or ingredients never touch it.
type SnapshotConfig struct {
	Size              string   `json:"size,omitempty"`
	Dough             string   `json:"dough,omitempty"`
	CustomIngredients []string `json:"customIngredients,omitempty"`
}

type OrderItem struct {
	ID             uint                               `gorm:"primaryKey" json:"id"`
	OrderID        uint                               `gorm:"index;not null" json:"-"`
	ProductID      uint                               `gorm:"not null" json:"productId"`
	Quantity       int                                `gorm:"not null" json:"quantity"`
	SnapshotName   string                             `gorm:"not null" json:"name"`
	SnapshotConfig datatypes.JSONType[SnapshotConfig] `json:"config"`
	UnitPriceCents int64                              `gorm:"not null" json:"unitPrice"`
	LineTotalCents int64                              `gorm:"not null" json:"lineTotal"`
}

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Name            string     `gorm:"not null" json:"name"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `gorm:"not null;default:user" json:"role"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

func (User) TableName() string { return "users" }

// Single use: the row is deleted in the same transaction that marks the user
// verified.
type EmailVerificationToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// PurchaseStat aggregates order volume per product. The row with a nil UserID
// is the global counter.
type PurchaseStat struct {
	ID        uint  `gorm:"primaryKey"`
	ProductID uint  `gorm:"not null;index"`
	UserID    *uint `gorm:"index"`
	Count     int64 `gorm:"not null;default:0"`
}
