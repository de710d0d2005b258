package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

// OrderConfig carries the totals policy. It is built from the application
// config once and injected, never read from the environment here.
type OrderConfig struct {
	TaxPercent                 int64
	DeliveryFeeCents           int64
	FreeDeliveryThresholdCents int64
	ETAMinMinutes              int
	ETAMaxMinutes              int
	DefaultStatus              string
}

type OrderPage struct {
	Items      []model.Order `json:"items"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
}

type CheckoutService interface {
	Checkout(userID uint, deliveryAddress string) (model.Order, error)
	ListOrders(userID uint, page, limit int) (OrderPage, error)
}

type checkoutService struct {
	db    *gorm.DB
	email EmailService
	cfg   OrderConfig
}

func NewCheckoutService(db *gorm.DB, email EmailService, cfg OrderConfig) CheckoutService {
	return &checkoutService{db: db, email: email, cfg: cfg}
}

// roundHalfUpPercent applies an integer percentage to a cent amount, rounding
// to the nearest cent. Derived amounts are rounded as they are computed, not
// only on the final total.
func roundHalfUpPercent(amountCents, percent int64) int64 {
	return (amountCents*percent + 50) / 100
}

func (s *checkoutService) Checkout(userID uint, deliveryAddress string) (model.Order, error) {
	var cart model.Cart
	err := s.db.Preload("Items").Preload("Items.Product.Ingredients").Preload("Items.Product.Variants").
		Where("user_id = ?", userID).First(&cart).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, err
	}
	if len(cart.Items) == 0 {
		return model.Order{}, NewValidation("Cart is empty", nil)
	}

	var subtotal int64
	oitems := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		p := it.Product
		if !p.Available {
			return model.Order{}, NewValidation("Product no longer available", map[string][]string{
				"items": {fmt.Sprintf("product %q is no longer available", p.Slug)},
			})
		}
		variant, verr := ResolveVariant(p, it.VariantID)
		if verr != nil {
			return model.Order{}, verr
		}
		unit, perr := UnitPriceCents(p, Selection{VariantID: it.VariantID, CustomIngredients: it.CustomIngredients})
		if perr != nil {
			return model.Order{}, perr
		}

		// Freeze name, configuration and price. The order item never reads
		// live catalog rows again.
		cfg := model.SnapshotConfig{CustomIngredients: it.CustomIngredients}
		if variant != nil {
			cfg.Size = variant.Size
			cfg.Dough = variant.Dough
		}
		line := unit * int64(it.Quantity)
		subtotal += line
		oitems = append(oitems, model.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			SnapshotName:   p.Name,
			SnapshotConfig: datatypes.NewJSONType(cfg),
			UnitPriceCents: unit,
			LineTotalCents: line,
		})
	}

	taxes := roundHalfUpPercent(subtotal, s.cfg.TaxPercent)
	var deliveryFee int64
	if subtotal < s.cfg.FreeDeliveryThresholdCents {
		deliveryFee = s.cfg.DeliveryFeeCents
	}

	etaSpread := s.cfg.ETAMaxMinutes - s.cfg.ETAMinMinutes
	if etaSpread < 0 {
		etaSpread = 0
	}
	eta := time.Now().Add(time.Duration(s.cfg.ETAMinMinutes+rand.Intn(etaSpread+1)) * time.Minute)

	order := model.Order{
		UserID:           userID,
		Status:           s.cfg.DefaultStatus,
		SubtotalCents:    subtotal,
		TaxesCents:       taxes,
		DeliveryFeeCents: deliveryFee,
		TotalCents:       subtotal + taxes + deliveryFee,
		DeliveryAddress:  deliveryAddress,
		DeliveryEta:      eta,
		Items:            oitems,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, it := range cart.Items {
			if err := bumpPurchaseStat(tx, it.ProductID, nil, int64(it.Quantity)); err != nil {
				return err
			}
			uid := userID
			if err := bumpPurchaseStat(tx, it.ProductID, &uid, int64(it.Quantity)); err != nil {
				return err
			}
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		return model.Order{}, err
	}

	// best-effort confirmation mail
	var u model.User
	if err := s.db.First(&u, userID).Error; err == nil {
		if err := s.email.Send(u.Email, "Order confirmation",
			fmt.Sprintf("Thanks %s! Your order #%d total %.2f was received.", u.Name, order.ID, float64(order.TotalCents)/100.0)); err != nil {
			log.Printf("order %d: confirmation mail: %v", order.ID, err)
		}
	}

	return order, nil
}

func bumpPurchaseStat(tx *gorm.DB, productID uint, userID *uint, n int64) error {
	q := tx.Model(&model.PurchaseStat{}).Where("product_id = ?", productID)
	if userID == nil {
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ?", *userID)
	}
	res := q.UpdateColumn("count", gorm.Expr("count + ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&model.PurchaseStat{ProductID: productID, UserID: userID, Count: n}).Error
	}
	return nil
}

func (s *checkoutService) ListOrders(userID uint, page, limit int) (OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	q := s.db.Model(&model.Order{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return OrderPage{}, err
	}

	var orders []model.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return OrderPage{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return OrderPage{Items: orders, Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}
