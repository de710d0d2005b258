package service

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

type AddItemInput struct {
	ProductID         uint
	VariantID         *uint
	CustomIngredients []string
	Quantity          int
}

type CartService interface {
	Get(userID uint) (model.Cart, error)
	AddItem(userID uint, in AddItemInput) (model.Cart, error)
	UpdateQuantity(userID uint, itemID uint, quantity int) (model.Cart, error)
	RemoveItem(userID uint, itemID uint) error
	Clear(userID uint) error
}

type cartService struct{ db *gorm.DB }

func NewCartService(db *gorm.DB) CartService { return &cartService{db: db} }

func (s *cartService) cartFor(userID uint) (model.Cart, error) {
	var c model.Cart
	err := s.db.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = model.Cart{UserID: userID}
		return c, s.db.Create(&c).Error
	}
	return c, err
}

func (s *cartService) loaded(userID uint) (model.Cart, error) {
	c, err := s.cartFor(userID)
	if err != nil {
		return model.Cart{}, err
	}
	err = s.db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id asc") }).
		Preload("Items.Product").
		First(&c, c.ID).Error
	return c, err
}

func (s *cartService) Get(userID uint) (model.Cart, error) {
	return s.loaded(userID)
}

func sameConfiguration(it model.CartItem, in AddItemInput) bool {
	switch {
	case it.ProductID != in.ProductID:
		return false
	case (it.VariantID == nil) != (in.VariantID == nil):
		return false
	case it.VariantID != nil && *it.VariantID != *in.VariantID:
		return false
	}
	a := append([]string(nil), it.CustomIngredients...)
	b := append([]string(nil), in.CustomIngredients...)
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *cartService) AddItem(userID uint, in AddItemInput) (model.Cart, error) {
	if in.Quantity <= 0 {
		return model.Cart{}, NewValidation("Invalid quantity", map[string][]string{
			"quantity": {"quantity must be at least 1"},
		})
	}

	var p model.Product
	err := s.db.Preload("Ingredients").Preload("Variants").First(&p, in.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, NewNotFound("Product not found")
	}
	if err != nil {
		return model.Cart{}, err
	}
	if !p.Available {
		return model.Cart{}, NewNotFound("Product not found")
	}

	// Reject bad variant/ingredient selections up front; the price itself is
	// resolved again at checkout.
	if _, err := UnitPriceCents(p, Selection{VariantID: in.VariantID, CustomIngredients: in.CustomIngredients}); err != nil {
		return model.Cart{}, err
	}

	cart, err := s.cartFor(userID)
	if err != nil {
		return model.Cart{}, err
	}

	var items []model.CartItem
	if err := s.db.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return model.Cart{}, err
	}
	for i := range items {
		if sameConfiguration(items[i], in) {
			items[i].Quantity += in.Quantity
			if err := s.db.Save(&items[i]).Error; err != nil {
				return model.Cart{}, err
			}
			return s.loaded(userID)
		}
	}

	item := model.CartItem{
		CartID:            cart.ID,
		ProductID:         in.ProductID,
		VariantID:         in.VariantID,
		CustomIngredients: in.CustomIngredients,
		Quantity:          in.Quantity,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return model.Cart{}, err
	}
	return s.loaded(userID)
}

func (s *cartService) ownItem(userID, itemID uint) (model.CartItem, error) {
	cart, err := s.cartFor(userID)
	if err != nil {
		return model.CartItem{}, err
	}
	var it model.CartItem
	err = s.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, NewNotFound("Cart item not found")
	}
	return it, err
}

func (s *cartService) UpdateQuantity(userID uint, itemID uint, quantity int) (model.Cart, error) {
	if quantity <= 0 {
		return model.Cart{}, NewValidation("Invalid quantity", map[string][]string{
			"quantity": {"quantity must be at least 1"},
		})
	}
	it, err := s.ownItem(userID, itemID)
	if err != nil {
		return model.Cart{}, err
	}
	it.Quantity = quantity
	if err := s.db.Save(&it).Error; err != nil {
		return model.Cart{}, err
	}
	return s.loaded(userID)
}

func (s *cartService) RemoveItem(userID uint, itemID uint) error {
	it, err := s.ownItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.db.Delete(&it).Error
}

func (s *cartService) Clear(userID uint) error {
	cart, err := s.cartFor(userID)
	if err != nil {
		return err
	}
	return s.db.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error
}
