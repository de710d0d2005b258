package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

type ListParams struct {
	Query    string
	Category string
	Page     int
	Limit    int
	Sort     string
}

type ProductPage struct {
	Items      []model.Product `json:"items"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}

type CatalogService interface {
	ListProducts(p ListParams) (ProductPage, error)
	GetProductBySlug(slug string) (model.Product, error)
	ListCategories() ([]model.Category, error)
	ListIngredients() ([]model.Ingredient, error)
}

type catalogService struct{ db *gorm.DB }

func NewCatalogService(db *gorm.DB) CatalogService { return &catalogService{db: db} }

// orderClause maps a sort key to SQL. An unknown key is a hard validation
// error, not a fallback to the default ordering.
func orderClause(sort string) (string, *Error) {
	switch sort {
	case "":
		return "products.popularity_score DESC, products.created_at DESC", nil
	case SortNewest:
		return "products.created_at DESC", nil
	case SortPriceAsc:
		return "products.base_price_cents ASC", nil
	case SortPriceDesc:
		return "products.base_price_cents DESC", nil
	case SortRatingDesc:
		return "products.popularity_score DESC", nil
	default:
		return "", NewValidation("Invalid sort", map[string][]string{
			"sort": {"sort must be one of newest, price_asc, price_desc, rating_desc"},
		})
	}
}

func (s *catalogService) ListProducts(p ListParams) (ProductPage, error) {
	order, verr := orderClause(p.Sort)
	if verr != nil {
		return ProductPage{}, verr
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	q := s.db.Model(&model.Product{}).Where("products.available = ?", true)

	if text := strings.TrimSpace(p.Query); text != "" {
		pat := "%" + strings.ToLower(text) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pat, pat)
	}
	if cat := strings.TrimSpace(p.Category); cat != "" {
		pat := "%" + strings.ToLower(cat) + "%"
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ? OR LOWER(categories.name) LIKE ?", cat, pat)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ProductPage{}, err
	}

	var items []model.Product
	err := q.Preload("Category").Preload("Variants").
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return ProductPage{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return ProductPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetProductBySlug hides unavailable rows behind the same not-found as absent
// slugs, so soft availability never leaks.
func (s *catalogService) GetProductBySlug(slug string) (model.Product, error) {
	var p model.Product
	err := s.db.Preload("Category").Preload("Ingredients").Preload("Variants").
		Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, NewNotFound("Product not found")
	}
	if err != nil {
		return model.Product{}, err
	}
	if !p.Available {
		return model.Product{}, NewNotFound("Product not found")
	}
	return p, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	var cs []model.Category
	return cs, s.db.Order("id asc").Find(&cs).Error
}

func (s *catalogService) ListIngredients() ([]model.Ingredient, error) {
	var is []model.Ingredient
	return is, s.db.Order("id asc").Find(&is).Error
}
