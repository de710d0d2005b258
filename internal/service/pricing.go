package service

import (
	"fmt"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

// Selection is a customer's configuration of a product: an optional variant
// plus optional extra ingredients drawn from the product's allowed set.
type Selection struct {
	VariantID         *uint
	CustomIngredients []string
}

// ResolveVariant checks that the selected variant belongs to the product.
// Variants of non-configurable products do not exist, so any selection on one
// fails the same way.
func ResolveVariant(product model.Product, variantID *uint) (*model.ProductVariant, *Error) {
	if variantID == nil {
		return nil, nil
	}
	if !product.IsConfigurable {
		return nil, NewValidation("Product is not configurable", map[string][]string{
			"variantId": {"product does not accept a variant selection"},
		})
	}
	for i := range product.Variants {
		if product.Variants[i].ID == *variantID {
			return &product.Variants[i], nil
		}
	}
	return nil, NewValidation("Invalid variant", map[string][]string{
		"variantId": {"variant does not belong to this product"},
	})
}

// UnitPriceCents resolves the effective price of one unit:
// base + variant delta + the delta of every selected ingredient. All terms are
// minor-unit integers; the sum is order-independent and never rounded.
// product must be loaded with its Variants and Ingredients.
func UnitPriceCents(product model.Product, sel Selection) (int64, error) {
	variant, verr := ResolveVariant(product, sel.VariantID)
	if verr != nil {
		return 0, verr
	}

	price := product.BasePriceCents
	if variant != nil {
		price += variant.PriceDeltaCents
	}

	allowed := make(map[string]int64, len(product.Ingredients))
	for _, ing := range product.Ingredients {
		allowed[ing.Slug] = ing.PriceDeltaCents
	}
	seen := make(map[string]bool, len(sel.CustomIngredients))
	for _, slug := range sel.CustomIngredients {
		delta, ok := allowed[slug]
		if !ok {
			return 0, NewValidation("Invalid ingredient", map[string][]string{
				"customIngredients": {fmt.Sprintf("ingredient %q is not available for this product", slug)},
			})
		}
		if seen[slug] {
			return 0, NewValidation("Invalid ingredient", map[string][]string{
				"customIngredients": {fmt.Sprintf("ingredient %q selected twice", slug)},
			})
		}
		seen[slug] = true
		price += delta
	}
	return price, nil
}
