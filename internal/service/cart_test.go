package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

// shopFixtures installs one configurable and one simple product and returns
// them fully loaded.
func shopFixtures(t *testing.T, db *gorm.DB) (model.Product, model.Product) {
	t.Helper()
	cat := model.Category{Name: "Pizza", Slug: "pizza"}
	require.NoError(t, db.Create(&cat).Error)

	moz := model.Ingredient{Name: "Mozzarella", Slug: "mozzarella", PriceDeltaCents: 0}
	pep := model.Ingredient{Name: "Pepperoni", Slug: "pepperoni", PriceDeltaCents: 400}
	ciu := model.Ingredient{Name: "Ciuperci", Slug: "ciuperci", PriceDeltaCents: 300}
	for _, ing := range []*model.Ingredient{&moz, &pep, &ciu} {
		require.NoError(t, db.Create(ing).Error)
	}

	configurable := model.Product{
		Name: "Margherita", Slug: "margherita", BasePriceCents: 2000,
		IsConfigurable: true, CategoryID: cat.ID, Available: true,
		Ingredients: []model.Ingredient{moz, pep, ciu},
		Variants: []model.ProductVariant{
			{Size: model.SizeSmall, Dough: model.DoughThin, PriceDeltaCents: 0},
			{Size: model.SizeLarge, Dough: model.DoughTraditional, PriceDeltaCents: 1400},
		},
	}
	require.NoError(t, db.Create(&configurable).Error)

	simple := model.Product{
		Name: "Bianca", Slug: "bianca", BasePriceCents: 2400,
		IsConfigurable: false, CategoryID: cat.ID, Available: true,
		Ingredients: []model.Ingredient{moz},
	}
	require.NoError(t, db.Create(&simple).Error)

	require.NoError(t, db.Preload("Ingredients").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		First(&configurable, configurable.ID).Error)
	require.NoError(t, db.Preload("Ingredients").First(&simple, simple.ID).Error)
	return configurable, simple
}

func TestCartAddAndGet(t *testing.T) {
	db := testDB(t)
	configurable, _ := shopFixtures(t, db)
	svc := NewCartService(db)

	cart, err := svc.AddItem(1, AddItemInput{
		ProductID:         configurable.ID,
		VariantID:         &configurable.Variants[0].ID,
		CustomIngredients: []string{"pepperoni"},
		Quantity:          2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Margherita", cart.Items[0].Product.Name)
}

func TestCartMergesIdenticalConfigurations(t *testing.T) {
	db := testDB(t)
	configurable, _ := shopFixtures(t, db)
	svc := NewCartService(db)

	in := AddItemInput{
		ProductID:         configurable.ID,
		VariantID:         &configurable.Variants[0].ID,
		CustomIngredients: []string{"pepperoni", "ciuperci"},
		Quantity:          1,
	}
	_, err := svc.AddItem(1, in)
	require.NoError(t, err)

	// same configuration, ingredient order flipped: merged
	in.CustomIngredients = []string{"ciuperci", "pepperoni"}
	cart, err := svc.AddItem(1, in)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// different variant: new line
	in.VariantID = &configurable.Variants[1].ID
	cart, err = svc.AddItem(1, in)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartRejectsBadSelections(t *testing.T) {
	db := testDB(t)
	configurable, simple := shopFixtures(t, db)
	svc := NewCartService(db)

	_, err := svc.AddItem(1, AddItemInput{ProductID: configurable.ID, Quantity: 0})
	assert.Equal(t, KindValidation, AsError(err).Kind)

	_, err = svc.AddItem(1, AddItemInput{ProductID: 9999, Quantity: 1})
	assert.Equal(t, KindNotFound, AsError(err).Kind)

	_, err = svc.AddItem(1, AddItemInput{
		ProductID: simple.ID,
		VariantID: &configurable.Variants[0].ID,
		Quantity:  1,
	})
	assert.Equal(t, KindValidation, AsError(err).Kind)

	_, err = svc.AddItem(1, AddItemInput{
		ProductID:         configurable.ID,
		CustomIngredients: []string{"ananas"},
		Quantity:          1,
	})
	assert.Equal(t, KindValidation, AsError(err).Kind)
}

func TestCartUpdateRemoveClear(t *testing.T) {
	db := testDB(t)
	configurable, simple := shopFixtures(t, db)
	svc := NewCartService(db)

	cart, err := svc.AddItem(1, AddItemInput{ProductID: configurable.ID, Quantity: 1})
	require.NoError(t, err)
	cart, err = svc.AddItem(1, AddItemInput{ProductID: simple.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = svc.UpdateQuantity(1, cart.Items[0].ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// another user cannot touch this cart's items
	_, err = svc.UpdateQuantity(2, cart.Items[0].ID, 1)
	assert.Equal(t, KindNotFound, AsError(err).Kind)

	require.NoError(t, svc.RemoveItem(1, cart.Items[1].ID))
	cart, err = svc.Get(1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	require.NoError(t, svc.Clear(1))
	cart, err = svc.Get(1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
