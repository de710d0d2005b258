package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

func catalogFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()
	pizza := model.Category{Name: "Pizza", Slug: "pizza"}
	pasta := model.Category{Name: "Paste", Slug: "paste"}
	require.NoError(t, db.Create(&pizza).Error)
	require.NoError(t, db.Create(&pasta).Error)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	products := []model.Product{
		{Name: "Margherita", Slug: "margherita", Description: "Clasica cu mozzarella",
			BasePriceCents: 2000, CategoryID: pizza.ID, PopularityScore: 90, Available: true,
			CreatedAt: base},
		{Name: "Pepperoni", Slug: "pepperoni", Description: "Picanta",
			BasePriceCents: 2800, CategoryID: pizza.ID, PopularityScore: 80, Available: true,
			CreatedAt: base.Add(time.Hour)},
		{Name: "Quattro Formaggi", Slug: "quattro-formaggi", Description: "Patru branzeturi",
			BasePriceCents: 3000, CategoryID: pizza.ID, PopularityScore: 80, Available: true,
			CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Carbonara", Slug: "carbonara", Description: "Paste cu ou",
			BasePriceCents: 2400, CategoryID: pasta.ID, PopularityScore: 60, Available: true,
			CreatedAt: base.Add(3 * time.Hour)},
		{Name: "Hidden", Slug: "hidden", Description: "Retrasa din meniu",
			BasePriceCents: 2600, CategoryID: pizza.ID, PopularityScore: 99, Available: false,
			CreatedAt: base.Add(4 * time.Hour)},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestListProductsDefaults(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	assert.EqualValues(t, 4, page.Total) // hidden row excluded
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 4)

	// popularity desc, ties broken by newest first
	assert.Equal(t, "margherita", page.Items[0].Slug)
	assert.Equal(t, "quattro-formaggi", page.Items[1].Slug)
	assert.Equal(t, "pepperoni", page.Items[2].Slug)
	assert.Equal(t, "carbonara", page.Items[3].Slug)
}

func TestListProductsPagination(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.EqualValues(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.ListProducts(ListParams{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	// out-of-range page yields an empty slice, envelope intact
	page, err = svc.ListProducts(ListParams{Page: 9, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 9, page.Page)
}

func TestListProductsEmptyCatalog(t *testing.T) {
	db := testDB(t)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
	assert.Equal(t, 1, page.TotalPages) // never below 1
}

func TestListProductsLimitClamped(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, page.Limit)

	page, err = svc.ListProducts(ListParams{Limit: -3, Page: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)
}

func TestListProductsInvalidSort(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	_, err := svc.ListProducts(ListParams{Sort: "unknown"})
	require.Error(t, err)

	se := AsError(err)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, "BAD_REQUEST", se.Code)
	assert.NotEmpty(t, se.Details["sort"])
}

func TestListProductsSortKeys(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{Sort: SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, "margherita", page.Items[0].Slug)
	assert.Equal(t, "quattro-formaggi", page.Items[len(page.Items)-1].Slug)

	page, err = svc.ListProducts(ListParams{Sort: SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "quattro-formaggi", page.Items[0].Slug)

	page, err = svc.ListProducts(ListParams{Sort: SortNewest})
	require.NoError(t, err)
	assert.Equal(t, "carbonara", page.Items[0].Slug)

	page, err = svc.ListProducts(ListParams{Sort: SortRatingDesc})
	require.NoError(t, err)
	assert.Equal(t, 90, page.Items[0].PopularityScore)
}

func TestListProductsTextFilter(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{Query: "MARGHER"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "margherita", page.Items[0].Slug)

	// matches description too
	page, err = svc.ListProducts(ListParams{Query: "branzeturi"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "quattro-formaggi", page.Items[0].Slug)

	page, err = svc.ListProducts(ListParams{Query: "nothing-matches"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListProductsCategoryFilter(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	page, err := svc.ListProducts(ListParams{Category: "paste"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "carbonara", page.Items[0].Slug)

	// case-insensitive substring of the category name
	page, err = svc.ListProducts(ListParams{Category: "PIZ"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}

func TestGetProductBySlug(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	svc := NewCatalogService(db)

	p, err := svc.GetProductBySlug("margherita")
	require.NoError(t, err)
	assert.Equal(t, "Margherita", p.Name)
	assert.Equal(t, "pizza", p.Category.Slug)

	_, err = svc.GetProductBySlug("no-such-slug")
	assert.Equal(t, KindNotFound, AsError(err).Kind)

	// unavailable looks exactly like absent
	_, err = svc.GetProductBySlug("hidden")
	assert.Equal(t, KindNotFound, AsError(err).Kind)
}

func TestListCategoriesAndIngredients(t *testing.T) {
	db := testDB(t)
	catalogFixtures(t, db)
	require.NoError(t, db.Create(&model.Ingredient{Name: "Mozzarella", Slug: "mozzarella", PriceDeltaCents: 300}).Error)
	svc := NewCatalogService(db)

	cs, err := svc.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	is, err := svc.ListIngredients()
	require.NoError(t, err)
	require.Len(t, is, 1)
	assert.EqualValues(t, 300, is[0].PriceDeltaCents)
}
