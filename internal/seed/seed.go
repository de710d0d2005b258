// Package seed installs the demo catalog: categories, ingredients, the pizza
// recipes with their size/dough variant matrix, and two demo accounts. Every
// write is an upsert keyed on slug or email, so running it twice is safe.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

type recipe struct {
	name        string
	slug        string
	description string
	priceCents  int64
	category    string
	ingredients []string
	popularity  int
	simple      bool
	hidden      bool
}

var categories = []model.Category{
	{Name: "Clasice", Slug: "clasice"},
	{Name: "Picante", Slug: "picante"},
	{Name: "Veggie", Slug: "veggie"},
	{Name: "Cu pui", Slug: "cu-pui"},
	{Name: "Dulci", Slug: "dulci"},
	{Name: "Premium", Slug: "premium"},
	{Name: "Speciale", Slug: "speciale"},
}

var ingredients = []model.Ingredient{
	{Name: "Mozzarella", Slug: "mozzarella", PriceDeltaCents: 0},
	{Name: "Sos roșii", Slug: "sos-rosii", PriceDeltaCents: 0},
	{Name: "Pepperoni", Slug: "pepperoni", PriceDeltaCents: 400},
	{Name: "Ardei", Slug: "ardei", PriceDeltaCents: 200},
	{Name: "Măsline", Slug: "masline", PriceDeltaCents: 200},
	{Name: "Ciuperci", Slug: "ciuperci", PriceDeltaCents: 300},
	{Name: "Porumb", Slug: "porumb", PriceDeltaCents: 200},
	{Name: "Pui", Slug: "pui", PriceDeltaCents: 500},
	{Name: "Șuncă", Slug: "sunca", PriceDeltaCents: 400},
	{Name: "Ananas", Slug: "ananas", PriceDeltaCents: 300},
	{Name: "Ceapă", Slug: "ceapa", PriceDeltaCents: 150},
	{Name: "Jalapeño", Slug: "jalapeno", PriceDeltaCents: 300},
	{Name: "Parmezan", Slug: "parmezan", PriceDeltaCents: 400},
	{Name: "Busuioc", Slug: "busuioc", PriceDeltaCents: 100},
}

var recipes = []recipe{
	{"Margherita", "margherita", "Clasică cu sos și mozzarella", 2000, "clasice",
		[]string{"sos-rosii", "mozzarella", "busuioc"}, 90, false, false},
	{"Pepperoni", "pepperoni", "Pepperoni și mozzarella", 2800, "picante",
		[]string{"sos-rosii", "mozzarella", "pepperoni"}, 84, false, false},
	{"Veggie Mix", "veggie-mix", "Legume proaspete", 2600, "veggie",
		[]string{"sos-rosii", "mozzarella", "ardei", "masline", "ciuperci", "porumb", "ceapa", "busuioc"}, 70, false, false},
	{"Chicken Deluxe", "chicken-deluxe", "Pui și legume", 2500, "cu-pui",
		[]string{"sos-rosii", "mozzarella", "pui", "ardei", "ciuperci"}, 77, false, false},
	{"Hawaiian", "hawaiian", "Șuncă și ananas", 2700, "clasice",
		[]string{"sos-rosii", "mozzarella", "ananas", "sunca"}, 63, false, false},
	{"Spicy Inferno", "spicy-inferno", "Jalapeño și pepperoni", 2900, "picante",
		[]string{"sos-rosii", "mozzarella", "jalapeno", "pepperoni"}, 56, false, false},
	{"Formaggi", "formaggi", "Brânzeturi variate", 3000, "premium",
		[]string{"mozzarella", "parmezan"}, 49, false, false},
	{"Bianca", "bianca", "Fără sos roșu, brânzeturi și ierburi", 2400, "premium",
		[]string{"mozzarella", "parmezan", "busuioc"}, 35, true, false},
	{"Rustica", "rustica", "Legume rustice coapte", 2300, "veggie",
		[]string{"sos-rosii", "mozzarella", "ciuperci", "ardei", "ceapa"}, 28, true, false},
	{"Calzone Secret", "calzone-secret", "Nu mai este în meniu", 2600, "speciale",
		[]string{"sos-rosii", "mozzarella", "sunca"}, 10, true, true},
}

var variantMatrix = []model.ProductVariant{
	{Size: model.SizeSmall, Dough: model.DoughThin, PriceDeltaCents: 0},
	{Size: model.SizeMedium, Dough: model.DoughThin, PriceDeltaCents: 600},
	{Size: model.SizeLarge, Dough: model.DoughThin, PriceDeltaCents: 1200},
	{Size: model.SizeSmall, Dough: model.DoughTraditional, PriceDeltaCents: 200},
	{Size: model.SizeMedium, Dough: model.DoughTraditional, PriceDeltaCents: 800},
	{Size: model.SizeLarge, Dough: model.DoughTraditional, PriceDeltaCents: 1400},
}

func Run(db *gorm.DB) error {
	for _, c := range categories {
		cat := c
		if err := db.Where(model.Category{Slug: cat.Slug}).
			FirstOrCreate(&cat).Error; err != nil {
			return err
		}
	}
	for _, i := range ingredients {
		ing := i
		if err := db.Where(model.Ingredient{Slug: ing.Slug}).
			FirstOrCreate(&ing).Error; err != nil {
			return err
		}
	}

	catBySlug := map[string]model.Category{}
	var cats []model.Category
	if err := db.Find(&cats).Error; err != nil {
		return err
	}
	for _, c := range cats {
		catBySlug[c.Slug] = c
	}
	ingBySlug := map[string]model.Ingredient{}
	var ings []model.Ingredient
	if err := db.Find(&ings).Error; err != nil {
		return err
	}
	for _, i := range ings {
		ingBySlug[i.Slug] = i
	}

	for _, r := range recipes {
		p := model.Product{
			Name:            r.name,
			Slug:            r.slug,
			Description:     r.description,
			BasePriceCents:  r.priceCents,
			IsConfigurable:  !r.simple,
			CategoryID:      catBySlug[r.category].ID,
			PopularityScore: r.popularity,
			Available:       !r.hidden,
		}
		if err := db.Where(model.Product{Slug: r.slug}).FirstOrCreate(&p).Error; err != nil {
			return err
		}

		allowed := make([]model.Ingredient, 0, len(r.ingredients))
		for _, slug := range r.ingredients {
			allowed = append(allowed, ingBySlug[slug])
		}
		if err := db.Model(&p).Association("Ingredients").Replace(allowed); err != nil {
			return err
		}

		if p.IsConfigurable {
			for _, v := range variantMatrix {
				variant := model.ProductVariant{ProductID: p.ID, Size: v.Size, Dough: v.Dough, PriceDeltaCents: v.PriceDeltaCents}
				if err := db.Where(model.ProductVariant{ProductID: p.ID, Size: v.Size, Dough: v.Dough}).
					FirstOrCreate(&variant).Error; err != nil {
					return err
				}
			}
		}
	}

	return seedUsers(db)
}

func seedUsers(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		return err
	}
	now := time.Now()

	verified := model.User{
		Email: "verified@pizza.local", PasswordHash: string(hash),
		Name: "Verified User", Role: model.RoleUser, EmailVerifiedAt: &now,
	}
	if err := db.Where(model.User{Email: verified.Email}).FirstOrCreate(&verified).Error; err != nil {
		return err
	}
	if err := db.Where(model.Cart{UserID: verified.ID}).
		FirstOrCreate(&model.Cart{UserID: verified.ID}).Error; err != nil {
		return err
	}

	unverified := model.User{
		Email: "unverified@pizza.local", PasswordHash: string(hash),
		Name: "Unverified User", Role: model.RoleUser,
	}
	if err := db.Where(model.User{Email: unverified.Email}).FirstOrCreate(&unverified).Error; err != nil {
		return err
	}

	admin := model.User{
		Email: "admin@pizza.local", PasswordHash: string(hash),
		Name: "Admin", Role: model.RoleAdmin, EmailVerifiedAt: &now,
	}
	return db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error
}
