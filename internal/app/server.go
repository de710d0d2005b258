package app

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/api"
	"github.com/dorincreciun/Server-Pizza/internal/handlers"
	"github.com/dorincreciun/Server-Pizza/internal/model"
	"github.com/dorincreciun/Server-Pizza/internal/seed"
	"github.com/dorincreciun/Server-Pizza/internal/service"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Ingredient{},
		&model.Product{},
		&model.ProductVariant{},
		&model.User{},
		&model.EmailVerificationToken{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.PurchaseStat{},
	)
}

// NewServer opens the database, runs migrations and builds the engine.
func NewServer(cfg Config) (*gin.Engine, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if s, err := db.DB(); err == nil {
			_ = s.Close()
		}
	}
	return NewRouter(cfg, db), cleanup, nil
}

// NewRouter wires services and routes over an already opened database.
func NewRouter(cfg Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	emailSvc := service.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	authSvc := service.NewAuthService(db, emailSvc, service.TokenConfig{
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		VerifyTTL:     cfg.VerifyTTL,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	catalogSvc := service.NewCatalogService(db)
	cartSvc := service.NewCartService(db)
	checkoutSvc := service.NewCheckoutService(db, emailSvc, service.OrderConfig{
		TaxPercent:                 cfg.TaxPercent,
		DeliveryFeeCents:           cfg.DeliveryFeeCents,
		FreeDeliveryThresholdCents: cfg.FreeDeliveryThresholdCents,
		ETAMinMinutes:              cfg.ETAMinMinutes,
		ETAMaxMinutes:              cfg.ETAMaxMinutes,
		DefaultStatus:              cfg.DefaultOrderStatus,
	})

	authHTTP := handlers.NewAuthHTTP(authSvc, cfg.UseCookies, cfg.Env == "prod", cfg.RefreshTTL)
	catalogHTTP := handlers.NewCatalogHTTP(catalogSvc)
	cartHTTP := handlers.NewCartHTTP(cartSvc)
	ordersHTTP := handlers.NewOrdersHTTP(checkoutSvc)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/docs/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.OpenAPI)
	})

	requireAuth := handlers.RequireAuth(authSvc)
	authLimiter := handlers.RateLimit(cfg.RateLimitWindow, cfg.RateLimitMaxAuth)

	apiGroup := r.Group("/api", handlers.RateLimit(cfg.RateLimitWindow, cfg.RateLimitMaxGlobal))

	auth := apiGroup.Group("/auth", authLimiter)
	{
		auth.POST("/register", authHTTP.Register)
		auth.GET("/verify-email", authHTTP.VerifyEmail)
		auth.POST("/resend-verification", authHTTP.ResendVerification)
		auth.POST("/login", authHTTP.Login)
		auth.POST("/refresh", authHTTP.Refresh)
		auth.POST("/logout", authHTTP.Logout)
		auth.GET("/me", requireAuth, authHTTP.Me)
		auth.POST("/change-password", requireAuth, authHTTP.ChangePassword)
	}

	apiGroup.GET("/users/me", requireAuth, authHTTP.Profile)

	apiGroup.GET("/products", catalogHTTP.ListProducts)
	apiGroup.GET("/products/:slug", catalogHTTP.GetProduct)
	apiGroup.GET("/categories", catalogHTTP.ListCategories)
	apiGroup.GET("/ingredients", catalogHTTP.ListIngredients)

	cart := apiGroup.Group("/cart", authLimiter, requireAuth)
	{
		cart.GET("", cartHTTP.Get)
		cart.DELETE("", cartHTTP.Clear)
		cart.POST("/items", cartHTTP.AddItem)
		cart.PATCH("/items/:id", cartHTTP.UpdateItem)
		cart.DELETE("/items/:id", cartHTTP.RemoveItem)
	}

	orders := apiGroup.Group("/orders", authLimiter)
	{
		orders.GET("/recommendations", ordersHTTP.Recommendations)
		orders.POST("", requireAuth, ordersHTTP.Create)
		orders.GET("/my", requireAuth, ordersHTTP.ListMy)
	}

	// open in dev so a fresh database can be bootstrapped; admin-only in prod
	admin := apiGroup.Group("/admin")
	if cfg.Env == "prod" {
		admin.Use(requireAuth, handlers.RequireRole(authSvc, model.RoleAdmin))
	}
	admin.POST("/seed", func(c *gin.Context) {
		if err := seed.Run(db); err != nil {
			handlers.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}
