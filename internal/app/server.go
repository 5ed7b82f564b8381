package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/niranjan1960/banos-dessert/internal/handlers"
	"github.com/niranjan1960/banos-dessert/internal/service"
	"github.com/niranjan1960/banos-dessert/internal/store"
	"github.com/niranjan1960/banos-dessert/internal/store/gormstore"
	"github.com/niranjan1960/banos-dessert/internal/store/mongostore"
)

// openStore picks the backend named by cfg.StoreDriver and wraps it with
// the timeout and retry policy.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.StoreDriver {
	case DriverMemory:
		s = store.NewMemory()
	case DriverFile:
		s, err = store.OpenFile(cfg.StorePath)
	case DriverPostgres:
		s, err = gormstore.Open(cfg.DSN)
	case DriverMongo:
		s, err = mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	log.Info("store ready", slog.String("driver", cfg.StoreDriver))
	return store.WithPolicy(s, cfg.StorePolicy, log), nil
}

// NewServer wires the store, services and routes. The returned cleanup
// closes the live feed, waits for pending order emails and closes the
// store.
func NewServer(ctx context.Context, cfg Config, log *slog.Logger) (*gin.Engine, func(), error) {
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	r, stop, err := newRouter(cfg, st, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stop(closeCtx)
		if c, ok := st.(store.Closer); ok {
			if err := c.Close(closeCtx); err != nil {
				log.Warn("store close", slog.Any("err", err))
			}
		}
	}
	return r, cleanup, nil
}

// newRouter also returns a stop func that disconnects live clients and
// drains outgoing mail.
func newRouter(cfg Config, st store.Store, log *slog.Logger) (*gin.Engine, func(context.Context), error) {
	// --- Services ---
	authSvc, err := service.NewAuthService(st, bcrypt.DefaultCost, log)
	if err != nil {
		return nil, nil, err
	}
	locks := service.NewKeyedMutex()
	contentSvc := service.NewContentService(st)
	catalogSvc := service.NewCatalogService(st, contentSvc, log)
	cartSvc := service.NewCartService(st, catalogSvc, locks)
	paymentSvc := service.NewPaymentService(st)
	hub := handlers.NewHub(log)
	orderSvc := service.NewOrderService(st, locks, service.OrderOptions{
		Pricing: cfg.Pricing,
		Policy:  cfg.StatusPolicy,
		Email:   service.NewEmailService(cfg.SMTP),
		Events:  hub,
		Log:     log,
	})
	tokens := service.NewTokens(cfg.JWTSecret, cfg.SessionTTL)

	auth := handlers.NewAuthHTTP(authSvc, log)
	cart := handlers.NewCartHTTP(cartSvc, log)
	orders := handlers.NewOrdersHTTP(orderSvc, log)
	catalog := handlers.NewCatalogHTTP(catalogSvc, log)
	content := handlers.NewContentHTTP(contentSvc, log)
	payments := handlers.NewPaymentsHTTP(paymentSvc, log)

	// --- Gin ---
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.HeaderAPIKey},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", handlers.HeaderSessionToken},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	root := r.Group(cfg.MountPrefix)
	root.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	admin := root.Group("/admin", handlers.AdminKey(cfg.AdminAPIKey))
	// The live feed outlives any request timeout.
	admin.GET("/orders/live", hub.Serve)

	api := root.Group("", handlers.Timeout(cfg.RequestTimeout))

	// --- Public content ---
	api.GET("/content/products", catalog.PublicProducts)
	api.GET("/content/serving-ideas", catalog.PublicServingIdeas)
	api.GET("/content/settings", catalog.PublicSettings)
	api.GET("/content/document", content.Get)

	// --- Storefront (session scoped) ---
	shop := api.Group("", handlers.Sessions(tokens, cfg.CookieSecure))
	shop.POST("/auth/signup", auth.Signup)
	shop.POST("/auth/login", auth.Login)
	shop.POST("/auth/logout", auth.Logout)
	shop.GET("/auth/me", auth.Me)

	shop.GET("/cart", cart.Get)
	shop.DELETE("/cart", cart.Clear)
	shop.POST("/cart/items", cart.Add)
	shop.PUT("/cart/items/:productId", cart.UpdateQuantity)
	shop.DELETE("/cart/items/:productId", cart.Remove)

	shop.POST("/checkout", orders.Checkout)
	shop.GET("/orders", auth.RequireUser, orders.Mine)

	// --- Admin ---
	adm := api.Group("/admin", handlers.AdminKey(cfg.AdminAPIKey))
	adm.GET("/products", catalog.ListProducts)
	adm.POST("/products", catalog.CreateProduct)
	adm.PUT("/products/:id", catalog.UpdateProduct)
	adm.DELETE("/products/:id", catalog.DeleteProduct)

	adm.GET("/serving-ideas", catalog.ListServingIdeas)
	adm.POST("/serving-ideas", catalog.CreateServingIdea)
	adm.PUT("/serving-ideas/:id", catalog.UpdateServingIdea)
	adm.DELETE("/serving-ideas/:id", catalog.DeleteServingIdea)

	adm.GET("/orders", orders.List)
	adm.POST("/orders", orders.Create)
	adm.GET("/orders/stats", orders.Stats)
	adm.GET("/orders/export", orders.Export)
	adm.PUT("/orders/:id/status", orders.SetStatus)
	adm.PUT("/orders/:id/notes", orders.SetNotes)

	adm.GET("/settings", catalog.Settings)
	adm.PUT("/settings", catalog.UpdateSettings)

	adm.GET("/content", content.Get)
	adm.PUT("/content/:section", content.ReplaceSection)

	adm.GET("/payment-gateways", payments.List)
	adm.PUT("/payment-gateways/:id", payments.Update)
	adm.PUT("/payment-gateways/:id/credentials", payments.SetCredentials)

	adm.POST("/initialize", catalog.Initialize)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	stop := func(ctx context.Context) {
		hub.Close()
		if err := orderSvc.Close(ctx); err != nil {
			log.Warn("order emails still pending at shutdown", slog.Any("err", err))
		}
	}
	return r, stop, nil
}
