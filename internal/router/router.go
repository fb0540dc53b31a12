package router

import (
	"time"

	"almox/internal/config"
	"almox/internal/handler"
	"almox/internal/middleware"
	"almox/internal/repository"
	"almox/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	poRepo := repository.NewPORepository(db)
	entryRepo := repository.NewEntryRepository(db)
	exitRepo := repository.NewExitRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ledger := service.NewStockLedger(productRepo)
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, rdb)
	supplierSvc := service.NewSupplierService(supplierRepo)
	poSvc := service.NewPOService(poRepo, entryRepo, ledger)
	entrySvc := service.NewEntryService(entryRepo)
	exitSvc := service.NewExitService(exitRepo, productRepo, ledger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	poH := handler.NewPOHandler(poSvc)
	entriesH := handler.NewEntriesHandler(entrySvc)
	exitsH := handler.NewExitsHandler(exitSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/bootstrap", middleware.LoginRateLimiter(), authH.Bootstrap)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public cached lookup — kiosk terminals hit this without a session
	r.GET("/lookup/:code", productsH.Lookup)

	// Protected routes
	api := r.Group("/api", middleware.JWTAuth(cfg.JWTSecret))
	{
		api.POST("/users", authH.Register)

		api.POST("/products", productsH.Register)
		api.GET("/products", productsH.List)
		api.GET("/products/:code", productsH.Get)
		api.PUT("/products/:code", productsH.Update)

		api.POST("/suppliers", suppliersH.Register)
		api.GET("/suppliers", suppliersH.List)
		api.GET("/suppliers/:cnpj", suppliersH.Get)

		api.POST("/purchase-orders", poH.Create)
		api.GET("/purchase-orders", poH.List)
		api.GET("/purchase-orders/:po_number", poH.Get)
		api.PUT("/purchase-orders/:po_number/status", poH.UpdateStatus)
		api.PUT("/purchase-orders/:po_number/receive", poH.Receive)
		api.GET("/purchase-orders/:po_number/pdf", poH.PDF)

		api.GET("/entries", entriesH.List)
		api.GET("/entries/export", entriesH.Export)

		api.POST("/exits", exitsH.Create)
		api.GET("/exits", exitsH.List)
		api.GET("/exits/:id", exitsH.Get)
		api.GET("/exits/:id/pdf", exitsH.PDF)
	}

	// Swagger UI — development only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
