package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	financeapp "github.com/retailpos/backend/internal/application/finance"
	identityapp "github.com/retailpos/backend/internal/application/identity"
	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	orgapp "github.com/retailpos/backend/internal/application/org"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	purchasingapp "github.com/retailpos/backend/internal/application/purchasing"
	reportapp "github.com/retailpos/backend/internal/application/report"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RetailPOS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	storeCreditRepo := persistence.NewGormStoreCreditRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)

	// Transaction scope shared by the multi-aggregate use cases
	scope := persistence.NewGormTransactionScope(db.DB)

	// Optional Redis cache for the sales dashboard
	var reportCache reportapp.Cache
	var redisCache *cache.RedisCache
	if cfg.Report.CacheEnabled {
		redisCache, err = cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		reportCache = redisCache
		log.Info("Report cache enabled",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Duration("ttl", cfg.Report.CacheTTL),
		)
	}
	defer func() {
		if redisCache != nil {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}
	}()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(employeeRepo, roleRepo, jwtService, log)
	employeeService := identityapp.NewEmployeeService(employeeRepo, roleRepo, branchRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, log)
	branchService := orgapp.NewBranchService(branchRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	stockService := inventoryapp.NewStockService(stockItemRepo, stockMovementRepo, scope, log)
	purchaseService := purchasingapp.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, scope, log)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, scope, log)
	returnService := tradeapp.NewReturnService(scope, log)
	storeCreditService := financeapp.NewStoreCreditService(storeCreditRepo, log)
	reportService := reportapp.NewReportService(salesReportRepo, reportCache, cfg.Report.CacheTTL, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	roleHandler := handler.NewRoleHandler(roleService)
	branchHandler := handler.NewBranchHandler(branchService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	inventoryHandler := handler.NewInventoryHandler(stockService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	orderHandler := handler.NewOrderHandler(orderService, returnService, orderRepo)
	storeCreditHandler := handler.NewStoreCreditHandler(storeCreditService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthWithConfig(jwtConfig))

	// Authentication (login and refresh are public, the rest require a token)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Identity domain (employees, roles). Staff administration is
	// restricted to roles holding employees.manage.
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.Use(middleware.RequirePermission("employees.manage"))
	identityRoutes.POST("/employees", employeeHandler.Create)
	identityRoutes.GET("/employees", employeeHandler.List)
	identityRoutes.GET("/employees/:id", employeeHandler.GetByID)
	identityRoutes.PUT("/employees/:id", employeeHandler.Update)
	identityRoutes.PUT("/employees/:id/role", employeeHandler.AssignRole)
	identityRoutes.PUT("/employees/:id/branch", employeeHandler.TransferBranch)
	identityRoutes.POST("/employees/:id/activate", employeeHandler.Activate)
	identityRoutes.POST("/employees/:id/deactivate", employeeHandler.Deactivate)
	identityRoutes.GET("/branches/:branch_id/employees", employeeHandler.ListByBranch)

	identityRoutes.POST("/roles", roleHandler.Create)
	identityRoutes.GET("/roles", roleHandler.List)
	identityRoutes.GET("/roles/:id", roleHandler.GetByID)
	identityRoutes.PUT("/roles/:id", roleHandler.Update)
	identityRoutes.DELETE("/roles/:id", roleHandler.Delete)

	// Org domain (branches). Reads stay open to all staff; mutations
	// need branches.manage.
	manageBranches := middleware.RequirePermission("branches.manage")
	orgRoutes := router.NewDomainGroup("org", "/org")
	orgRoutes.POST("/branches", manageBranches, branchHandler.Create)
	orgRoutes.GET("/branches", branchHandler.List)
	orgRoutes.GET("/branches/active", branchHandler.ListActive)
	orgRoutes.GET("/branches/:id", branchHandler.GetByID)
	orgRoutes.PUT("/branches/:id", manageBranches, branchHandler.Update)
	orgRoutes.POST("/branches/:id/set-default", manageBranches, branchHandler.SetDefault)
	orgRoutes.POST("/branches/:id/activate", manageBranches, branchHandler.Activate)
	orgRoutes.POST("/branches/:id/deactivate", manageBranches, branchHandler.Deactivate)

	// Catalog domain (products, categories)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/barcode/:barcode", productHandler.GetByBarcode)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.PUT("/products/:id/price", productHandler.ChangePrice)
	catalogRoutes.PUT("/products/:id/category", productHandler.AssignCategory)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	catalogRoutes.POST("/products/:id/discontinue", productHandler.Discontinue)
	catalogRoutes.GET("/products/category/:category_id", productHandler.ListByCategory)

	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Update)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	// Partner domain (customers, suppliers)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/phone/:phone", customerHandler.GetByPhone)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)

	partnerRoutes.POST("/suppliers", supplierHandler.Create)
	partnerRoutes.GET("/suppliers", supplierHandler.List)
	partnerRoutes.GET("/suppliers/:id", supplierHandler.GetByID)
	partnerRoutes.PUT("/suppliers/:id", supplierHandler.Update)
	partnerRoutes.POST("/suppliers/:id/deactivate", supplierHandler.Deactivate)

	// Inventory domain (stock operations, movements)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/stock/intake", inventoryHandler.Intake)
	inventoryRoutes.POST("/stock/transfer", inventoryHandler.Transfer)
	inventoryRoutes.POST("/stock/damage", inventoryHandler.WriteOffDamage)
	inventoryRoutes.POST("/stock/stock-out", inventoryHandler.WriteOffStockOut)
	inventoryRoutes.POST("/stock/adjust", middleware.RequirePermission("stock.adjust"), inventoryHandler.Adjust)
	inventoryRoutes.PUT("/stock/reorder-level", inventoryHandler.SetReorderLevel)
	inventoryRoutes.GET("/branches/:branch_id/stock", inventoryHandler.GetBranchStock)
	inventoryRoutes.GET("/branches/:branch_id/stock/low", inventoryHandler.GetLowStock)
	inventoryRoutes.GET("/branches/:branch_id/movements", inventoryHandler.GetMovements)
	inventoryRoutes.GET("/products/:product_id/stock", inventoryHandler.GetProductStock)

	// Purchasing domain (supplier purchases)
	purchasingRoutes := router.NewDomainGroup("purchasing", "/purchasing")
	purchasingRoutes.POST("/purchases", purchaseHandler.Create)
	purchasingRoutes.GET("/purchases", purchaseHandler.List)
	purchasingRoutes.GET("/purchases/:id", purchaseHandler.GetByID)
	purchasingRoutes.POST("/purchases/:id/receive", purchaseHandler.Receive)
	purchasingRoutes.POST("/purchases/:id/cancel", purchaseHandler.Cancel)
	purchasingRoutes.GET("/suppliers/:supplier_id/purchases", purchaseHandler.ListBySupplier)

	// Trade domain (orders, returns)
	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/orders", orderHandler.Create)
	tradeRoutes.GET("/orders", orderHandler.List)
	tradeRoutes.POST("/orders/return", orderHandler.ProcessReturn)
	tradeRoutes.GET("/orders/number/:order_number", orderHandler.GetByOrderNumber)
	tradeRoutes.GET("/orders/:id", orderHandler.GetByID)
	tradeRoutes.POST("/orders/:id/pay", orderHandler.Pay)
	tradeRoutes.POST("/orders/:id/cancel", orderHandler.Cancel)
	tradeRoutes.GET("/orders/:id/returns", orderHandler.ListReturns)

	// Finance domain (store credits)
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/credits/goodwill", middleware.RequirePermission("credits.issue"), storeCreditHandler.IssueGoodwill)
	financeRoutes.GET("/credits", storeCreditHandler.List)
	financeRoutes.GET("/credits/active", storeCreditHandler.ListActive)
	financeRoutes.GET("/credits/:id", storeCreditHandler.GetByID)
	financeRoutes.GET("/orders/:order_id/credits", storeCreditHandler.ListByOrder)

	// Report domain (sales dashboard)
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.Use(middleware.RequireAnyPermission("reports.view", "employees.manage"))
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	reportRoutes.GET("/summary", reportHandler.Summary)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(orgRoutes).
		Register(catalogRoutes).
		Register(partnerRoutes).
		Register(inventoryRoutes).
		Register(purchasingRoutes).
		Register(tradeRoutes).
		Register(financeRoutes).
		Register(reportRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.FromGin(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
