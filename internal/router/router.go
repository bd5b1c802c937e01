// Package router assembles the HTTP API: middleware chain, route table and
// the service graph behind it.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"patrimonio/internal/config"
	_ "patrimonio/internal/docs" // Import swagger docs
	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/handlers"
	"patrimonio/internal/middleware"
	"patrimonio/internal/models"
	"patrimonio/internal/services"
)

// Services is the service graph used by the handlers.
type Services struct {
	Profile     services.ProfileServicer
	Account     services.AccountServicer
	Transaction services.TransactionServicer
	Asset       services.AssetServicer
	Vehicle     services.VehicleServicer
	Dashboard   services.DashboardServicer
	Audit       services.AuditServicer
}

// NewServices wires every service over one database handle.
func NewServices(db *gorm.DB, cfg *config.Config) Services {
	accountService := services.NewAccountService(db)
	return Services{
		Profile:     services.NewProfileService(db),
		Account:     accountService,
		Transaction: services.NewTransactionService(db, accountService),
		Asset:       services.NewAssetService(db),
		Vehicle:     services.NewVehicleService(db),
		Dashboard:   services.NewDashboardService(db, cfg.Currency),
		Audit:       services.NewAuditService(db),
	}
}

// New builds the Gin engine. reg receives the HTTP collectors and is served
// on /metrics.
func New(cfg *config.Config, svc Services, reg *prometheus.Registry) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Profile, svc.Audit)
	profileHandler := handlers.NewProfileHandler(svc.Profile, svc.Audit)
	accountHandler := handlers.NewAccountHandler(svc.Account, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transaction, svc.Audit)
	assetHandler := handlers.NewAssetHandler(svc.Asset, svc.Audit)
	vehicleHandler := handlers.NewVehicleHandler(svc.Vehicle, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	metrics := middleware.NewMetrics(reg)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(metrics.Handler())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", middleware.OpsKeyMiddleware(cfg.MetricsAPIKey),
		gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Authenticated routes that any role may call
	session := v1.Group("/")
	session.Use(middleware.AuthMiddleware())
	session.POST("/auth/logout", authHandler.Logout)
	session.GET("/profile", profileHandler.GetProfile)
	session.PUT("/profile", profileHandler.UpdateProfile)
	session.GET("/catalog", dashboardHandler.GetCatalog)

	admin := session.Group("/profiles")
	admin.Use(middleware.CurrentRole(svc.Profile), middleware.RequireRole(models.RoleAdmin))
	admin.GET("", profileHandler.ListProfiles)
	admin.PUT("/:id/role", profileHandler.UpdateRole)

	// Data routes; viewers are read-only here
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(), middleware.CurrentRole(svc.Profile), middleware.ReadOnlyGuard())

	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetUserAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/summary", transactionHandler.GetSummary)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetUserAssets)
	assets.GET("/summary", assetHandler.GetSummary)
	assets.GET("/:id", assetHandler.GetAssetByID)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	vehicles := protected.Group("/vehicles")
	vehicles.POST("", vehicleHandler.CreateVehicle)
	vehicles.GET("", vehicleHandler.GetUserVehicles)
	vehicles.GET("/summary", vehicleHandler.GetSummary)
	vehicles.GET("/:id", vehicleHandler.GetVehicleByID)
	vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
	vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
	vehicles.GET("/:id/refuelings", vehicleHandler.GetRefuelings)
	vehicles.POST("/:id/refuelings", vehicleHandler.AddRefueling)
	vehicles.GET("/:id/maintenances", vehicleHandler.GetMaintenances)
	vehicles.POST("/:id/maintenances", vehicleHandler.AddMaintenance)

	protected.DELETE("/refuelings/:id", vehicleHandler.DeleteRefueling)
	protected.DELETE("/maintenances/:id", vehicleHandler.DeleteMaintenance)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(apperrors.ErrNotFound.StatusCode, gin.H{"error": apperrors.ErrNotFound})
	})

	return router
}

// NewRegistry returns a Prometheus registry carrying the Go runtime and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}
