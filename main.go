package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"inventorypro-server/config"
	"inventorypro-server/handlers"
	"inventorypro-server/services"
	"inventorypro-server/storage"
	"inventorypro-server/store"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	cfg := config.AppConfig

	// Open the snapshot backend
	snapshots, err := openSnapshots(cfg)
	if err != nil {
		log.Fatal("Failed to open snapshot storage:", err)
	}

	// Load the catalog
	catalog, err := store.Open(context.Background(), snapshots, cfg.SeedDefaults)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}
	handlers.Catalog = catalog

	// Initialize Gemini (optional)
	if cfg.GeminiAPIKey != "" {
		if err := services.InitializeGemini(context.Background(), cfg.GeminiAPIKey); err != nil {
			log.Printf("Gemini disabled: %v", err)
		}
	} else {
		log.Printf("GEMINI_API_KEY not set, AI research disabled")
	}

	// Initialize Cloudinary (optional)
	if cfg.CloudinaryURL != "" {
		if err := services.InitializeCloudinary(cfg.CloudinaryURL); err != nil {
			log.Printf("Cloudinary disabled: %v", err)
		}
	} else {
		log.Printf("CLOUDINARY_URL not set, image uploads disabled")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", handlers.AuthMiddleware(), handlers.Me)
		}

		products := api.Group("/products")
		products.Use(handlers.AuthMiddleware())
		{
			products.GET("", handlers.ListProducts)
			products.POST("", handlers.CreateProduct)
			products.GET("/:id", handlers.GetProduct)
			products.PUT("/:id", handlers.UpdateProduct)
			products.DELETE("/:id", handlers.DeleteProduct)
			products.POST("/:id/transfer", handlers.TransferStock)
			products.GET("/:id/barcode", handlers.GetProductBarcode)
			products.POST("/:id/image", handlers.UploadProductImage)
		}

		categories := api.Group("/categories")
		categories.Use(handlers.AuthMiddleware())
		{
			categories.GET("", handlers.ListCategories)
			categories.POST("", handlers.CreateCategory)
			categories.PUT("/:id", handlers.UpdateCategory)
			categories.DELETE("/:id", handlers.DeleteCategory)
		}

		locations := api.Group("/locations")
		locations.Use(handlers.AuthMiddleware())
		{
			locations.GET("", handlers.ListLocations)
			locations.POST("", handlers.AddLocation)
			locations.DELETE("/:name", handlers.DeleteLocation)
		}

		api.GET("/stats", handlers.AuthMiddleware(), handlers.GetStats)
		api.GET("/activity", handlers.AuthMiddleware(), handlers.GetActivity)
		api.GET("/settings", handlers.AuthMiddleware(), handlers.GetSettings)
		api.PUT("/settings", handlers.AuthMiddleware(), handlers.UpdateSettings)

		api.POST("/import", handlers.AuthMiddleware(), handlers.ImportProducts)
		api.GET("/export", handlers.AuthMiddleware(), handlers.ExportProducts)

		ai := api.Group("/ai")
		ai.Use(handlers.AuthMiddleware())
		{
			ai.POST("/market-research", handlers.MarketResearch)
			ai.POST("/suppliers", handlers.FindSuppliers)
			ai.POST("/describe", handlers.GenerateDescription)
			ai.POST("/analyze-image", handlers.AnalyzeProductImage)
		}

		users := api.Group("/users")
		users.Use(handlers.AuthMiddleware(), handlers.AdminMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.PUT("/:id/role", handlers.UpdateUserRole)
			users.DELETE("/:id", handlers.DeleteUser)
		}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Server listening on %s (snapshot backend: %s)", addr, cfg.SnapshotBackend)
	if err := http.ListenAndServe(addr, corsHandler.Handler(router)); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func openSnapshots(cfg *config.Config) (storage.Store, error) {
	switch cfg.SnapshotBackend {
	case "postgres":
		return storage.ConnectPostgres(cfg.DatabaseURL)
	case "redis":
		return storage.ConnectRedis(cfg.RedisURL)
	default:
		return storage.NewFileStore(cfg.DataDir)
	}
}
