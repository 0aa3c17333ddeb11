package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Adnanwebguy1996/nex-goods-emporium/config"
	"github.com/Adnanwebguy1996/nex-goods-emporium/database"
	"github.com/Adnanwebguy1996/nex-goods-emporium/handlers"
	"github.com/Adnanwebguy1996/nex-goods-emporium/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	// Initialize Cloudinary (uploads stay disabled without credentials)
	if config.AppConfig.CloudinaryURL != "" {
		if err := services.InitializeCloudinary(config.AppConfig.CloudinaryURL); err != nil {
			log.Printf("Failed to initialize Cloudinary, uploads disabled: %v", err)
		}
	} else {
		log.Printf("CLOUDINARY_URL not set, uploads disabled")
	}

	// Visitor presence tracker with its background refresh loop
	visitorStore := services.NewPostgresVisitorStore(db.DB)
	presence := services.NewTracker(visitorStore, config.AppConfig.PresenceRefresh)
	presence.Start()
	defer presence.Stop()

	// Session carts live in memory; sweep abandoned ones periodically
	carts := services.NewCartStore()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if pruned := carts.PruneIdle(config.AppConfig.CartIdleExpiry); pruned > 0 {
				log.Printf("Pruned %d idle carts", pruned)
			}
		}
	}()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Add CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure this properly for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "NexStore server is running",
		})
	})

	// Initialize handlers
	handlers.InitializeHandlers(db, carts, presence)

	// Admin setup route (no auth required for initial setup)
	router.POST("/setup-admin", handlers.CreateAdminUser)

	// Admin authentication routes
	router.POST("/admin/login", handlers.AdminLogin)
	router.GET("/admin/validate", handlers.ValidateToken)

	// API routes
	api := router.Group("/api/v1")
	{
		// Public catalog routes
		products := api.Group("/products")
		{
			products.GET("/", handlers.GetProducts)
			products.GET("/featured", handlers.GetFeaturedProducts)
			products.GET("/:id", handlers.GetProduct)
		}

		api.GET("/categories", handlers.GetCategories)
		api.GET("/payment-methods", handlers.GetPaymentMethods)

		// Visitor tracking routes
		visitors := api.Group("/visitors")
		{
			visitors.POST("/track", handlers.TrackVisitor)
			visitors.POST("/heartbeat", handlers.VisitorHeartbeat)
		}

		// Cart routes (keyed by the X-Session-ID header)
		cart := api.Group("/cart")
		{
			cart.GET("/", handlers.GetCart)
			cart.POST("/add", handlers.AddToCart)
			cart.PUT("/update", handlers.UpdateCartItem)
			cart.DELETE("/remove/:productId", handlers.RemoveFromCart)
			cart.DELETE("/clear", handlers.ClearCart)
		}

		// Checkout routes
		api.POST("/orders", handlers.CreateOrder)
		api.GET("/orders/:id", handlers.GetOrder)

		// Admin routes (protected with admin middleware)
		admin := api.Group("/admin")
		admin.Use(handlers.AuthMiddleware(), handlers.AdminMiddleware())
		{
			admin.GET("/products", handlers.GetAdminProducts)
			admin.GET("/products/stats", handlers.GetCatalogStats)
			admin.GET("/products/:id", handlers.GetAdminProduct)
			admin.POST("/products", handlers.CreateProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)

			admin.POST("/categories", handlers.CreateCategory)
			admin.DELETE("/categories/:id", handlers.DeleteCategory)

			admin.GET("/orders", handlers.GetAdminOrders)
			admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

			admin.GET("/payment-methods", handlers.GetAdminPaymentMethods)
			admin.POST("/payment-methods", handlers.CreatePaymentMethod)
			admin.PUT("/payment-methods/:id", handlers.UpdatePaymentMethod)
			admin.PUT("/payment-methods/:id/status", handlers.TogglePaymentMethodStatus)

			admin.GET("/visitors", handlers.GetActiveVisitors)
			admin.GET("/visitors/stats", handlers.GetVisitorStats)

			admin.POST("/upload", handlers.UploadAsset)
		}
	}

	// Start server
	log.Printf("Starting NexStore server on 0.0.0.0:%s", config.AppConfig.ServerPort)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+config.AppConfig.ServerPort, c.Handler(router)))
}
