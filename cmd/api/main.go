package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"feeb/internal/auth"
	"feeb/internal/db"
	"feeb/internal/ingredient"
	"feeb/internal/llm"
	"feeb/internal/menu"
	"feeb/internal/middleware"
	"feeb/internal/recipe"
	"feeb/internal/restaurant"
	"feeb/internal/settings"
	"feeb/internal/storage"
	"feeb/internal/upload"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Minimum similarity before a raw ingredient name snaps to an existing
// taxonomy entry instead of creating a new one.
const ingredientMatchThreshold = 0.85

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, relying on environment")
		}
	}

	required := []string{
		"DATABASE_URL",
		"JWT_SECRET",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"R2_ENDPOINT",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_PUBLIC_BASE_URL",
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			log.Fatalf("❌ Missing required environment variable: %s", key)
		}
	}

	pool := db.ConnectPostgres()
	defer pool.Close()

	r2, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ Failed to initialize R2 storage:", err)
	}

	// --------------------------------------------------
	// Repositories
	// --------------------------------------------------
	userRepo := auth.NewPostgresUserRepository(pool)
	restaurantRepo := restaurant.NewPostgresRepository(pool)
	settingsRepo := settings.NewPostgresRepository(pool)
	ingredientRepo := ingredient.NewPostgresRepository(pool)
	recipeRepo := recipe.NewPostgresRepository(pool)
	menuRepo := menu.NewPostgresRepository(pool)
	uploadRepo := upload.NewPostgresRepository(pool)

	// --------------------------------------------------
	// Services
	// --------------------------------------------------
	authService := auth.NewService(userRepo)
	restaurantService := restaurant.NewService(restaurantRepo, r2)
	settingsService := settings.NewService(settingsRepo, restaurantService)
	ingredientService := ingredient.NewService(ingredientRepo, ingredientMatchThreshold)
	recipeService := recipe.NewService(recipeRepo, restaurantService, settingsRepo, ingredientService)
	menuService := menu.NewService(menuRepo, restaurantService, settingsRepo)
	uploadService := upload.NewService(
		uploadRepo,
		r2,
		restaurantService,
		llm.NewGeminiClient(),
		recipeRepo,
		ingredientService,
	)

	// --------------------------------------------------
	// Handlers
	// --------------------------------------------------
	authHandler := auth.NewHandler(authService)
	restaurantHandler := restaurant.NewHandler(restaurantService)
	settingsHandler := settings.NewHandler(settingsService)
	ingredientHandler := ingredient.NewHandler(ingredientService)
	recipeHandler := recipe.NewHandler(recipeService)
	menuHandler := menu.NewHandler(menuService)
	uploadHandler := upload.NewHandler(uploadService)

	// Background import workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go uploadService.RunWorker(workerCtx)
	go uploadService.RunWorker(workerCtx)

	// --------------------------------------------------
	// Router
	// --------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://app.feeb.menu"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public guest-facing menu
	public := r.Group("/public")
	{
		public.GET("/restaurants/:id/menu", menuHandler.Browse)
		public.GET("/restaurants/:id/menu/search", menuHandler.Search)
	}

	// Auth
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// Operator API
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(), middleware.RequireRole(auth.RoleOperator))
	{
		api.POST("/restaurants", restaurantHandler.CreateRestaurant)
		api.GET("/restaurants", restaurantHandler.ListMyRestaurants)
		api.POST("/restaurants/:id/logo", restaurantHandler.UploadLogo)

		api.GET("/restaurants/:id/settings", settingsHandler.Get)
		api.PUT("/restaurants/:id/settings", settingsHandler.Update)

		api.GET("/ingredients/search", ingredientHandler.Search)
		api.GET("/ingredients/:name", ingredientHandler.Get)
		api.POST("/ingredients/resolve", ingredientHandler.Resolve)

		api.POST("/restaurants/:id/recipes", recipeHandler.Create)
		api.GET("/restaurants/:id/recipes", recipeHandler.List)
		api.GET("/restaurants/:id/recipes/suggestions", recipeHandler.ListSuggestions)
		api.GET("/recipes/:id", recipeHandler.Get)
		api.PUT("/recipes/:id", recipeHandler.Update)
		api.DELETE("/recipes/:id", recipeHandler.Delete)
		api.POST("/recipes/:id/confirm", recipeHandler.Confirm)
		api.PUT("/recipes/:id/menu", recipeHandler.SetOnMenu)

		api.POST("/restaurants/:id/menu/sections", menuHandler.CreateSection)
		api.GET("/restaurants/:id/menu/sections", menuHandler.ListSections)
		api.DELETE("/menu/sections/:id", menuHandler.ArchiveSection)
		api.POST("/menu/sections/:id/recipes", menuHandler.AddRecipe)
		api.DELETE("/menu/sections/:id/recipes/:recipeId", menuHandler.RemoveRecipe)

		api.POST("/restaurants/:id/menu-uploads", uploadHandler.Submit)
		api.GET("/restaurants/:id/menu-uploads", uploadHandler.List)
		api.GET("/menu-uploads/:id", uploadHandler.Status)
		api.POST("/menu-uploads/:id/retry", uploadHandler.Retry)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Println("✅ Feeb API listening on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server failed:", err)
	}
}
