package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/atelierline/storefront-api/auth"
	"github.com/atelierline/storefront-api/routes"
	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/session"
	"github.com/atelierline/storefront-api/store"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	ctx := context.Background()

	// Firebase, Firestore and Cloud Storage clients
	clients, err := services.InitClients(ctx)
	if err != nil {
		log.Fatalf("❌ Backend init failed: %v", err)
	}
	defer clients.Close()

	// Firestore-backed services
	productsSvc := services.NewProductsService(clients.Firestore)
	ordersSvc := services.NewOrdersService(clients.Firestore)
	usersSvc := services.NewUsersService(clients.Firestore)
	messagesSvc := services.NewMessagesService(clients.Firestore)
	images := services.NewImageStorage(clients.Storage, clients.BucketName)
	mailer := services.NewMailer(
		os.Getenv("SENDGRID_API_KEY"),
		os.Getenv("MAIL_FROM"),
		os.Getenv("MAIL_TO"),
	)

	// Shared stores and the identity boundary
	catalog := store.NewCatalogStore(productsSvc)
	orders := store.NewOrdersStore(ordersSvc)
	identity := auth.NewService(clients.Auth, usersSvc, os.Getenv("FIREBASE_WEB_API_KEY"))

	// Per-browser session registry; confirmations auto-dismiss after 3s
	sessions := session.NewManager(identity, orders, 3*time.Second, auth.SessionTTL)
	go sessions.Janitor(ctx, 10*time.Minute)

	// Warm the catalog so the first page load doesn't wait on Firestore
	if err := catalog.FetchAll(ctx); err != nil {
		log.Printf("⚠️ Initial catalog fetch failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// Allow large image uploads (32 MB)
	r.MaxMultipartMemory = 32 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Catalog:    catalog,
		Orders:     orders,
		Sessions:   sessions,
		Products:   productsSvc,
		OrderSvc:   ordersSvc,
		Users:      usersSvc,
		Messages:   messagesSvc,
		Images:     images,
		Mailer:     mailer,
		AuthClient: clients.Auth,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
