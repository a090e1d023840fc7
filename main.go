package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedboard/database"
	"feedboard/handlers"
	"feedboard/routes"
	"feedboard/services"
	"feedboard/storage"
	"feedboard/token"
	"feedboard/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const tokenTTL = time.Hour

func main() {
	godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting feedboard server...")

	jwtSecret := os.Getenv("JWT_SECRET")
	mongoURI := os.Getenv("MONGODB_URI")
	if jwtSecret == "" || mongoURI == "" {
		log.Fatal("JWT_SECRET and MONGODB_URI must be set")
	}

	// Connect to MongoDB with retry
	var db *database.DB
	var dbErr error
	for i := 1; i <= 3; i++ {
		db, dbErr = database.Connect(mongoURI)
		if dbErr == nil {
			break
		}
		log.Errorf("MongoDB connection attempt %d failed: %v", i, dbErr)
		time.Sleep(2 * time.Second)
	}
	if dbErr != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", dbErr)
	}
	defer db.Disconnect()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	images, err := newImageStore()
	if err != nil {
		log.Fatalf("Failed to set up image storage: %v", err)
	}

	tokens := token.NewIssuer(jwtSecret, tokenTTL)

	wsManager := websocket.NewManager()
	go wsManager.Start()

	users := database.NewUserStore(db)
	posts := database.NewPostStore(db)

	authHandler := handlers.NewAuth(services.NewAuth(users, tokens))
	feedHandler := handlers.NewFeed(services.NewFeed(posts, users, images, wsManager))

	router := routes.SetupRouter(authHandler, feedHandler, tokens)
	router.GET("/ws", func(c *gin.Context) {
		websocket.Handler(wsManager, tokens)(c.Writer, c.Request)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newImageStore prefers Cloudinary when configured and falls back to
// local disk storage.
func newImageStore() (services.ImageStore, error) {
	if url := os.Getenv("CLOUDINARY_URL"); url != "" {
		log.Info("Using Cloudinary image storage")
		return storage.NewCloudinary(url)
	}

	dir := os.Getenv("IMAGE_DIR")
	if dir == "" {
		dir = "images"
	}
	log.Infof("Using local image storage in %s", dir)
	return storage.NewDisk(dir)
}
