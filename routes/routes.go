package routes

import (
	"time"

	"feedboard/handlers"
	"feedboard/metrics"
	"feedboard/middleware"
	"feedboard/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter assembles the HTTP surface. Handlers arrive constructed so
// the router owns no service state of its own.
func SetupRouter(auth *handlers.Auth, feed *handlers.Feed, tokens *token.Issuer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.Handler())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimit(60, time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	router.GET("/metrics", metrics.Exposer())

	// Public routes
	router.PUT("/signup", auth.Signup)
	router.POST("/login", auth.Login)
	router.GET("/posts", feed.GetPosts)
	router.GET("/post/:postId", feed.GetPost)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.JWTAuth(tokens))

	protected.GET("/user/status", auth.GetStatus)
	protected.PATCH("/user/status", auth.UpdateStatus)

	protected.POST("/post", feed.CreatePost)
	protected.PUT("/post/:postId", feed.UpdatePost)
	protected.DELETE("/post/:postId", feed.DeletePost)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
