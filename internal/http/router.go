package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/config"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http/handler"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	logger *zap.Logger,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	authMiddleware *middleware.Auth,
) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authMiddleware.RequireAuth, authHandler.Me)
	}

	api := r.Group("/api")
	{
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.List)
			posts.GET("/:id", postHandler.Get)
			posts.POST("", authMiddleware.RequireAuth, postHandler.Create)
			posts.PUT("/:id", authMiddleware.RequireAuth, postHandler.Update)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", commentHandler.List)
			comments.GET("/:id", commentHandler.Get)
			comments.GET("/post/:postId", commentHandler.ListByPost)
			comments.POST("", authMiddleware.RequireAuth, commentHandler.Create)
			comments.PUT("/:id", authMiddleware.RequireAuth, commentHandler.Update)
			comments.DELETE("/:id", authMiddleware.RequireAuth, commentHandler.Delete)
		}
	}

	return r
}
