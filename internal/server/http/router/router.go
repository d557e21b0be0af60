package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"suppliertracker/internal/config"
	"suppliertracker/internal/server/http/handlers"
	"suppliertracker/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.TrackerFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	if len(cfg.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	authHandler := handlers.NewAuthHandler(facade)
	pageHandler := handlers.NewPageHandler(facade)
	attachmentHandler := handlers.NewAttachmentHandler(facade)

	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	engine.GET("/attachments/*path", attachmentHandler.Serve)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.GET("/orders", pageHandler.View)
	private.POST("/orders", pageHandler.Save)
	private.POST("/orders/:id/edit", pageHandler.StartEdit)
	private.DELETE("/orders/:id", pageHandler.Delete)
	private.POST("/form/reset", pageHandler.ResetForm)

	return engine
}
