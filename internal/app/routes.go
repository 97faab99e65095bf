package app

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/birat04/Notionize/docs"
	"github.com/birat04/Notionize/internal/auth"
	"github.com/birat04/Notionize/internal/cache"
	"github.com/birat04/Notionize/internal/config"
	"github.com/birat04/Notionize/internal/events"
	"github.com/birat04/Notionize/internal/handlers"
	"github.com/birat04/Notionize/internal/repo"
	"github.com/birat04/Notionize/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Deps are the stores and clients the routes are wired to.
type Deps struct {
	Users     repo.UserRepo
	Todos     repo.TodoRepo
	Addresses repo.AddressRepo
	// Cache is optional.
	Cache  *cache.TodoCache
	Events events.Publisher
	// Ping checks the backing store for /health. Optional.
	Ping func(ctx context.Context) error
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, deps Deps) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, deps.Ping))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL.Duration(), cfg.JWT.Issuer)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userSvc := service.NewUserService(deps.Users, hasher, tokens, deps.Events)
	registerAuthRoutes(api, handlers.NewAuthHandler(userSvc))

	protected := api.Group("", auth.RequireBearer(tokens))
	registerUserRoutes(protected, handlers.NewUserHandler(userSvc))

	todoSvc := service.NewTodoService(deps.Todos, deps.Cache, deps.Events)
	registerTodoRoutes(protected, handlers.NewTodoHandler(todoSvc))

	addressSvc := service.NewAddressService(deps.Addresses)
	registerAddressRoutes(protected, handlers.NewAddressHandler(addressSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Todo API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config, ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "env": cfg.App.Env})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			log.Printf("swagger doc: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.GET("/users/me", h.Me)
}

func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler) {
	api.GET("/todos", h.List)
	api.POST("/todos", h.Create)
	api.GET("/todos/:id", h.GetByID)
	api.PUT("/todos/:id", h.Update)
	api.PATCH("/todos/:id", h.Update)
	api.DELETE("/todos/:id", h.Delete)
}

func registerAddressRoutes(api *gin.RouterGroup, h *handlers.AddressHandler) {
	api.GET("/addresses", h.List)
	api.POST("/addresses", h.Create)
	api.DELETE("/addresses/:id", h.Delete)
}
