package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/blacnova/dashboard-server/internal/api/http/handler"
	"github.com/blacnova/dashboard-server/internal/api/http/middleware"
	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
	"github.com/blacnova/dashboard-server/internal/service"
)

// Router wires services into the HTTP application.
type Router struct {
	authService    *service.Auth
	sessionService *service.Session
	contentService *service.Content
	registry       model.ClientRegistry
	contextManager model.ContextManager
	cookies        handler.CookieSettings
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	sessionService *service.Session,
	contentService *service.Content,
	registry model.ClientRegistry,
	contextManager model.ContextManager,
	cookies handler.CookieSettings,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		sessionService: sessionService,
		contentService: contentService,
		registry:       registry,
		contextManager: contextManager,
		cookies:        cookies,
		logger:         logger,
	}
}

// Register builds the fiber application with all middleware and routes.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handler.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.CORS())
	app.Use(middleware.NewLogging(r.logger).Handle)

	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.sessionService, r.cookies, r.logger)
	userHandler := handler.NewUser(r.authService)
	clientHandler := handler.NewClient(r.registry)
	contentHandler := handler.NewContent(r.contentService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	authed := api.Group("", authenticate.Handle)
	authed.Get("/clients/config", clientHandler.GetConfig)
	authed.Get("/content", contentHandler.Get)
	authed.Post("/content", contentHandler.Update)

	admin := authed.Group("/users", authenticate.RequireAdmin)
	admin.Post("", userHandler.Create)
	admin.Post("/delete", userHandler.Delete)

	return app
}
