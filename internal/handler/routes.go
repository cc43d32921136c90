package handler

import (
	"quiz-session/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the session API and the health check on app
func RegisterRoutes(app *fiber.App, sessions *SessionHandler, health *HealthHandler, vm *middleware.ValidationMiddleware) {
	app.Get("/healthz", health.Healthz)

	sessionGroup := app.Group("/api/session")
	sessionGroup.Get("/", sessions.GetSession)
	sessionGroup.Post("/file", vm.ValidateUpload(), sessions.SelectFile)
	sessionGroup.Put("/options", vm.ValidateOptions(), sessions.SetOptions)
	sessionGroup.Post("/generate", sessions.Generate)
	sessionGroup.Put("/answers/:index", vm.ValidateAnswer(), sessions.SelectOption)
	sessionGroup.Post("/submit", sessions.Submit)
	sessionGroup.Post("/restart", sessions.Restart)
}
