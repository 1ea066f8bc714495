package routes

import (
	"moderation-api/internal/handlers"
	"moderation-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

func SetupRoutes(app *fiber.App) {
	// API routes group
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Monitor route
	app.Get("/metrics", monitor.New())

	// Auth routes
	auth := v1.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	authProtected := auth.Use(middleware.RequireAuth())
	authProtected.Get("/userinfo", handlers.UserInfo)

	// Admin routes
	admin := v1.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())

	// User moderation
	admin.Get("/users", handlers.ListUsers)
	admin.Get("/users/:id", handlers.GetUser)
	admin.Post("/users/:id/suspend", handlers.SuspendUser)
	admin.Post("/users/:id/unsuspend", handlers.UnsuspendUser)
	admin.Post("/users/:id/ban", handlers.BanUser)
	admin.Post("/users/:id/unban", handlers.UnbanUser)
	admin.Post("/users/:id/soft-delete", handlers.SoftDeleteUser)
	admin.Post("/users/:id/restore", handlers.RestoreUser)
	admin.Delete("/users/:id", handlers.PermanentDeleteUser)
	admin.Put("/users/:id/role", handlers.UpdateUserRole)
	admin.Put("/users/:id/status", handlers.UpdateUserStatus)

	// Audit ledger
	admin.Get("/audit-logs", handlers.ListAuditLogs)

	// Catalog moderation
	admin.Put("/courses/:id", handlers.UpdateCourse)
	admin.Post("/courses/:id/archive", handlers.ArchiveCourse)
	admin.Post("/courses/:id/unarchive", handlers.UnarchiveCourse)
	admin.Delete("/courses/:id", handlers.DeleteCourse)
	admin.Post("/courses/:id/remove-member", handlers.RemoveCourseMember)
	admin.Delete("/groups/:id", handlers.DeleteGroup)

	// Allowed email domains
	admin.Get("/domains", handlers.ListDomains)
	admin.Get("/domains/:id", handlers.GetDomain)
	admin.Post("/domains", handlers.AddDomain)
	admin.Put("/domains/:id", handlers.UpdateDomain)
	admin.Delete("/domains/:id", handlers.DeleteDomain)
}
