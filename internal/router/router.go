package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acadsuite/campus-api/internal/config"
	"github.com/acadsuite/campus-api/internal/handler"
	"github.com/acadsuite/campus-api/internal/middleware"
	"github.com/acadsuite/campus-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserAdminHandler  *handler.UserAdminHandler
	ActivityHandler   *handler.ActivityHandler
	CollegeHandler    *handler.CollegeHandler
	DepartmentHandler *handler.DepartmentHandler
	FacultyHandler    *handler.FacultyHandler
	StudentHandler    *handler.StudentHandler
	SubjectHandler    *handler.SubjectHandler
	RoomHandler       *handler.RoomHandler
	SectionHandler    *handler.SectionHandler
	JWTMiddleware     fiber.Handler
	OptionalJWT       fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Reads require a
// valid session; master data writes and the audit trail require an admin
// role; departments are super admin only.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	optionalJWT := deps.OptionalJWT
	if optionalJWT == nil {
		optionalJWT = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole(models.RoleDeptAdmin, models.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRole(models.RoleSuperAdmin)

	if deps.AuthHandler != nil {
		// Registration resolves the acting admin when a token is present.
		public := api.Group("/auth", optionalJWT)
		deps.AuthHandler.RegisterPublic(public)

		protected := api.Group("/auth", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)

		if deps.UserAdminHandler != nil {
			users := protected.Group("/users", adminOnly)
			deps.UserAdminHandler.Register(users)
		}
		if deps.ActivityHandler != nil {
			// The service scopes dept admins to their own department.
			activity := protected.Group("/activity-logs", adminOnly)
			deps.ActivityHandler.Register(activity)
		}
		if deps.DepartmentHandler != nil {
			departments := protected.Group("/departments", superAdminOnly)
			deps.DepartmentHandler.Register(departments)
		}
	}

	registerMasterData := func(path string, reads func(fiber.Router), writes func(fiber.Router, ...fiber.Handler)) {
		group := api.Group(path, jwtMiddleware)
		// Writes carry the admin guard per route so reads stay open to
		// every authenticated role.
		writes(group, adminOnly)
		reads(group)
	}

	if deps.CollegeHandler != nil {
		registerMasterData("/colleges", deps.CollegeHandler.RegisterReads, deps.CollegeHandler.RegisterWrites)
	}
	if deps.FacultyHandler != nil {
		registerMasterData("/faculties", deps.FacultyHandler.RegisterReads, deps.FacultyHandler.RegisterWrites)
	}
	if deps.StudentHandler != nil {
		registerMasterData("/students", deps.StudentHandler.RegisterReads, deps.StudentHandler.RegisterWrites)
	}
	if deps.SubjectHandler != nil {
		registerMasterData("/subjects", deps.SubjectHandler.RegisterReads, deps.SubjectHandler.RegisterWrites)
	}
	if deps.RoomHandler != nil {
		registerMasterData("/rooms", deps.RoomHandler.RegisterReads, deps.RoomHandler.RegisterWrites)
	}
	if deps.SectionHandler != nil {
		registerMasterData("/sections", deps.SectionHandler.RegisterReads, deps.SectionHandler.RegisterWrites)
	}
}
