package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empleados-api/internal/application/employees"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Employees *employees.Store
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	api := app.Group("/api")

	emps := api.Group("/employees")
	handler := NewEmployeeHandler(deps.Employees)
	emps.Get("/", handler.List)
	emps.Get("/snapshot", handler.Snapshot)
	emps.Post("/", handler.Create)
	emps.Post("/page", handler.SetPage)
	emps.Post("/refresh", handler.Refresh)
	emps.Put("/:id", handler.Update)
	emps.Delete("/:id", handler.Delete)
}
