package ports

import (
	"context"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// DirectoryPage una página de empleados activos según la fuente externa,
// junto con el total de registros del lado del servidor.
type DirectoryPage struct {
	Users []entity.Employee
	Total int
}

// EmployeeDirectory puerto hacia la fuente externa de empleados
// (GET /users?limit=&skip=). La implementación vive en infrastructure.
type EmployeeDirectory interface {
	FetchPage(ctx context.Context, page, limit int) (*DirectoryPage, error)
}
