package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/employees"
	"github.com/jhoicas/Empleados-api/internal/application/ports"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Empleados-api/internal/interfaces/http"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type directoryFunc func(ctx context.Context, page, limit int) (*ports.DirectoryPage, error)

func (f directoryFunc) FetchPage(ctx context.Context, page, limit int) (*ports.DirectoryPage, error) {
	return f(ctx, page, limit)
}

// buildTestApp levanta una app Fiber con el router completo sobre un store
// nuevo alimentado por el directorio indicado.
func buildTestApp(dir ports.EmployeeDirectory) (*fiber.App, *employees.Store) {
	store := employees.NewStore(dir, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Employees: store})
	return app, store
}

func seededApp(t *testing.T, users []entity.Employee, total int) (*fiber.App, *employees.Store) {
	t.Helper()
	app, store := buildTestApp(directoryFunc(func(context.Context, int, int) (*ports.DirectoryPage, error) {
		return &ports.DirectoryPage{Users: users, Total: total}, nil
	}))
	require.NoError(t, store.Load(context.Background(), 1, 10))
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sampleUsers() []entity.Employee {
	return []entity.Employee{
		{
			ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Status: true,
			Company: entity.Company{Title: "Software Engineer", Department: "Engineering", Name: "Core, Platform, Tools"},
		},
		{
			ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Status: true,
			Company: entity.Company{Title: "Designer", Department: "Design", Name: "Brand"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PestanaAllConBusqueda(t *testing.T) {
	app, _ := seededApp(t, sampleUsers(), 2)

	resp := doJSON(t, app, http.MethodGet, "/api/employees?search=john", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.EmployeeListResponse](t, resp)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "John", body.Items[0].FirstName)
	assert.Equal(t, "Software Engineer", body.Items[0].Role, "role se proyecta desde company.title")
	assert.Equal(t, []string{"Core", "Platform"}, body.Items[0].TeamSummary.Shown)
	assert.Equal(t, 1, body.Items[0].TeamSummary.HiddenCount)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "succeeded", body.Status)
}

func TestList_UnaSolaPaginaApagaLaPaginacion(t *testing.T) {
	app, _ := seededApp(t, sampleUsers(), 2)

	body := decode[dto.EmployeeListResponse](t, doJSON(t, app, http.MethodGet, "/api/employees", nil))
	assert.False(t, body.ShowPagination, "con totalPages <= 1 el control no se pinta")
	assert.Empty(t, body.PageWindow)
}

func TestList_VentanaDePaginacion(t *testing.T) {
	app, _ := seededApp(t, sampleUsers(), 57)

	body := decode[dto.EmployeeListResponse](t, doJSON(t, app, http.MethodGet, "/api/employees", nil))
	assert.True(t, body.ShowPagination)
	assert.Equal(t, 6, body.TotalPages)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, body.PageWindow)
}

func TestList_PestanaDeletedIgnoraBusqueda(t *testing.T) {
	app, store := seededApp(t, sampleUsers(), 2)
	snap := store.Snapshot()
	store.Delete(snap.Users[1]) // Jane a eliminados

	// La búsqueda no aplica en eliminados: aunque "zzz" no coincide con nada,
	// la fila eliminada sigue saliendo.
	body := decode[dto.EmployeeListResponse](t, doJSON(t, app, http.MethodGet, "/api/employees?tab=deleted&search=zzz", nil))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Jane", body.Items[0].FirstName)
	assert.Equal(t, 1, body.DeletedCount)
}

func TestList_TabInvalida(t *testing.T) {
	app, _ := buildTestApp(directoryFunc(func(context.Context, int, int) (*ports.DirectoryPage, error) {
		return &ports.DirectoryPage{}, nil
	}))
	resp := doJSON(t, app, http.MethodGet, "/api/employees?tab=archived", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Alta(t *testing.T) {
	app, store := seededApp(t, nil, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{FirstName: "Ada", LastName: "Lovelace"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[dto.EmployeeResponse](t, resp)
	assert.Equal(t, "Ada", body.FirstName)
	assert.Equal(t, "ada.lovelace@example.com", body.Email)
	assert.True(t, body.Status)
	assert.Equal(t, 1, store.Snapshot().Total)
}

func TestCreate_FaltaNombre(t *testing.T) {
	app, _ := seededApp(t, nil, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{FirstName: "Ada"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "MISSING_FIELD", body.Code)
	assert.Equal(t, "Please enter both first and last name.", body.Message,
		"el mensaje se muestra literal en el modal")
}

func TestCreate_NombreDuplicado(t *testing.T) {
	app, store := seededApp(t, sampleUsers(), 2)

	resp := doJSON(t, app, http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{FirstName: "John", LastName: "Doe"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_NAME", body.Code)
	assert.Equal(t, "Employee name already exists.", body.Message)
	assert.Equal(t, 2, store.Snapshot().Total, "el duplicado rechazado no toca el total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RegistroCompleto(t *testing.T) {
	app, store := seededApp(t, sampleUsers(), 2)

	in := dto.UpdateEmployeeRequest{
		FirstName: "John", LastName: "Doe", Email: "jdoe@corp.example.com", Status: false,
		Company: dto.CompanyDTO{Title: "Staff Engineer", Department: "Engineering", Name: "Core"},
	}
	resp := doJSON(t, app, http.MethodPut, "/api/employees/1", in)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.EmployeeResponse](t, resp)
	assert.Equal(t, "Staff Engineer", body.Role)
	assert.False(t, body.Status)

	snap := store.Snapshot()
	assert.Equal(t, "jdoe@corp.example.com", snap.Users[0].Email)
}

func TestUpdate_IDDesconocido(t *testing.T) {
	app, _ := seededApp(t, nil, 0)
	resp := doJSON(t, app, http.MethodPut, "/api/employees/99", dto.UpdateEmployeeRequest{FirstName: "X", LastName: "Y"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "Employee not found.", body.Message)
}

func TestUpdate_NombreDuplicado(t *testing.T) {
	app, _ := seededApp(t, sampleUsers(), 2)

	in := dto.UpdateEmployeeRequest{FirstName: "John", LastName: "Doe"}
	resp := doJSON(t, app, http.MethodPut, "/api/employees/2", in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDelete_MueveAEliminados(t *testing.T) {
	app, store := seededApp(t, sampleUsers(), 2)

	resp := doJSON(t, app, http.MethodDelete, "/api/employees/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Total)
	require.Len(t, snap.DeletedUsers, 1)
	assert.Equal(t, int64(1), snap.DeletedUsers[0].ID)

	// Repetir el borrado es idempotente.
	resp = doJSON(t, app, http.MethodDelete, "/api/employees/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, store.Snapshot().Total)
}

func TestDelete_IDDesconocido(t *testing.T) {
	app, _ := seededApp(t, nil, 0)
	resp := doJSON(t, app, http.MethodDelete, "/api/employees/404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cursores y recarga
// ──────────────────────────────────────────────────────────────────────────────

func TestSetPage_PestanaAllRecarga(t *testing.T) {
	var lastPage, lastLimit int
	app, store := buildTestApp(directoryFunc(func(_ context.Context, page, limit int) (*ports.DirectoryPage, error) {
		lastPage, lastLimit = page, limit
		return &ports.DirectoryPage{Users: sampleUsers(), Total: 57}, nil
	}))

	resp := doJSON(t, app, http.MethodPost, "/api/employees/page", dto.PageChangeRequest{Tab: "all", Page: 3})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.SnapshotResponse](t, resp)
	assert.Equal(t, 3, body.Page)
	assert.Equal(t, "succeeded", body.Status)
	assert.Equal(t, 3, lastPage, "el cambio de página en all dispara la recarga")
	assert.Equal(t, 10, lastLimit)
	assert.Equal(t, 57, store.Snapshot().Total)
}

func TestSetPage_PestanaDeletedSoloMueveElCursor(t *testing.T) {
	calls := 0
	app, store := buildTestApp(directoryFunc(func(context.Context, int, int) (*ports.DirectoryPage, error) {
		calls++
		return &ports.DirectoryPage{}, nil
	}))

	resp := doJSON(t, app, http.MethodPost, "/api/employees/page", dto.PageChangeRequest{Tab: "deleted", Page: 2})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, store.Snapshot().DeletedPage)
	assert.Zero(t, calls, "la pestaña de eliminados no toca la fuente externa")
}

func TestSetPage_PaginaInvalida(t *testing.T) {
	app, _ := seededApp(t, nil, 0)
	resp := doJSON(t, app, http.MethodPost, "/api/employees/page", dto.PageChangeRequest{Tab: "all", Page: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefresh_FalloDeLaFuente(t *testing.T) {
	app, _ := buildTestApp(directoryFunc(func(context.Context, int, int) (*ports.DirectoryPage, error) {
		return nil, errors.New("upstream caído")
	}))

	resp := doJSON(t, app, http.MethodPost, "/api/employees/refresh", dto.RefreshRequest{Page: 1, Limit: 10})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el fallo de carga no es un fallo HTTP")

	body := decode[dto.SnapshotResponse](t, resp)
	assert.Equal(t, "failed", body.Status)
	assert.Equal(t, "upstream caído", body.Error)
}

func TestSnapshot_EstadoCrudo(t *testing.T) {
	app, store := seededApp(t, sampleUsers(), 57)
	_, err := store.Create("Ada", "Lovelace")
	require.NoError(t, err)

	body := decode[dto.SnapshotResponse](t, doJSON(t, app, http.MethodGet, "/api/employees/snapshot", nil))
	assert.Equal(t, 58, body.Total)
	assert.Len(t, body.Users, 3)
	assert.Equal(t, "Ada", body.Users[0].FirstName, "el alta más reciente encabeza la colección")
	assert.Equal(t, "succeeded", body.Status)
}
