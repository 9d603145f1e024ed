package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/employees"
	"github.com/jhoicas/Empleados-api/internal/application/view"
	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// Pestañas válidas del listado.
const (
	TabAll     = "all"
	TabDeleted = "deleted"
)

// deletedPageLimit tamaño de página fijo de la pestaña de eliminados (se
// pagina en local, no contra la fuente externa).
const deletedPageLimit = 10

// EmployeeHandler maneja las peticiones HTTP del panel de empleados.
type EmployeeHandler struct {
	store *employees.Store
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(store *employees.Store) *EmployeeHandler {
	return &EmployeeHandler{store: store}
}

// List godoc
// @Summary      Listar empleados (vista derivada de la tabla)
// @Tags         employees
// @Produce      json
// @Param        tab     query  string  false  "all o deleted"  default(all)
// @Param        search  query  string  false  "texto de búsqueda (solo pestaña all)"
// @Param        page    query  int     false  "página de eliminados (solo pestaña deleted)"
// @Success      200  {object}  dto.EmployeeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	tab := c.Query("tab", TabAll)
	if tab != TabAll && tab != TabDeleted {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TAB", Message: "tab debe ser all o deleted"})
	}

	snap := h.store.Snapshot()
	resp := dto.EmployeeListResponse{
		Tab:          tab,
		Total:        snap.Total,
		DeletedCount: len(snap.DeletedUsers),
		Status:       string(snap.Status),
		Error:        snap.Error,
	}

	if tab == TabAll {
		// Los activos ya son una página del servidor: aquí solo se filtran.
		resp.Items = dto.ToEmployeeResponses(view.FilterBySearch(snap.Users, c.Query("search")))
		resp.Page = snap.Page
		resp.Limit = snap.Limit
		resp.TotalPages = view.TotalPages(snap.Total, snap.Limit)
	} else {
		// Los eliminados se paginan en local y no se filtran por búsqueda.
		page := c.QueryInt("page", snap.DeletedPage)
		resp.Items = dto.ToEmployeeResponses(view.Paginate(snap.DeletedUsers, page, deletedPageLimit))
		resp.Page = page
		resp.Limit = deletedPageLimit
		resp.TotalPages = view.TotalPages(len(snap.DeletedUsers), deletedPageLimit)
	}

	// El control de paginación se apaga entero con una sola página o ninguna.
	resp.ShowPagination = resp.TotalPages > 1
	if resp.ShowPagination {
		resp.PageWindow = view.BuildPageWindow(resp.Page, resp.TotalPages)
	} else {
		resp.PageWindow = []int{}
	}
	return c.JSON(resp)
}

// Snapshot godoc
// @Summary      Estado crudo del store (hidratación del cliente)
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.SnapshotResponse
// @Router       /api/employees/snapshot [get]
func (h *EmployeeHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(dto.ToSnapshotResponse(h.store.Snapshot()))
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Nombre y apellido"
// @Success      201  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	emp, err := h.store.Create(in.FirstName, in.LastName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicateName):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToEmployeeResponse(*emp))
}

// Update godoc
// @Summary      Actualizar empleado (activo o eliminado)
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Registro completo"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	emp := entity.Employee{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Image:     in.Image,
		Status:    in.Status,
		Company:   entity.Company(in.Company),
	}
	if err := h.store.Update(emp); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateName):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToEmployeeResponse(emp))
}

// Delete godoc
// @Summary      Borrado lógico: mueve el empleado a la pestaña de eliminados
// @Tags         employees
// @Param        id  path  int  true  "ID del empleado"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	snap := h.store.Snapshot()
	emp, ok := findByID(snap.Users, id)
	if !ok {
		if _, alreadyDeleted := findByID(snap.DeletedUsers, id); alreadyDeleted {
			// Repetir el borrado de un eliminado no cambia nada.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	}
	h.store.Delete(emp)
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPage godoc
// @Summary      Cambiar de página en una pestaña
// @Description  En la pestaña all el cambio dispara una recarga contra la fuente externa; en deleted solo mueve el cursor local.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PageChangeRequest  true  "Pestaña y página"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/employees/page [post]
func (h *EmployeeHandler) SetPage(c *fiber.Ctx) error {
	var in dto.PageChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "page debe ser mayor o igual a 1"})
	}
	switch in.Tab {
	case TabAll, "":
		h.store.SetPage(in.Page)
		// El fallo de carga no tumba la petición: queda en status/error del snapshot.
		_ = h.store.Load(c.Context(), in.Page, h.store.Limit())
	case TabDeleted:
		h.store.SetDeletedPage(in.Page)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TAB", Message: "tab debe ser all o deleted"})
	}
	return c.JSON(dto.ToSnapshotResponse(h.store.Snapshot()))
}

// Refresh godoc
// @Summary      Recargar empleados activos desde la fuente externa
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  false  "Página y límite (por defecto los cursores actuales)"
// @Success      200  {object}  dto.SnapshotResponse
// @Router       /api/employees/refresh [post]
func (h *EmployeeHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	snap := h.store.Snapshot()
	page := in.Page
	if page < 1 {
		page = snap.Page
	}
	limit := in.Limit
	if limit < 1 {
		limit = snap.Limit
	}
	_ = h.store.Load(c.Context(), page, limit)
	return c.JSON(dto.ToSnapshotResponse(h.store.Snapshot()))
}

func findByID(list []entity.Employee, id int64) (entity.Employee, bool) {
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Employee{}, false
}
