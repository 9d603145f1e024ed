package dto

import (
	"github.com/jhoicas/Empleados-api/internal/application/employees"
	"github.com/jhoicas/Empleados-api/internal/application/view"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// CompanyDTO sub-objeto canónico con los datos laborales.
type CompanyDTO struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	Name       string `json:"name"`
}

// TeamSummaryDTO equipos visibles en la fila y cuántos quedan tras el "+N".
type TeamSummaryDTO struct {
	Shown       []string `json:"shown"`
	HiddenCount int      `json:"hidden_count"`
}

// EmployeeResponse un empleado tal como lo pinta la tabla. Role, Department y
// Teams son proyecciones de solo lectura de company.*: no se almacenan aparte
// y por tanto no pueden desincronizarse.
type EmployeeResponse struct {
	ID          int64          `json:"id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	Image       string         `json:"image"`
	Status      bool           `json:"status"`
	Company     CompanyDTO     `json:"company"`
	Role        string         `json:"role"`
	Department  string         `json:"department"`
	TeamSummary TeamSummaryDTO `json:"team_summary"`
}

// CreateEmployeeRequest alta desde el modal: solo nombre y apellido.
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateEmployeeRequest edición de registro completo (el ID va en la ruta).
type UpdateEmployeeRequest struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Image     string     `json:"image"`
	Status    bool       `json:"status"`
	Company   CompanyDTO `json:"company"`
}

// PageChangeRequest intento de cambio de página de una pestaña.
type PageChangeRequest struct {
	Tab  string `json:"tab"`
	Page int    `json:"page"`
}

// RefreshRequest recarga explícita desde la fuente externa.
type RefreshRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// EmployeeListResponse la vista derivada que renderiza la tabla: filas ya
// filtradas/paginadas más todo lo que necesitan cabecera, pestañas y control
// de paginación. PageWindow usa -1 como marcador de elipsis; cuando hay una
// sola página ShowPagination apaga el control por completo.
type EmployeeListResponse struct {
	Items          []EmployeeResponse `json:"items"`
	Tab            string             `json:"tab"`
	Page           int                `json:"page"`
	Limit          int                `json:"limit"`
	Total          int                `json:"total"`
	DeletedCount   int                `json:"deleted_count"`
	TotalPages     int                `json:"total_pages"`
	PageWindow     []int              `json:"page_window"`
	ShowPagination bool               `json:"show_pagination"`
	Status         string             `json:"status"`
	Error          string             `json:"error,omitempty"`
}

// SnapshotResponse estado crudo del store para hidratar el cliente.
type SnapshotResponse struct {
	Users        []EmployeeResponse `json:"users"`
	DeletedUsers []EmployeeResponse `json:"deleted_users"`
	Total        int                `json:"total"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	DeletedPage  int                `json:"deleted_page"`
	Status       string             `json:"status"`
	Error        string             `json:"error,omitempty"`
}

// ToEmployeeResponse proyecta la entidad a su forma de tabla, derivando los
// campos de conveniencia desde company.*.
func ToEmployeeResponse(e entity.Employee) EmployeeResponse {
	summary := view.SummarizeTeams(e.Company.Name)
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Image:      e.Image,
		Status:     e.Status,
		Company:    CompanyDTO(e.Company),
		Role:       e.Company.Title,
		Department: e.Company.Department,
		TeamSummary: TeamSummaryDTO{
			Shown:       summary.Shown,
			HiddenCount: summary.HiddenCount,
		},
	}
}

// ToEmployeeResponses proyecta una colección conservando el orden.
func ToEmployeeResponses(list []entity.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToEmployeeResponse(e))
	}
	return out
}

// ToSnapshotResponse proyecta el snapshot completo del store.
func ToSnapshotResponse(s employees.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Users:        ToEmployeeResponses(s.Users),
		DeletedUsers: ToEmployeeResponses(s.DeletedUsers),
		Total:        s.Total,
		Page:         s.Page,
		Limit:        s.Limit,
		DeletedPage:  s.DeletedPage,
		Status:       string(s.Status),
		Error:        s.Error,
	}
}
