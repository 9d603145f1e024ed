// Package directory implementa el puerto EmployeeDirectory contra el
// endpoint público de listado de usuarios (dummyjson.com o compatible).
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/Empleados-api/internal/application/ports"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa EmployeeDirectory.
var _ ports.EmployeeDirectory = (*Client)(nil)

// DefaultBaseURL fuente pública de datos de demostración.
const DefaultBaseURL = "https://dummyjson.com"

// Client adaptador HTTP del directorio de empleados. Usa net/http de la
// librería estándar; el contrato es GET {base}/users?limit=<n>&skip=<offset>.
//
// Sin timeout propio: una carga no se corta sola y el fallo de red se reporta
// como error normal; quien llama puede cancelar vía context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL vacío usa DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// ── Estructuras del contrato JSON de la fuente externa ───────────────────────

type wireCompany struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	Name       string `json:"name"`
}

type wireUser struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Image     string      `json:"image"`
	Company   wireCompany `json:"company"`
}

type usersResponse struct {
	Users []wireUser `json:"users"`
	Total int        `json:"total"`
}

// FetchPage pide la página indicada (skip = (page-1)*limit) y la mapea a
// entidades. La fuente no trae estado laboral, así que cada empleado llega
// con Status=true: determinista, a diferencia del booleano aleatorio por
// usuario que asignaba el dashboard original.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*ports.DirectoryPage, error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	endpoint := c.baseURL + "/users?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("directorio: construir petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directorio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("directorio: HTTP %d al listar usuarios", resp.StatusCode)
	}

	var body usersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("directorio: decodificar respuesta: %w", err)
	}

	users := make([]entity.Employee, 0, len(body.Users))
	for _, u := range body.Users {
		users = append(users, entity.Employee{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Image:     u.Image,
			Status:    true,
			Company:   entity.Company(u.Company),
		})
	}
	return &ports.DirectoryPage{Users: users, Total: body.Total}, nil
}
