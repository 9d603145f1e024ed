// Package view contiene las transformaciones puras sobre un snapshot del
// store: filtro de búsqueda, ventana de paginación y resumen de equipos.
// Ninguna función muta sus entradas ni guarda estado; el mismo input produce
// siempre el mismo output.
package view

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// Ellipsis marcador dentro de una ventana de paginación: el hueco "..."
// entre números de página.
const Ellipsis = -1

// FilterBySearch filtra empleados por substring (case-insensitive) contra
// nombre, apellido, email, ID en decimal, cargo, departamento y equipos.
// Una query vacía (tras trim) devuelve todos. El orden original se conserva.
func FilterBySearch(employees []entity.Employee, query string) []entity.Employee {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.Employee, 0, len(employees))
	for _, e := range employees {
		if q == "" || matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e entity.Employee, q string) bool {
	fields := []string{
		e.FirstName,
		e.LastName,
		e.Email,
		strconv.FormatInt(e.ID, 10),
		e.Company.Title,
		e.Company.Department,
		e.Company.Name,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Paginate devuelve la ventana [(page-1)*limit, page*limit) de la colección.
// Páginas fuera de rango o límites inválidos devuelven una slice vacía.
func Paginate(employees []entity.Employee, page, limit int) []entity.Employee {
	if page < 1 || limit <= 0 {
		return []entity.Employee{}
	}
	start := (page - 1) * limit
	if start >= len(employees) {
		return []entity.Employee{}
	}
	end := start + limit
	if end > len(employees) {
		end = len(employees)
	}
	out := make([]entity.Employee, end-start)
	copy(out, employees[start:end])
	return out
}

// TotalPages número de páginas necesarias para totalItems con perPage por
// página (techo). Cero cuando no hay elementos o perPage es inválido.
func TotalPages(totalItems, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return (totalItems + perPage - 1) / perPage
}

// BuildPageWindow calcula la secuencia condensada de números de página que
// muestra el control de paginación, con Ellipsis como hueco. Hasta 7 páginas
// se listan completas; a partir de ahí la ventana depende de la página actual:
//
//	currentPage <= 4:              1 2 3 4 5 ... N
//	currentPage >= totalPages-3:   1 ... N-4 N-3 N-2 N-1 N
//	resto:                         1 ... c-1 c c+1 ... N
func BuildPageWindow(currentPage, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if totalPages <= 7 {
		pages := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}
	switch {
	case currentPage <= 4:
		return []int{1, 2, 3, 4, 5, Ellipsis, totalPages}
	case currentPage >= totalPages-3:
		return []int{1, Ellipsis, totalPages - 4, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	default:
		return []int{1, Ellipsis, currentPage - 1, currentPage, currentPage + 1, Ellipsis, totalPages}
	}
}

// teamSplitter separa la lista de equipos de company.name: coma, la palabra
// "and" o guion, insensible a mayúsculas.
var teamSplitter = regexp.MustCompile(`(?i),| and | - `)

// TeamSummary equipos a mostrar en una fila de la tabla y cuántos quedan
// ocultos tras el distintivo "+N".
type TeamSummary struct {
	Shown       []string
	HiddenCount int
}

// SummarizeTeams trocea company.name en equipos, muestra los dos primeros y
// cuenta el resto. Un nombre vacío produce Shown vacío (el renderizador es
// quien decide pintar "No Team" en ese caso).
func SummarizeTeams(companyName string) TeamSummary {
	tokens := teamSplitter.Split(companyName, -1)
	teams := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			teams = append(teams, t)
		}
	}
	shown := teams
	if len(shown) > 2 {
		shown = shown[:2]
	}
	return TeamSummary{Shown: shown, HiddenCount: len(teams) - len(shown)}
}
