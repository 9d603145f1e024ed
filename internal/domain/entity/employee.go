package entity

import "strings"

// Company datos laborales del empleado. Name guarda la lista de equipos en un
// solo string, separada por comas, la palabra "and" o guiones (así la entrega
// la fuente externa).
type Company struct {
	Title      string
	Department string
	Name       string
}

// Employee representa un registro de empleado del directorio.
// El ID lo asigna el store al crear y nunca se reasigna; un mismo ID vive en
// exactamente una de las dos colecciones (activos o eliminados).
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Image     string
	Status    bool // estado laboral (activo/inactivo); independiente de la colección
	Company   Company
}

// NormalizedName devuelve el nombre completo normalizado para detección de
// duplicados: minúsculas y sin espacios en blanco.
func (e Employee) NormalizedName() string {
	return NormalizeName(e.FirstName, e.LastName)
}

// NormalizeName normaliza la concatenación nombre+apellido.
func NormalizeName(firstName, lastName string) string {
	return strings.ToLower(strings.Join(strings.Fields(firstName+lastName), ""))
}
