// Package employees implementa el store de registros de empleados: la única
// fuente de verdad de las colecciones (activos y eliminados), los cursores de
// paginación y el estado de carga. Es el único componente que muta empleados.
package employees

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Empleados-api/internal/application/ports"
	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// LoadStatus estado de la última carga desde la fuente externa.
// Transiciones: idle -> loading -> {succeeded, failed}; succeeded y failed
// vuelven a loading con cada Load nuevo. idle no se re-entra jamás.
type LoadStatus string

const (
	StatusIdle      LoadStatus = "idle"
	StatusLoading   LoadStatus = "loading"
	StatusSucceeded LoadStatus = "succeeded"
	StatusFailed    LoadStatus = "failed"
)

// Valores por defecto al crear un empleado desde el modal (la fuente externa
// no interviene en altas locales).
const (
	defaultRole       = "New Role"
	defaultDepartment = "New Dept"
	defaultTeam       = "No Team"
)

// Snapshot estado del store en un instante, de solo lectura para la capa de
// presentación. Las slices son copias: mutarlas no afecta al store.
type Snapshot struct {
	Users        []entity.Employee
	DeletedUsers []entity.Employee
	Total        int
	Page         int
	Limit        int
	DeletedPage  int
	Status       LoadStatus
	Error        string
}

// Store contenedor en memoria de empleados. Un ID existe en exactamente una
// de las dos colecciones; las inserciones van al frente (lo más nuevo
// primero). Total cuenta solo activos (es el total del lado servidor).
//
// Se construye por instancia e inyección explícita, sin estado global; cada
// test levanta el suyo. El mutex existe porque los handlers HTTP corren
// concurrentes: cada operación es atómica respecto al resto.
type Store struct {
	mu          sync.Mutex
	users       []entity.Employee
	deleted     []entity.Employee
	total       int
	page        int
	limit       int
	deletedPage int
	status      LoadStatus
	lastError   string
	loadSeq     uint64

	directory ports.EmployeeDirectory
	log       *logger.Logger
}

// NewStore construye el store con sus cursores iniciales (página 1, 10 por
// página) y estado idle.
func NewStore(directory ports.EmployeeDirectory, log *logger.Logger) *Store {
	return &Store{
		users:       []entity.Employee{},
		deleted:     []entity.Employee{},
		page:        1,
		limit:       10,
		deletedPage: 1,
		status:      StatusIdle,
		directory:   directory,
		log:         log,
	}
}

// Load pide una página de activos a la fuente externa y reemplaza la
// colección de activos y Total con la respuesta. En fallo conserva las
// colecciones previas (dato viejo visible antes que pantalla vacía) y guarda
// el mensaje de error, con domain.DefaultLoadError como respaldo.
//
// No hay deduplicación ni cancelación de cargas en vuelo: si se solapan dos
// Load gana el último emitido y el resultado del anterior (éxito o fallo) se
// descarta, mediante un contador monótono de generación.
func (s *Store) Load(ctx context.Context, page, limit int) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	loadID := uuid.NewString()
	s.log.Debug().Str("load_id", loadID).Int("page", page).Int("limit", limit).
		Msg("cargando empleados desde la fuente externa")

	result, err := s.directory.FetchPage(ctx, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.loadSeq {
		// Se emitió un Load más reciente mientras este resolvía.
		s.log.Debug().Str("load_id", loadID).Msg("resultado de carga obsoleto, descartado")
		return nil
	}
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = domain.DefaultLoadError
		}
		s.status = StatusFailed
		s.lastError = msg
		s.log.Warn().Str("load_id", loadID).Str("error", msg).Msg("fallo al cargar empleados")
		return err
	}

	s.users = append([]entity.Employee(nil), result.Users...)
	s.total = result.Total
	s.status = StatusSucceeded
	s.lastError = ""
	s.log.Debug().Str("load_id", loadID).Int("total", result.Total).
		Int("users", len(result.Users)).Msg("empleados cargados")
	return nil
}

// Create valida y da de alta un empleado local: ID fresco, email derivado,
// Status activo y campos de empresa por defecto. Se antepone a los activos y
// Total sube en uno. Devuelve domain.ErrMissingField si falta nombre o
// apellido y domain.ErrDuplicateName si ya existe un activo con el mismo
// nombre normalizado.
func (s *Store) Create(firstName, lastName string) (*entity.Employee, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, domain.ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeNameTaken(entity.NormalizeName(firstName, lastName), 0) {
		return nil, domain.ErrDuplicateName
	}

	emp := entity.Employee{
		ID:        s.nextEmployeeID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(firstName) + "." + strings.ToLower(lastName) + "@example.com",
		Status:    true,
		Company: entity.Company{
			Title:      defaultRole,
			Department: defaultDepartment,
			Name:       defaultTeam,
		},
	}
	s.users = append([]entity.Employee{emp}, s.users...)
	s.total++
	return &emp, nil
}

// Update localiza al empleado por ID en la colección que lo tenga (activos o
// eliminados) y lo reemplaza en su sitio, conservando pertenencia y posición.
// Re-ejecuta el chequeo de nombre duplicado contra los activos excluyendo al
// propio registro. domain.ErrNotFound si el ID no está en ninguna colección.
func (s *Store) Update(emp entity.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeNameTaken(emp.NormalizedName(), emp.ID) {
		return domain.ErrDuplicateName
	}
	for i := range s.users {
		if s.users[i].ID == emp.ID {
			s.users[i] = emp
			return nil
		}
	}
	for i := range s.deleted {
		if s.deleted[i].ID == emp.ID {
			s.deleted[i] = emp
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete borrado lógico: saca al empleado de activos por ID y lo antepone a
// eliminados. Total baja solo si el ID estaba realmente en activos; borrar un
// ID ya eliminado es un no-op completo. Nunca falla.
func (s *Store) Delete(emp entity.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.deleted {
		if s.deleted[i].ID == emp.ID {
			return
		}
	}

	removed := false
	kept := s.users[:0]
	for _, e := range s.users {
		if e.ID == emp.ID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.users = kept
	if removed {
		s.total--
	}
	s.deleted = append([]entity.Employee{emp}, s.deleted...)
}

// SetPage reemplaza el cursor de página de activos. Sin validación de rango:
// los límites los impone el control de paginación de la vista.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// SetDeletedPage reemplaza el cursor de página de eliminados.
func (s *Store) SetDeletedPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletedPage = page
}

// Limit devuelve el tamaño de página configurado para activos.
func (s *Store) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// Snapshot copia de solo lectura del estado actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Users:        append([]entity.Employee(nil), s.users...),
		DeletedUsers: append([]entity.Employee(nil), s.deleted...),
		Total:        s.total,
		Page:         s.page,
		Limit:        s.limit,
		DeletedPage:  s.deletedPage,
		Status:       s.status,
		Error:        s.lastError,
	}
}

// activeNameTaken comprueba colisión de nombre normalizado contra los activos,
// exceptuando exceptID (0 = sin excepción). Los eliminados no cuentan.
func (s *Store) activeNameTaken(normalized string, exceptID int64) bool {
	for _, e := range s.users {
		if e.ID != exceptID && e.NormalizedName() == normalized {
			return true
		}
	}
	return false
}

// nextEmployeeID genera un ID único basado en el reloj (milisegundos desde
// epoch), avanzando hasta esquivar cualquier ID ya presente en ambas
// colecciones. Llamar con el mutex tomado.
func (s *Store) nextEmployeeID() int64 {
	id := time.Now().UnixMilli()
	for s.idExists(id) {
		id++
	}
	return id
}

func (s *Store) idExists(id int64) bool {
	for _, e := range s.users {
		if e.ID == id {
			return true
		}
	}
	for _, e := range s.deleted {
		if e.ID == id {
			return true
		}
	}
	return false
}
