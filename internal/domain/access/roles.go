package access

// Role nivel de autorización de un usuario. Enum cerrado: cualquier valor fuera
// de estas constantes se trata como desconocido y el evaluador falla cerrado.
type Role string

// Roles válidos.
const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// legacyRoleEmployee valor histórico renombrado a STAFF. Solo se acepta al
// deserializar datos antiguos; nunca se emite.
const legacyRoleEmployee = "EMPLOYEE"

// ParseRole normaliza un rol persistido. EMPLOYEE se acepta como alias
// deprecado de STAFF (filas anteriores a la migración de renombre).
// ok=false para cualquier otro valor.
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleManager):
		return RoleManager, true
	case string(RoleStaff), legacyRoleEmployee:
		return RoleStaff, true
	}
	return "", false
}

// Valid indica si el rol es uno de los valores cerrados del enum.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Status etapa del ciclo de vida de una cuenta. Transiciones permitidas:
// PENDING→VERIFIED→APPROVED, PENDING/VERIFIED→REJECTED, APPROVED→SUSPENDED
// (y SUSPENDED→APPROVED al levantar la suspensión). Solo APPROVED accede a
// recursos protegidos.
type Status string

// Estados válidos.
const (
	StatusPending   Status = "PENDING"
	StatusVerified  Status = "VERIFIED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusSuspended Status = "SUSPENDED"
)

// ParseStatus valida un status persistido. ok=false para valores desconocidos.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusVerified, StatusApproved, StatusRejected, StatusSuspended:
		return Status(s), true
	}
	return "", false
}

// Valid indica si el status es uno de los valores cerrados del enum.
func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// allowedTransitions tabla de transiciones válidas del ciclo de vida de cuenta.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusVerified, StatusRejected},
	StatusVerified:  {StatusApproved, StatusRejected},
	StatusApproved:  {StatusSuspended},
	StatusSuspended: {StatusApproved},
	StatusRejected:  {}, // terminal
}

// CanTransition indica si el cambio de status from→to está permitido.
func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
