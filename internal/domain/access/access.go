package access

// Identity identidad ya autenticada que llega con la petición. La resuelve la
// capa de sesión (JWT); este paquete solo decide sobre sus campos.
//
// EmailVerified se guarda y se muestra, pero una vez que Status avanzó más
// allá de PENDING no vuelve a consultarse: el status es la fuente de verdad
// del ciclo de vida (comportamiento heredado, documentado a propósito).
type Identity struct {
	Role          Role
	Status        Status
	IsActive      bool
	EmailVerified bool
}

// Policy política de acceso de un recurso protegido. RequiredRoles vacío
// significa "cualquier usuario APPROVED y activo".
type Policy struct {
	RequiredRoles []Role
}

// PolicyFor construye una política con los roles indicados.
func PolicyFor(roles ...Role) Policy {
	return Policy{RequiredRoles: roles}
}

// Decision resultado del evaluador de acceso. Cada denegación distinta existe
// porque el caller redirige a un destino distinto.
type Decision string

// Decisiones posibles.
const (
	Allow               Decision = "ALLOW"
	DenyInactive        Decision = "DENY_INACTIVE"
	DenyUnverified      Decision = "DENY_UNVERIFIED"
	DenyPendingApproval Decision = "DENY_PENDING_APPROVAL"
	DenyRejected        Decision = "DENY_REJECTED"
	DenySuspended       Decision = "DENY_SUSPENDED"
	DenyRole            Decision = "DENY_ROLE"
)

// Decide evalúa la identidad contra la política del recurso. Función pura, sin
// efectos; el caller ejecuta la respuesta o redirección.
//
// El orden de los chequeos importa y no debe reordenarse:
//  1. Una cuenta desactivada nunca recibe pistas de su status (no filtrar
//     información a cuentas dadas de baja).
//  2. Entre cuentas activas, cada status no-APPROVED produce una denegación
//     distinta porque guía al usuario a un paso distinto (verificar email,
//     esperar aprobación, etc.).
//  3. El rol solo se evalúa después de la aprobación completa.
//
// Valores de rol o status fuera del enum se resuelven con la denegación más
// restrictiva aplicable, nunca con Allow (fail closed). Con los enums cerrados
// el caso "status desconocido" debería ser inalcanzable; se conserva como
// defensa para datos migrados de almacenamiento legado.
func Decide(id Identity, pol Policy) Decision {
	if !id.IsActive {
		return DenyInactive
	}
	switch id.Status {
	case StatusPending:
		return DenyUnverified
	case StatusVerified:
		return DenyPendingApproval
	case StatusRejected:
		return DenyRejected
	case StatusSuspended:
		return DenySuspended
	case StatusApproved:
		// sigue a la evaluación de rol
	default:
		return DenyPendingApproval
	}
	if len(pol.RequiredRoles) > 0 {
		if !id.Role.Valid() {
			return DenyRole
		}
		for _, r := range pol.RequiredRoles {
			if id.Role == r {
				return Allow
			}
		}
		return DenyRole
	}
	return Allow
}
