package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/retail-pos/internal/domain/access"
)

func approvedStaff() access.Identity {
	return access.Identity{
		Role:          access.RoleStaff,
		Status:        access.StatusApproved,
		IsActive:      true,
		EmailVerified: true,
	}
}

func TestDecide_AprobadoSinPoliticaDeRoles(t *testing.T) {
	d := access.Decide(approvedStaff(), access.Policy{})
	assert.Equal(t, access.Allow, d, "APPROVED activo sin restricción de rol debe pasar")
}

// La inactividad domina sobre cualquier otro chequeo: una cuenta desactivada
// con status APPROVED y rol correcto igual recibe DENY_INACTIVE.
func TestDecide_InactivoDominaTodo(t *testing.T) {
	id := approvedStaff()
	id.IsActive = false
	d := access.Decide(id, access.PolicyFor(access.RoleStaff))
	assert.Equal(t, access.DenyInactive, d)
}

func TestDecide_OrdenDeStatus(t *testing.T) {
	cases := []struct {
		name   string
		status access.Status
		want   access.Decision
	}{
		{"pendiente", access.StatusPending, access.DenyUnverified},
		{"verificado sin aprobar", access.StatusVerified, access.DenyPendingApproval},
		{"rechazado", access.StatusRejected, access.DenyRejected},
		{"suspendido", access.StatusSuspended, access.DenySuspended},
		{"status desconocido", access.Status("BANNED"), access.DenyPendingApproval},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := approvedStaff()
			id.Status = tc.status
			assert.Equal(t, tc.want, access.Decide(id, access.Policy{}))
		})
	}
}

func TestDecide_RolNoPermitido(t *testing.T) {
	id := approvedStaff() // STAFF
	pol := access.PolicyFor(access.RoleAdmin, access.RoleManager)
	assert.Equal(t, access.DenyRole, access.Decide(id, pol))
}

func TestDecide_RolPermitidoEntreVarios(t *testing.T) {
	id := approvedStaff()
	id.Role = access.RoleManager
	pol := access.PolicyFor(access.RoleAdmin, access.RoleManager)
	assert.Equal(t, access.Allow, access.Decide(id, pol))
}

// Rol desconocido contra una política con roles: fail closed.
func TestDecide_RolDesconocidoFallaCerrado(t *testing.T) {
	id := approvedStaff()
	id.Role = access.Role("SUPERUSER")
	assert.Equal(t, access.DenyRole, access.Decide(id, access.PolicyFor(access.RoleAdmin)))
}

// EmailVerified no se reconsulta una vez pasado PENDING: un APPROVED con el
// flag en false sigue entrando (el status es la autoridad).
func TestDecide_EmailVerifiedNoSeReconsulta(t *testing.T) {
	id := approvedStaff()
	id.EmailVerified = false
	assert.Equal(t, access.Allow, access.Decide(id, access.Policy{}))
}

func TestParseRole_AliasLegadoEmployee(t *testing.T) {
	r, ok := access.ParseRole("EMPLOYEE")
	assert.True(t, ok, "EMPLOYEE debe aceptarse como alias deprecado")
	assert.Equal(t, access.RoleStaff, r)

	_, ok = access.ParseRole("CASHIER")
	assert.False(t, ok)
}

func TestCanTransition_TablaDeCicloDeVida(t *testing.T) {
	permitidas := [][2]access.Status{
		{access.StatusPending, access.StatusVerified},
		{access.StatusPending, access.StatusRejected},
		{access.StatusVerified, access.StatusApproved},
		{access.StatusVerified, access.StatusRejected},
		{access.StatusApproved, access.StatusSuspended},
		{access.StatusSuspended, access.StatusApproved},
	}
	for _, p := range permitidas {
		assert.True(t, access.CanTransition(p[0], p[1]), "%s → %s debe permitirse", p[0], p[1])
	}

	prohibidas := [][2]access.Status{
		{access.StatusPending, access.StatusApproved}, // no saltarse la verificación
		{access.StatusRejected, access.StatusApproved},
		{access.StatusApproved, access.StatusPending},
		{access.StatusSuspended, access.StatusRejected},
	}
	for _, p := range prohibidas {
		assert.False(t, access.CanTransition(p[0], p[1]), "%s → %s debe rechazarse", p[0], p[1])
	}
}
