package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/access"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// fakeUserRepo repositorio de usuarios en memoria para los tests.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		copied := *u
		r.users[u.ID] = &copied
	}
	return r
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByVerifyToken(token string) (*entity.User, error) {
	for _, u := range r.users {
		if u.VerifyToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByStatus(status string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if string(u.Status) == status {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeNotifier registra los correos de aprobación/rechazo enviados.
type fakeNotifier struct {
	approved []string
	rejected []string
	reasons  []string
}

func (n *fakeNotifier) SendAccountApproved(to, name string) error {
	n.approved = append(n.approved, to)
	return nil
}

func (n *fakeNotifier) SendAccountRejected(to, name, reason string) error {
	n.rejected = append(n.rejected, to)
	n.reasons = append(n.reasons, reason)
	return nil
}

func userWithStatus(id string, status access.Status) *entity.User {
	return &entity.User{
		ID:            id,
		Email:         id + "@tienda.com",
		Name:          "Usuario " + id,
		Role:          access.RoleStaff,
		Status:        status,
		IsActive:      true,
		EmailVerified: status != access.StatusPending,
	}
}

func TestApprove_VerificadoQuedaAprobadoYNotifica(t *testing.T) {
	repo := newFakeUserRepo(userWithStatus("u1", access.StatusVerified))
	notifier := &fakeNotifier{}
	uc := usecase.NewUserAdminUseCase(repo, notifier)

	out, err := uc.Approve("u1")
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", out.Status)
	stored, _ := repo.GetByID("u1")
	assert.Equal(t, access.StatusApproved, stored.Status, "el nuevo status debe persistirse")
	assert.Equal(t, []string{"u1@tienda.com"}, notifier.approved,
		"la aprobación debe notificarse por correo")
}

func TestApprove_PendienteSinVerificarEsConflicto(t *testing.T) {
	repo := newFakeUserRepo(userWithStatus("u1", access.StatusPending))
	notifier := &fakeNotifier{}
	uc := usecase.NewUserAdminUseCase(repo, notifier)

	_, err := uc.Approve("u1")
	assert.ErrorIs(t, err, domain.ErrConflict,
		"no se puede aprobar una cuenta que no verificó su email")

	stored, _ := repo.GetByID("u1")
	assert.Equal(t, access.StatusPending, stored.Status, "el status no debe cambiar")
	assert.Empty(t, notifier.approved, "no debe enviarse correo")
}

func TestReject_ConMotivoNotificaYEsTerminal(t *testing.T) {
	repo := newFakeUserRepo(userWithStatus("u1", access.StatusVerified))
	notifier := &fakeNotifier{}
	uc := usecase.NewUserAdminUseCase(repo, notifier)

	out, err := uc.Reject("u1", "documentación incompleta")
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", out.Status)
	assert.Equal(t, []string{"documentación incompleta"}, notifier.reasons)

	// REJECTED es terminal: ninguna transición posterior es válida
	_, err = uc.Approve("u1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Reinstate("u1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSuspenderYReinstalar(t *testing.T) {
	repo := newFakeUserRepo(userWithStatus("u1", access.StatusApproved))
	uc := usecase.NewUserAdminUseCase(repo, &fakeNotifier{})

	out, err := uc.Suspend("u1")
	require.NoError(t, err)
	assert.Equal(t, "SUSPENDED", out.Status)

	out, err = uc.Reinstate("u1")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", out.Status, "levantar la suspensión vuelve a APPROVED")
}

func TestSuspend_SoloDesdeAprobado(t *testing.T) {
	repo := newFakeUserRepo(userWithStatus("u1", access.StatusVerified))
	uc := usecase.NewUserAdminUseCase(repo, &fakeNotifier{})

	_, err := uc.Suspend("u1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSetActive_NoTocaElStatus(t *testing.T) {
	repo := newFakeUserRepo(userWithStatus("u1", access.StatusApproved))
	uc := usecase.NewUserAdminUseCase(repo, &fakeNotifier{})

	out, err := uc.SetActive("u1", false)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.Equal(t, "APPROVED", out.Status, "IsActive es ortogonal al ciclo de vida")

	out, err = uc.SetActive("u1", true)
	require.NoError(t, err)
	assert.True(t, out.IsActive)
}

func TestTransiciones_UsuarioInexistente(t *testing.T) {
	uc := usecase.NewUserAdminUseCase(newFakeUserRepo(), &fakeNotifier{})

	_, err := uc.Approve("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList_StatusInvalido(t *testing.T) {
	uc := usecase.NewUserAdminUseCase(newFakeUserRepo(), &fakeNotifier{})

	_, err := uc.List("ARCHIVED", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltraPorStatus(t *testing.T) {
	repo := newFakeUserRepo(
		userWithStatus("u1", access.StatusVerified),
		userWithStatus("u2", access.StatusApproved),
		userWithStatus("u3", access.StatusVerified),
	)
	uc := usecase.NewUserAdminUseCase(repo, &fakeNotifier{})

	out, err := uc.List("VERIFIED", 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2, "solo las cuentas en cola de aprobación")
}
