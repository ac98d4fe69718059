package usecase

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/access"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// approvalNotifier contrato mínimo de correo que necesita la administración de
// cuentas. Lo implementa el mailer SMTP; la interfaz local evita acoplar este
// paquete al de auth.
type approvalNotifier interface {
	SendAccountApproved(to, name string) error
	SendAccountRejected(to, name, reason string) error
}

// UserAdminUseCase administración de cuentas por parte de un ADMIN: aprobación,
// rechazo, suspensión y activación. Toda transición pasa por la tabla del ciclo
// de vida; un cambio fuera de la tabla es ErrConflict.
type UserAdminUseCase struct {
	userRepo repository.UserRepository
	notifier approvalNotifier
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(userRepo repository.UserRepository, notifier approvalNotifier) *UserAdminUseCase {
	return &UserAdminUseCase{userRepo: userRepo, notifier: notifier}
}

// Approve transiciona VERIFIED → APPROVED y notifica por correo.
func (uc *UserAdminUseCase) Approve(userID string) (*dto.UserResponse, error) {
	user, err := uc.transition(userID, access.StatusApproved)
	if err != nil {
		return nil, err
	}
	// El correo es cortesía; si falla, la aprobación ya quedó persistida.
	_ = uc.notifier.SendAccountApproved(user.Email, user.Name)
	return toAdminUserResponse(user), nil
}

// Reject transiciona PENDING/VERIFIED → REJECTED (estado terminal) y notifica.
func (uc *UserAdminUseCase) Reject(userID, reason string) (*dto.UserResponse, error) {
	user, err := uc.transition(userID, access.StatusRejected)
	if err != nil {
		return nil, err
	}
	_ = uc.notifier.SendAccountRejected(user.Email, user.Name, reason)
	return toAdminUserResponse(user), nil
}

// Suspend transiciona APPROVED → SUSPENDED.
func (uc *UserAdminUseCase) Suspend(userID string) (*dto.UserResponse, error) {
	user, err := uc.transition(userID, access.StatusSuspended)
	if err != nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// Reinstate levanta una suspensión: SUSPENDED → APPROVED.
func (uc *UserAdminUseCase) Reinstate(userID string) (*dto.UserResponse, error) {
	user, err := uc.transition(userID, access.StatusApproved)
	if err != nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// SetActive enciende o apaga la cuenta. IsActive es ortogonal al status: una
// cuenta desactivada conserva su etapa del ciclo de vida.
func (uc *UserAdminUseCase) SetActive(userID string, active bool) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// List lista usuarios, opcionalmente filtrados por status.
func (uc *UserAdminUseCase) List(status string, limit, offset int) (*dto.UserListResponse, error) {
	var (
		users []*entity.User
		err   error
	)
	if status != "" {
		if _, ok := access.ParseStatus(status); !ok {
			return nil, domain.ErrInvalidInput
		}
		users, err = uc.userRepo.ListByStatus(status, limit, offset)
	} else {
		users, err = uc.userRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toAdminUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *UserAdminUseCase) transition(userID string, to access.Status) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !access.CanTransition(user.Status, to) {
		return nil, domain.ErrConflict
	}
	user.Status = to
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func toAdminUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		Status:        string(u.Status),
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
