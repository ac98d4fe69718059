package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/access"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// verifyTokenTTL vigencia del link de verificación de email.
const verifyTokenTTL = 48 * time.Hour

// AuthUseCase casos de uso de onboarding y autenticación: registro,
// verificación de email y login. La aprobación de cuentas es de UserAdmin.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
	baseURL  string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig, baseURL string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg, baseURL: baseURL}
}

// Register crea un usuario en estado PENDING: hashea password con bcrypt,
// genera el token de verificación y envía el correo. Devuelve
// ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := access.RoleStaff
	if in.Role != "" {
		parsed, ok := access.ParseRole(in.Role)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		role = parsed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:                 uuid.New().String(),
		Email:              in.Email,
		PasswordHash:       string(hash),
		Name:               name,
		Role:               role,
		Status:             access.StatusPending,
		IsActive:           true,
		EmailVerified:      false,
		VerifyToken:        uuid.New().String(),
		VerifyTokenExpires: now.Add(verifyTokenTTL),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	verifyURL := fmt.Sprintf("%s/api/auth/verify?token=%s", uc.baseURL, user.VerifyToken)
	if err := uc.mailer.SendVerification(user.Email, user.Name, verifyURL); err != nil {
		// El usuario ya existe; puede pedir reenvío. No se revierte el registro.
		return toUserResponse(user), fmt.Errorf("enviar correo de verificación: %w", err)
	}
	return toUserResponse(user), nil
}

// VerifyEmail consume el token del link y transiciona PENDING → VERIFIED.
// La cuenta queda a la espera de aprobación por un administrador.
func (uc *AuthUseCase) VerifyEmail(token string) (*dto.UserResponse, error) {
	if token == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByVerifyToken(token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(user.VerifyTokenExpires) {
		return nil, domain.ErrTokenExpired
	}
	if !access.CanTransition(user.Status, access.StatusVerified) {
		return nil, domain.ErrConflict
	}
	user.Status = access.StatusVerified
	user.EmailVerified = true
	user.VerifyToken = ""
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ResendVerification regenera el token y reenvía el correo (solo PENDING).
func (uc *AuthUseCase) ResendVerification(email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Status != access.StatusPending {
		return domain.ErrConflict
	}
	user.VerifyToken = uuid.New().String()
	user.VerifyTokenExpires = time.Now().Add(verifyTokenTTL)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	verifyURL := fmt.Sprintf("%s/api/auth/verify?token=%s", uc.baseURL, user.VerifyToken)
	return uc.mailer.SendVerification(user.Email, user.Name, verifyURL)
}

// Login verifica email/password y evalúa el acceso con política vacía (basta
// estar APPROVED y activo). Cada denegación del evaluador se devuelve tal cual
// para que el handler dirija al usuario al paso que le falta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, access.Decision, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	decision := access.Decide(user.Identity(), access.Policy{})
	if decision != access.Allow {
		return nil, decision, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		Role:   string(user.Role),
		Status: string(user.Status),
		Active: user.IsActive,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, "", err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, access.Allow, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
