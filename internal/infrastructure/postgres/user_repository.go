package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/access"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, role, status, is_active, email_verified, COALESCE(verify_token, ''), COALESCE(verify_token_expires, 'epoch'::timestamptz), created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, status, is_active, email_verified, verify_token, verify_token_expires, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		string(user.Role), string(user.Status), user.IsActive, user.EmailVerified,
		user.VerifyToken, user.VerifyTokenExpires, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user")
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// GetByVerifyToken obtiene un usuario por su token de verificación de email.
func (r *UserRepo) GetByVerifyToken(token string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE verify_token = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, token), "get user by verify token")
}

// Update actualiza un usuario existente (incluye status, role y flags de cuenta).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, role = $5, status = $6,
		    is_active = $7, email_verified = $8, verify_token = NULLIF($9, ''),
		    verify_token_expires = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		string(user.Role), string(user.Status), user.IsActive, user.EmailVerified,
		user.VerifyToken, user.VerifyTokenExpires, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return r.scanMany(rows)
}

// ListByStatus lista usuarios filtrando por status de cuenta (ej. la cola de aprobación).
func (r *UserRepo) ListByStatus(status string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users by status: %w", err)
	}
	return r.scanMany(rows)
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (r *UserRepo) scanMany(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// scanUser lee la fila parseando role y status por los enums del dominio; filas
// con el rol legado EMPLOYEE salen normalizadas a STAFF.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role, status string
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &status,
		&u.IsActive, &u.EmailVerified, &u.VerifyToken, &u.VerifyTokenExpires,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// Un valor fuera del enum queda como está y el decisor de acceso lo rechaza
	if parsed, ok := access.ParseRole(role); ok {
		u.Role = parsed
	} else {
		u.Role = access.Role(role)
	}
	if parsed, ok := access.ParseStatus(status); ok {
		u.Status = parsed
	} else {
		u.Status = access.Status(status)
	}
	return &u, nil
}
