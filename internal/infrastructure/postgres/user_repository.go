package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// La unicidad de username por empresa es case-insensitive: la tabla tiene un
// índice único sobre (company_id, LOWER(username)).
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, username, password_hash, name, role, active, must_change_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, nullIfEmpty(user.CompanyID), user.Username, user.PasswordHash, user.Name,
		user.Role, user.Active, user.MustChangePassword,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsuarioDuplicado
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := userSelect + ` WHERE id = $1`
	return r.queryOne(query, id)
}

// GetByUsernameAndCompany obtiene un usuario por username (case-insensitive)
// dentro de una empresa. companyID vacío busca usuarios de sistema (superadmin).
func (r *UserRepo) GetByUsernameAndCompany(username, companyID string) (*entity.User, error) {
	if companyID == "" {
		query := userSelect + ` WHERE company_id IS NULL AND LOWER(username) = LOWER($1)`
		return r.queryOne(query, username)
	}
	query := userSelect + ` WHERE company_id = $2 AND LOWER(username) = LOWER($1)`
	return r.queryOne(query, username, companyID)
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET username = $2, password_hash = $3, name = $4, role = $5,
		       active = $6, must_change_password = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Username, user.PasswordHash, user.Name, user.Role,
		user.Active, user.MustChangePassword, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsuarioDuplicado
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByCompany devuelve usuarios de una empresa con paginación; companyID
// vacío lista todos (solo superadmin).
func (r *UserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var (
		query string
		args  []any
	)
	if companyID == "" {
		query = userSelect + ` ORDER BY created_at ASC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	} else {
		query = userSelect + ` WHERE company_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
		args = []any{companyID, limit, offset}
	}

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
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

const userSelect = `
	SELECT id, COALESCE(company_id, ''), username, password_hash, name, role, active, must_change_password, created_at, updated_at
	FROM users`

func (r *UserRepo) queryOne(query string, args ...any) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, args...)
	u, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(
		&u.ID, &u.CompanyID, &u.Username, &u.PasswordHash, &u.Name, &u.Role,
		&u.Active, &u.MustChangePassword, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// nullIfEmpty convierte "" en NULL para columnas con FK opcional
// (el superadmin del sistema no pertenece a ninguna empresa).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
