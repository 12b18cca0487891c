package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.BusRepository = (*BusRepo)(nil)

// BusRepo implementación del puerto BusRepository sobre PostgreSQL.
// last_maintenance_date es NULL cuando el bus nunca ha recibido mantenimiento.
type BusRepo struct {
	pool *pgxpool.Pool
}

// NewBusRepository construye el adaptador de persistencia para buses.
func NewBusRepository(pool *pgxpool.Pool) *BusRepo {
	return &BusRepo{pool: pool}
}

// Create persiste un nuevo bus.
func (r *BusRepo) Create(bus *entity.Bus) error {
	query := `
		INSERT INTO buses (id, company_id, plate, model, capacity, last_maintenance_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		bus.ID, bus.CompanyID, bus.Plate, bus.Model, bus.Capacity,
		bus.LastMaintenanceDate, bus.Active, bus.CreatedAt, bus.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPlacaDuplicada
		}
		return fmt.Errorf("insert bus: %w", err)
	}
	return nil
}

// GetByID obtiene un bus por ID.
func (r *BusRepo) GetByID(id string) (*entity.Bus, error) {
	query := busSelect + ` WHERE id = $1`
	var b entity.Bus
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.CompanyID, &b.Plate, &b.Model, &b.Capacity,
		&b.LastMaintenanceDate, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bus: %w", err)
	}
	return &b, nil
}

// GetByPlateAndCompany obtiene un bus por placa (sin distinguir mayúsculas)
// dentro de una empresa.
func (r *BusRepo) GetByPlateAndCompany(plate, companyID string) (*entity.Bus, error) {
	query := busSelect + ` WHERE company_id = $2 AND UPPER(plate) = UPPER($1)`
	var b entity.Bus
	err := r.pool.QueryRow(context.Background(), query, plate, companyID).Scan(
		&b.ID, &b.CompanyID, &b.Plate, &b.Model, &b.Capacity,
		&b.LastMaintenanceDate, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bus by plate: %w", err)
	}
	return &b, nil
}

// Update actualiza un bus existente.
func (r *BusRepo) Update(bus *entity.Bus) error {
	query := `
		UPDATE buses SET plate = $2, model = $3, capacity = $4,
		       last_maintenance_date = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		bus.ID, bus.Plate, bus.Model, bus.Capacity,
		bus.LastMaintenanceDate, bus.Active, bus.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bus: %w", err)
	}
	return nil
}

// SetLastMaintenance actualiza la fecha de último mantenimiento del bus.
func (r *BusRepo) SetLastMaintenance(busID string, date time.Time) error {
	query := `UPDATE buses SET last_maintenance_date = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query, busID, date)
	if err != nil {
		return fmt.Errorf("set last maintenance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany devuelve buses de una empresa con paginación.
func (r *BusRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Bus, error) {
	query := busSelect + ` WHERE company_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.queryMany(query, companyID, limit, offset)
}

// ListAllByCompany devuelve todos los buses de la empresa, sin paginar,
// para el motor de urgencias.
func (r *BusRepo) ListAllByCompany(companyID string) ([]*entity.Bus, error) {
	query := busSelect + ` WHERE company_id = $1 ORDER BY created_at ASC`
	return r.queryMany(query, companyID)
}

const busSelect = `
	SELECT id, company_id, plate, model, capacity, last_maintenance_date, active, created_at, updated_at
	FROM buses`

func (r *BusRepo) queryMany(query string, args ...any) ([]*entity.Bus, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Bus
	for rows.Next() {
		var b entity.Bus
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Plate, &b.Model, &b.Capacity,
			&b.LastMaintenanceDate, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bus: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
