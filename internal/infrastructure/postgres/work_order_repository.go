package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL.
// cost es NUMERIC y se mapea a shopspring/decimal vía el codec registrado en el pool.
type WorkOrderRepo struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository construye el adaptador de persistencia para OTs.
func NewWorkOrderRepository(pool *pgxpool.Pool) *WorkOrderRepo {
	return &WorkOrderRepo{pool: pool}
}

// Create persiste una nueva OT.
func (r *WorkOrderRepo) Create(ot *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, company_id, bus_id, type, description, status, cost, created_by, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		ot.ID, ot.CompanyID, ot.BusID, ot.Type, ot.Description, ot.Status,
		ot.Cost, ot.CreatedBy, ot.CreatedAt, ot.UpdatedAt, ot.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una OT por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := workOrderSelect + ` WHERE id = $1`
	var ot entity.WorkOrder
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&ot.ID, &ot.CompanyID, &ot.BusID, &ot.Type, &ot.Description, &ot.Status,
		&ot.Cost, &ot.CreatedBy, &ot.CreatedAt, &ot.UpdatedAt, &ot.CompletedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return &ot, nil
}

// Update actualiza una OT existente.
func (r *WorkOrderRepo) Update(ot *entity.WorkOrder) error {
	query := `
		UPDATE work_orders SET type = $2, description = $3, status = $4, cost = $5,
		       updated_at = $6, completed_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		ot.ID, ot.Type, ot.Description, ot.Status, ot.Cost, ot.UpdatedAt, ot.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}

// ListByCompany devuelve OTs de una empresa con paginación.
func (r *WorkOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := workOrderSelect + ` WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryMany(query, companyID, limit, offset)
}

// ListAllByCompany devuelve todas las OTs de la empresa, sin paginar, para el
// agregado de estadísticas (se recalcula completo en cada consulta).
func (r *WorkOrderRepo) ListAllByCompany(companyID string) ([]*entity.WorkOrder, error) {
	query := workOrderSelect + ` WHERE company_id = $1 ORDER BY created_at DESC`
	return r.queryMany(query, companyID)
}

const workOrderSelect = `
	SELECT id, company_id, bus_id, type, description, status, cost, created_by, created_at, updated_at, completed_at
	FROM work_orders`

func (r *WorkOrderRepo) queryMany(query string, args ...any) ([]*entity.WorkOrder, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkOrder
	for rows.Next() {
		var ot entity.WorkOrder
		if err := rows.Scan(&ot.ID, &ot.CompanyID, &ot.BusID, &ot.Type, &ot.Description,
			&ot.Status, &ot.Cost, &ot.CreatedBy, &ot.CreatedAt, &ot.UpdatedAt, &ot.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, &ot)
	}
	return list, rows.Err()
}
