package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una OT (Orden de Trabajo). Las transiciones son solo hacia adelante:
// pendiente → en_proceso → completada. Una OT completada no se reabre.
const (
	OTStatusPendiente  = "pendiente"
	OTStatusEnProceso  = "en_proceso"
	OTStatusCompletada = "completada"
)

// Tipos de OT.
const (
	OTTypeMantenimiento = "mantenimiento"
	OTTypeReparacion    = "reparacion"
	OTTypeRevision      = "revision"
)

// WorkOrder representa una Orden de Trabajo (OT) asociada a un bus.
// CompletedAt se estampa si y solo si Status es completada.
type WorkOrder struct {
	ID          string
	CompanyID   string
	BusID       string
	Type        string // mantenimiento, reparacion, revision
	Description string
	Status      string // pendiente, en_proceso, completada
	Cost        decimal.Decimal
	CreatedBy   string // usuario que creó la OT
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// CanTransition informa si el cambio de estado actual → next es válido.
// Solo se permite avanzar un paso: pendiente → en_proceso → completada.
func (ot *WorkOrder) CanTransition(next string) bool {
	switch ot.Status {
	case OTStatusPendiente:
		return next == OTStatusEnProceso
	case OTStatusEnProceso:
		return next == OTStatusCompletada
	default:
		return false
	}
}
