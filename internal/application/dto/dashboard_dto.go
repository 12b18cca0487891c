package dto

import "github.com/shopspring/decimal"

// BusUrgenciaDTO urgencia de mantenimiento de un bus (vista derivada, nunca persistida).
type BusUrgenciaDTO struct {
	BusID                string `json:"bus_id"`
	Plate                string `json:"plate"`
	DiasSinMantenimiento int    `json:"dias_sin_mantenimiento"` // 999 = nunca mantenido
	Urgencia             string `json:"urgencia"`               // OK, ATENCION, URGENTE
}

// EstadisticasOTsDTO agregado de órdenes de trabajo de la empresa.
// pendientes + en_proceso + completadas == total, siempre.
type EstadisticasOTsDTO struct {
	Total       int             `json:"total_ots"`
	Pendientes  int             `json:"ots_pendientes"`
	EnProceso   int             `json:"ots_en_proceso"`
	Completadas int             `json:"ots_completadas"`
	CostoTotal  decimal.Decimal `json:"costo_total"`
}

// DashboardResponse resumen para el panel de la empresa: buses ordenados por
// urgencia (más atrasados primero) y el agregado de OTs.
type DashboardResponse struct {
	CompanyID    string             `json:"company_id"`
	Buses        []BusUrgenciaDTO   `json:"buses"`
	Estadisticas EstadisticasOTsDTO `json:"estadisticas_ots"`
	UmbralesDias UmbralesDTO        `json:"umbrales_dias"`
}

// UmbralesDTO cortes de clasificación vigentes, en días.
type UmbralesDTO struct {
	Atencion int `json:"atencion"`
	Urgente  int `json:"urgente"`
}
