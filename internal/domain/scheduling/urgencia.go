// Package scheduling implementa el motor de programación de mantenimiento:
// clasifica la urgencia de cada bus según los días transcurridos desde su
// último mantenimiento y agrega estadísticas de OTs para los dashboards.
//
// Todo el paquete es computación pura sobre snapshots de entidades: recibe
// "now" y los umbrales como parámetros, no lee reloj ni configuración global,
// y no guarda estado (los resultados se recalculan en cada consulta).
package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
)

// SentinelNuncaMantenido es el valor de "días sin mantenimiento" para un bus
// que nunca ha sido atendido. Es deliberadamente mayor que cualquier umbral
// real para que siempre ordene como el más urgente.
const SentinelNuncaMantenido = 999

// Niveles de urgencia de mantenimiento.
const (
	UrgenciaOK       = "OK"
	UrgenciaAtencion = "ATENCION"
	UrgenciaUrgente  = "URGENTE"
)

// Umbrales define los cortes de clasificación en días.
// days < AtencionDias → OK; AtencionDias <= days <= UrgenteDias → ATENCION;
// days > UrgenteDias (o el sentinel) → URGENTE.
type Umbrales struct {
	AtencionDias int
	UrgenteDias  int
}

// UmbralesPorDefecto son los cortes estándar: atención a los 90 días,
// urgente pasados 180.
func UmbralesPorDefecto() Umbrales {
	return Umbrales{AtencionDias: 90, UrgenteDias: 180}
}

// BusUrgencia es la vista derivada de urgencia para un bus. Nunca se persiste.
type BusUrgencia struct {
	BusID                string
	Plate                string
	DiasSinMantenimiento int
	Urgencia             string
}

// DiasSinMantenimiento calcula los días completos transcurridos desde el último
// mantenimiento del bus. Sin fecha registrada devuelve SentinelNuncaMantenido.
//
// Un "now" anterior al último mantenimiento es un error de programación del
// llamador (reloj no inyectado o datos corruptos), no un error de usuario.
func DiasSinMantenimiento(bus *entity.Bus, now time.Time) int {
	if bus.LastMaintenanceDate == nil {
		return SentinelNuncaMantenido
	}
	d := now.Sub(*bus.LastMaintenanceDate)
	if d < 0 {
		panic(fmt.Sprintf("scheduling: duración negativa para bus %s (last=%s now=%s)",
			bus.ID, bus.LastMaintenanceDate.Format(time.RFC3339), now.Format(time.RFC3339)))
	}
	return int(d.Hours() / 24)
}

// ClasificarUrgencia asigna el nivel de urgencia según los umbrales.
// El sentinel cae siempre en URGENTE porque es mayor que UrgenteDias.
func ClasificarUrgencia(dias int, u Umbrales) string {
	switch {
	case dias < u.AtencionDias:
		return UrgenciaOK
	case dias <= u.UrgenteDias:
		return UrgenciaAtencion
	default:
		return UrgenciaUrgente
	}
}

// ClasificarFlota calcula la urgencia de cada bus activo y devuelve la lista
// ordenada de más a menos días sin mantenimiento (el más atrasado primero),
// de modo que truncar a "top N" sea estable y significativo.
//
// Los buses inactivos se omiten. Una flota vacía devuelve un slice vacío,
// nunca nil error: los dashboards deben poder pintar un estado cero válido.
func ClasificarFlota(buses []*entity.Bus, now time.Time, u Umbrales) []BusUrgencia {
	out := make([]BusUrgencia, 0, len(buses))
	for _, b := range buses {
		if !b.Active {
			continue
		}
		dias := DiasSinMantenimiento(b, now)
		out = append(out, BusUrgencia{
			BusID:                b.ID,
			Plate:                b.Plate,
			DiasSinMantenimiento: dias,
			Urgencia:             ClasificarUrgencia(dias, u),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiasSinMantenimiento > out[j].DiasSinMantenimiento
	})
	return out
}
