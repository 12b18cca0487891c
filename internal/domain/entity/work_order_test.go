package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
)

func TestCanTransition_SoloHaciaAdelante(t *testing.T) {
	casos := []struct {
		desde    string
		hacia    string
		esperado bool
	}{
		{entity.OTStatusPendiente, entity.OTStatusEnProceso, true},
		{entity.OTStatusEnProceso, entity.OTStatusCompletada, true},

		// Saltos y retrocesos prohibidos.
		{entity.OTStatusPendiente, entity.OTStatusCompletada, false},
		{entity.OTStatusEnProceso, entity.OTStatusPendiente, false},
		{entity.OTStatusCompletada, entity.OTStatusPendiente, false},
		{entity.OTStatusCompletada, entity.OTStatusEnProceso, false},

		// Quedarse en el mismo estado tampoco es una transición.
		{entity.OTStatusPendiente, entity.OTStatusPendiente, false},
		{entity.OTStatusEnProceso, entity.OTStatusEnProceso, false},
		{entity.OTStatusCompletada, entity.OTStatusCompletada, false},
	}
	for _, c := range casos {
		ot := &entity.WorkOrder{Status: c.desde}
		assert.Equal(t, c.esperado, ot.CanTransition(c.hacia), "%s -> %s", c.desde, c.hacia)
	}
}

func TestCanTransition_EstadoDesconocidoNoTransiciona(t *testing.T) {
	ot := &entity.WorkOrder{Status: "cancelada"}
	assert.False(t, ot.CanTransition(entity.OTStatusEnProceso))
}

func TestUsernameEquals_CaseInsensitiveYEspacios(t *testing.T) {
	assert.True(t, entity.UsernameEquals("Carlos", "carlos"))
	assert.True(t, entity.UsernameEquals("  carlos ", "CARLOS"))
	assert.False(t, entity.UsernameEquals("carlos", "carlosa"))
}
