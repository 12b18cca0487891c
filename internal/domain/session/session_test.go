package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/session"
)

func TestScope_SuperAdminPasaCualquierEmpresa(t *testing.T) {
	sess := session.NewSuperAdmin("u1")

	got, err := sess.Scope("empresa-9")
	require.NoError(t, err)
	assert.Equal(t, "empresa-9", got)

	// Vacío significa "todas las empresas" para el superadmin.
	got, err = sess.Scope("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestScope_AdminConfinadoASuEmpresa(t *testing.T) {
	sess := session.NewCompanyAdmin("u1", "empresa-1")

	got, err := sess.Scope("")
	require.NoError(t, err)
	assert.Equal(t, "empresa-1", got, "sin empresa pedida, resuelve la propia")

	got, err = sess.Scope("empresa-1")
	require.NoError(t, err)
	assert.Equal(t, "empresa-1", got)
}

func TestScope_CruceDeTenantEsForbidden(t *testing.T) {
	casos := []session.Session{
		session.NewCompanyAdmin("u1", "empresa-1"),
		session.NewTrabajador("u2", "empresa-1"),
	}
	for _, sess := range casos {
		_, err := sess.Scope("empresa-2")
		assert.ErrorIs(t, err, domain.ErrForbidden,
			"rol %s no debe poder pedir otra empresa", sess.Role)
	}
}

func TestScope_AnonimoEsUnauthorized(t *testing.T) {
	_, err := session.Anonymous().Scope("empresa-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = session.Anonymous().Scope("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRole_RolesConocidosYDesconocidos(t *testing.T) {
	assert.Equal(t, session.SuperAdmin, session.ParseRole("superadmin"))
	assert.Equal(t, session.CompanyAdmin, session.ParseRole("admin"))
	assert.Equal(t, session.Trabajador, session.ParseRole("trabajador"))

	// Un rol desconocido jamás escala privilegios: cae en anónimo.
	assert.Equal(t, session.Unauthenticated, session.ParseRole("root"))
	assert.Equal(t, session.Unauthenticated, session.ParseRole(""))
}

func TestCanManageCompanies_SoloSuperAdmin(t *testing.T) {
	assert.True(t, session.NewSuperAdmin("u1").CanManageCompanies())
	assert.False(t, session.NewCompanyAdmin("u1", "e1").CanManageCompanies())
	assert.False(t, session.NewTrabajador("u1", "e1").CanManageCompanies())
	assert.False(t, session.Anonymous().CanManageCompanies())
}

func TestCanManageFleet_TrabajadorNoRegistraBuses(t *testing.T) {
	assert.True(t, session.NewSuperAdmin("u1").CanManageFleet())
	assert.True(t, session.NewCompanyAdmin("u1", "e1").CanManageFleet())
	assert.False(t, session.NewTrabajador("u1", "e1").CanManageFleet())
	assert.False(t, session.Anonymous().CanManageFleet())
}

func TestCanManageUsers_AdminYSuperAdmin(t *testing.T) {
	assert.True(t, session.NewSuperAdmin("u1").CanManageUsers())
	assert.True(t, session.NewCompanyAdmin("u1", "e1").CanManageUsers())
	assert.False(t, session.NewTrabajador("u1", "e1").CanManageUsers())
	assert.False(t, session.Anonymous().CanManageUsers())
}
