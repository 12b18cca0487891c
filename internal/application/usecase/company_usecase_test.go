package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/application/usecase"
	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/session"
	"github.com/dfcastro/Flota-api/internal/infrastructure/memory"
)

func newCompanyFixture() (*usecase.CompanyUseCase, *memory.CompanyStore, *memory.UserStore) {
	companies := memory.NewCompanyStore()
	users := memory.NewUserStore()
	return usecase.NewCompanyUseCase(companies, users), companies, users
}

func crearEmpresaRequest(nit string) dto.CreateCompanyRequest {
	return dto.CreateCompanyRequest{
		NIT:           nit,
		LegalName:     "Transportes La Sabana S.A.S.",
		AdminUsername: "gerente",
		AdminPassword: "ClaveSegura123*",
	}
}

func TestCompanyCreate_CreaEmpresaYSuAdmin(t *testing.T) {
	uc, _, users := newCompanyFixture()

	out, err := uc.Create(session.NewSuperAdmin("sa"), crearEmpresaRequest("900111222"))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "900111222", out.NIT)
	assert.True(t, out.Active, "una empresa recién creada arranca activa")

	// El administrador inicial debe existir como usuario del directorio.
	admin, err := users.GetByUsernameAndCompany("gerente", out.ID)
	require.NoError(t, err)
	require.NotNil(t, admin, "el admin inicial debe quedar en el directorio de usuarios")
	assert.Equal(t, "admin", admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(admin.PasswordHash), []byte("ClaveSegura123*")),
		"la contraseña del admin debe quedar hasheada con bcrypt")
}

func TestCompanyCreate_NITDuplicadoFalla(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	sa := session.NewSuperAdmin("sa")

	_, err := uc.Create(sa, crearEmpresaRequest("900111222"))
	require.NoError(t, err)

	_, err = uc.Create(sa, crearEmpresaRequest("900111222"))
	assert.ErrorIs(t, err, domain.ErrNITDuplicado)
}

func TestCompanyCreate_SoloSuperAdmin(t *testing.T) {
	uc, _, _ := newCompanyFixture()

	_, err := uc.Create(session.NewCompanyAdmin("u1", "e1"), crearEmpresaRequest("900111222"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(session.NewTrabajador("u1", "e1"), crearEmpresaRequest("900111222"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanySetActive_EsIdempotente(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	sa := session.NewSuperAdmin("sa")

	out, err := uc.Create(sa, crearEmpresaRequest("900111222"))
	require.NoError(t, err)

	require.NoError(t, uc.SetActive(sa, out.ID, false))
	require.NoError(t, uc.SetActive(sa, out.ID, false), "repetir el mismo estado no es error")

	got, err := uc.GetByID(sa, out.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, uc.SetActive(sa, out.ID, true))
	got, err = uc.GetByID(sa, out.ID)
	require.NoError(t, err)
	assert.True(t, got.Active, "la desactivación es reversible, nada se borra")
}

func TestCompanySetActive_EmpresaInexistente(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	err := uc.SetActive(session.NewSuperAdmin("sa"), "no-existe", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyList_OrdenDeCreacion(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	sa := session.NewSuperAdmin("sa")

	for _, nit := range []string{"900000001", "900000002", "900000003"} {
		_, err := uc.Create(sa, crearEmpresaRequest(nit))
		require.NoError(t, err)
	}

	out, err := uc.List(sa, 10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "900000001", out.Items[0].NIT)
	assert.Equal(t, "900000003", out.Items[2].NIT)

	_, err = uc.List(session.NewCompanyAdmin("u1", "e1"), 10, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
