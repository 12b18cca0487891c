package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfcastro/Flota-api/internal/application/analytics"
	"github.com/dfcastro/Flota-api/internal/application/auth"
	"github.com/dfcastro/Flota-api/internal/application/report"
	"github.com/dfcastro/Flota-api/internal/application/usecase"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
	"github.com/dfcastro/Flota-api/internal/infrastructure/memory"
	infrapdf "github.com/dfcastro/Flota-api/internal/infrastructure/pdf"
	apphttp "github.com/dfcastro/Flota-api/internal/interfaces/http"
)

// newTestServer monta la aplicación completa sobre stores en memoria, con un
// superadmin ya sembrado (username "root", contraseña "RootClave123*").
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	companies := memory.NewCompanyStore()
	users := memory.NewUserStore()
	buses := memory.NewBusStore()
	ots := memory.NewWorkOrderStore()

	hash, err := bcrypt.GenerateFromPassword([]byte("RootClave123*"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(&entity.User{
		ID:           uuid.New().String(),
		Username:     "root",
		PasswordHash: string(hash),
		Name:         "Superadministrador",
		Role:         auth.RoleSuperAdmin,
		Active:       true,
	}))

	umbrales := scheduling.UmbralesPorDefecto()
	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, companies, jwtCfg),
		CompanyUC:   usecase.NewCompanyUseCase(companies, users),
		UserUC:      usecase.NewUserUseCase(users, companies),
		FleetUC:     usecase.NewFleetUseCase(buses),
		WorkOrderUC: usecase.NewWorkOrderUseCase(ots, buses),
		DashboardUC: analytics.NewDashboardUseCase(buses, ots, umbrales, nil),
		ReportUC: report.NewReportUseCase(companies, buses, ots,
			infrapdf.NewMarotoReportGenerator(), umbrales, nil),
		JWTSecret: testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	body := bytes.NewBuffer(nil)
	if payload != nil {
		require.NoError(t, json.NewEncoder(body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, app *fiber.App, username, password, nit string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username, "password": password, "company_nit": nit,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe funcionar", username)
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// TestAPI_FlujoCompleto recorre el ciclo de vida entero de una empresa:
// alta por el superadmin, login del admin, registro de bus, OT de
// mantenimiento completada y el efecto sobre el dashboard.
func TestAPI_FlujoCompleto(t *testing.T) {
	app := newTestServer(t)

	root := login(t, app, "root", "RootClave123*", "")

	// 1. El superadmin da de alta la empresa con su admin inicial.
	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit":            "900111222",
		"legal_name":     "Transportes Norte S.A.S.",
		"admin_username": "gerente",
		"admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var company struct {
		ID  string `json:"id"`
		NIT string `json:"nit"`
	}
	decode(t, resp, &company)

	// 2. El admin de la empresa entra con el NIT.
	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")

	// 3. Registra un bus; arranca sin mantenimiento.
	resp = doJSON(t, app, http.MethodPost, "/api/buses", admin, fiber.Map{
		"plate": "ABC-123", "model": "Mercedes OF-1721", "capacity": 40,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bus struct {
		ID                  string     `json:"id"`
		LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
	}
	decode(t, resp, &bus)
	assert.Nil(t, bus.LastMaintenanceDate)

	// 4. El dashboard lo muestra como URGENTE (nunca mantenido).
	resp = doJSON(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		Buses []struct {
			BusID    string `json:"bus_id"`
			Dias     int    `json:"dias_sin_mantenimiento"`
			Urgencia string `json:"urgencia"`
		} `json:"buses"`
		Estadisticas struct {
			Total int `json:"total_ots"`
		} `json:"estadisticas_ots"`
	}
	decode(t, resp, &dash)
	require.Len(t, dash.Buses, 1)
	assert.Equal(t, 999, dash.Buses[0].Dias)
	assert.Equal(t, "URGENTE", dash.Buses[0].Urgencia)

	// 5. OT de mantenimiento: pendiente → en_proceso → completada.
	resp = doJSON(t, app, http.MethodPost, "/api/work-orders", admin, fiber.Map{
		"bus_id": bus.ID, "type": "mantenimiento",
		"description": "mantenimiento general", "cost": "480.50",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ot struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &ot)
	assert.Equal(t, "pendiente", ot.Status)

	for _, next := range []string{"en_proceso", "completada"} {
		resp = doJSON(t, app, http.MethodPut, "/api/work-orders/"+ot.ID+"/status", admin,
			fiber.Map{"status": next})
		require.Equal(t, http.StatusOK, resp.StatusCode, "transición a %s", next)
	}

	// 6. Completar el mantenimiento deja el bus al día: el dashboard pasa a OK.
	resp = doJSON(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &dash)
	require.Len(t, dash.Buses, 1)
	assert.Equal(t, 0, dash.Buses[0].Dias)
	assert.Equal(t, "OK", dash.Buses[0].Urgencia)
	assert.Equal(t, 1, dash.Estadisticas.Total)
}

func TestAPI_TransicionInvalidaEs422(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")

	resp = doJSON(t, app, http.MethodPost, "/api/buses", admin, fiber.Map{"plate": "ABC-123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bus struct {
		ID string `json:"id"`
	}
	decode(t, resp, &bus)

	resp = doJSON(t, app, http.MethodPost, "/api/work-orders", admin, fiber.Map{
		"bus_id": bus.ID, "type": "revision",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ot struct {
		ID string `json:"id"`
	}
	decode(t, resp, &ot)

	// Saltar directo a completada está prohibido.
	resp = doJSON(t, app, http.MethodPut, "/api/work-orders/"+ot.ID+"/status", admin,
		fiber.Map{"status": "completada"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAPI_TrabajadorNoAccedeAUsuarios(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")

	resp = doJSON(t, app, http.MethodPost, "/api/users", admin, fiber.Map{
		"username": "cperez", "password": "Password123*",
		"name": "Carlos Pérez", "role": "trabajador",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	trabajador := login(t, app, "cperez", "Password123*", "900111222")

	resp = doJSON(t, app, http.MethodGet, "/api/users", trabajador, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un trabajador no administra usuarios")
}

func TestAPI_TrabajadorNoRegistraBuses(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")

	resp = doJSON(t, app, http.MethodPost, "/api/users", admin, fiber.Map{
		"username": "cperez", "password": "Password123*",
		"name": "Carlos Pérez", "role": "trabajador",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	trabajador := login(t, app, "cperez", "Password123*", "900111222")

	resp = doJSON(t, app, http.MethodPost, "/api/buses", trabajador, fiber.Map{
		"plate": "XYZ-789", "model": "Chevrolet NPR", "capacity": 28,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un trabajador no altera el inventario de la flota")

	// Pero sí consulta los buses existentes.
	resp = doJSON(t, app, http.MethodGet, "/api/buses", trabajador, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_MantenimientoConFechaFuturaEs400(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")

	resp = doJSON(t, app, http.MethodPost, "/api/buses", admin, fiber.Map{
		"plate": "ABC-123", "model": "Mercedes OF-1721", "capacity": 40,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bus struct {
		ID string `json:"id"`
	}
	decode(t, resp, &bus)

	futura := time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	resp = doJSON(t, app, http.MethodPost, "/api/buses/"+bus.ID+"/maintenance", admin,
		fiber.Map{"date": futura})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var fail struct {
		Code string `json:"code"`
	}
	decode(t, resp, &fail)
	assert.Equal(t, "VALIDATION", fail.Code)

	// La fecha rechazada no queda almacenada y el dashboard sigue sirviendo.
	resp = doJSON(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		Buses []struct {
			Dias int `json:"dias_sin_mantenimiento"`
		} `json:"buses"`
	}
	decode(t, resp, &dash)
	require.Len(t, dash.Buses, 1)
	assert.Equal(t, 999, dash.Buses[0].Dias, "el bus sigue como nunca mantenido")
}

func TestAPI_PaginacionFueraDeRangoSeNormaliza(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodGet, "/api/users?offset=-1&limit=-5", root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Page struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		} `json:"page"`
	}
	decode(t, resp, &out)
	assert.Equal(t, 20, out.Page.Limit)
	assert.Equal(t, 0, out.Page.Offset)

	resp = doJSON(t, app, http.MethodGet, "/api/buses?offset=-3", root, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/companies?limit=9999", root, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_CompaniesEsSoloSuperadmin(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")
	resp = doJSON(t, app, http.MethodGet, "/api/companies", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_LoginFallidoEs401(t *testing.T) {
	app := newTestServer(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "root", "password": "incorrecta",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ResetYCambioDePassword(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")
	resp = doJSON(t, app, http.MethodPost, "/api/users", admin, fiber.Map{
		"username": "cperez", "password": "Password123*",
		"name": "Carlos Pérez", "role": "trabajador",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)

	// El admin restablece la contraseña: queda la temporal y la marca puesta.
	resp = doJSON(t, app, http.MethodPost, "/api/users/"+created.ID+"/reset-password", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tras struct {
		MustChangePassword bool `json:"must_change_password"`
	}
	decode(t, resp, &tras)
	assert.True(t, tras.MustChangePassword)

	// El usuario entra con la temporal y la cambia.
	token := login(t, app, "cperez", usecase.TempPassword, "900111222")
	resp = doJSON(t, app, http.MethodPost, "/api/auth/change-password", token, fiber.Map{
		"current_password": usecase.TempPassword,
		"new_password":     "NuevaClave123*",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// La nueva contraseña funciona; la temporal ya no.
	login(t, app, "cperez", "NuevaClave123*", "900111222")
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "cperez", "password": usecase.TempPassword, "company_nit": "900111222",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ReportePDF(t *testing.T) {
	app := newTestServer(t)
	root := login(t, app, "root", "RootClave123*", "")

	resp := doJSON(t, app, http.MethodPost, "/api/companies", root, fiber.Map{
		"nit": "900111222", "legal_name": "Transportes Norte S.A.S.",
		"admin_username": "gerente", "admin_password": "GerenteClave1*",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	admin := login(t, app, "gerente", "GerenteClave1*", "900111222")
	resp = doJSON(t, app, http.MethodPost, "/api/buses", admin, fiber.Map{"plate": "ABC-123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/reports/fleet.pdf", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "flota_900111222_")
}
