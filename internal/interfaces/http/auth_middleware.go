package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dfcastro/Flota-api/internal/application/auth"
	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/domain/session"
	"github.com/dfcastro/Flota-api/pkg/jwt"
)

// Local key para la sesión tipada en Fiber.
const localSession = "session"

// AuthMiddleware valida el Bearer Token JWT y reconstruye la sesión tipada en
// c.Locals. La sesión se deriva del token en cada petición: no hay estado de
// rol en el proceso que un logout pueda dejar colgando.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, companyID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		sess := auth.SessionFromClaims(userID, companyID, role)
		if sess.Role == session.Unauthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no porta un rol válido"})
		}
		c.Locals(localSession, sess)
		return c.Next()
	}
}

// RequireRole devuelve un middleware que autoriza solo los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(allowed ...session.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess.Role == session.Unauthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "sesión sin rol"})
		}
		for _, r := range allowed {
			if sess.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetSession devuelve la sesión tipada del contexto (después del middleware de
// auth). Sin middleware devuelve la sesión anónima.
func GetSession(c *fiber.Ctx) session.Session {
	v := c.Locals(localSession)
	if v == nil {
		return session.Anonymous()
	}
	s, ok := v.(session.Session)
	if !ok {
		return session.Anonymous()
	}
	return s
}
