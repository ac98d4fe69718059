package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/access"
	"github.com/tu-usuario/retail-pos/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalIdentity = "identity"
)

// AuthMiddleware valida el Bearer Token JWT y deja UserID e identidad de
// acceso en c.Locals. Solo autentica; la autorización la hace RequireAccess.
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
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		// Los valores del token pasan por los parsers del enum: un token viejo
		// con el rol legado EMPLOYEE queda normalizado a STAFF.
		identity := access.Identity{IsActive: id.Active}
		if role, ok := access.ParseRole(id.Role); ok {
			identity.Role = role
		} else {
			identity.Role = access.Role(id.Role)
		}
		if status, ok := access.ParseStatus(id.Status); ok {
			identity.Status = status
		} else {
			identity.Status = access.Status(id.Status)
		}

		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// RequireAccess evalúa la identidad del token contra la política del recurso.
// Cada denegación lleva su propio código para que el cliente sepa qué paso le
// falta (verificar email, esperar aprobación, etc.).
func RequireAccess(pol access.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals(LocalIdentity).(access.Identity)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "identidad no resuelta"})
		}
		decision := access.Decide(identity, pol)
		if decision == access.Allow {
			return c.Next()
		}
		status, body := decisionResponse(decision)
		return c.Status(status).JSON(body)
	}
}

// RequireRoles atajo de RequireAccess con una política de roles.
func RequireRoles(roles ...access.Role) fiber.Handler {
	return RequireAccess(access.PolicyFor(roles...))
}

// decisionResponse mapea cada denegación del evaluador a status HTTP + cuerpo.
func decisionResponse(d access.Decision) (int, dto.ErrorResponse) {
	switch d {
	case access.DenyInactive:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "ACCOUNT_INACTIVE", Message: "cuenta desactivada"}
	case access.DenyUnverified:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "EMAIL_NOT_VERIFIED", Message: "verifica tu correo para continuar"}
	case access.DenyPendingApproval:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "PENDING_APPROVAL", Message: "tu cuenta está a la espera de aprobación"}
	case access.DenyRejected:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "ACCOUNT_REJECTED", Message: "tu solicitud de cuenta fue rechazada"}
	case access.DenySuspended:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "ACCOUNT_SUSPENDED", Message: "cuenta suspendida"}
	case access.DenyRole:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN_ROLE", Message: "tu rol no tiene permiso para este recurso"}
	default:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
