package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo-dev/pos-backoffice/pkg/jwt"
)

// Locals keys para la identidad extraída del token.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
)

// SystemUser identidad registrada cuando la petición no trae token válido.
const SystemUser = "sistema"

// IdentityMiddleware extrae UserID y Name del Bearer Token si viene uno válido.
// Solo extrae identidad para auditoría (cajero en movimientos y gift cards);
// no rechaza peticiones: la emisión y validación de acceso viven en el servicio
// de usuarios.
func IdentityMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Next()
		}
		userID, name, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			// Token inválido: la petición continúa como "sistema".
			return c.Next()
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserName, name)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto, o vacío si no hubo token.
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserName devuelve el nombre del usuario del contexto; SystemUser si no hubo token.
func GetUserName(c *fiber.Ctx) string {
	v := c.Locals(LocalUserName)
	if v == nil {
		return SystemUser
	}
	s, _ := v.(string)
	if s == "" {
		return SystemUser
	}
	return s
}
