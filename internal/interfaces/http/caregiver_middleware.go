package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/dto"
)

// HeaderCaregiverID header con la identidad del cuidador. La autenticación
// vive en el gateway del hogar; aquí solo se propaga la identidad ya resuelta.
const HeaderCaregiverID = "X-Caregiver-ID"

// LocalCaregiverID key de Locals para el CaregiverID en Fiber.
const LocalCaregiverID = "caregiver_id"

// CaregiverMiddleware exige el header X-Caregiver-ID y lo deja en c.Locals.
func CaregiverMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caregiverID := strings.TrimSpace(c.Get(HeaderCaregiverID))
		if caregiverID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_CAREGIVER", Message: "header " + HeaderCaregiverID + " requerido"})
		}
		c.Locals(LocalCaregiverID, caregiverID)
		return c.Next()
	}
}

// GetCaregiverID devuelve el CaregiverID del contexto (después del middleware).
func GetCaregiverID(c *fiber.Ctx) string {
	v := c.Locals(LocalCaregiverID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
