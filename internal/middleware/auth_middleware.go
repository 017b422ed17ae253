package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	localsUserID   = "user_id"
	localsUserRole = "user_role"
)

// Identity trusts the authentication gateway in front of this service and
// materializes the acting user from its headers. Requests without a valid
// identity are rejected before any handler runs.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Get(headerUserID))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "missing or invalid identity",
			})
		}
		role := c.Get(headerUserRole)
		switch role {
		case RoleCandidate, RoleRecruiter, RoleAdmin:
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "missing or invalid role",
			})
		}
		c.Locals(localsUserID, id)
		c.Locals(localsUserRole, role)
		return c.Next()
	}
}

// RequireRole gates a route to the listed roles. Admin always passes.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := CurrentRole(c)
		if role == RoleAdmin {
			return c.Next()
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "role not allowed",
		})
	}
}

func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(localsUserID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func CurrentRole(c *fiber.Ctx) string {
	if role, ok := c.Locals(localsUserRole).(string); ok {
		return role
	}
	return ""
}
