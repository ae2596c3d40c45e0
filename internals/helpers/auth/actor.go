package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys hydrated by the JWT middleware. Services never read fiber
// locals directly — controllers build an Actor and pass it down.
const (
	LocUserID      = "user_id"
	LocSchoolID    = "school_id"
	LocSchoolRoles = "school_roles"
)

// Actor is the verified caller: identity + tenant + role claims.
// Upstream auth verified the token; resource-level authorization
// (teacher-of-record, director, coordinator) is re-derived per operation.
type Actor struct {
	UserID   uuid.UUID
	SchoolID uuid.UUID
	Roles    []string
}

func (a Actor) HasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if a.HasRole(r) {
			return true
		}
	}
	return false
}

// ActorFromContext reads the locals hydrated by the auth middleware.
func ActorFromContext(c *fiber.Ctx) (Actor, error) {
	userID, err := uuidLocal(c, LocUserID)
	if err != nil {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Token sin identidad de usuario")
	}
	schoolID, err := uuidLocal(c, LocSchoolID)
	if err != nil {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Token sin colegio asociado")
	}

	return Actor{
		UserID:   userID,
		SchoolID: schoolID,
		Roles:    rolesLocal(c),
	}, nil
}

func uuidLocal(c *fiber.Ctx, key string) (uuid.UUID, error) {
	switch v := c.Locals(key).(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(strings.TrimSpace(v))
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" no encontrado en el token")
	}
}

func rolesLocal(c *fiber.Ctx) []string {
	out := make([]string, 0, 4)
	switch arr := c.Locals(LocSchoolRoles).(type) {
	case []string:
		for _, r := range arr {
			if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
				out = append(out, r)
			}
		}
	case []interface{}:
		for _, it := range arr {
			if s, ok := it.(string); ok {
				if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
