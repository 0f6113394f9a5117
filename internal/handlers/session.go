package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookieName = "evaluator_session"

const ownerLocalsKey = "owner_id"

// SessionMiddleware assigns each browser a stable anonymous owner id via
// a long-lived cookie. Every repository access downstream is scoped to
// this id, so a caller can only ever see their own evaluations.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := uuid.Parse(c.Cookies(sessionCookieName))
		if err != nil {
			ownerID = uuid.New()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookieName,
				Value:    ownerID.String(),
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(ownerLocalsKey, ownerID)
		return c.Next()
	}
}

// OwnerID returns the caller identity set by SessionMiddleware.
func OwnerID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(ownerLocalsKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
