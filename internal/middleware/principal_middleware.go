package middleware

import (
	"strconv"

	"github.com/fadilmartias/talent-match/internal/util"
	"github.com/gofiber/fiber/v2"
)

// MemberIDHeader carries the authenticated member id set by the gateway.
const MemberIDHeader = "X-Member-ID"

const memberIDKey = "member_id"

// Principal requires a positive numeric member id in MemberIDHeader and
// stores it in the request locals. The member itself is resolved later.
func Principal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(MemberIDHeader)
		if raw == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "missing " + MemberIDHeader + " header",
			})
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "invalid " + MemberIDHeader + " header",
			})
		}
		c.Locals(memberIDKey, uint(id))
		return c.Next()
	}
}

// MemberID returns the id stored by Principal, or 0.
func MemberID(c *fiber.Ctx) uint {
	id, _ := c.Locals(memberIDKey).(uint)
	return id
}
