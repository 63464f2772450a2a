package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/util"
	"github.com/gofiber/fiber/v2"
)

const defaultRequestTimeout = 10 * time.Second

// requestContext bounds the request's user context by timeout.
func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(c.UserContext(), timeout)
}

// failure maps usecase errors to status codes.
func failure(c *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, matching.ErrUnauthorizedPrincipal):
		code, message = fiber.StatusUnauthorized, "unknown member"
	case errors.Is(err, matching.ErrProjectNotOwned):
		code, message = fiber.StatusForbidden, "project belongs to another client"
	case errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusGatewayTimeout
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func badRequest(c *fiber.Ctx, fields map[string]string) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "invalid request",
	}, util.NewFormError("invalid request", fields))
}

// queryInt reads an optional integer query parameter, recording a field error
// when it is present but not a number.
func queryInt(c *fiber.Ctx, key string, def int, fields map[string]string) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[key] = "must be an integer"
		return def
	}
	return v
}

// paramID reads a positive id from a route parameter.
func paramID(c *fiber.Ctx, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
