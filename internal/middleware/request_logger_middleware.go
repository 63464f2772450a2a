package middleware

import (
	"time"

	"github.com/fadilmartias/talent-match/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id, puts a request-scoped logger
// into the user context and writes one line per request once it completes.
func RequestLogger(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)

		reqLog := base.With(zap.String("request_id", id))
		c.SetUserContext(logger.ContextWithLogger(c.UserContext(), reqLog))

		err := c.Next()
		if err != nil {
			// Let the app's error handler write the response before the
			// status is logged.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if id := MemberID(c); id != 0 {
			fields = append(fields, zap.Uint("member_id", id))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		reqLog.Check(level, "request").Write(fields...)
		return nil
	}
}
