// Package log is a request-aware logging facade used by handlers and
// services. Events carry an action tag plus the request's id, ip,
// method, path and status when a fiber context is available.
package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init builds the process logger. Production gets JSON at info level,
// anything else gets the colored development encoder at debug.
func Init(env string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	zap.ReplaceGlobals(l)
	return nil
}

func Sync() { _ = logger.Sync() }

func requestFields(c *fiber.Ctx, action string, fields map[string]any) []zap.Field {
	zf := make([]zap.Field, 0, len(fields)+6)
	zf = append(zf, zap.String("action", action))
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, requestFields(c, action, fields)...)
}

// Audit marks state-changing events an operator may need to trace back.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, append(requestFields(c, action, fields), zap.Bool("audit", true))...)
}

// Security marks denied access, throttling and validation rejections.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Warn(action, requestFields(c, action, fields)...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	zf := requestFields(c, action, fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	logger.Error(action, zf...)
}
