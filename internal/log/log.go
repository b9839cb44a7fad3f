// Package log is a small action log for handlers: every entry names the action
// taken ("order.place", "auth.login.fail") and carries the request context.
// Output goes through zap so entries stay machine-parseable JSON.
package log

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.Must(zap.NewProduction())

// Setup replaces the default logger with one writing JSON to stdout and,
// when path is non-empty, to the given file as well.
func Setup(path string) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	enc := zapcore.NewJSONEncoder(cfg)

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			base.Warn("log file unavailable", zap.String("path", path), zap.Error(err))
		} else {
			sinks = append(sinks, zapcore.AddSync(f))
		}
	}
	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), zapcore.InfoLevel)
	base = zap.New(core)
}

func request(c *fiber.Ctx) []zap.Field {
	if c == nil {
		return nil
	}
	fs := []zap.Field{
		zap.String("ip", c.IP()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		fs = append(fs, zap.String("req_id", rid))
	}
	return fs
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	fs := append(request(c), zap.String("action", action))
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	for k, v := range fields {
		fs = append(fs, zap.Any(k, v))
	}
	switch level {
	case "warn":
		base.Warn(action, fs...)
	case "error":
		base.Error(action, fs...)
	default:
		base.Info(action, fs...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }

// Audit records state-changing actions an operator may need to trace later.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("info", c, action, nil, fields)
}

// Security records denied access, rate limiting and validation rejections.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
