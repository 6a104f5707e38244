package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logging logs one line per handled request with a generated request id.
func Logging(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		requestID := uuid.NewString()

		next(ctx)

		logger.Info("request handled",
			zap.String("requestId", requestID),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.URL().Path),
			zap.Int("status", ctx.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
