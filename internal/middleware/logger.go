package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/utils"
	"go.uber.org/zap"
)

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		fields := []zap.Field{
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
		}

		if principal := utils.CurrentPrincipal(ctx); principal != nil {
			fields = append(fields, zap.Uint("user_id", principal.ID))
		}

		if len(ctx.Errors) > 0 {
			fields = append(fields, zap.String("errors", ctx.Errors.String()))
		}

		log.Info("request", fields...)
	}
}
