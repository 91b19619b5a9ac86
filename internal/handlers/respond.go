package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/types"
	"github.com/monocle-dev/catalog/internal/validation"
	"github.com/monocle-dev/catalog/pkg/e"
	"go.uber.org/zap"
)

func respondValidation(ctx *gin.Context, errs validation.Errors) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": validation.NewError(errs).Error(),
		"errors":  errs,
	})
}

// respondError maps service errors onto status codes. Store failures are
// logged and reported without detail.
func respondError(ctx *gin.Context, log *zap.Logger, err error) {
	if verr, ok := validation.As(err); ok {
		respondValidation(ctx, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, e.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"message": types.MessageNotFound})
	case errors.Is(err, e.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": types.MessageUnauthenticated})
	case errors.Is(err, e.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"message": types.MessageForbiddenJSON})
	default:
		log.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": types.MessageServerError})
	}
}

func respondBadRequest(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
}
