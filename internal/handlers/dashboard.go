package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/catalog"
	"github.com/monocle-dev/catalog/internal/types"
	"github.com/monocle-dev/catalog/internal/utils"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard *catalog.Dashboard
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *catalog.Dashboard, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    log,
	}
}

func (h *DashboardHandler) Show(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": types.MessageUnauthenticated})
		return
	}

	stats, err := h.dashboard.Stats(ctx.Request.Context(), currentUser.IsAdmin())

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	recent := make([]types.ProductResponse, len(stats.RecentProducts))
	for i, p := range stats.RecentProducts {
		recent[i] = productResponse(p)
	}

	body := gin.H{
		"user": gin.H{
			"id":    currentUser.ID,
			"name":  currentUser.Name,
			"email": currentUser.Email,
			"role":  currentUser.Role,
		},
		"is_admin":          stats.IsAdmin,
		"total_products":    stats.TotalProducts,
		"active_products":   stats.ActiveProducts,
		"inactive_products": stats.InactiveProducts,
		"recent_products":   recent,
	}

	if stats.IsAdmin {
		body["total_categories"] = *stats.TotalCategories
		body["total_users"] = *stats.TotalUsers
	}

	ctx.JSON(http.StatusOK, body)
}
