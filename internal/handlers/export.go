package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/catalog"
	"github.com/monocle-dev/catalog/internal/export"
	"github.com/monocle-dev/catalog/internal/listing"
	"go.uber.org/zap"
)

type ExportHandler struct {
	products   *catalog.ProductService
	categories *catalog.CategoryService
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewExportHandler(products *catalog.ProductService, categories *catalog.CategoryService, loc *time.Location, log *zap.Logger) *ExportHandler {
	return &ExportHandler{
		products:   products,
		categories: categories,
		location:   loc,
		now:        time.Now,
		logger:     log,
	}
}

// Products serves /export/products/:format with the listing filters.
func (h *ExportHandler) Products(ctx *gin.Context) {
	enc, params, ok := h.request(ctx)

	if !ok {
		return
	}

	products, err := h.products.Export(ctx.Request.Context(), params)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.write(ctx, "products", enc, export.ProductTable(products, h.location))
}

// Categories ignores category_id.
func (h *ExportHandler) Categories(ctx *gin.Context) {
	enc, params, ok := h.request(ctx)

	if !ok {
		return
	}

	categories, err := h.categories.Export(ctx.Request.Context(), params)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.write(ctx, "categories", enc, export.CategoryTable(categories, h.location))
}

func (h *ExportHandler) request(ctx *gin.Context) (export.Encoder, listing.Params, bool) {
	enc, ok := export.Format(ctx.Param("format"))

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Unknown export format"})
		return nil, listing.Params{}, false
	}

	var params listing.Params

	if err := ctx.ShouldBindQuery(&params); err != nil {
		respondBadRequest(ctx)
		return nil, listing.Params{}, false
	}

	return enc, params, true
}

// write encodes into memory first so an encoding failure can still be
// reported with a proper status.
func (h *ExportHandler) write(ctx *gin.Context, prefix string, enc export.Encoder, table export.Table) {
	var buf bytes.Buffer

	if err := enc.Encode(&buf, table); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	filename := export.Filename(prefix, enc, h.now().In(h.location))

	h.logger.Info("export generated",
		zap.String("file", filename),
		zap.Int("rows", len(table.Rows)),
	)

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, enc.ContentType(), buf.Bytes())
}
