package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/catalog"
	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/utils"
	"github.com/monocle-dev/catalog/internal/validation"
	"github.com/monocle-dev/catalog/pkg/e"
	"go.uber.org/zap"
)

// ProductsHandler serves the JSON product API.
type ProductsHandler struct {
	products *catalog.ProductService
	logger   *zap.Logger
}

func NewProductsHandler(products *catalog.ProductService, log *zap.Logger) *ProductsHandler {
	return &ProductsHandler{
		products: products,
		logger:   log,
	}
}

func (h *ProductsHandler) Index(ctx *gin.Context) {
	var params listing.Params

	if err := ctx.ShouldBindQuery(&params); err != nil {
		respondBadRequest(ctx)
		return
	}

	page, err := h.products.List(ctx.Request.Context(), params, listing.ParsePage(ctx.Query("page")), listing.APIPageSize)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, listing.MapPage(page, productResponse))
}

func (h *ProductsHandler) Show(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondError(ctx, h.logger, e.ErrNotFound)
		return
	}

	product, err := h.products.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, productResponse(*product))
}

// decodeBody reads the request as a JSON object of product attributes.
// Wrongly typed values are reported together with the rule violations of
// the other fields.
func (h *ProductsHandler) decodeBody(ctx *gin.Context, base validation.ProductForm, op validation.Operation) (validation.ProductForm, validation.FieldSet, bool) {
	raw := map[string]json.RawMessage{}

	if err := ctx.ShouldBindJSON(&raw); err != nil {
		respondBadRequest(ctx)
		return base, nil, false
	}

	form, supplied, typeErrs := validation.DecodeProduct(raw, base)

	if !typeErrs.Any() {
		return form, supplied, true
	}

	if op.Kind == validation.Update {
		op.Supplied = supplied
	}

	ruleErrs, err := h.products.Validate(ctx.Request.Context(), form, op, catalog.APIRules)

	if err != nil {
		respondError(ctx, h.logger, err)
		return base, nil, false
	}

	for field, msgs := range ruleErrs {
		if !typeErrs.Has(field) {
			typeErrs.AddAll(field, msgs)
		}
	}

	respondValidation(ctx, typeErrs)

	return base, nil, false
}

func (h *ProductsHandler) Store(ctx *gin.Context) {
	form, _, ok := h.decodeBody(ctx, validation.NewProductForm(), validation.CreateOp())

	if !ok {
		return
	}

	product, err := h.products.Create(ctx.Request.Context(), form, catalog.APIRules)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    productResponse(*product),
	})
}

func (h *ProductsHandler) Update(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondError(ctx, h.logger, e.ErrNotFound)
		return
	}

	existing, err := h.products.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	form, supplied, ok := h.decodeBody(ctx, catalog.FormFromProduct(existing), validation.UpdateOp(id, nil))

	if !ok {
		return
	}

	product, err := h.products.Update(ctx.Request.Context(), id, form, supplied, catalog.APIRules)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    productResponse(*product),
	})
}

func (h *ProductsHandler) Destroy(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondError(ctx, h.logger, e.ErrNotFound)
		return
	}

	if err := h.products.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

