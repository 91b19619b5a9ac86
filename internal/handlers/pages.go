package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/catalog"
	"github.com/monocle-dev/catalog/internal/crud"
	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/session"
	"github.com/monocle-dev/catalog/internal/utils"
	"github.com/monocle-dev/catalog/internal/validation"
	"github.com/monocle-dev/catalog/pkg/e"
	"go.uber.org/zap"
)

const (
	ActionCreate        = "create"
	ActionEdit          = "edit"
	ActionSave          = "save"
	ActionClose         = "close"
	ActionConfirmDelete = "confirm_delete"
	ActionCancelDelete  = "cancel_delete"
	ActionDelete        = "delete"
	ActionFilter        = "filter"
	ActionClearFilters  = "clear_filters"
)

// pageAction is one interactive request. Form holds only the fields the
// client changed; they are applied on top of the open form.
type pageAction struct {
	Action  string          `json:"action" binding:"required"`
	ID      uint            `json:"id"`
	Form    json.RawMessage `json:"form"`
	Filters *listing.Params `json:"filters"`
	Page    int             `json:"page"`
}

// pageView is everything a page shows besides the orchestrator state.
type pageView interface {
	// records returns the listing for state, and the page actually shown.
	records(ctx context.Context, state listing.State) (interface{}, int, error)
	extras(ctx context.Context) (gin.H, error)
	// params drops filters the page does not support.
	params(p listing.Params) listing.Params
}

// PageHandler serves one interactive CRUD page. Its state lives in the
// session store between requests, keyed by component and login.
type PageHandler[F any] struct {
	component string
	manager   *crud.Manager[F]
	view      pageView
	sessions  session.Store
	logger    *zap.Logger
}

func (h *PageHandler[F]) key(ctx *gin.Context) (string, error) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return "", e.ErrUnauthenticated
	}

	return session.Key(h.component, principal.TokenID), nil
}

func (h *PageHandler[F]) load(ctx *gin.Context, key string) (*crud.State[F], error) {
	state := h.manager.NewState()

	err := h.sessions.Load(ctx.Request.Context(), key, state)

	if errors.Is(err, session.ErrMissing) {
		return h.manager.NewState(), nil
	}

	if err != nil {
		return nil, err
	}

	return state, nil
}

// Show renders the page. Filter and page query parameters move the listing;
// a change of filters returns to the first page.
func (h *PageHandler[F]) Show(ctx *gin.Context) {
	key, err := h.key(ctx)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	state, err := h.load(ctx, key)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	if hasListingQuery(ctx) {
		var params listing.Params

		if err := ctx.ShouldBindQuery(&params); err != nil {
			respondBadRequest(ctx)
			return
		}

		state.Listing.Apply(h.view.params(params), listing.ParsePage(ctx.Query("page")))
	}

	h.render(ctx, key, state, http.StatusOK)
}

// Act applies one orchestrator action and renders the resulting page.
func (h *PageHandler[F]) Act(ctx *gin.Context) {
	key, err := h.key(ctx)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	var req pageAction

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx)
		return
	}

	state, err := h.load(ctx, key)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	reqCtx := ctx.Request.Context()
	status := http.StatusOK

	switch req.Action {
	case ActionCreate:
		h.manager.OpenCreate(state)
	case ActionEdit:
		err = h.manager.OpenEdit(reqCtx, state, req.ID)
	case ActionSave:
		form := state.Form.Form
		if len(req.Form) > 0 {
			if err := json.Unmarshal(req.Form, &form); err != nil {
				respondBadRequest(ctx)
				return
			}
		}
		err = h.manager.Save(reqCtx, state, form)
		if _, ok := validation.As(err); ok {
			status = http.StatusUnprocessableEntity
			err = nil
		}
	case ActionClose:
		h.manager.CloseForm(state)
	case ActionConfirmDelete:
		err = h.manager.ConfirmDelete(reqCtx, state, req.ID)
	case ActionCancelDelete:
		h.manager.CancelDelete(state)
	case ActionDelete:
		err = h.manager.Delete(reqCtx, state)
	case ActionFilter:
		params := state.Listing.Params
		if req.Filters != nil {
			params = h.view.params(*req.Filters)
		}
		state.Listing.Apply(params, req.Page)
	case ActionClearFilters:
		h.manager.ClearFilters(state)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Unknown action"})
		return
	}

	if errors.Is(err, crud.ErrNoPendingDelete) {
		ctx.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.render(ctx, key, state, status)
}

func (h *PageHandler[F]) render(ctx *gin.Context, key string, state *crud.State[F], status int) {
	reqCtx := ctx.Request.Context()

	records, shown, err := h.view.records(reqCtx, state.Listing)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	state.Listing.Page = shown

	extras, err := h.view.extras(reqCtx)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	// The flash is shown once and then forgotten.
	view := *state
	state.TakeFlash()

	if err := h.sessions.Save(reqCtx, key, state); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	body := gin.H{
		"component": h.component,
		"state":     view,
		"records":   records,
	}
	for k, v := range extras {
		body[k] = v
	}

	ctx.JSON(status, body)
}

func hasListingQuery(ctx *gin.Context) bool {
	for _, k := range []string{"search", "category_id", "status", "page"} {
		if _, ok := ctx.GetQuery(k); ok {
			return true
		}
	}
	return false
}

type productsView struct {
	products   *catalog.ProductService
	categories *catalog.CategoryService
}

func (v productsView) records(ctx context.Context, state listing.State) (interface{}, int, error) {
	page, err := v.products.List(ctx, state.Params, state.Page, listing.PagePageSize)

	if err != nil {
		return nil, 0, err
	}

	return listing.MapPage(page, productResponse), page.Meta.CurrentPage, nil
}

func (v productsView) extras(ctx context.Context) (gin.H, error) {
	active, err := v.categories.Active(ctx)

	if err != nil {
		return nil, err
	}

	return gin.H{"categories": categoryRefs(active)}, nil
}

func (v productsView) params(p listing.Params) listing.Params {
	return p
}

type categoriesView struct {
	categories *catalog.CategoryService
}

func (v categoriesView) records(ctx context.Context, state listing.State) (interface{}, int, error) {
	page, err := v.categories.List(ctx, state.Params, state.Page, listing.PagePageSize)

	if err != nil {
		return nil, 0, err
	}

	return listing.MapPage(page, categoryResponse), page.Meta.CurrentPage, nil
}

func (v categoriesView) extras(context.Context) (gin.H, error) {
	return gin.H{}, nil
}

func (v categoriesView) params(p listing.Params) listing.Params {
	p.CategoryID = ""
	return p
}

func NewProductPages(products *catalog.ProductService, categories *catalog.CategoryService, sessions session.Store, log *zap.Logger) *PageHandler[validation.ProductForm] {
	return &PageHandler[validation.ProductForm]{
		component: "products",
		manager:   catalog.NewProductManager(products),
		view:      productsView{products: products, categories: categories},
		sessions:  sessions,
		logger:    log,
	}
}

func NewCategoryPages(categories *catalog.CategoryService, sessions session.Store, log *zap.Logger) *PageHandler[validation.CategoryForm] {
	return &PageHandler[validation.CategoryForm]{
		component: "categories",
		manager:   catalog.NewCategoryManager(categories),
		view:      categoriesView{categories: categories},
		sessions:  sessions,
		logger:    log,
	}
}
