package handlers

import (
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/types"
)

func userResponse(u *models.User) types.UserResponse {
	return types.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func productResponse(p models.Product) types.ProductResponse {
	res := types.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.Price.Valid {
		price := p.Price.Decimal.StringFixed(2)
		res.Price = &price
	}

	if p.Category != nil {
		res.Category = &types.CategoryRef{ID: p.Category.ID, Name: p.Category.Name}
	}

	return res
}

func categoryResponse(c models.CategoryWithCount) types.CategoryResponse {
	return types.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		IsActive:      c.IsActive,
		ProductsCount: c.ProductsCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func categoryRefs(categories []models.Category) []types.CategoryRef {
	refs := make([]types.CategoryRef, len(categories))
	for i, c := range categories {
		refs[i] = types.CategoryRef{ID: c.ID, Name: c.Name}
	}
	return refs
}
