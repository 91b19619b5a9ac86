package catalog

import (
	"context"

	"github.com/monocle-dev/catalog/internal/crud"
	"github.com/monocle-dev/catalog/internal/validation"
)

var ProductMessages = crud.Messages{
	Created: "Producto creado exitosamente.",
	Updated: "Producto actualizado exitosamente.",
	Deleted: "Producto eliminado exitosamente.",
}

var CategoryMessages = crud.Messages{
	Created: "Categoría creada exitosamente.",
	Updated: "Categoría actualizada exitosamente.",
	Deleted: "Categoría eliminada exitosamente.",
}

// ProductPages adapts ProductService to the interactive page workflow,
// where every field is submitted and the price may be left empty.
type ProductPages struct {
	Service *ProductService
}

func (p ProductPages) Find(ctx context.Context, id uint) (validation.ProductForm, string, error) {
	product, err := p.Service.Get(ctx, id)
	if err != nil {
		return validation.ProductForm{}, "", err
	}
	return FormFromProduct(product), product.Name, nil
}

func (p ProductPages) Create(ctx context.Context, form validation.ProductForm) error {
	_, err := p.Service.Create(ctx, form, PageRules)
	return err
}

func (p ProductPages) Update(ctx context.Context, id uint, form validation.ProductForm) error {
	_, err := p.Service.Update(ctx, id, form, nil, PageRules)
	return err
}

func (p ProductPages) Delete(ctx context.Context, id uint) error {
	return p.Service.Delete(ctx, id)
}

type CategoryPages struct {
	Service *CategoryService
}

func (p CategoryPages) Find(ctx context.Context, id uint) (validation.CategoryForm, string, error) {
	category, err := p.Service.Get(ctx, id)
	if err != nil {
		return validation.CategoryForm{}, "", err
	}
	return FormFromCategory(category), category.Name, nil
}

func (p CategoryPages) Create(ctx context.Context, form validation.CategoryForm) error {
	_, err := p.Service.Create(ctx, form)
	return err
}

func (p CategoryPages) Update(ctx context.Context, id uint, form validation.CategoryForm) error {
	_, err := p.Service.Update(ctx, id, form)
	return err
}

func (p CategoryPages) Delete(ctx context.Context, id uint) error {
	return p.Service.Delete(ctx, id)
}

func NewProductManager(s *ProductService) *crud.Manager[validation.ProductForm] {
	return crud.NewManager[validation.ProductForm](ProductPages{Service: s}, validation.NewProductForm, ProductMessages)
}

func NewCategoryManager(s *CategoryService) *crud.Manager[validation.CategoryForm] {
	return crud.NewManager[validation.CategoryForm](CategoryPages{Service: s}, validation.NewCategoryForm, CategoryMessages)
}
