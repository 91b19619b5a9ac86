package validation

import "context"

// ProductRules differ per surface: the JSON API requires a price, the
// interactive pages accept an empty one.
type ProductRules struct {
	PriceRequired bool
}

type ProductValidator struct {
	Names      NameLookup
	Categories CategoryLookup
	Rules      ProductRules
}

// Validate evaluates every field and reports all violations together. The
// returned error is a lookup failure, never a validation failure.
func (v ProductValidator) Validate(ctx context.Context, form ProductForm, op Operation) (Errors, error) {
	form = form.Normalized()
	errs := Errors{}

	if op.Kind == Create || op.Supplied.Has("name") {
		if msgs := Required("name", form.Name); msgs != nil {
			errs.AddAll("name", msgs)
		} else {
			errs.AddAll("name", MaxLength("name", form.Name, NameMaxLength))

			msgs, err := Unique(ctx, v.Names, "name", form.Name, op.SelfID)
			if err != nil {
				return nil, err
			}
			errs.AddAll("name", msgs)
		}
	}

	if op.Supplied.Has("description") {
		errs.AddAll("description", MaxLength("description", form.Description, DescriptionMaxLength))
	}

	priceRequired := v.Rules.PriceRequired && (op.Kind == Create || op.Supplied.Has("price"))
	if priceRequired {
		errs.AddAll("price", Required("price", form.Price.String()))
	}
	if op.Supplied.Has("price") && !errs.Has("price") {
		errs.AddAll("price", NonNegativeNumber("price", form.Price.String()))
		if !errs.Has("price") {
			errs.AddAll("price", MaxNumber("price", form.Price.String(), MaxPrice))
		}
	}

	if op.Supplied.Has("category_id") {
		msgs, err := ExistingCategory(ctx, v.Categories, "category_id", form.CategoryID.String())
		if err != nil {
			return nil, err
		}
		errs.AddAll("category_id", msgs)
	}

	return errs, nil
}
