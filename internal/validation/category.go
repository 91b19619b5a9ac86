package validation

import "context"

type CategoryValidator struct {
	Names NameLookup
}

func (v CategoryValidator) Validate(ctx context.Context, form CategoryForm, op Operation) (Errors, error) {
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

	return errs, nil
}
