package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Text is a form value that accepts a JSON string, number or null.
// Numbers keep their literal text so "9.90" and 9.90 validate the same way.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

type ProductForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Text   `json:"price"`
	IsActive    bool   `json:"is_active"`
	CategoryID  Text   `json:"category_id"`
}

// NewProductForm returns the empty create form. New products are active.
func NewProductForm() ProductForm {
	return ProductForm{IsActive: true}
}

func (f *ProductForm) Reset() {
	*f = NewProductForm()
}

func (f ProductForm) Normalized() ProductForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = Text(f.Price.String())
	f.CategoryID = Text(f.CategoryID.String())
	return f
}

func (f ProductForm) DescriptionValue() *string {
	return optionalString(f.Description)
}

// PriceValue must only be called on a validated form.
func (f ProductForm) PriceValue() decimal.NullDecimal {
	d, ok := ParseDecimal(f.Price.String())
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d.Round(2))
}

// CategoryValue must only be called on a validated form.
func (f ProductForm) CategoryValue() *uint {
	id, err := strconv.ParseUint(f.CategoryID.String(), 10, 64)
	if err != nil || id == 0 {
		return nil
	}

	v := uint(id)
	return &v
}

type CategoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// NewCategoryForm returns the empty create form. New categories are active.
func NewCategoryForm() CategoryForm {
	return CategoryForm{IsActive: true}
}

func (f *CategoryForm) Reset() {
	*f = NewCategoryForm()
}

func (f CategoryForm) Normalized() CategoryForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

func (f CategoryForm) DescriptionValue() *string {
	return optionalString(f.Description)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
