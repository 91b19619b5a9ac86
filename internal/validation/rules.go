package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	NameMaxLength        = 255
	DescriptionMaxLength = 1000

	// numberMaxLength and numberMaxExponent bound decimal input before any
	// arithmetic on it. Rescaling 1e100000000 would never finish.
	numberMaxLength   = 32
	numberMaxExponent = 20
)

// MaxPrice is the largest value a decimal(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// Kind tells the rules whether a record is being created or updated.
type Kind int

const (
	Create Kind = iota
	Update
)

// FieldSet lists the fields a request supplied. A nil set means every field
// was supplied, which is the case for full form submissions.
type FieldSet map[string]bool

func NewFieldSet(fields ...string) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func (s FieldSet) Has(field string) bool {
	return s == nil || s[field]
}

type Operation struct {
	Kind     Kind
	SelfID   uint
	Supplied FieldSet
}

func CreateOp() Operation {
	return Operation{Kind: Create}
}

func UpdateOp(id uint, supplied FieldSet) Operation {
	return Operation{Kind: Update, SelfID: id, Supplied: supplied}
}

// NameLookup reports whether a row other than excludeID already uses name.
// excludeID is zero on create.
type NameLookup interface {
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
}

type CategoryLookup interface {
	CategoryExists(ctx context.Context, id uint) (bool, error)
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func Required(field, value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{fmt.Sprintf("The %s field is required.", label(field))}
	}
	return nil
}

func MaxLength(field, value string, max int) []string {
	if utf8.RuneCountInString(value) > max {
		return []string{fmt.Sprintf("The %s field must not be greater than %d characters.", label(field), max)}
	}
	return nil
}

// Unique checks value against every other row; the row being updated never
// collides with itself.
func Unique(ctx context.Context, lookup NameLookup, field, value string, selfID uint) ([]string, error) {
	if value == "" {
		return nil, nil
	}

	taken, err := lookup.NameTaken(ctx, value, selfID)
	if err != nil {
		return nil, err
	}

	if taken {
		return []string{fmt.Sprintf("The %s has already been taken.", label(field))}, nil
	}
	return nil, nil
}

// ParseDecimal parses raw, refusing text too long or exponents too large
// to do arithmetic on safely.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > numberMaxLength {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}

	if exp := d.Exponent(); exp > numberMaxExponent || exp < -numberMaxExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

// NonNegativeNumber validates a decimal given as text. Empty text passes;
// pair it with Required when the value is mandatory.
func NonNegativeNumber(field, raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	d, ok := ParseDecimal(raw)
	if !ok {
		return []string{fmt.Sprintf("The %s field must be a number.", label(field))}
	}

	if d.IsNegative() {
		return []string{fmt.Sprintf("The %s field must be at least 0.", label(field))}
	}
	return nil
}

// MaxNumber rejects decimals above max. Unparseable text is left to
// NonNegativeNumber.
func MaxNumber(field, raw string, max decimal.Decimal) []string {
	d, ok := ParseDecimal(raw)
	if !ok {
		return nil
	}

	if d.GreaterThan(max) {
		return []string{fmt.Sprintf("The %s field must not be greater than %s.", label(field), max.StringFixed(2))}
	}
	return nil
}

// ExistingCategory validates an optional category reference given as text.
func ExistingCategory(ctx context.Context, lookup CategoryLookup, field, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	invalid := []string{fmt.Sprintf("The selected %s is invalid.", label(field))}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return invalid, nil
	}

	ok, err := lookup.CategoryExists(ctx, uint(id))
	if err != nil {
		return nil, err
	}

	if !ok {
		return invalid, nil
	}
	return nil, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
