package listing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFilters(t *testing.T) {
	f := Params{}.Filters()
	assert.False(t, f.Category.Enabled)
	assert.Nil(t, f.Status)

	f = Params{CategoryID: "0", Status: "0"}.Filters()
	assert.True(t, f.Category.Enabled)
	assert.Nil(t, f.Category.ID, "0 selects products without a category")
	require.NotNil(t, f.Status)
	assert.False(t, *f.Status)

	f = Params{Search: "  phone ", CategoryID: "12", Status: "true"}.Filters()
	assert.Equal(t, "phone", f.Search)
	require.NotNil(t, f.Category.ID)
	assert.Equal(t, uint(12), *f.Category.ID)
	assert.True(t, *f.Status)

	f = Params{CategoryID: "abc", Status: "maybe"}.Filters()
	assert.False(t, f.Category.Enabled)
	assert.Nil(t, f.Status)
}

func TestLastPageAndClamp(t *testing.T) {
	assert.Equal(t, 1, LastPage(0, 15))
	assert.Equal(t, 2, LastPage(20, 15))
	assert.Equal(t, 2, LastPage(20, 10))
	assert.Equal(t, 3, LastPage(21, 10))

	assert.Equal(t, 1, Clamp(0, 20, 10))
	assert.Equal(t, 2, Clamp(9, 20, 10))
	assert.Equal(t, 1, Clamp(3, 0, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 0, Offset(0, 10))
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("-4"))
	assert.Equal(t, 1, ParsePage("x"))
	assert.Equal(t, 3, ParsePage("3"))
}

func TestStateFilterChangeResetsPage(t *testing.T) {
	s := NewState()

	s.Apply(Params{}, 3)
	assert.Equal(t, 3, s.Page)

	changes := []Params{
		{Search: "phone"},
		{Search: "phone", CategoryID: "2"},
		{Search: "phone", CategoryID: "2", Status: "1"},
		{Search: "phone", CategoryID: "0", Status: "1"},
		{},
	}

	for _, p := range changes {
		s.Apply(s.Params, 4)
		require.Equal(t, 4, s.Page)

		s.Apply(p, 4)
		assert.Equal(t, 1, s.Page, "changing filters to %+v must reset the page", p)
		assert.Equal(t, p, s.Params)
	}
}

func TestStateSameFiltersKeepsRequestedPage(t *testing.T) {
	s := NewState()
	s.Apply(Params{Status: "1"}, 5)
	assert.Equal(t, 1, s.Page)

	s.Apply(Params{Status: " 1 "}, 2)
	assert.Equal(t, 2, s.Page, "whitespace-only differences are not a filter change")

	s.Clear()
	assert.Equal(t, NewState(), s)
}

func TestMapPage(t *testing.T) {
	p := Page[int]{Items: []int{1, 2}, Meta: Meta{CurrentPage: 2, PerPage: 2, Total: 4, LastPage: 2}}

	got := MapPage(p, func(n int) string { return strconv.Itoa(n * 10) })

	assert.Equal(t, []string{"10", "20"}, got.Items)
	assert.Equal(t, p.Meta, got.Meta)
}
