package listing

// State is the listing position of an interactive page: the active filters
// and the page being viewed.
type State struct {
	Params Params `json:"filters"`
	Page   int    `json:"page"`
}

func NewState() State {
	return State{Page: 1}
}

// Apply moves to the requested filters and page. Any change in filter values
// resets the page to 1 so a stale page number cannot outlive its filters.
func (s *State) Apply(params Params, page int) {
	params = params.Normalized()

	if params != s.Params {
		s.Params = params
		s.Page = 1
		return
	}

	if page < 1 {
		page = 1
	}
	s.Page = page
}

func (s *State) Clear() {
	*s = NewState()
}
