package webui

import (
	"html/template"

	"github.com/pageza/mealfinder/internal/model"
)

// GridState says what the results area currently shows. The states are
// mutually exclusive.
type GridState string

const (
	GridEmpty   GridState = ""
	GridLoading GridState = "loading"
	GridError   GridState = "error"
	GridCards   GridState = "cards"
)

// LoadingMessage is shown while a fetch is in flight.
const LoadingMessage = "Loading delicious recipes..."

// Overlay is the detail view drawn on top of the grid.
type Overlay struct {
	Visible bool
	Detail  *model.RecipeDetail
	Body    template.HTML
}

// View is the render target of one Controller: the grid, the overlay and the
// page scroll flag.
type View struct {
	Grid       GridState
	Message    string
	Cards      []model.RecipeSummary
	CardHTML   []template.HTML
	SearchTerm string

	Overlay      Overlay
	ScrollLocked bool
}

// clone returns a copy that shares no slices with v.
func (v View) clone() View {
	out := v
	out.Cards = append([]model.RecipeSummary(nil), v.Cards...)
	out.CardHTML = append([]template.HTML(nil), v.CardHTML...)
	if v.Overlay.Detail != nil {
		detail := *v.Overlay.Detail
		detail.Ingredients = append([]string(nil), v.Overlay.Detail.Ingredients...)
		out.Overlay.Detail = &detail
	}
	return out
}
