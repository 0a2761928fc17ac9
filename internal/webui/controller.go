package webui

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pageza/mealfinder/internal/model"
	"github.com/pageza/mealfinder/internal/service"
)

// Messages shown in place of the grid.
const (
	MsgLoadFailed      = "Failed to load recipes. Please try again later."
	MsgSearchFailed    = "Failed to search recipes. Please try again."
	MsgNoResults       = "No recipes found."
	MsgDetailNotFound  = "Recipe details not found."
	MsgDetailFailed    = "Failed to load recipe details."
	msgSearchNoResults = "No recipes found for %q. Try searching for something else."
)

// Action names a user interaction the Controller responds to.
type Action string

const (
	ActionInit          Action = "init"
	ActionSearch        Action = "search"
	ActionViewDetails   Action = "view-details"
	ActionClose         Action = "close"
	ActionBackdropClick Action = "backdrop-click"
)

// TargetBackdrop identifies a click that landed on the overlay backdrop rather
// than on its content.
const TargetBackdrop = "backdrop"

// ErrUnknownAction is returned by Dispatch for an action with no binding.
var ErrUnknownAction = errors.New("unknown action")

// Event is one user interaction. Value carries the typed search term or the
// selected recipe id; Target names the element that was clicked.
type Event struct {
	Action Action
	Value  string
	Target string
}

// Handler reacts to an Event.
type Handler func(ctx context.Context, ev Event) error

// Controller owns one View and maps user events onto fetches and renders.
type Controller struct {
	catalog   service.ICatalogService
	loader    service.IRecipeLoader
	templates *TemplateManager
	logger    *log.Logger

	mu   sync.Mutex
	view View

	// Latest sequence numbers issued for grid and overlay fetches. A result is
	// applied only while its number is still the latest.
	gridSeq   atomic.Uint64
	detailSeq atomic.Uint64

	bindings map[Action]Handler
}

// NewController creates a controller with a Closed overlay and an empty grid.
func NewController(catalog service.ICatalogService, loader service.IRecipeLoader, templates *TemplateManager, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(log.Writer(), "[webui] ", log.LstdFlags)
	}
	c := &Controller{
		catalog:   catalog,
		loader:    loader,
		templates: templates,
		logger:    logger,
	}
	c.bindings = map[Action]Handler{
		ActionInit:          c.handleInit,
		ActionSearch:        c.handleSearch,
		ActionViewDetails:   c.handleViewDetails,
		ActionClose:         c.handleClose,
		ActionBackdropClick: c.handleBackdropClick,
	}
	return c
}

// Dispatch runs the handler bound to ev.Action.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	h, ok := c.bindings[ev.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return h(ctx, ev)
}

// View returns a snapshot of the current render target.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.clone()
}

// Page writes the full HTML document for the current view.
func (c *Controller) Page(w io.Writer) error {
	return c.templates.RenderPage(w, c.View())
}

// ShowLoading replaces the grid with the loading message.
func (c *Controller) ShowLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showLoadingLocked()
}

// ShowError replaces the grid with message.
func (c *Controller) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showErrorLocked(message)
}

// RenderGrid clears the grid and draws one card per recipe in the order given,
// or a single message when there are none.
func (c *Controller) RenderGrid(result model.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderGridLocked(result)
}

// RenderCard renders the card element for one summary.
func (c *Controller) RenderCard(summary model.RecipeSummary) (template.HTML, error) {
	return c.templates.RenderCard(summary)
}

// OpenDetail populates the overlay, shows it and locks page scroll. Opening
// while already open re-populates in place.
func (c *Controller) OpenDetail(detail *model.RecipeDetail) error {
	body, err := c.templates.RenderDetail(detail)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openDetailLocked(detail, body)
	return nil
}

// CloseDetail hides the overlay and restores page scroll. Lookups still in
// flight are discarded so they cannot reopen it.
func (c *Controller) CloseDetail() {
	c.detailSeq.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeDetailLocked()
}

func (c *Controller) showLoadingLocked() {
	c.view.Grid = GridLoading
	c.view.Message = LoadingMessage
	c.view.Cards = nil
	c.view.CardHTML = nil
}

func (c *Controller) showErrorLocked(message string) {
	c.view.Grid = GridError
	c.view.Message = message
	c.view.Cards = nil
	c.view.CardHTML = nil
}

func (c *Controller) renderGridLocked(result model.SearchResult) {
	if result.NoResults() {
		msg := result.Message
		if msg == "" {
			msg = MsgNoResults
		}
		c.showErrorLocked(msg)
		return
	}

	cards := make([]template.HTML, 0, len(result.Recipes))
	for _, summary := range result.Recipes {
		card, err := c.templates.RenderCard(summary)
		if err != nil {
			c.logger.Printf("Error rendering recipe card %s: %v", summary.ID, err)
			c.showErrorLocked(MsgLoadFailed)
			return
		}
		cards = append(cards, card)
	}

	c.view.Grid = GridCards
	c.view.Message = ""
	c.view.Cards = append([]model.RecipeSummary(nil), result.Recipes...)
	c.view.CardHTML = cards
}

func (c *Controller) openDetailLocked(detail *model.RecipeDetail, body template.HTML) {
	c.view.Overlay = Overlay{Visible: true, Detail: detail, Body: body}
	c.view.ScrollLocked = true
}

func (c *Controller) closeDetailLocked() {
	c.view.Overlay.Visible = false
	c.view.ScrollLocked = false
}

// commit applies fn under the view lock if seq is still the latest value of
// counter. It reports whether fn ran.
func (c *Controller) commit(counter *atomic.Uint64, seq uint64, what string, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if latest := counter.Load(); seq != latest {
		c.logger.Printf("Discarding stale %s response (seq %d, latest %d)", what, seq, latest)
		return false
	}
	fn()
	return true
}

func (c *Controller) handleInit(ctx context.Context, _ Event) error {
	seq := c.gridSeq.Add(1)
	c.commit(&c.gridSeq, seq, "initial load", c.showLoadingLocked)

	result, err := c.loader.LoadInitialRecipes(ctx)
	c.commit(&c.gridSeq, seq, "initial load", func() {
		if err != nil {
			c.logger.Printf("Error loading latest recipes: %v", err)
			c.showErrorLocked(MsgLoadFailed)
			return
		}
		c.renderGridLocked(result)
	})
	return nil
}

func (c *Controller) handleSearch(ctx context.Context, ev Event) error {
	term := strings.TrimSpace(ev.Value)
	c.mu.Lock()
	c.view.SearchTerm = term
	c.mu.Unlock()

	if term == "" {
		return c.handleInit(ctx, ev)
	}

	seq := c.gridSeq.Add(1)
	c.commit(&c.gridSeq, seq, "search", c.showLoadingLocked)

	result, err := c.catalog.SearchByTerm(ctx, term)
	c.commit(&c.gridSeq, seq, "search", func() {
		if err != nil {
			c.logger.Printf("Error searching recipes for %q: %v", term, err)
			c.showErrorLocked(MsgSearchFailed)
			return
		}
		c.renderGridLocked(result.WithMessage(fmt.Sprintf(msgSearchNoResults, term)))
	})
	return nil
}

func (c *Controller) handleViewDetails(ctx context.Context, ev Event) error {
	seq := c.detailSeq.Add(1)
	// Failures are reported in the grid, so they must not replace a grid
	// fetch issued after this lookup started.
	gridSeq := c.gridSeq.Load()

	detail, err := c.catalog.LookupByID(ctx, ev.Value)
	var body template.HTML
	if err == nil {
		body, err = c.templates.RenderDetail(detail)
	}

	c.commit(&c.detailSeq, seq, "recipe details", func() {
		if err != nil {
			c.logger.Printf("Error fetching recipe details %s: %v", ev.Value, err)
			if latest := c.gridSeq.Load(); latest != gridSeq {
				c.logger.Printf("Discarding recipe details error (grid seq %d, latest %d)", gridSeq, latest)
				return
			}
		}
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.showErrorLocked(MsgDetailNotFound)
		case err != nil:
			c.showErrorLocked(MsgDetailFailed)
		default:
			c.openDetailLocked(detail, body)
		}
	})
	return nil
}

func (c *Controller) handleClose(_ context.Context, _ Event) error {
	c.CloseDetail()
	return nil
}

func (c *Controller) handleBackdropClick(_ context.Context, ev Event) error {
	if ev.Target == TargetBackdrop {
		c.CloseDetail()
	}
	return nil
}
