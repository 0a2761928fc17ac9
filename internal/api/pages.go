package api

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/internal/webui"
)

// SessionCookie carries the browser's session id.
const SessionCookie = "mealfinder_session"

// PageHandler serves the HTML interface. Every request is translated into a
// Controller event for the caller's session and answered with the full page.
type PageHandler struct {
	sessions *webui.SessionRegistry
	logger   *log.Logger
}

// NewPageHandler creates a page handler backed by sessions
func NewPageHandler(sessions *webui.SessionRegistry, logger *log.Logger) *PageHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[api] ", log.LstdFlags)
	}
	return &PageHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers the page routes
func (h *PageHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.GET("/search", h.Search)
	router.GET("/recipes/:id", h.ViewDetails)
	router.GET("/overlay/close", h.CloseOverlay)
}

// Index draws the current view, running the initial load on a new session.
func (h *PageHandler) Index(c *gin.Context) {
	ctl, created := h.controller(c)
	if created {
		h.dispatch(c, ctl, webui.Event{Action: webui.ActionInit})
	}
	h.render(c, ctl)
}

// Search handles the search form; Enter in the field submits it natively.
func (h *PageHandler) Search(c *gin.Context) {
	ctl, _ := h.controller(c)
	h.dispatch(c, ctl, webui.Event{Action: webui.ActionSearch, Value: c.Query("s")})
	h.render(c, ctl)
}

// ViewDetails handles a card's "view details" control.
func (h *PageHandler) ViewDetails(c *gin.Context) {
	ctl, created := h.controller(c)
	if created {
		h.dispatch(c, ctl, webui.Event{Action: webui.ActionInit})
	}
	h.dispatch(c, ctl, webui.Event{Action: webui.ActionViewDetails, Value: c.Param("id")})
	h.render(c, ctl)
}

// CloseOverlay handles the close control and clicks on the overlay backdrop.
func (h *PageHandler) CloseOverlay(c *gin.Context) {
	ctl, created := h.controller(c)
	if created {
		h.dispatch(c, ctl, webui.Event{Action: webui.ActionInit})
	}
	ev := webui.Event{Action: webui.ActionClose}
	if target := c.Query("target"); target != "" {
		ev = webui.Event{Action: webui.ActionBackdropClick, Target: target}
	}
	h.dispatch(c, ctl, ev)
	h.render(c, ctl)
}

func (h *PageHandler) controller(c *gin.Context) (*webui.Controller, bool) {
	id, _ := c.Cookie(SessionCookie)
	id, ctl, created := h.sessions.Get(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	}
	return ctl, created
}

func (h *PageHandler) dispatch(c *gin.Context, ctl *webui.Controller, ev webui.Event) {
	if err := ctl.Dispatch(c.Request.Context(), ev); err != nil {
		h.logger.Printf("Error handling %s event: %v", ev.Action, err)
		_ = c.Error(err)
	}
}

func (h *PageHandler) render(c *gin.Context, ctl *webui.Controller) {
	var buf bytes.Buffer
	if err := ctl.Page(&buf); err != nil {
		h.logger.Printf("Failed to render page: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
