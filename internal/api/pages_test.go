package api

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfinder/internal/service"
	"github.com/pageza/mealfinder/internal/testhelpers"
	"github.com/pageza/mealfinder/internal/webui"
)

type pageClient struct {
	router *gin.Engine
	cookie *http.Cookie
}

func setupPageTestRouter(t *testing.T) (*pageClient, *testhelpers.FakeCatalog, *webui.SessionRegistry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := testhelpers.NewFakeCatalog(t)
	for _, term := range service.SeedTerms {
		fake.AddSearch(term, testhelpers.MealRecords(4)...)
	}
	fake.AddSearch("curry", testhelpers.MealRecord("52820", "Katsu Chicken curry"))

	discard := log.New(io.Discard, "", 0)
	catalog := service.NewCatalogClient(service.WithBaseURL(fake.URL()))
	loader := service.NewRecipeLoader(catalog)
	templates, err := webui.NewTemplateManager()
	require.NoError(t, err)
	sessions := webui.NewSessionRegistry(0, func() *webui.Controller {
		return webui.NewController(catalog, loader, templates, discard)
	}, discard)

	router := gin.New()
	NewPageHandler(sessions, discard).RegisterRoutes(router)
	return &pageClient{router: router}, fake, sessions
}

func (pc *pageClient) get(t *testing.T, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if pc.cookie != nil {
		req.AddCookie(pc.cookie)
	}
	w := httptest.NewRecorder()
	pc.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			pc.cookie = c
		}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return w, doc
}

func TestIndex(t *testing.T) {
	client, _, sessions := setupPageTestRouter(t)

	w, doc := client.get(t, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.NotNil(t, client.cookie)
	assert.True(t, client.cookie.HttpOnly)
	assert.Equal(t, 4, doc.Find("#recipeGrid .recipe-card").Length())
	assert.Equal(t, "display: none", doc.Find("#recipeModal").AttrOr("style", ""))
	assert.Equal(t, "overflow: auto", doc.Find("body").AttrOr("style", ""))
	assert.Equal(t, 1, sessions.Len())
}

func TestIndexReusesSession(t *testing.T) {
	client, fake, sessions := setupPageTestRouter(t)

	client.get(t, "/")
	calls := len(fake.Calls())
	first := client.cookie.Value

	w, doc := client.get(t, "/")

	assert.Empty(t, w.Result().Cookies(), "cookie is only issued once")
	assert.Equal(t, first, client.cookie.Value)
	assert.Equal(t, calls, len(fake.Calls()), "the initial load runs once per session")
	assert.Equal(t, 4, doc.Find(".recipe-card").Length())
	assert.Equal(t, 1, sessions.Len())
}

func TestSearch(t *testing.T) {
	client, fake, _ := setupPageTestRouter(t)

	t.Run("renders matching cards", func(t *testing.T) {
		_, doc := client.get(t, "/search?s=curry")

		cards := doc.Find(".recipe-card")
		require.Equal(t, 1, cards.Length())
		assert.Equal(t, "Katsu Chicken curry", cards.Find("h3").Text())
		assert.Equal(t, "curry", doc.Find("#searchInput").AttrOr("value", ""))
	})

	t.Run("shows the no results message", func(t *testing.T) {
		_, doc := client.get(t, "/search?s=nothing")

		assert.Equal(t, 0, doc.Find(".recipe-card").Length())
		assert.Equal(t, `No recipes found for "nothing". Try searching for something else.`, doc.Find(".error-message").Text())
	})

	t.Run("shows a generic message when the catalog fails", func(t *testing.T) {
		fake.SetFail(http.StatusInternalServerError)
		t.Cleanup(func() { fake.SetFail(0) })

		_, doc := client.get(t, "/search?s=curry")

		assert.Equal(t, webui.MsgSearchFailed, doc.Find(".error-message").Text())
	})
}

func TestViewDetailsAndClose(t *testing.T) {
	client, _, _ := setupPageTestRouter(t)
	client.get(t, "/")

	_, doc := client.get(t, "/recipes/50001")

	assert.Equal(t, "display: block", doc.Find("#recipeModal").AttrOr("style", ""))
	assert.Equal(t, "overflow: hidden", doc.Find("body").AttrOr("style", ""))
	assert.Equal(t, "Meal 1", doc.Find("#modalBody .modal-recipe-title").Text())
	assert.Equal(t, "1 pinch Salt", strings.TrimSpace(doc.Find(".modal-recipe-ingredients li").First().Text()))
	assert.Equal(t, 4, doc.Find(".recipe-card").Length(), "the grid stays in place behind the overlay")

	t.Run("click inside the overlay content keeps it open", func(t *testing.T) {
		_, doc := client.get(t, "/overlay/close?target=content")
		assert.Equal(t, "display: block", doc.Find("#recipeModal").AttrOr("style", ""))
	})

	t.Run("backdrop click closes it", func(t *testing.T) {
		_, doc := client.get(t, "/overlay/close?target=backdrop")
		assert.Equal(t, "display: none", doc.Find("#recipeModal").AttrOr("style", ""))
		assert.Equal(t, "overflow: auto", doc.Find("body").AttrOr("style", ""))
	})

	t.Run("close is idempotent", func(t *testing.T) {
		client.get(t, "/recipes/50002")
		client.get(t, "/overlay/close")
		_, doc := client.get(t, "/overlay/close")
		assert.Equal(t, "display: none", doc.Find("#recipeModal").AttrOr("style", ""))
	})
}

func TestViewDetailsNotFound(t *testing.T) {
	client, _, _ := setupPageTestRouter(t)
	client.get(t, "/")

	_, doc := client.get(t, "/recipes/404")

	assert.Equal(t, "display: none", doc.Find("#recipeModal").AttrOr("style", ""))
	assert.Equal(t, webui.MsgDetailNotFound, doc.Find(".error-message").Text())
}
