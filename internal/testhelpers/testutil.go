package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MealRecord builds a raw catalog record with the basic fields filled in.
func MealRecord(id, name string) map[string]any {
	return map[string]any{
		"idMeal":          id,
		"strMeal":         name,
		"strMealThumb":    "https://www.themealdb.com/images/media/meals/" + id + ".jpg",
		"strInstructions": "Cook the " + strings.ToLower(name) + " until done.",
		"strCategory":     "Test Category",
		"strArea":         "Test Area",
		"strIngredient1":  "Salt",
		"strMeasure1":     "1 pinch",
	}
}

// MealRecords builds n numbered records.
func MealRecords(n int) []map[string]any {
	records := make([]map[string]any, n)
	for i := range records {
		records[i] = MealRecord(fmt.Sprintf("%d", 50000+i), fmt.Sprintf("Meal %d", i))
	}
	return records
}

// FakeCatalog is an in-memory stand-in for the remote catalog API.
type FakeCatalog struct {
	Server *httptest.Server

	mu       sync.Mutex
	searches map[string][]map[string]any
	meals    map[string]map[string]any
	calls    []string
	fail     int
}

// NewFakeCatalog starts a fake catalog; it is closed when the test ends.
func NewFakeCatalog(t *testing.T) *FakeCatalog {
	t.Helper()
	fc := &FakeCatalog{
		searches: make(map[string][]map[string]any),
		meals:    make(map[string]map[string]any),
	}
	fc.Server = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.Server.Close)
	return fc
}

// URL returns the base URL to hand to the catalog client.
func (fc *FakeCatalog) URL() string {
	return fc.Server.URL
}

// AddSearch registers the records returned for a search term. Records are
// also made available to lookups by their idMeal.
func (fc *FakeCatalog) AddSearch(term string, records ...map[string]any) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.searches[term] = append(fc.searches[term], records...)
	for _, r := range records {
		if id, ok := r["idMeal"].(string); ok {
			fc.meals[id] = r
		}
	}
}

// AddMeal registers a record for lookup only.
func (fc *FakeCatalog) AddMeal(record map[string]any) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.meals[record["idMeal"].(string)] = record
}

// SetFail makes every request answer with status; zero restores normal answers.
func (fc *FakeCatalog) SetFail(status int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.fail = status
}

// Calls returns the request URIs seen so far.
func (fc *FakeCatalog) Calls() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]string(nil), fc.calls...)
}

func (fc *FakeCatalog) serve(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	fc.calls = append(fc.calls, r.URL.RequestURI())
	fail := fc.fail
	var meals []map[string]any
	switch r.URL.Path {
	case "/search.php":
		meals = fc.searches[r.URL.Query().Get("s")]
	case "/lookup.php":
		if m, ok := fc.meals[r.URL.Query().Get("i")]; ok {
			meals = []map[string]any{m}
		}
	default:
		fc.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	fc.mu.Unlock()

	if fail != 0 {
		http.Error(w, http.StatusText(fail), fail)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"meals": meals})
}
