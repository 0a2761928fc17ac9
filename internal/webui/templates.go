package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"

	"github.com/pageza/mealfinder/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFiles embed.FS

// PageTitle is the heading shown on every page.
const PageTitle = "Recipe Finder"

// TemplateManager manages HTML templates
type TemplateManager struct {
	templates *template.Template
}

// PageData is the root value handed to page.html.
type PageData struct {
	Title string
	View  View
}

// NewTemplateManager creates a new template manager
func NewTemplateManager() (*TemplateManager, error) {
	funcMap := template.FuncMap{
		"pathEscape": url.PathEscape,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &TemplateManager{
		templates: tmpl,
	}, nil
}

// Render renders a template to the writer
func (tm *TemplateManager) Render(w io.Writer, name string, data interface{}) error {
	return tm.templates.ExecuteTemplate(w, name, data)
}

// RenderCard renders one grid card.
func (tm *TemplateManager) RenderCard(summary model.RecipeSummary) (template.HTML, error) {
	return tm.fragment("card.html", summary)
}

// RenderDetail renders the overlay body for one recipe.
func (tm *TemplateManager) RenderDetail(detail *model.RecipeDetail) (template.HTML, error) {
	return tm.fragment("detail.html", detail)
}

// RenderPage renders the full document for a view.
func (tm *TemplateManager) RenderPage(w io.Writer, view View) error {
	return tm.Render(w, "page.html", PageData{Title: PageTitle, View: view})
}

func (tm *TemplateManager) fragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tm.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	// Output of html/template is already escaped for its context.
	return template.HTML(buf.String()), nil
}

// StaticFS returns the embedded stylesheet and other assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
