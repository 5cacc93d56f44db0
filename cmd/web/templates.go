// cmd/web/templates.go
// This file contains the template cache and the data struct passed to every
// rendered page.
package main

import (
	"html/template"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/aoideee/booklist/internal/data"
	"github.com/aoideee/booklist/ui"
)

// templateData is the single struct handed to every page template. Only the
// fields a given page reads need to be set; newTemplateData fills in the
// pieces every page shares.
type templateData struct {
	Book         *data.Book    // Detail, edit, and delete pages
	Books        []*data.Book  // List page
	Form         *bookForm     // Create and edit forms, with submitted values and errors
	Filter       data.Filter   // Current list filter, echoed into the search controls
	Statuses     []data.Status // The closed status set, for select options
	ErrorMessage string        // Generic banner shown above the page body
}

// newTemplateData returns a templateData with the shared fields populated.
func (app *applicationDependencies) newTemplateData() templateData {
	return templateData{
		Statuses: data.Statuses(),
	}
}

// functions are the helpers available inside every template.
var functions = template.FuncMap{
	"humanDate": humanDate,
	"safeHTML":  safeHTML,
}

// humanDate formats a timestamp for display.
func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006 at 15:04")
}

// safeHTML marks a trusted, template-controlled fragment as exempt from
// escaping. Values are escaped by default on insertion; this is the one
// deliberate escape hatch and must never be called on user-sourced or
// storage-sourced values.
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

// newTemplateCache parses every page template together with the base layout
// and the shared partials, keyed by the page's file name. Building the cache
// once at startup means a malformed template is a startup failure, not a
// request-time one.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.tmpl",
			"html/partials/*.tmpl",
			page,
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
