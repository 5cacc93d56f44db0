// cmd/web/errors.go
// This file contains all error-response helpers for the application.
// Keeping error helpers in a dedicated file makes them easy to find and extend.
package main

import (
	"bytes"
	"log/slog"
	"net/http"
)

// logError logs an internal error at ERROR level with the request method and
// URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// serverError logs the error and renders the 500 page. The template is
// executed straight from the cache here rather than through render, which
// would call back into serverError on failure; if even that fails we fall
// back to a plain-text 500. Internal error details never reach the client.
func (app *applicationDependencies) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	ts, ok := app.templateCache["servererror.tmpl"]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if execErr := ts.ExecuteTemplate(buf, "base", app.newTemplateData()); execErr != nil {
		app.logError(r, execErr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	buf.WriteTo(w)
}

// notFoundHandler renders the 404 page. It serves both missing books and
// unmatched routes; absence is never treated as a server fault.
func (app *applicationDependencies) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "notfound.tmpl", app.newTemplateData())
}

// badRequest replies with a plain 400. It is only reachable when a body
// cannot be parsed as a form at all, which no browser submission produces.
func (app *applicationDependencies) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}
