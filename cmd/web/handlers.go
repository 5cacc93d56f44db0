// cmd/web/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, database models, and template cache.
//
// Every successful state-changing POST ends in a redirect, never a direct
// render, so a client reload never resubmits the form.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aoideee/booklist/internal/data"
)

// homeHandler handles GET / and redirects to the book list.
func (app *applicationDependencies) homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/books", http.StatusFound)
}

// helloHandler handles GET /hello, a smoke page proving the template stack works.
func (app *applicationDependencies) helloHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "hello.tmpl", app.newTemplateData())
}

// listBooksHandler handles GET /books.
// It reads the status and q query parameters as the list filter and renders
// the matching books, most recently created first.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	filter := data.Filter{
		Status: app.readString(qs, "status", ""),
		Query:  app.readString(qs, "q", ""),
	}

	books, err := app.models.Books.List(filter)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	tmplData := app.newTemplateData()
	tmplData.Books = books
	tmplData.Filter = filter
	app.render(w, r, http.StatusOK, "list.tmpl", tmplData)
}

// newBookFormHandler renders the blank create form. It is dispatched from
// showBookHandler because httprouter cannot register the static /books/new
// route alongside the /books/:id wildcard.
func (app *applicationDependencies) newBookFormHandler(w http.ResponseWriter, r *http.Request) {
	tmplData := app.newTemplateData()
	tmplData.Form = &bookForm{}
	app.render(w, r, http.StatusOK, "create.tmpl", tmplData)
}

// createBookHandler handles POST /books.
// On validation failure it re-renders the create form with the submitted
// values and field errors; on success it inserts the record and redirects to
// the new book's detail page. An unexpected persistence failure is logged and
// surfaced as a generic message on the same form rather than a 500 page.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	form, err := parseBookForm(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	form.check()
	if !form.Valid() {
		tmplData := app.newTemplateData()
		tmplData.Form = form
		app.render(w, r, http.StatusOK, "create.tmpl", tmplData)
		return
	}

	book := form.book()
	err = app.models.Books.Insert(book)
	if err != nil {
		app.logError(r, err)
		tmplData := app.newTemplateData()
		tmplData.Form = form
		tmplData.ErrorMessage = genericFormError
		app.render(w, r, http.StatusOK, "create.tmpl", tmplData)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/books/%d", book.ID), http.StatusFound)
}

// showBookHandler handles GET /books/:id.
// A non-numeric or unknown id renders the 404 page; a delete_failed error
// flag in the query string surfaces as a banner on the detail page.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	// The create form lives at /books/new, which collides with the :id
	// wildcard in httprouter's tree, so it is dispatched from here.
	if paramID(r) == "new" {
		app.newBookFormHandler(w, r)
		return
	}

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundHandler(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundHandler(w, r)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	tmplData := app.newTemplateData()
	tmplData.Book = book
	if r.URL.Query().Get("error") == "delete_failed" {
		tmplData.ErrorMessage = "Could not delete the book. Please try again."
	}
	app.render(w, r, http.StatusOK, "view.tmpl", tmplData)
}

// editBookFormHandler handles GET /books/:id/edit.
// It renders the edit form pre-filled with the stored record, or 404 if the
// book does not exist.
func (app *applicationDependencies) editBookFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundHandler(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundHandler(w, r)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	tmplData := app.newTemplateData()
	tmplData.Book = book
	tmplData.Form = formFromBook(book)
	app.render(w, r, http.StatusOK, "edit.tmpl", tmplData)
}

// updateBookHandler handles POST /books/:id.
// Existence is confirmed before the body is validated, so a missing id is a
// 404 regardless of the submitted fields. The update is a full replace of
// title, author, status, and rating.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundHandler(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundHandler(w, r)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	form, err := parseBookForm(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	form.check()
	if !form.Valid() {
		tmplData := app.newTemplateData()
		tmplData.Book = book
		tmplData.Form = form
		app.render(w, r, http.StatusOK, "edit.tmpl", tmplData)
		return
	}

	updated := form.book()
	updated.ID = book.ID
	err = app.models.Books.Update(updated)
	if err != nil {
		app.logError(r, err)
		tmplData := app.newTemplateData()
		tmplData.Book = book
		tmplData.Form = form
		tmplData.ErrorMessage = genericFormError
		app.render(w, r, http.StatusOK, "edit.tmpl", tmplData)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/books/%d", updated.ID), http.StatusFound)
}

// deleteBookHandler handles POST /books/:id/delete.
// On success it redirects to the book list. A failed delete must not strand
// the user in a form, so it redirects back to the detail page with an error
// flag in the query string instead of rendering an error page.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundHandler(w, r)
		return
	}

	_, err = app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundHandler(w, r)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	err = app.models.Books.Delete(id)
	if err != nil {
		app.logError(r, err)
		http.Redirect(w, r, fmt.Sprintf("/books/%d?error=delete_failed", id), http.StatusFound)
		return
	}

	http.Redirect(w, r, "/books", http.StatusFound)
}
