// cmd/web/routes.go
package main

import (
	"net/http"

	"github.com/aoideee/booklist/ui"
	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the recoverPanic and logRequest middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → router
//
// Current endpoints:
//
//	GET  /                  – redirect to /books
//	GET  /hello             – template-engine smoke page
//	GET  /books             – list books, filtered by ?status= and ?q=
//	GET  /books/new         – blank create form (dispatched from /books/:id)
//	POST /books             – create a book
//	GET  /books/:id         – book detail page
//	GET  /books/:id/edit    – pre-filled edit form
//	POST /books/:id         – update a book
//	POST /books/:id/delete  – delete a book
//	GET  /static/...        – embedded static assets
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Every unmatched route renders the 404 page, and a known path with the
	// wrong method is treated the same way rather than as a 405.
	router.NotFound = http.HandlerFunc(app.notFoundHandler)
	router.HandleMethodNotAllowed = false

	router.ServeFiles("/static/*filepath", http.FS(ui.Static()))

	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/hello", app.helloHandler)

	// Book CRUD routes. httprouter cannot register the static /books/new
	// alongside the wildcard /books/:id, so showBookHandler dispatches the
	// create form itself when the :id segment is "new".
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id/edit", app.editBookFormHandler)
	router.HandlerFunc(http.MethodPost, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodPost, "/books/:id/delete", app.deleteBookHandler)

	// recoverPanic is outermost so it catches panics from logRequest and the
	// router alike.
	return app.recoverPanic(app.logRequest(router))
}
