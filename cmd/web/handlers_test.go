package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/aoideee/booklist/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication builds an application over a throwaway SQLite file with
// logging discarded.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	db, err := data.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	templateCache, err := newTemplateCache()
	require.NoError(t, err)

	return &applicationDependencies{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:        data.NewModels(db),
		templateCache: templateCache,
	}
}

// newTestServer starts the full router on a test server whose client reports
// redirects back to the test instead of following them, so PRG behavior is
// observable.
func newTestServer(t *testing.T, app *applicationDependencies) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(app.routes())
	t.Cleanup(ts.Close)

	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()

	rs, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)
	return rs.StatusCode, string(body)
}

func postForm(t *testing.T, ts *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()

	rs, err := ts.Client().PostForm(ts.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { rs.Body.Close() })
	return rs
}

func seedBook(t *testing.T, app *applicationDependencies, title, author string, status data.Status, rating *int64) *data.Book {
	t.Helper()

	book := &data.Book{Title: title, Author: author, Status: status, Rating: rating}
	require.NoError(t, app.models.Books.Insert(book))
	return book
}

func TestHomeRedirectsToBooks(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	rs, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer rs.Body.Close()

	assert.Equal(t, http.StatusFound, rs.StatusCode)
	assert.Equal(t, "/books", rs.Header.Get("Location"))
}

func TestHelloPage(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	status, body := get(t, ts, "/hello")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello from Booklist")
}

func TestCreateBookFlow(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	rs := postForm(t, ts, "/books", url.Values{
		"title":  {"1984"},
		"author": {"Orwell"},
		"status": {"read"},
		"rating": {"5"},
	})

	require.Equal(t, http.StatusFound, rs.StatusCode)
	location := rs.Header.Get("Location")
	require.Regexp(t, `^/books/\d+$`, location)

	status, body := get(t, ts, location)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "1984")
	assert.Contains(t, body, "Orwell")
	assert.Contains(t, body, "read")
	assert.Contains(t, body, "5/5")
}

func TestCreateBookValidationErrors(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	rs := postForm(t, ts, "/books", url.Values{
		"title":  {""},
		"author": {"Orwell"},
	})

	require.Equal(t, http.StatusOK, rs.StatusCode)
	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "Title is required")
	assert.NotContains(t, string(body), "Author is required")
	// The submitted author value survives the re-render.
	assert.Contains(t, string(body), `value="Orwell"`)

	// Nothing was persisted.
	books, err := app.models.Books.List(data.Filter{})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestNewBookForm(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	status, body := get(t, ts, "/books/new")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `action="/books"`)
	assert.Contains(t, body, `name="title"`)
	assert.NotContains(t, body, "is required")
}

func TestShowBookNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	status, body := get(t, ts, "/books/999999")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Book not found")

	// A non-numeric id is just as absent.
	status, _ = get(t, ts, "/books/abc")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListFilter(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	seedBook(t, app, "Harry Potter", "J.K. Rowling", data.StatusReading, nil)
	seedBook(t, app, "Dune", "Frank Herbert", data.StatusRead, nil)

	status, body := get(t, ts, "/books?status=reading&q=harry")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Harry Potter")
	assert.NotContains(t, body, "Dune")

	// The filter state is echoed back into the search box.
	assert.Contains(t, body, `value="harry"`)
}

func TestEditBookForm(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	rating := int64(3)
	book := seedBook(t, app, "Dune", "Frank Herbert", data.StatusReading, &rating)

	status, body := get(t, ts, fmt.Sprintf("/books/%d/edit", book.ID))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="Dune"`)
	assert.Contains(t, body, `value="Frank Herbert"`)
	assert.Contains(t, body, `value="3"`)

	status, _ = get(t, ts, "/books/999999/edit")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateBookFlow(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "The Hobbit", "Tolkein", data.StatusToRead, nil)

	rs := postForm(t, ts, fmt.Sprintf("/books/%d", book.ID), url.Values{
		"title":  {"The Hobbit"},
		"author": {"Tolkien"},
		"status": {"read"},
		"rating": {"4"},
	})

	require.Equal(t, http.StatusFound, rs.StatusCode)
	assert.Equal(t, fmt.Sprintf("/books/%d", book.ID), rs.Header.Get("Location"))

	got, err := app.models.Books.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tolkien", got.Author)
	assert.Equal(t, data.StatusRead, got.Status)
	require.NotNil(t, got.Rating)
	assert.Equal(t, int64(4), *got.Rating)
}

func TestUpdateBookValidationErrors(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "Frank Herbert", data.StatusToRead, nil)

	rs := postForm(t, ts, fmt.Sprintf("/books/%d", book.ID), url.Values{
		"title":  {"Dune"},
		"author": {"Frank Herbert"},
		"rating": {"6"},
	})

	require.Equal(t, http.StatusOK, rs.StatusCode)
	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Rating must be between 1 and 5")

	// The stored record is untouched.
	got, err := app.models.Books.Get(book.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

func TestUpdateMissingBook(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	rs := postForm(t, ts, "/books/999999", url.Values{
		"title":  {"T"},
		"author": {"A"},
	})
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
}

func TestDeleteBookFlow(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "Frank Herbert", data.StatusToRead, nil)

	rs := postForm(t, ts, fmt.Sprintf("/books/%d/delete", book.ID), nil)
	require.Equal(t, http.StatusFound, rs.StatusCode)
	assert.Equal(t, "/books", rs.Header.Get("Location"))

	_, err := app.models.Books.Get(book.ID)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestDeleteMissingBook(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	rs := postForm(t, ts, "/books/999999/delete", nil)
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
}

func TestDeleteFailedFlagRendersBanner(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "Frank Herbert", data.StatusToRead, nil)

	status, body := get(t, ts, fmt.Sprintf("/books/%d?error=delete_failed", book.ID))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Could not delete the book")
}

func TestUnmatchedRoutesRender404(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	status, body := get(t, ts, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "not found")

	// A known path with the wrong method is a 404, never a 405 or 500.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/books", nil)
	require.NoError(t, err)
	rs, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
}

func TestUserInputIsEscaped(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "<script>alert('pwned')</script>", "Mallory & Co", data.StatusToRead, nil)

	status, body := get(t, ts, fmt.Sprintf("/books/%d", book.ID))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, "Mallory &amp; Co")

	// The list page escapes the same way.
	_, listBody := get(t, ts, "/books")
	assert.NotContains(t, listBody, "<script>alert")
}
