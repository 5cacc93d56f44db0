// cmd/web/forms.go
// This file contains the typed form input for the create and edit pages:
// the raw submitted strings, the validation rules over them, and the
// conversion into a record ready for the data layer.
package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aoideee/booklist/internal/data"
	"github.com/aoideee/booklist/internal/validator"
)

// genericFormError is shown when a write fails for reasons the user cannot fix.
const genericFormError = "Something went wrong saving the book. Please try again."

// bookForm carries the raw submitted field values so a failed submission can
// be re-rendered exactly as the user typed it, plus the field-error map.
type bookForm struct {
	Title  string
	Author string
	Status string
	Rating string
	validator.Validator
}

// parseBookForm decodes the request body into a bookForm. Missing fields
// simply come through as empty strings; validation decides what that means.
func parseBookForm(r *http.Request) (*bookForm, error) {
	err := r.ParseForm()
	if err != nil {
		return nil, err
	}

	return &bookForm{
		Title:     r.PostForm.Get("title"),
		Author:    r.PostForm.Get("author"),
		Status:    r.PostForm.Get("status"),
		Rating:    r.PostForm.Get("rating"),
		Validator: *validator.New(),
	}, nil
}

// formFromBook pre-fills a bookForm from a stored record, for the edit page.
func formFromBook(book *data.Book) *bookForm {
	form := &bookForm{
		Title:     book.Title,
		Author:    book.Author,
		Status:    string(book.Status),
		Validator: *validator.New(),
	}
	if book.Rating != nil {
		form.Rating = strconv.FormatInt(*book.Rating, 10)
	}
	return form
}

// check applies every validation rule independently, so the user sees all
// problems at once rather than one per submission. Status is not checked
// here: it is parsed onto the closed set in book(), and the storage CHECK
// constraint is the final backstop.
func (f *bookForm) check() {
	f.Check(validator.NotBlank(f.Title), "title", "Title is required")
	f.Check(validator.NotBlank(f.Author), "author", "Author is required")

	// An absent rating is valid; a present one must be an integer in [1,5].
	if rating := strings.TrimSpace(f.Rating); rating != "" {
		n, err := strconv.Atoi(rating)
		f.Check(err == nil && n >= 1 && n <= 5, "rating", "Rating must be between 1 and 5")
	}
}

// book converts a validated form into a record ready for the data layer:
// title and author trimmed of surrounding whitespace, status parsed onto its
// closed set (defaulting to to-read), rating parsed to an integer or left nil.
func (f *bookForm) book() *data.Book {
	book := &data.Book{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
		Status: data.ParseStatus(f.Status),
	}

	if rating := strings.TrimSpace(f.Rating); rating != "" {
		if n, err := strconv.ParseInt(rating, 10, 64); err == nil {
			book.Rating = &n
		}
	}
	return book
}
