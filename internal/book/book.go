package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned by the Store when no record exists for an ISBN.
var ErrNotFound = errors.New("book not found")

// ErrMissingISBN is returned when a fetched raw record carries neither an
// ISBN-13 nor an ISBN-10 identifier.
var ErrMissingISBN = errors.New("book record has no isbn identifier")

// Book is the canonical book record, keyed by ISBN. Once stored it is
// immutable: the pipeline serves it from the Store forever and never
// updates it.
type Book struct {
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Authors     string    `json:"authors"`
	PublishDate string    `json:"publish_date"`
	Publishers  string    `json:"publishers"`
	CoverKey    string    `json:"cover_key"`
	CoverLink   string    `json:"cover_link"`
	CoverImage  []byte    `json:"cover_image"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}
