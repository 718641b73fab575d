package book

import (
	"fmt"
	"strconv"
	"strings"

	"bookmanager/internal/openlibrary"
)

const coverLinkFormat = "https://covers.openlibrary.org/b/id/%s-L.jpg"

// normalize maps a raw OpenLibrary record, the resolved authors string
// and the cover bytes into the canonical record. Pure, no I/O. Every rule
// defaults to an empty value when the raw field is nil or empty, except
// the ISBN, which is mandatory.
func normalize(raw *openlibrary.Book, authors string, cover []byte) (Book, error) {
	isbn, err := extractISBN(raw)
	if err != nil {
		return Book{}, fmt.Errorf("normalize book: %w", err)
	}

	b := Book{
		ISBN:        isbn,
		Title:       raw.Title,
		Authors:     authors,
		PublishDate: raw.PublishDate,
		Publishers:  strings.Join(raw.Publishers, ", "),
		CoverKey:    extractCoverKey(raw),
		Language:    extractLanguage(raw),
		CoverImage:  cover,
	}
	if b.CoverImage == nil {
		b.CoverImage = []byte{}
	}
	if b.CoverKey != "" {
		b.CoverLink = fmt.Sprintf(coverLinkFormat, b.CoverKey)
	}
	return b, nil
}

// extractISBN prefers the first ISBN-13 and falls back to the first ISBN-10.
func extractISBN(raw *openlibrary.Book) (string, error) {
	if len(raw.ISBN13) > 0 {
		return raw.ISBN13[0], nil
	}
	if len(raw.ISBN10) > 0 {
		return raw.ISBN10[0], nil
	}
	return "", ErrMissingISBN
}

func extractCoverKey(raw *openlibrary.Book) string {
	if len(raw.Covers) == 0 {
		return ""
	}
	return strconv.Itoa(raw.Covers[0])
}

func extractLanguage(raw *openlibrary.Book) string {
	if len(raw.Languages) == 0 {
		return ""
	}
	return trailingSegment(raw.Languages[0].Key)
}

// trailingSegment returns the path segment after the last '/', or "" when
// the key contains no '/'.
func trailingSegment(key string) string {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return ""
	}
	return key[i+1:]
}
