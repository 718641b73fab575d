package book

import (
	"context"
	"errors"
	"log"
	"strings"

	"bookmanager/internal/openlibrary"
)

// Service implements get-or-fetch-and-store for single ISBNs, using the
// Store as a permanent cache in front of the remote catalog.
type Service struct {
	store   Store
	fetcher Fetcher
}

func NewService(store Store, fetcher Fetcher) *Service {
	return &Service{store: store, fetcher: fetcher}
}

// GetOrFetch returns the stored record for isbn. On a miss it fetches the
// raw book, resolves authors, fetches the cover, normalizes and stores
// the result. The book fetch is mandatory and its classified errors
// propagate to the caller unchanged; author and cover fetches are
// best-effort and resolve to empty values on any failure.
func (s *Service) GetOrFetch(ctx context.Context, isbn string) (Book, error) {
	stored, err := s.store.FindByISBN(ctx, isbn)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Book{}, err
	}
	log.Printf("book: %s not stored, fetching from catalog", isbn)

	raw, err := s.fetcher.FetchBook(ctx, isbn)
	if err != nil {
		return Book{}, err
	}

	authors := s.resolveAuthors(ctx, raw.Authors)

	cover := []byte{}
	if data, err := s.fetcher.FetchCover(ctx, isbn); err != nil {
		log.Printf("book: fetch cover %s: %v", isbn, err)
	} else {
		cover = data
	}

	record, err := normalize(raw, authors, cover)
	if err != nil {
		return Book{}, err
	}

	return s.store.Save(ctx, &record)
}

// resolveAuthors resolves each author reference key to a display name and
// joins the successes with ", ", preserving input order. A key without a
// '/' is skipped as unresolvable; a failed fetch drops that author's slot
// without aborting the pipeline.
func (s *Service) resolveAuthors(ctx context.Context, refs []openlibrary.AuthorRef) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		key := trailingSegment(ref.Key)
		if key == "" {
			continue
		}
		author, err := s.fetcher.FetchAuthor(ctx, key)
		if err != nil {
			log.Printf("book: fetch author %s: %v", key, err)
			continue
		}
		if author.Name != "" {
			names = append(names, author.Name)
		}
	}
	return strings.Join(names, ", ")
}
