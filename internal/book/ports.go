package book

import (
	"context"

	"bookmanager/internal/openlibrary"
)

// Store is the bibliographic store keyed by ISBN. Save must tolerate a
// duplicate put for the same ISBN without failing either caller; last
// write wins.
type Store interface {
	FindByISBN(ctx context.Context, isbn string) (Book, error)
	Save(ctx context.Context, b *Book) (Book, error)
}

// Fetcher is the remote catalog client consumed by the orchestrator.
type Fetcher interface {
	FetchBook(ctx context.Context, isbn string) (*openlibrary.Book, error)
	FetchCover(ctx context.Context, isbn string) ([]byte, error)
	FetchAuthor(ctx context.Context, authorKey string) (*openlibrary.Author, error)
}
