package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) FindByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `
		SELECT isbn, title, authors, publish_date, publishers, cover_key, cover_link, cover_image, language, created_at
		FROM books
		WHERE isbn = $1`

	var b Book
	err := r.db.QueryRow(ctx, query, isbn).Scan(
		&b.ISBN, &b.Title, &b.Authors, &b.PublishDate, &b.Publishers,
		&b.CoverKey, &b.CoverLink, &b.CoverImage, &b.Language, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	b.CoverImage = cloneBytes(b.CoverImage)
	return b, nil
}

// Save upserts by ISBN. Two concurrent fetches for the same missing ISBN
// may both land here; the conflict clause makes the last write win instead
// of failing either caller.
func (r *PostgresStore) Save(ctx context.Context, b *Book) (Book, error) {
	const query = `
		INSERT INTO books (isbn, title, authors, publish_date, publishers, cover_key, cover_link, cover_image, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (isbn) DO UPDATE SET
			title = EXCLUDED.title,
			authors = EXCLUDED.authors,
			publish_date = EXCLUDED.publish_date,
			publishers = EXCLUDED.publishers,
			cover_key = EXCLUDED.cover_key,
			cover_link = EXCLUDED.cover_link,
			cover_image = EXCLUDED.cover_image,
			language = EXCLUDED.language
		RETURNING created_at`

	saved := *b
	saved.CoverImage = cloneBytes(b.CoverImage)
	err := r.db.QueryRow(ctx, query,
		b.ISBN, b.Title, b.Authors, b.PublishDate, b.Publishers,
		b.CoverKey, b.CoverLink, saved.CoverImage, b.Language,
	).Scan(&saved.CreatedAt)
	if err != nil {
		return Book{}, fmt.Errorf("save book %s: %w", b.ISBN, err)
	}
	return saved, nil
}

// cloneBytes copies cover image buffers when they cross the store
// boundary so callers cannot alias the stored slice.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
