package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracecommunity/churchhub/internal/domain/gallery"
)

type GalleryRepo struct {
	pool *pgxpool.Pool
}

func NewGalleryRepo(pool *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{pool: pool}
}

const galleryColumns = `id, title, image_url, category, is_video, created_by, approved, created_at, updated_at`

func scanGalleryItem(row pgx.Row) (gallery.Item, error) {
	var it gallery.Item

	err := row.Scan(
		&it.ID,
		&it.Title,
		&it.ImageURL,
		&it.Category,
		&it.IsVideo,
		&it.CreatedBy,
		&it.Approved,
		&it.CreatedAt,
		&it.UpdatedAt,
	)

	return it, err
}

func (r *GalleryRepo) Create(ctx context.Context, it gallery.Item) (gallery.Item, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO gallery_items(id, title, image_url, category, is_video, created_by, approved, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		it.ID, it.Title, it.ImageURL, it.Category, it.IsVideo, it.CreatedBy, it.Approved, it.CreatedAt, it.UpdatedAt,
	)

	if err != nil {
		return gallery.Item{}, err
	}

	return it, nil
}

func (r *GalleryRepo) GetByID(ctx context.Context, id string) (gallery.Item, error) {
	it, err := scanGalleryItem(r.pool.QueryRow(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gallery.Item{}, gallery.ErrNotFound
		}

		return gallery.Item{}, err
	}

	return it, nil
}

func (r *GalleryRepo) listQuery(ctx context.Context, query string, args ...interface{}) ([]gallery.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]gallery.Item, 0)

	for rows.Next() {
		it, err := scanGalleryItem(rows)

		if err != nil {
			return nil, err
		}

		out = append(out, it)
	}

	return out, rows.Err()
}

func (r *GalleryRepo) ListApproved(ctx context.Context) ([]gallery.Item, error) {
	return r.listQuery(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE approved = true ORDER BY created_at DESC, id ASC`)
}

func (r *GalleryRepo) ListPending(ctx context.Context) ([]gallery.Item, error) {
	return r.listQuery(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE approved = false ORDER BY created_at ASC, id ASC`)
}

func (r *GalleryRepo) ListByCreator(ctx context.Context, userID string) ([]gallery.Item, error) {
	return r.listQuery(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE created_by = $1 ORDER BY created_at DESC, id ASC`, userID)
}

func (r *GalleryRepo) SetApproved(ctx context.Context, id string) (gallery.Item, error) {
	it, err := scanGalleryItem(r.pool.QueryRow(ctx,
		`UPDATE gallery_items SET approved = true, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+galleryColumns, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gallery.Item{}, gallery.ErrNotFound
		}

		return gallery.Item{}, err
	}

	return it, nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return gallery.ErrNotFound
	}

	return nil
}

func (r *GalleryRepo) CountPending(ctx context.Context) (int, error) {
	var n int

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM gallery_items WHERE approved = false`).Scan(&n)

	return n, err
}
