package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracecommunity/churchhub/internal/domain/sermon"
)

type SermonsRepo struct {
	pool *pgxpool.Pool
}

func NewSermonsRepo(pool *pgxpool.Pool) *SermonsRepo {
	return &SermonsRepo{pool: pool}
}

const sermonColumns = `id, title, description, pastor, date, duration, audio_url, thumbnail_url, created_by, approved, created_at, updated_at`

func scanSermon(row pgx.Row) (sermon.Sermon, error) {
	var s sermon.Sermon

	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Pastor,
		&s.Date,
		&s.Duration,
		&s.AudioURL,
		&s.ThumbnailURL,
		&s.CreatedBy,
		&s.Approved,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	return s, err
}

func (r *SermonsRepo) Create(ctx context.Context, s sermon.Sermon) (sermon.Sermon, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sermons(id, title, description, pastor, date, duration, audio_url, thumbnail_url, created_by, approved, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		s.ID, s.Title, s.Description, s.Pastor, s.Date, s.Duration, s.AudioURL, s.ThumbnailURL, s.CreatedBy, s.Approved, s.CreatedAt, s.UpdatedAt,
	)

	if err != nil {
		return sermon.Sermon{}, err
	}

	return s, nil
}

func (r *SermonsRepo) GetByID(ctx context.Context, id string) (sermon.Sermon, error) {
	s, err := scanSermon(r.pool.QueryRow(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sermon.Sermon{}, sermon.ErrNotFound
		}

		return sermon.Sermon{}, err
	}

	return s, nil
}

func (r *SermonsRepo) listQuery(ctx context.Context, query string, args ...interface{}) ([]sermon.Sermon, error) {
	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]sermon.Sermon, 0)

	for rows.Next() {
		s, err := scanSermon(rows)

		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

// ListApproved is the public view, most recent sermon first.
func (r *SermonsRepo) ListApproved(ctx context.Context) ([]sermon.Sermon, error) {
	return r.listQuery(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE approved = true ORDER BY date DESC, id ASC`)
}

func (r *SermonsRepo) ListPending(ctx context.Context) ([]sermon.Sermon, error) {
	return r.listQuery(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE approved = false ORDER BY created_at ASC, id ASC`)
}

func (r *SermonsRepo) ListByCreator(ctx context.Context, userID string) ([]sermon.Sermon, error) {
	return r.listQuery(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE created_by = $1 ORDER BY date DESC, id ASC`, userID)
}

func (r *SermonsRepo) Update(ctx context.Context, id string, req sermon.UpdateSermonRequest) (sermon.Sermon, error) {
	s, err := scanSermon(r.pool.QueryRow(ctx,
		`UPDATE sermons
			SET title = $2,
				description = $3,
				pastor = $4,
				date = $5,
				duration = $6,
				audio_url = $7,
				thumbnail_url = $8,
				updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+sermonColumns,
		id, req.Title, req.Description, req.Pastor, req.Date, req.Duration, req.AudioURL, req.ThumbnailURL))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sermon.Sermon{}, sermon.ErrNotFound
		}

		return sermon.Sermon{}, err
	}

	return s, nil
}

func (r *SermonsRepo) SetApproved(ctx context.Context, id string) (sermon.Sermon, error) {
	s, err := scanSermon(r.pool.QueryRow(ctx,
		`UPDATE sermons SET approved = true, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+sermonColumns, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sermon.Sermon{}, sermon.ErrNotFound
		}

		return sermon.Sermon{}, err
	}

	return s, nil
}

func (r *SermonsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sermons WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return sermon.ErrNotFound
	}

	return nil
}

func (r *SermonsRepo) CountPending(ctx context.Context) (int, error) {
	var n int

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sermons WHERE approved = false`).Scan(&n)

	return n, err
}
