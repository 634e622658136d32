package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracecommunity/churchhub/internal/domain/event"
)

type EventsRepo struct {
	pool *pgxpool.Pool
}

func NewEventsRepo(pool *pgxpool.Pool) *EventsRepo {
	return &EventsRepo{pool: pool}
}

const eventColumns = `id, title, description, date, time, location, category, created_by, approved, created_at, updated_at`

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.Time,
		&e.Location,
		&e.Category,
		&e.CreatedBy,
		&e.Approved,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	return e, err
}

func (r *EventsRepo) Create(ctx context.Context, e event.Event) (event.Event, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events(id, title, description, date, time, location, category, created_by, approved, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		e.ID, e.Title, e.Description, e.Date, e.Time, e.Location, e.Category, e.CreatedBy, e.Approved, e.CreatedAt, e.UpdatedAt,
	)

	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) listQuery(ctx context.Context, query string, args ...interface{}) ([]event.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]event.Event, 0)

	for rows.Next() {
		e, err := scanEvent(rows)

		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, rows.Err()
}

// ListApproved is the public view, ascending by date.
func (r *EventsRepo) ListApproved(ctx context.Context) ([]event.Event, error) {
	return r.listQuery(ctx,
		`SELECT `+eventColumns+` FROM events WHERE approved = true ORDER BY date ASC, id ASC`)
}

func (r *EventsRepo) ListPending(ctx context.Context) ([]event.Event, error) {
	return r.listQuery(ctx,
		`SELECT `+eventColumns+` FROM events WHERE approved = false ORDER BY created_at ASC, id ASC`)
}

func (r *EventsRepo) ListByCreator(ctx context.Context, userID string) ([]event.Event, error) {
	return r.listQuery(ctx,
		`SELECT `+eventColumns+` FROM events WHERE created_by = $1 ORDER BY date ASC, id ASC`, userID)
}

func (r *EventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		`UPDATE events
			SET title = $2,
				description = $3,
				date = $4,
				time = $5,
				location = $6,
				category = $7,
				updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+eventColumns,
		id, req.Title, req.Description, req.Date, req.Time, req.Location, req.Category))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) SetApproved(ctx context.Context, id string) (event.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		`UPDATE events SET approved = true, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+eventColumns, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return event.ErrNotFound
	}

	return nil
}

func (r *EventsRepo) CountPending(ctx context.Context) (int, error) {
	var n int

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE approved = false`).Scan(&n)

	return n, err
}

func (r *EventsRepo) CountUpcomingApproved(ctx context.Context) (int, error) {
	var n int

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE approved = true AND date >= CURRENT_DATE`).Scan(&n)

	return n, err
}
