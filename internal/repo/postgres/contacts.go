package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracecommunity/churchhub/internal/domain/contact"
)

type ContactsRepo struct {
	pool *pgxpool.Pool
}

func NewContactsRepo(pool *pgxpool.Pool) *ContactsRepo {
	return &ContactsRepo{pool: pool}
}

func (r *ContactsRepo) Create(ctx context.Context, m contact.Message) (contact.Message, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages(id, first_name, last_name, email, phone, subject, message, newsletter_opt_in, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		m.ID, m.FirstName, m.LastName, m.Email, m.Phone, m.Subject, m.Message, m.NewsletterOptIn, m.CreatedAt,
	)

	if err != nil {
		return contact.Message{}, err
	}

	return m, nil
}

func (r *ContactsRepo) List(ctx context.Context) ([]contact.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, email, phone, subject, message, newsletter_opt_in, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]contact.Message, 0)

	for rows.Next() {
		var m contact.Message

		err = rows.Scan(
			&m.ID,
			&m.FirstName,
			&m.LastName,
			&m.Email,
			&m.Phone,
			&m.Subject,
			&m.Message,
			&m.NewsletterOptIn,
			&m.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}
