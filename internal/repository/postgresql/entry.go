package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/database"
)

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) entry.EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, user_id, work_date::text, start_min, end_min, break_minutes, comment, created_at, updated_at`

func scanEntry(row pgx.Row) (entry.Entry, error) {
	var e entry.Entry
	err := row.Scan(
		&e.ID, &e.UserID, &e.WorkDate, &e.StartMin, &e.EndMin,
		&e.BreakMinutes, &e.Comment, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements entry.EntryRepository.
func (r *entryRepository) Create(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO entries (user_id, work_date, start_min, end_min, break_minutes, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UserID, e.WorkDate, e.StartMin, e.EndMin, e.BreakMinutes, e.Comment,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entry.Entry{}, entry.ErrDuplicateEntry
		}
		return entry.Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return e, nil
}

// GetByID implements entry.EntryRepository.
func (r *entryRepository) GetByID(ctx context.Context, id int64) (entry.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	e, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.Entry{}, pgx.ErrNoRows
		}
		return entry.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// GetByUserAndDate implements entry.EntryRepository.
func (r *entryRepository) GetByUserAndDate(ctx context.Context, userID, workDate string) (*entry.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 AND work_date = $2 LIMIT 1`

	e, err := scanEntry(q.QueryRow(ctx, query, userID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry by date: %w", err)
	}
	return &e, nil
}

// ListByRange implements entry.EntryRepository.
func (r *entryRepository) ListByRange(ctx context.Context, userID, from, to string) ([]entry.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListByUser implements entry.EntryRepository.
func (r *entryRepository) ListByUser(ctx context.Context, userID string) ([]entry.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 ORDER BY work_date ASC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]entry.Entry, error) {
	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

// Update implements entry.EntryRepository.
func (r *entryRepository) Update(ctx context.Context, e entry.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entries
		SET work_date = $2, start_min = $3, end_min = $4, break_minutes = $5, comment = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, e.ID, e.WorkDate, e.StartMin, e.EndMin, e.BreakMinutes, e.Comment)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entry.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entry.ErrEntryNotFound
	}
	return nil
}

// Delete implements entry.EntryRepository.
func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entry.ErrEntryNotFound
	}
	return nil
}

// LastEntryDates implements entry.EntryRepository. Only complete
// entries count.
func (r *entryRepository) LastEntryDates(ctx context.Context, userIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, MAX(work_date)::text
		FROM entries
		WHERE user_id = ANY($1) AND start_min IS NOT NULL AND end_min IS NOT NULL
		GROUP BY user_id
	`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load last entry dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID, lastDate string
		if err := rows.Scan(&userID, &lastDate); err != nil {
			return nil, fmt.Errorf("failed to scan last entry date: %w", err)
		}
		out[userID] = lastDate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read last entry dates: %w", err)
	}
	return out, nil
}
