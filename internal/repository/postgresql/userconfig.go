package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/database"
)

type userConfigRepository struct {
	db *database.DB
}

func NewUserConfigRepository(db *database.DB) userconfig.UserConfigRepository {
	return &userConfigRepository{db: db}
}

const userConfigColumns = `user_id, work_minutes, state,
	mail_no_entry_enabled, mail_no_entry_days,
	mail_overtime_enabled, mail_overtime_threshold,
	mail_negative_enabled, mail_negative_threshold,
	warn_no_entry_days, warn_overtime_threshold, warn_negative_threshold,
	created_at, updated_at`

func scanUserConfig(row pgx.Row) (userconfig.UserConfig, error) {
	var c userconfig.UserConfig
	err := row.Scan(
		&c.UserID, &c.WorkMinutes, &c.State,
		&c.MailNoEntryEnabled, &c.MailNoEntryDays,
		&c.MailOvertimeEnabled, &c.MailOvertimeThreshold,
		&c.MailNegativeEnabled, &c.MailNegativeThreshold,
		&c.WarnNoEntryDays, &c.WarnOvertimeThreshold, &c.WarnNegativeThreshold,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetByUser implements userconfig.UserConfigRepository.
func (r *userConfigRepository) GetByUser(ctx context.Context, userID string) (*userconfig.UserConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userConfigColumns + ` FROM user_configs WHERE user_id = $1`

	c, err := scanUserConfig(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user config: %w", err)
	}
	return &c, nil
}

// GetByUsers implements userconfig.UserConfigRepository.
func (r *userConfigRepository) GetByUsers(ctx context.Context, userIDs []string) (map[string]userconfig.UserConfig, error) {
	out := make(map[string]userconfig.UserConfig, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userConfigColumns + ` FROM user_configs WHERE user_id = ANY($1)`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list user configs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanUserConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user config: %w", err)
		}
		out[c.UserID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user configs: %w", err)
	}
	return out, nil
}

// Upsert implements userconfig.UserConfigRepository. A single statement
// keeps concurrent saves from racing an existence check.
func (r *userConfigRepository) Upsert(ctx context.Context, c userconfig.UserConfig) (userconfig.UserConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_configs (
			user_id, work_minutes, state,
			mail_no_entry_enabled, mail_no_entry_days,
			mail_overtime_enabled, mail_overtime_threshold,
			mail_negative_enabled, mail_negative_threshold,
			warn_no_entry_days, warn_overtime_threshold, warn_negative_threshold
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			work_minutes = EXCLUDED.work_minutes,
			state = EXCLUDED.state,
			mail_no_entry_enabled = EXCLUDED.mail_no_entry_enabled,
			mail_no_entry_days = EXCLUDED.mail_no_entry_days,
			mail_overtime_enabled = EXCLUDED.mail_overtime_enabled,
			mail_overtime_threshold = EXCLUDED.mail_overtime_threshold,
			mail_negative_enabled = EXCLUDED.mail_negative_enabled,
			mail_negative_threshold = EXCLUDED.mail_negative_threshold,
			warn_no_entry_days = EXCLUDED.warn_no_entry_days,
			warn_overtime_threshold = EXCLUDED.warn_overtime_threshold,
			warn_negative_threshold = EXCLUDED.warn_negative_threshold,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.UserID, c.WorkMinutes, c.State,
		c.MailNoEntryEnabled, c.MailNoEntryDays,
		c.MailOvertimeEnabled, c.MailOvertimeThreshold,
		c.MailNegativeEnabled, c.MailNegativeThreshold,
		c.WarnNoEntryDays, c.WarnOvertimeThreshold, c.WarnNegativeThreshold,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return userconfig.UserConfig{}, fmt.Errorf("failed to upsert user config: %w", err)
	}
	return c, nil
}
