package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepository{db: db}
}

// Get implements setting.SettingRepository.
func (r *settingRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fallback, nil
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set implements setting.SettingRepository.
func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO app_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
