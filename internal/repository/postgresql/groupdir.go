package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/group"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/database"
)

// groupDirectory reads the host groupware's groups, memberships and
// user records. This service never writes to these tables.
type groupDirectory struct {
	db *database.DB
}

func NewGroupDirectory(db *database.DB) group.Directory {
	return &groupDirectory{db: db}
}

// Exists implements group.Directory.
func (r *groupDirectory) Exists(ctx context.Context, groupID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`, groupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check group %s: %w", groupID, err)
	}
	return exists, nil
}

// ExistingGroups implements group.Directory.
func (r *groupDirectory) ExistingGroups(ctx context.Context, groupIDs []string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM groups WHERE id = ANY($1)`, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to filter groups: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read groups: %w", err)
	}

	// Preserve caller order.
	var out []string
	for _, id := range groupIDs {
		if existing[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// GroupsOfUser implements group.Directory.
func (r *groupDirectory) GroupsOfUser(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT group_id FROM group_members WHERE user_id = $1 ORDER BY group_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups of user %s: %w", userID, err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group membership: %w", err)
		}
		groups = append(groups, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group memberships: %w", err)
	}
	return groups, nil
}

// MembersOf implements group.Directory.
func (r *groupDirectory) MembersOf(ctx context.Context, groupIDs []string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT user_id
		FROM group_members
		WHERE group_id = ANY($1)
		ORDER BY user_id
	`, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group members: %w", err)
	}
	return users, nil
}

// EmailOf implements group.Directory.
func (r *groupDirectory) EmailOf(ctx context.Context, userID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	var email *string
	err := q.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load email of user %s: %w", userID, err)
	}
	return email, nil
}
