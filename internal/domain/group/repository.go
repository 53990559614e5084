package group

import (
	"context"
)

// Directory is a read-only view of the host's group tables.
type Directory interface {
	// Exists reports whether a group with this ID exists.
	Exists(ctx context.Context, groupID string) (bool, error)

	// ExistingGroups filters the given IDs down to the ones that exist,
	// preserving input order.
	ExistingGroups(ctx context.Context, groupIDs []string) ([]string, error)

	// GroupsOfUser returns the group IDs the user belongs to.
	GroupsOfUser(ctx context.Context, userID string) ([]string, error)

	// MembersOf returns the user IDs belonging to any of the groups,
	// deduplicated.
	MembersOf(ctx context.Context, groupIDs []string) ([]string, error)

	// EmailOf returns the user's mail address, nil when none is set.
	EmailOf(ctx context.Context, userID string) (*string, error)
}
