package rule

import (
	"errors"
	"fmt"
	"strings"
)

// Rule domain errors
var (
	ErrRuleNotFound = errors.New("access rule not found")
	ErrInvalidRules = errors.New("access rules payload is invalid")
)

// DuplicateGroupsError rejects a rule set in which the same subject
// group appears in more than one rule.
type DuplicateGroupsError struct {
	Groups []string
}

func (e *DuplicateGroupsError) Error() string {
	return fmt.Sprintf("user groups assigned to multiple rules: %s", strings.Join(e.Groups, ", "))
}
