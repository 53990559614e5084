package hrnotify

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/group"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/overtime"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
)

// Finding is one employee flagged for a reviewer. DaysSinceEntry is set
// for no-entry findings (nil when the employee never logged a complete
// entry); OvertimeMinutes for balance findings.
type Finding struct {
	UserID          string
	DaysSinceEntry  *int
	OvertimeMinutes int
}

// ReviewerReport collects everything one HR reviewer gets notified
// about in a run.
type ReviewerReport struct {
	ReviewerID string
	Email      *string
	NoEntry    []Finding
	Overtime   []Finding
	Deficit    []Finding
}

func (r ReviewerReport) HasFindings() bool {
	return len(r.NoEntry) > 0 || len(r.Overtime) > 0 || len(r.Deficit) > 0
}

// Evaluator computes the HR warning reports for one day.
type Evaluator interface {
	Evaluate(ctx context.Context, today time.Time) ([]ReviewerReport, error)
}

type EvaluatorImpl struct {
	ruleService     rule.RuleService
	accessService   rule.AccessService
	overtimeService overtime.OvertimeService
	entryRepo       entry.EntryRepository
	configRepo      userconfig.UserConfigRepository
	groupDir        group.Directory
}

func NewEvaluator(
	ruleService rule.RuleService,
	accessService rule.AccessService,
	overtimeService overtime.OvertimeService,
	entryRepo entry.EntryRepository,
	configRepo userconfig.UserConfigRepository,
	groupDir group.Directory,
) Evaluator {
	return &EvaluatorImpl{
		ruleService:     ruleService,
		accessService:   accessService,
		overtimeService: overtimeService,
		entryRepo:       entryRepo,
		configRepo:      configRepo,
		groupDir:        groupDir,
	}
}

// evalRun holds the per-run caches shared across reviewers, so each
// employee's balance is computed at most once per day no matter how
// many reviewers oversee them.
type evalRun struct {
	summaries map[string]overtime.SummaryResponse
	configs   map[string]*userconfig.UserConfig
}

// Evaluate implements Evaluator. Reviewers with no findings, or with
// every mail flag disabled, are omitted from the result.
func (e *EvaluatorImpl) Evaluate(ctx context.Context, today time.Time) ([]ReviewerReport, error) {
	reviewers, err := e.reviewers(ctx)
	if err != nil {
		return nil, err
	}

	run := &evalRun{
		summaries: make(map[string]overtime.SummaryResponse),
		configs:   make(map[string]*userconfig.UserConfig),
	}

	var reports []ReviewerReport
	for _, reviewerID := range reviewers {
		cfg, err := e.configFor(ctx, run, reviewerID)
		if err != nil {
			return nil, err
		}
		if !cfg.MailEnabled() {
			continue
		}

		report, err := e.evaluateReviewer(ctx, run, reviewerID, cfg, today)
		if err != nil {
			return nil, err
		}
		if !report.HasFindings() {
			continue
		}

		email, err := e.groupDir.EmailOf(ctx, reviewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load email of %s: %w", reviewerID, err)
		}
		report.Email = email
		reports = append(reports, report)
	}
	return reports, nil
}

func (e *EvaluatorImpl) evaluateReviewer(ctx context.Context, run *evalRun, reviewerID string, cfg userconfig.UserConfig, today time.Time) (ReviewerReport, error) {
	report := ReviewerReport{ReviewerID: reviewerID}

	employees, err := e.accessService.AccessibleUsers(ctx, reviewerID)
	if err != nil {
		return report, fmt.Errorf("failed to resolve employees of %s: %w", reviewerID, err)
	}
	sort.Strings(employees)

	lastDates, err := e.entryRepo.LastEntryDates(ctx, employees)
	if err != nil {
		return report, fmt.Errorf("failed to load last entry dates: %w", err)
	}

	for _, userID := range employees {
		if cfg.MailNoEntryEnabled {
			if f, flagged := noEntryFinding(userID, lastDates, cfg.MailNoEntryDays, today); flagged {
				report.NoEntry = append(report.NoEntry, f)
			}
		}

		if !cfg.MailOvertimeEnabled && !cfg.MailNegativeEnabled {
			continue
		}

		summary, err := e.summaryFor(ctx, run, userID)
		if err != nil {
			return report, err
		}
		if cfg.MailOvertimeEnabled && summary.OvertimeMinutes > cfg.MailOvertimeThreshold {
			report.Overtime = append(report.Overtime, Finding{UserID: userID, OvertimeMinutes: summary.OvertimeMinutes})
		}
		if cfg.MailNegativeEnabled && summary.OvertimeMinutes < -cfg.MailNegativeThreshold {
			report.Deficit = append(report.Deficit, Finding{UserID: userID, OvertimeMinutes: summary.OvertimeMinutes})
		}
	}
	return report, nil
}

// noEntryFinding flags employees who never logged a complete entry or
// whose last one is at least thresholdDays old.
func noEntryFinding(userID string, lastDates map[string]string, thresholdDays int, today time.Time) (Finding, bool) {
	last, ok := lastDates[userID]
	if !ok {
		return Finding{UserID: userID}, true
	}

	lastDate, err := time.Parse("2006-01-02", last)
	if err != nil {
		return Finding{UserID: userID}, true
	}

	days := daysSince(lastDate, today)
	if days >= thresholdDays {
		return Finding{UserID: userID, DaysSinceEntry: &days}, true
	}
	return Finding{}, false
}

// daysSince counts whole days between the dates, never negative.
func daysSince(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// reviewers returns the members of every rule's HR groups, sorted.
func (e *EvaluatorImpl) reviewers(ctx context.Context) ([]string, error) {
	rules, err := e.ruleService.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	var hrGroups []string
	seen := make(map[string]bool)
	for _, r := range rules {
		for _, g := range r.HRGroups {
			if !seen[g] {
				seen[g] = true
				hrGroups = append(hrGroups, g)
			}
		}
	}
	if len(hrGroups) == 0 {
		return nil, nil
	}

	members, err := e.groupDir.MembersOf(ctx, hrGroups)
	if err != nil {
		return nil, fmt.Errorf("failed to load HR group members: %w", err)
	}
	sort.Strings(members)
	return members, nil
}

func (e *EvaluatorImpl) configFor(ctx context.Context, run *evalRun, userID string) (userconfig.UserConfig, error) {
	if cached, ok := run.configs[userID]; ok {
		if cached == nil {
			return userconfig.DefaultConfig(userID), nil
		}
		return *cached, nil
	}

	stored, err := e.configRepo.GetByUser(ctx, userID)
	if err != nil {
		return userconfig.UserConfig{}, fmt.Errorf("failed to load config of user %s: %w", userID, err)
	}
	run.configs[userID] = stored
	if stored == nil {
		return userconfig.DefaultConfig(userID), nil
	}
	return *stored, nil
}

func (e *EvaluatorImpl) summaryFor(ctx context.Context, run *evalRun, userID string) (overtime.SummaryResponse, error) {
	if cached, ok := run.summaries[userID]; ok {
		return cached, nil
	}

	summary, err := e.overtimeService.Summary(ctx, userID)
	if err != nil {
		return overtime.SummaryResponse{}, err
	}
	run.summaries[userID] = summary
	return summary, nil
}
