package entry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/holiday"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/timeutil"
)

type EntryServiceImpl struct {
	entry.EntryRepository
	userconfig.UserConfigRepository
	setting.SettingRepository
	ruleService   rule.RuleService
	accessService rule.AccessService
	holidaySource holiday.Source
}

func NewEntryService(
	entryRepo entry.EntryRepository,
	configRepo userconfig.UserConfigRepository,
	settingRepo setting.SettingRepository,
	ruleService rule.RuleService,
	accessService rule.AccessService,
	holidaySource holiday.Source,
) entry.EntryService {
	return &EntryServiceImpl{
		EntryRepository:      entryRepo,
		UserConfigRepository: configRepo,
		SettingRepository:    settingRepo,
		ruleService:          ruleService,
		accessService:        accessService,
		holidaySource:        holidaySource,
	}
}

// ListEntries implements entry.EntryService.
func (s *EntryServiceImpl) ListEntries(ctx context.Context, filter entry.ListEntriesFilter) ([]entry.EntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	caller, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	targetID := filter.UserID
	if targetID == "" {
		targetID = caller.UserID
	}
	if targetID != caller.UserID {
		ok, err := s.accessService.CanAccessUser(ctx, caller.UserID, targetID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, entry.ErrUnauthorized
		}
	}

	entries, err := s.EntryRepository.ListByRange(ctx, targetID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	effective, err := s.ruleService.EffectiveForUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidaysFor(ctx, targetID, entries)
	if err != nil {
		return nil, err
	}

	out := make([]entry.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entry.ToResponse(e, s.violationsFor(e, effective.Thresholds, holidays)))
	}
	return out, nil
}

// CreateEntry implements entry.EntryService.
func (s *EntryServiceImpl) CreateEntry(ctx context.Context, req entry.SaveEntryRequest) (entry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return entry.EntryResponse{}, err
	}

	caller, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return entry.EntryResponse{}, err
	}

	existing, err := s.EntryRepository.GetByUserAndDate(ctx, caller.UserID, req.WorkDate)
	if err != nil {
		return entry.EntryResponse{}, fmt.Errorf("failed to check for existing entry: %w", err)
	}
	if existing != nil {
		return entry.EntryResponse{}, entry.ErrDuplicateEntry
	}

	start, end := req.Times()
	created, err := s.EntryRepository.Create(ctx, entry.Entry{
		UserID:       caller.UserID,
		WorkDate:     req.WorkDate,
		StartMin:     start,
		EndMin:       end,
		BreakMinutes: req.BreakMinutes,
		Comment:      req.Comment,
	})
	if err != nil {
		return entry.EntryResponse{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return s.decorate(ctx, created)
}

// UpdateEntry implements entry.EntryService.
func (s *EntryServiceImpl) UpdateEntry(ctx context.Context, req entry.SaveEntryRequest) (entry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return entry.EntryResponse{}, err
	}

	caller, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return entry.EntryResponse{}, err
	}

	existing, err := s.EntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.EntryResponse{}, entry.ErrEntryNotFound
		}
		return entry.EntryResponse{}, fmt.Errorf("failed to load entry: %w", err)
	}
	if existing.UserID != caller.UserID {
		return entry.EntryResponse{}, entry.ErrUnauthorized
	}

	start, end := req.Times()
	existing.WorkDate = req.WorkDate
	existing.StartMin = start
	existing.EndMin = end
	existing.BreakMinutes = req.BreakMinutes
	existing.Comment = req.Comment

	if err := s.EntryRepository.Update(ctx, existing); err != nil {
		return entry.EntryResponse{}, fmt.Errorf("failed to update entry: %w", err)
	}

	return s.decorate(ctx, existing)
}

// DeleteEntry implements entry.EntryService.
func (s *EntryServiceImpl) DeleteEntry(ctx context.Context, userID string, id int64) error {
	existing, err := s.EntryRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.ErrEntryNotFound
		}
		return fmt.Errorf("failed to load entry: %w", err)
	}
	if existing.UserID != userID {
		return entry.ErrUnauthorized
	}

	if err := s.EntryRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// UpsertComment implements entry.EntryService.
func (s *EntryServiceImpl) UpsertComment(ctx context.Context, userID, workDate, comment string) (entry.EntryResponse, error) {
	if _, err := time.Parse("2006-01-02", workDate); err != nil {
		return entry.EntryResponse{}, entry.ErrInvalidWorkDate
	}

	existing, err := s.EntryRepository.GetByUserAndDate(ctx, userID, workDate)
	if err != nil {
		return entry.EntryResponse{}, fmt.Errorf("failed to load entry: %w", err)
	}

	if existing == nil {
		created, err := s.EntryRepository.Create(ctx, entry.Entry{
			UserID:   userID,
			WorkDate: workDate,
			Comment:  &comment,
		})
		if err != nil {
			return entry.EntryResponse{}, fmt.Errorf("failed to create comment entry: %w", err)
		}
		return s.decorate(ctx, created)
	}

	existing.Comment = &comment
	if err := s.EntryRepository.Update(ctx, *existing); err != nil {
		return entry.EntryResponse{}, fmt.Errorf("failed to update comment: %w", err)
	}
	return s.decorate(ctx, *existing)
}

// decorate renders one entry with its violations.
func (s *EntryServiceImpl) decorate(ctx context.Context, e entry.Entry) (entry.EntryResponse, error) {
	effective, err := s.ruleService.EffectiveForUser(ctx, e.UserID)
	if err != nil {
		return entry.EntryResponse{}, err
	}

	holidays, err := s.holidaysFor(ctx, e.UserID, []entry.Entry{e})
	if err != nil {
		return entry.EntryResponse{}, err
	}

	return entry.ToResponse(e, s.violationsFor(e, effective.Thresholds, holidays)), nil
}

// violationsFor checks one entry. Sunday is always flagged; holiday
// only when the date is in the (possibly empty) holiday set.
func (s *EntryServiceImpl) violationsFor(e entry.Entry, thresholds rule.Thresholds, holidays map[string]string) []string {
	isSunday := false
	if d, err := time.Parse("2006-01-02", e.WorkDate); err == nil {
		isSunday = timeutil.ISOWeekday(d) == 7
	}
	_, isHoliday := holidays[e.WorkDate]

	return thresholds.Check(e.StartMin, e.EndMin, e.BreakMinutes, isSunday, isHoliday)
}

// holidaysFor loads the holiday sets the entries touch, empty unless
// the special days check is enabled and the user configured a state.
func (s *EntryServiceImpl) holidaysFor(ctx context.Context, userID string, entries []entry.Entry) (map[string]string, error) {
	enabled, err := s.SettingRepository.Get(ctx, setting.KeySpecialDaysCheck, "0")
	if err != nil {
		return nil, fmt.Errorf("failed to load special days setting: %w", err)
	}
	if enabled != "1" {
		return nil, nil
	}

	cfg, err := s.UserConfigRepository.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load config of user %s: %w", userID, err)
	}
	if cfg == nil || cfg.State == nil {
		return nil, nil
	}

	cache := holiday.NewCache(s.holidaySource)
	merged := make(map[string]string)
	years := make(map[int]bool)
	for _, e := range entries {
		if len(e.WorkDate) < 4 {
			continue
		}
		year, err := strconv.Atoi(e.WorkDate[:4])
		if err != nil {
			continue
		}
		years[year] = true
	}
	for year := range years {
		set, err := cache.Holidays(ctx, year, *cfg.State)
		if err != nil {
			return nil, fmt.Errorf("failed to load holidays for %d/%s: %w", year, *cfg.State, err)
		}
		for date, name := range set {
			merged[date] = name
		}
	}
	return merged, nil
}
