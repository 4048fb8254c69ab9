package availability

import (
	"context"
	"fmt"
	"time"

	"praxis/models"
	"praxis/services/scheduling"

	"github.com/google/uuid"
)

// UpsertRule replaces the open window for one weekday. A provider has at most
// one rule per weekday; setting IsActive false keeps the window on record but
// closes the day.
func (s *DefaultAvailabilityService) UpsertRule(ctx context.Context, providerID string, req models.UpsertAvailabilityRequest) (*models.AvailabilityRule, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("dayOfWeek must be between 0 (Sunday) and 6 (Saturday)")
	}
	startMin, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endMin, err := scheduling.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("start time %s must be before end time %s", req.StartTime, req.EndTime)
	}

	rule := &models.AvailabilityRule{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsActive:   req.IsActive,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	stored, err := s.Repo.UpsertRule(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("failed to save availability rule: %w", err)
	}
	return stored, nil
}

func (s *DefaultAvailabilityService) ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	rules, err := s.Repo.ListRules(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	return rules, nil
}

func (s *DefaultAvailabilityService) DeleteRule(ctx context.Context, providerID, ruleID string) error {
	if err := s.Repo.DeleteRule(ctx, providerID, ruleID); err != nil {
		return fmt.Errorf("failed to delete availability rule: %w", err)
	}
	return nil
}

// CreateBlockedInterval closes off part of a specific date. The interval is
// half-open: a slot starting exactly at EndTime is not blocked.
func (s *DefaultAvailabilityService) CreateBlockedInterval(ctx context.Context, providerID string, req models.CreateBlockedIntervalRequest) (*models.BlockedInterval, error) {
	if _, err := scheduling.ParseDate(req.Date); err != nil {
		return nil, err
	}
	startMin, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endMin, err := scheduling.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("start time %s must be before end time %s", req.StartTime, req.EndTime)
	}

	blocked := &models.BlockedInterval{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.CreateBlocked(ctx, blocked); err != nil {
		return nil, fmt.Errorf("failed to save blocked interval: %w", err)
	}
	return blocked, nil
}

func (s *DefaultAvailabilityService) ListBlockedIntervals(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.BlockedInterval, error) {
	if dateFrom == "" || dateTo == "" {
		return nil, fmt.Errorf("dateFrom and dateTo are required")
	}
	if _, err := scheduling.ParseDate(dateFrom); err != nil {
		return nil, err
	}
	if _, err := scheduling.ParseDate(dateTo); err != nil {
		return nil, err
	}
	intervals, err := s.Repo.ListBlockedInRange(ctx, providerID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked intervals: %w", err)
	}
	return intervals, nil
}

func (s *DefaultAvailabilityService) DeleteBlockedInterval(ctx context.Context, providerID, blockedID string) error {
	if err := s.Repo.DeleteBlocked(ctx, providerID, blockedID); err != nil {
		return fmt.Errorf("failed to delete blocked interval: %w", err)
	}
	return nil
}
