package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"praxis/models"
	"praxis/services/scheduling"
	"praxis/utils"

	"go.uber.org/zap"
)

// ListSlots resolves the bookable start times for one date. The three read
// stores are fetched concurrently; a store that fails is logged and treated
// as empty, so the calendar renders instead of erroring.
func (s *DefaultBookingService) ListSlots(ctx context.Context, providerID, date string) (*models.DaySlots, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, err
	}

	prov, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	cfg := prov.SchedulingConfig

	rules, blocked, booked := s.fetchStores(ctx, providerID, date, day)

	slots := scheduling.Resolve(scheduling.ResolveInput{
		Date:                  date,
		Rule:                  scheduling.ActiveRuleFor(rules, day.Weekday()),
		DurationMinutes:       cfg.SessionDurationMinutes,
		BufferMinutes:         cfg.BufferBetweenSessionsMinutes,
		Blocked:               blocked,
		Booked:                booked,
		AllowParallelSessions: cfg.AllowParallelSessions,
		Now:                   time.Now().UTC(),
	})
	return &models.DaySlots{Date: date, Slots: slots}, nil
}

// ListSelectableDays feeds the date picker: each of the next `days` dates is
// marked selectable iff it is not in the past and has an active rule.
func (s *DefaultBookingService) ListSelectableDays(ctx context.Context, providerID, fromDate string, days int) ([]models.SelectableDay, error) {
	from, err := scheduling.ParseDate(fromDate)
	if err != nil {
		return nil, err
	}
	if days <= 0 || days > 90 {
		days = 30
	}

	rules, err := s.Availability.ListActiveRules(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	return scheduling.BuildSelectableDays(from, days, rules, time.Now().UTC()), nil
}

// fetchStores loads the resolver's three read stores in parallel. Each store
// degrades to nil on error, which the resolver treats as empty.
func (s *DefaultBookingService) fetchStores(ctx context.Context, providerID, date string, day time.Time) ([]models.AvailabilityRule, []models.BlockedInterval, []models.Appointment) {
	logger := utils.GetLogger().With(zap.String("providerId", providerID), zap.String("date", date))

	var (
		wg      sync.WaitGroup
		rules   []models.AvailabilityRule
		blocked []models.BlockedInterval
		booked  []models.Appointment
	)
	wg.Add(3)

	go func() {
		defer wg.Done()
		var err error
		rules, err = s.Availability.ListActiveRules(ctx, providerID)
		if err != nil {
			logger.Warn("slot resolve: rules fetch failed", zap.Error(err))
			rules = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		blocked, err = s.Availability.ListBlockedInRange(ctx, providerID, date, date)
		if err != nil {
			logger.Warn("slot resolve: blocked fetch failed", zap.Error(err))
			blocked = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		booked, err = s.Appointments.ListByProviderInRange(ctx, providerID, day, day.AddDate(0, 0, 1), true)
		if err != nil {
			logger.Warn("slot resolve: appointments fetch failed", zap.Error(err))
			booked = nil
		}
	}()

	wg.Wait()
	return rules, blocked, booked
}
