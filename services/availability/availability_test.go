package availability

import (
	"context"
	"testing"

	"praxis/models"
)

type fakeRepo struct {
	rules   []models.AvailabilityRule
	blocked []models.BlockedInterval
}

func (f *fakeRepo) UpsertRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error) {
	for i := range f.rules {
		if f.rules[i].DayOfWeek == rule.DayOfWeek {
			f.rules[i] = *rule
			return rule, nil
		}
	}
	f.rules = append(f.rules, *rule)
	return rule, nil
}
func (f *fakeRepo) ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return f.rules, nil
}
func (f *fakeRepo) ListActiveRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	var out []models.AvailabilityRule
	for _, r := range f.rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRepo) DeleteRule(ctx context.Context, providerID, ruleID string) error {
	for i := range f.rules {
		if f.rules[i].ID == ruleID {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return nil
}
func (f *fakeRepo) CreateBlocked(ctx context.Context, b *models.BlockedInterval) error {
	f.blocked = append(f.blocked, *b)
	return nil
}
func (f *fakeRepo) ListBlockedInRange(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.BlockedInterval, error) {
	var out []models.BlockedInterval
	for _, b := range f.blocked {
		if b.Date >= dateFrom && b.Date <= dateTo {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeRepo) DeleteBlocked(ctx context.Context, providerID, blockedID string) error {
	return nil
}

func TestUpsertRuleValidation(t *testing.T) {
	svc := NewDefaultAvailabilityService(&fakeRepo{})

	cases := []struct {
		name string
		req  models.UpsertAvailabilityRequest
	}{
		{"day too low", models.UpsertAvailabilityRequest{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}},
		{"day too high", models.UpsertAvailabilityRequest{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", models.UpsertAvailabilityRequest{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"}},
		{"bad end", models.UpsertAvailabilityRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}},
		{"start after end", models.UpsertAvailabilityRequest{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}},
		{"zero width", models.UpsertAvailabilityRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpsertRule(context.Background(), "prov-1", tc.req); err == nil {
				t.Fatalf("expected validation error for %+v", tc.req)
			}
		})
	}
}

func TestUpsertRuleReplacesWeekday(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewDefaultAvailabilityService(repo)

	first, err := svc.UpsertRule(context.Background(), "prov-1",
		models.UpsertAvailabilityRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := svc.UpsertRule(context.Background(), "prov-1",
		models.UpsertAvailabilityRequest{DayOfWeek: 1, StartTime: "13:00", EndTime: "18:00", IsActive: true})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if len(repo.rules) != 1 {
		t.Fatalf("weekday should hold one rule, got %d", len(repo.rules))
	}
	if repo.rules[0].StartTime != "13:00" {
		t.Errorf("stored start = %s, want 13:00", repo.rules[0].StartTime)
	}
	if first.ID == second.ID {
		t.Error("replacement rule should carry a fresh ID")
	}
}

func TestInactiveRuleClosesDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewDefaultAvailabilityService(repo)

	if _, err := svc.UpsertRule(context.Background(), "prov-1",
		models.UpsertAvailabilityRequest{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00", IsActive: false}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	active, err := repo.ListActiveRules(context.Background(), "prov-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("inactive rule must not be active, got %d", len(active))
	}
	all, _ := svc.ListRules(context.Background(), "prov-1")
	if len(all) != 1 {
		t.Fatalf("inactive rule should stay on record, got %d", len(all))
	}
}

func TestCreateBlockedIntervalValidation(t *testing.T) {
	svc := NewDefaultAvailabilityService(&fakeRepo{})

	cases := []struct {
		name string
		req  models.CreateBlockedIntervalRequest
	}{
		{"bad date", models.CreateBlockedIntervalRequest{Date: "07/01/2030", StartTime: "09:00", EndTime: "10:00"}},
		{"bad start", models.CreateBlockedIntervalRequest{Date: "2030-01-07", StartTime: "0900", EndTime: "10:00"}},
		{"start after end", models.CreateBlockedIntervalRequest{Date: "2030-01-07", StartTime: "11:00", EndTime: "10:00"}},
		{"zero width", models.CreateBlockedIntervalRequest{Date: "2030-01-07", StartTime: "10:00", EndTime: "10:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateBlockedInterval(context.Background(), "prov-1", tc.req); err == nil {
				t.Fatalf("expected validation error for %+v", tc.req)
			}
		})
	}
}

func TestListBlockedIntervalsRequiresRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewDefaultAvailabilityService(repo)

	if _, err := svc.CreateBlockedInterval(context.Background(), "prov-1",
		models.CreateBlockedIntervalRequest{Date: "2030-01-07", StartTime: "09:00", EndTime: "10:00", Reason: "dentist"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.ListBlockedIntervals(context.Background(), "prov-1", "", "2030-01-31"); err == nil {
		t.Fatal("expected error for missing dateFrom")
	}
	if _, err := svc.ListBlockedIntervals(context.Background(), "prov-1", "2030-01-01", "jan 31"); err == nil {
		t.Fatal("expected error for malformed dateTo")
	}

	got, err := svc.ListBlockedIntervals(context.Background(), "prov-1", "2030-01-01", "2030-01-31")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Reason != "dentist" {
		t.Fatalf("unexpected intervals: %+v", got)
	}
}
