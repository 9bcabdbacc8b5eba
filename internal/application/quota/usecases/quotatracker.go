package usecases

import (
	"context"
	"fmt"
	"math"

	"remedia/internal/domain/account"
	"remedia/internal/domain/quota"
	"remedia/internal/shared/biztime"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
)

// CheckResult reports whether one more action of a type is admissible
// right now, without consuming quota.
type CheckResult struct {
	Allowed      bool
	CurrentUsage int
	Limit        int
	Plan         quota.ResolvedPlan
}

// IncrementResult reports the counter state after consuming quota.
// WasWithinLimit reflects the admission decision at pre-increment count;
// IsNowWithinLimit tells the caller whether the next action would still be
// admitted, which feeds the response headers.
type IncrementResult struct {
	NewCount         int
	WasWithinLimit   bool
	IsNowWithinLimit bool
	Limit            int
	Plan             quota.ResolvedPlan
}

// UsageEntry is one usage type's position against its ceiling.
type UsageEntry struct {
	Used          int  `json:"used"`
	Limit         int  `json:"limit"`
	Percentage    int  `json:"percentage"`
	IsWithinLimit bool `json:"is_within_limit"`
}

// UsageSummary is the full snapshot for today: the four daily counters
// plus the persistent favorites count, all measured against the resolved
// plan's ceilings.
type UsageSummary struct {
	Plan        string     `json:"plan"`
	Trialing    bool       `json:"trialing"`
	Day         string     `json:"day"`
	Searches    UsageEntry `json:"searches"`
	AISearches  UsageEntry `json:"ai_searches"`
	Exports     UsageEntry `json:"exports"`
	Comparisons UsageEntry `json:"comparisons"`
	Favorites   UsageEntry `json:"favorites"`
}

// HistoryDay is one active day in a usage history window.
type HistoryDay struct {
	Day         string `json:"day"`
	Searches    int    `json:"searches"`
	AISearches  int    `json:"ai_searches"`
	Exports     int    `json:"exports"`
	Comparisons int    `json:"comparisons"`
	Total       int    `json:"total"`
}

// AggregateResult summarizes a history window. AverageSearchesPerDay is
// averaged over active days only; days without a row don't dilute it.
type AggregateResult struct {
	Days                  int     `json:"days"`
	ActiveDays            int     `json:"active_days"`
	TotalSearches         int     `json:"total_searches"`
	TotalAISearches       int     `json:"total_ai_searches"`
	TotalExports          int     `json:"total_exports"`
	TotalComparisons      int     `json:"total_comparisons"`
	AverageSearchesPerDay float64 `json:"average_searches_per_day"`
}

// QuotaTracker enforces per-identity daily usage ceilings. Checks are
// advisory reads; Increment is the only operation that consumes quota and
// it is atomic at the storage layer.
type QuotaTracker interface {
	// ResolvePlan maps an identity to the plan whose limits apply right
	// now. Anonymous identities and any resolution failure land on free.
	ResolvePlan(ctx context.Context, identityKey, userID string) quota.ResolvedPlan

	// CanPerform reports whether one more action of usageType would be
	// admitted for the identity today. It never mutates counters.
	CanPerform(ctx context.Context, identityKey, userID string, usageType quota.UsageType) (*CheckResult, error)

	// Increment atomically adds amount to today's counter and reports the
	// admission state before and after. Callers check CanPerform first;
	// Increment itself never refuses.
	Increment(ctx context.Context, identityKey, userID string, usageType quota.UsageType, amount int) (*IncrementResult, error)

	// GetTodayUsage returns today's raw counters for the identity,
	// lazily creating the zeroed row.
	GetTodayUsage(ctx context.Context, identityKey string) (*quota.UsageRecord, error)

	// Summary builds the full usage snapshot for today.
	Summary(ctx context.Context, identityKey, userID string) (*UsageSummary, error)

	// History returns the identity's active days within the last n days,
	// most recent first.
	History(ctx context.Context, identityKey string, days int) ([]HistoryDay, error)

	// Aggregate computes window totals and averages over the last n days.
	Aggregate(ctx context.Context, identityKey string, days int) (*AggregateResult, error)
}

type quotaTrackerImpl struct {
	usageRepo        quota.UsageRecordRepository
	subscriptionRepo account.SubscriptionRepository
	userRepo         account.UserRepository
	favoriteCounter  quota.FavoriteCounter
	logger           logger.Interface
}

// NewQuotaTracker creates a quota tracker use case.
func NewQuotaTracker(
	usageRepo quota.UsageRecordRepository,
	subscriptionRepo account.SubscriptionRepository,
	userRepo account.UserRepository,
	favoriteCounter quota.FavoriteCounter,
	logger logger.Interface,
) QuotaTracker {
	return &quotaTrackerImpl{
		usageRepo:        usageRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		favoriteCounter:  favoriteCounter,
		logger:           logger,
	}
}

func (t *quotaTrackerImpl) ResolvePlan(ctx context.Context, identityKey, userID string) quota.ResolvedPlan {
	free := quota.ResolvedPlan{Tier: quota.PlanTierFree}
	if userID == "" {
		return free
	}

	user, err := t.userRepo.GetByID(ctx, userID)
	if err != nil {
		// Resolution failures must not grant elevated limits.
		t.logger.Warnw("plan resolution failed, falling back to free",
			"user_id", userID,
			"error", err,
		)
		return free
	}

	trialing := user != nil && user.IsTrialActive(biztime.NowUTC())

	storedTier := quota.PlanTierFree
	sub, err := t.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		// Only the stored tier fails closed here; an active trial was
		// already established from the user row and keeps its limits.
		t.logger.Warnw("subscription lookup failed, falling back to free tier",
			"user_id", userID,
			"error", err,
		)
	} else if sub != nil && sub.Status().IsActive() && sub.Plan().IsValid() {
		storedTier = sub.Plan()
	}

	return quota.ResolvedPlan{Tier: storedTier, Trialing: trialing}
}

func (t *quotaTrackerImpl) CanPerform(ctx context.Context, identityKey, userID string, usageType quota.UsageType) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if identityKey == "" {
		return nil, errors.NewInvalidInput("identity is required")
	}
	if !usageType.IsValid() {
		return nil, errors.NewInvalidInput(fmt.Sprintf("unknown usage type: %s", usageType))
	}

	plan := t.ResolvePlan(ctx, identityKey, userID)
	limit := plan.Limits().LimitFor(usageType)

	record, err := t.usageRepo.GetOrCreate(ctx, identityKey, biztime.TodayUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load usage record: %w", err)
	}

	current := record.CountFor(usageType)
	return &CheckResult{
		Allowed:      quota.WithinLimit(current, limit),
		CurrentUsage: current,
		Limit:        limit,
		Plan:         plan,
	}, nil
}

func (t *quotaTrackerImpl) Increment(ctx context.Context, identityKey, userID string, usageType quota.UsageType, amount int) (*IncrementResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if identityKey == "" {
		return nil, errors.NewInvalidInput("identity is required")
	}
	if !usageType.IsValid() {
		return nil, errors.NewInvalidInput(fmt.Sprintf("unknown usage type: %s", usageType))
	}
	if amount <= 0 {
		return nil, errors.NewInvalidInput("increment amount must be positive")
	}

	plan := t.ResolvePlan(ctx, identityKey, userID)
	limit := plan.Limits().LimitFor(usageType)

	record, err := t.usageRepo.IncrementBy(ctx, identityKey, biztime.TodayUTC(), usageType, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to increment usage: %w", err)
	}

	newCount := record.CountFor(usageType)
	return &IncrementResult{
		NewCount:         newCount,
		WasWithinLimit:   quota.WithinLimit(newCount-amount, limit),
		IsNowWithinLimit: quota.WithinLimit(newCount, limit),
		Limit:            limit,
		Plan:             plan,
	}, nil
}

func (t *quotaTrackerImpl) GetTodayUsage(ctx context.Context, identityKey string) (*quota.UsageRecord, error) {
	if identityKey == "" {
		return nil, errors.NewInvalidInput("identity is required")
	}
	return t.usageRepo.GetOrCreate(ctx, identityKey, biztime.TodayUTC())
}

func (t *quotaTrackerImpl) Summary(ctx context.Context, identityKey, userID string) (*UsageSummary, error) {
	if identityKey == "" {
		return nil, errors.NewInvalidInput("identity is required")
	}

	plan := t.ResolvePlan(ctx, identityKey, userID)
	limits := plan.Limits()
	day := biztime.TodayUTC()

	record, err := t.usageRepo.GetOrCreate(ctx, identityKey, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage record: %w", err)
	}

	favorites, err := t.favoriteCounter.CountByIdentity(ctx, identityKey)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	return &UsageSummary{
		Plan:        plan.String(),
		Trialing:    plan.Trialing,
		Day:         day.Format("2006-01-02"),
		Searches:    newUsageEntry(record.Searches(), limits.Searches),
		AISearches:  newUsageEntry(record.AISearches(), limits.AISearches),
		Exports:     newUsageEntry(record.Exports(), limits.Exports),
		Comparisons: newUsageEntry(record.Comparisons(), limits.Comparisons),
		Favorites:   newUsageEntry(int(favorites), limits.Favorites),
	}, nil
}

func (t *quotaTrackerImpl) History(ctx context.Context, identityKey string, days int) ([]HistoryDay, error) {
	records, err := t.loadWindow(ctx, identityKey, days)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryDay, 0, len(records))
	for _, r := range records {
		history = append(history, HistoryDay{
			Day:         r.Day().Format("2006-01-02"),
			Searches:    r.Searches(),
			AISearches:  r.AISearches(),
			Exports:     r.Exports(),
			Comparisons: r.Comparisons(),
			Total:       r.Total(),
		})
	}
	return history, nil
}

func (t *quotaTrackerImpl) Aggregate(ctx context.Context, identityKey string, days int) (*AggregateResult, error) {
	records, err := t.loadWindow(ctx, identityKey, days)
	if err != nil {
		return nil, err
	}

	result := &AggregateResult{Days: days, ActiveDays: len(records)}
	for _, r := range records {
		result.TotalSearches += r.Searches()
		result.TotalAISearches += r.AISearches()
		result.TotalExports += r.Exports()
		result.TotalComparisons += r.Comparisons()
	}
	if len(records) > 0 {
		result.AverageSearchesPerDay = float64(result.TotalSearches) / float64(len(records))
	}
	return result, nil
}

func (t *quotaTrackerImpl) loadWindow(ctx context.Context, identityKey string, days int) ([]*quota.UsageRecord, error) {
	if identityKey == "" {
		return nil, errors.NewInvalidInput("identity is required")
	}
	if days <= 0 {
		return nil, errors.NewInvalidInput("days must be positive")
	}

	from := biztime.DaysAgoUTC(days - 1)
	to := biztime.TodayUTC()
	records, err := t.usageRepo.GetRange(ctx, identityKey, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage range: %w", err)
	}
	return records, nil
}

func newUsageEntry(used, limit int) UsageEntry {
	return UsageEntry{
		Used:          used,
		Limit:         limit,
		Percentage:    usagePercentage(used, limit),
		IsWithinLimit: quota.WithinLimit(used, limit),
	}
}

// usagePercentage maps usage onto 0-100 for display. Unlimited plans
// always read 0; a zero ceiling reads 100.
func usagePercentage(used, limit int) int {
	if limit == quota.Unlimited {
		return 0
	}
	if limit == 0 {
		return 100
	}
	pct := int(math.Round(float64(used) / float64(limit) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
