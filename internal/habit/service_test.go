package habit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonforge/habitbot/internal/activity"
	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/ledger"
)

func newTestService() (Service, *ledger.FakeRepository) {
	repo := ledger.NewFakeRepository()
	return NewService(ledger.NewService(repo), repo), repo
}

func TestLogActivities(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	result, err := svc.LogActivities(ctx, "user-1", "guild-1", map[string]int{
		activity.Workout: 30,
		activity.Video:   10,
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)
	assert.Equal(t, activity.Workout, result.Lines[0].Activity)
	assert.Equal(t, 30, result.Lines[0].XPGained)
	assert.Equal(t, activity.Video, result.Lines[1].Activity)
	assert.Equal(t, 7, result.Lines[1].XPGained, "video XP must floor 10*0.7")

	assert.Equal(t, 37, result.TotalXP)
	assert.Equal(t, 1, result.Level.Level)
	assert.Equal(t, 37, result.Level.CurrentXP)
	assert.Equal(t, 100, result.Level.NextLevelXP)

	// Every grant leaves an audit record.
	require.Len(t, repo.Entries, 2)
	assert.Equal(t, activity.Workout, repo.Entries[0].Activity)
	assert.Equal(t, 30, repo.Entries[0].Minutes)
}

func TestLogActivitiesNoPositiveField(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.LogActivities(ctx, "user-1", "guild-1", map[string]int{
		activity.Workout: 0,
		activity.Reading: -3,
	})
	assert.ErrorIs(t, err, domain.ErrNoActivity)
	assert.Empty(t, repo.Entries, "rejected input must not write the audit trail")

	_, err = svc.LogActivities(ctx, "user-1", "guild-1", nil)
	assert.ErrorIs(t, err, domain.ErrNoActivity)
}

func TestLogActivitiesSubStatFeedsParent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.LogActivities(ctx, "user-1", "guild-1", map[string]int{
		activity.Agility:  30,
		activity.Strength: 20,
	})
	require.NoError(t, err)

	report, err := svc.GetStats(ctx, "user-1", "guild-1")
	require.NoError(t, err)

	byName := make(map[string]domain.StatLevel)
	for _, sl := range report.Stats {
		byName[sl.Name] = sl
	}

	assert.Equal(t, 50, byName[domain.StatSoma].XP)
	assert.Equal(t, 30, byName[domain.StatAgility].XP)
	assert.Equal(t, 20, byName[domain.StatStrength].XP)
	assert.True(t, byName[domain.StatAgility].SubLevel)
	assert.False(t, byName[domain.StatSoma].SubLevel)

	// Total counts soma once, not soma + agility + strength.
	assert.Equal(t, 50, report.TotalXP)
}

func TestLogActivitiesPartialFailure(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewFakeRepository()
	svc := NewService(ledger.NewService(repo), repo)

	// GetOrCreate consumes one call; workout then succeeds with its
	// accumulate + append before reading consumes the budget.
	repo.FailAfter = 3

	_, err := svc.LogActivities(ctx, "user-1", "guild-1", map[string]int{
		activity.Workout: 30,
		activity.Reading: 10,
	})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	// The first field's grant stays applied: multi-field updates are not
	// transactional.
	repo.FailAfter = -1
	sheet, getErr := repo.GetSheet(ctx, "user-1", "guild-1")
	require.NoError(t, getErr)
	assert.Equal(t, 30, sheet.Soma)
	assert.Equal(t, 0, sheet.Knowledge)
}

func TestLogVoiceSession(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	award, err := svc.LogVoiceSession(ctx, "user-1", "guild-1", "channel-9", 25)
	require.NoError(t, err)

	assert.Equal(t, 25, award.Minutes)
	assert.Equal(t, 25, award.XPGained)
	assert.Equal(t, 25, award.TotalXP)
	assert.Equal(t, "channel-9", award.ChannelID)
	assert.Equal(t, 1, award.Level.Level)

	require.Len(t, repo.Entries, 1)
	assert.Equal(t, activity.WorkVoice, repo.Entries[0].Activity)
}

func TestLogVoiceSessionRejectsZeroMinutes(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.LogVoiceSession(context.Background(), "user-1", "guild-1", "channel-9", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMinutes)
}

func TestGetStatsIsReadOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.LogActivities(ctx, "user-1", "guild-1", map[string]int{activity.Work: 150})
	require.NoError(t, err)

	first, err := svc.GetStats(ctx, "user-1", "guild-1")
	require.NoError(t, err)
	second, err := svc.GetStats(ctx, "user-1", "guild-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 150, first.TotalXP)
	assert.Equal(t, 2, first.Level.Level)
	assert.Equal(t, 50, first.Level.CurrentXP)
	assert.Equal(t, 200, first.Level.NextLevelXP)

	// Reading stats never writes the audit trail.
	assert.Len(t, repo.Entries, 1)
}

func TestGetStatsForUnknownUserReadsZeroed(t *testing.T) {
	svc, repo := newTestService()

	report, err := svc.GetStats(context.Background(), "fresh", "guild-1")
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalXP)
	assert.Equal(t, 1, report.Level.Level)
	assert.Equal(t, 100, report.Level.NextLevelXP)
	require.Len(t, report.Stats, 6)
	for _, sl := range report.Stats {
		assert.Equal(t, 0, sl.XP)
		assert.Equal(t, 1, sl.Level.Level)
	}

	// Looking up an arbitrary member must not create a record for them.
	assert.False(t, repo.HasSheet("fresh", "guild-1"))
}

func TestLogActivitiesStoreDownSurfacesError(t *testing.T) {
	repo := ledger.NewFakeRepository()
	svc := NewService(ledger.NewService(repo), repo)

	repo.FailNext = true
	_, err := svc.LogActivities(context.Background(), "user-1", "guild-1", map[string]int{activity.Work: 10})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
