package carelog

import (
	"testing"
	"time"

	"careledger/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeverViewedCountsAsUnviewed(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})
	_, err := f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	has, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMarkViewedClearsFlag(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})
	_, err := f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.member.ID, log.ID))

	has, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.False(t, has)

	fields, err := f.svc.ChangedFields(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestEditAfterViewFlagsAgain(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.member.ID, log.ID))

	f.clock.Advance(2 * time.Second)
	_, err := f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{MorningMood: strPtr("calm")})
	require.NoError(t, err)

	has, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, has)

	fields, err := f.svc.ChangedFields(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"morning_mood"}, fields)
}

func TestViewBetweenSubmissionsStillFlagsSecond(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{WakeTime: strPtr("07:00")})

	f.clock.Advance(2 * time.Second)
	_, err := f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionMorning)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.member.ID, log.ID))

	f.clock.Advance(2 * time.Second)
	_, err = f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionAfternoon)
	require.NoError(t, err)

	has, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, has)

	fields, err := f.svc.ChangedFields(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ds.SectionAfternoon}, fields)
}

func TestViewBetweenResubmissionsOfSameSection(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{WakeTime: strPtr("07:00")})

	f.clock.Advance(2 * time.Second)
	first, err := f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionMorning)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.member.ID, log.ID))

	has, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	require.False(t, has)

	f.clock.Advance(2 * time.Second)
	second, err := f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionMorning)
	require.NoError(t, err)

	// same section resubmitted: the submitter is unchanged but the advanced
	// timestamp makes the log unviewed again
	assert.Equal(t, first.CompletedSections[ds.SectionMorning].SubmittedBy,
		second.CompletedSections[ds.SectionMorning].SubmittedBy)

	has, err = f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, has)

	fields, err := f.svc.ChangedFields(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ds.SectionMorning}, fields)
}

func TestChangedFieldsUnionAcrossEntries(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.member.ID, log.ID))

	f.clock.Advance(2 * time.Second)
	_, err := f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{MorningMood: strPtr("calm")})
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)
	_, err = f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{Notes: strPtr("ate well")})
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)
	_, err = f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionMorning)
	require.NoError(t, err)

	fields, err := f.svc.ChangedFields(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ds.SectionMorning, "morning_mood", "notes"}, fields)
}

func TestSameSecondEditComparesAsSeen(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, nil)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.member.ID, log.ID))

	// edit lands within the same wall-clock second as the view
	f.clock.Advance(300 * time.Millisecond)
	_, err := f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{Notes: strPtr("same second")})
	require.NoError(t, err)

	has, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWatermarksArePerViewer(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})
	_, err := f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.svc.MarkViewed(f.admin.ID, log.ID))

	adminHas, err := f.svc.HasUnviewedChanges(f.admin.ID, log.ID)
	require.NoError(t, err)
	assert.False(t, adminHas)

	memberHas, err := f.svc.HasUnviewedChanges(f.member.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, memberHas)
}

func TestMarkViewedRequiresAccess(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, nil)

	err := f.svc.MarkViewed(f.outsider.ID, log.ID)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}
