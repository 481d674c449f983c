package carelog

import (
	"testing"
	"time"

	"careledger/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogRequiresAssignment(t *testing.T) {
	f := newFixture(t)

	unassigned := ds.Caregiver{Name: "Nadia Nowhere", CareRecipientID: f.recipient.ID + 100, IsActive: true}
	require.NoError(t, f.db.Create(&unassigned).Error)

	_, err := f.svc.CreateLog(unassigned.ID, f.recipient.ID, f.clock.Now(), nil)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	// the default:true tag would swallow a zero-value insert, so flip the
	// flag with an explicit update
	inactive := ds.Caregiver{Name: "Ivan Inactive", CareRecipientID: f.recipient.ID, IsActive: true}
	require.NoError(t, f.db.Create(&inactive).Error)
	require.NoError(t, f.repo.UpdateCaregiver(inactive.ID, map[string]interface{}{"is_active": false}))

	_, err = f.svc.CreateLog(inactive.ID, f.recipient.ID, f.clock.Now(), nil)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestCreateLogWritesCreateAudit(t *testing.T) {
	f := newFixture(t)

	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})
	assert.Equal(t, ds.StatusDraft, log.Status)

	entries, err := f.repo.ListAuditEntries(log.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ds.ActionCreate, entries[0].Action)
	assert.Equal(t, f.caregiver.ID, entries[0].ChangedBy)
	assert.Equal(t, ds.ChangedByCaregiver, entries[0].ChangedByType)
	assert.Equal(t, "Carol Caregiver", entries[0].ChangedByName)
	require.NotNil(t, entries[0].Snapshot)
	assert.Equal(t, "alert", *entries[0].Snapshot.MorningMood)
}

func TestUpdateLogOnlyByOwner(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, nil)

	_, err := f.svc.UpdateLog(f.otherCaregiver.ID, log.ID, &UpdatePayload{Notes: strPtr("sneaky")})
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestSubmitNotIdempotent(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, nil)

	_, err := f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestUpdateAfterSubmitRejected(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, nil)

	_, err := f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{Notes: strPtr("too late")})
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestInvalidateRoundTrip(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{MorningMood: strPtr("alert")})

	submitted, err := f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	f.clock.Advance(2 * time.Second)

	reopened, err := f.svc.InvalidateLog(f.admin.ID, log.ID, "vitals look implausible")
	require.NoError(t, err)
	assert.Equal(t, ds.StatusDraft, reopened.Status)
	require.NotNil(t, reopened.InvalidatedAt)
	require.NotNil(t, reopened.InvalidatedBy)
	assert.Equal(t, f.admin.ID, *reopened.InvalidatedBy)
	require.NotNil(t, reopened.InvalidationReason)
	assert.Equal(t, "vitals look implausible", *reopened.InvalidationReason)

	// the re-opened draft is editable and submittable again
	_, err = f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{MorningMood: strPtr("calm")})
	require.NoError(t, err)
	_, err = f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	entries, err := f.repo.ListAuditEntries(log.ID)
	require.NoError(t, err)
	submits := 0
	for _, e := range entries {
		if e.Action == ds.ActionSubmit {
			submits++
		}
	}
	assert.Equal(t, 2, submits)
}

func TestInvalidateGuards(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, nil)

	// draft cannot be invalidated
	_, err := f.svc.InvalidateLog(f.admin.ID, log.ID, "reason")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))

	_, err = f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	// empty reason rejected
	_, err = f.svc.InvalidateLog(f.admin.ID, log.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	// a member with a grant is not an admin owner
	_, err = f.svc.InvalidateLog(f.member.ID, log.ID, "reason")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestInvalidateKeepsCompletedSections(t *testing.T) {
	f := newFixture(t)
	log := f.createDraft(t, &UpdatePayload{WakeTime: strPtr("07:30")})

	_, err := f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionMorning)
	require.NoError(t, err)
	_, err = f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	reopened, err := f.svc.InvalidateLog(f.admin.ID, log.ID, "wrong wake time")
	require.NoError(t, err)

	require.Contains(t, reopened.CompletedSections, ds.SectionMorning)
	visible := FilterByCompletedSections(*reopened)
	require.NotNil(t, visible.WakeTime)
	assert.Equal(t, "07:30", *visible.WakeTime)
}

func TestScenarioProgressiveDay(t *testing.T) {
	f := newFixture(t)

	sleep := &ds.SleepRecord{Bedtime: "21:30", WakeUps: 2, Quality: "restless"}
	log := f.createDraft(t, &UpdatePayload{
		WakeTime:     strPtr("07:15"),
		MorningMood:  strPtr("alert"),
		SleepDetails: sleep,
		Notes:        strPtr("quiet morning"),
	})

	f.clock.Advance(2 * time.Second)
	_, err := f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionMorning)
	require.NoError(t, err)

	// family sees wake time but not night-sleep data
	logs, err := f.svc.LogsForRecipient(f.member.ID, f.recipient.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].WakeTime)
	assert.Equal(t, "07:15", *logs[0].WakeTime)
	assert.Nil(t, logs[0].SleepDetails)
	assert.Nil(t, logs[0].Notes)

	f.clock.Advance(2 * time.Second)
	_, err = f.svc.SubmitSection(f.caregiver.ID, log.ID, ds.SectionDailySummary)
	require.NoError(t, err)

	logs, err = f.svc.LogsForRecipient(f.member.ID, f.recipient.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Notes)
	assert.Nil(t, logs[0].SleepDetails) // evening still unshared

	f.clock.Advance(2 * time.Second)
	_, err = f.svc.SubmitLog(f.caregiver.ID, log.ID)
	require.NoError(t, err)

	logs, err = f.svc.LogsForRecipient(f.member.ID, f.recipient.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].SleepDetails) // full record after final submit

	_, err = f.svc.UpdateLog(f.caregiver.ID, log.ID, &UpdatePayload{Notes: strPtr("late edit")})
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}
