package carelog

import (
	"careledger/internal/app/ds"
)

// Static section → owned-fields table (json/column names). Shared fields
// become visible as soon as any section is submitted.
var sharedFields = []string{"medications", "meals", "fluids", "photo_urls"}

var sectionFields = map[string][]string{
	ds.SectionMorning:      {"wake_time", "morning_mood", "morning_vitals"},
	ds.SectionAfternoon:    {"afternoon_activities", "afternoon_vitals", "nap_details"},
	ds.SectionEvening:      {"evening_mood", "evening_vitals", "sleep_details"},
	ds.SectionDailySummary: {"toileting", "fall_risk", "exercise", "spiritual_emotional", "special_concerns", "notes"},
}

// TrackedFields is the fixed field list audit diffs are computed over.
var TrackedFields = func() []string {
	fields := append([]string{}, sharedFields...)
	for _, section := range ds.Sections {
		fields = append(fields, sectionFields[section]...)
	}
	return fields
}()

// FilterByCompletedSections reduces a stored log to its family-visible
// projection. A final submission supersedes partial disclosure: submitted
// logs come back whole. Otherwise only fields whose owning section has a
// completion entry survive, plus the shared fields once anything is in; with
// nothing submitted, the family sees lifecycle metadata and empty containers
// only. Pure function, no side effects.
func FilterByCompletedSections(log ds.CareLog) ds.CareLog {
	if log.Status == ds.StatusSubmitted {
		return log
	}

	out := log
	out.Medications = []ds.MedicationEntry{}
	out.Meals = []ds.MealEntry{}
	out.Fluids = []ds.FluidEntry{}
	out.PhotoURLs = []string{}
	out.WakeTime, out.MorningMood, out.MorningVitals = nil, nil, nil
	out.AfternoonActivities, out.AfternoonVitals, out.NapDetails = nil, nil, nil
	out.EveningMood, out.EveningVitals, out.SleepDetails = nil, nil, nil
	out.Toileting, out.FallRisk, out.Exercise = nil, nil, nil
	out.SpiritualEmotional, out.SpecialConcerns, out.Notes = nil, nil, nil

	if len(log.CompletedSections) == 0 {
		return out
	}

	if log.Medications != nil {
		out.Medications = log.Medications
	}
	if log.Meals != nil {
		out.Meals = log.Meals
	}
	if log.Fluids != nil {
		out.Fluids = log.Fluids
	}
	if log.PhotoURLs != nil {
		out.PhotoURLs = log.PhotoURLs
	}

	if _, ok := log.CompletedSections[ds.SectionMorning]; ok {
		out.WakeTime = log.WakeTime
		out.MorningMood = log.MorningMood
		out.MorningVitals = log.MorningVitals
	}
	if _, ok := log.CompletedSections[ds.SectionAfternoon]; ok {
		out.AfternoonActivities = log.AfternoonActivities
		out.AfternoonVitals = log.AfternoonVitals
		out.NapDetails = log.NapDetails
	}
	if _, ok := log.CompletedSections[ds.SectionEvening]; ok {
		out.EveningMood = log.EveningMood
		out.EveningVitals = log.EveningVitals
		out.SleepDetails = log.SleepDetails
	}
	if _, ok := log.CompletedSections[ds.SectionDailySummary]; ok {
		out.Toileting = log.Toileting
		out.FallRisk = log.FallRisk
		out.Exercise = log.Exercise
		out.SpiritualEmotional = log.SpiritualEmotional
		out.SpecialConcerns = log.SpecialConcerns
		out.Notes = log.Notes
	}
	return out
}

// SubmitSection marks one section of a draft as shared with family. Sharing
// is not locking: the caregiver can keep editing a shared section.
// Re-submitting the same section keeps submitted_by but advances the
// timestamp, which the view watermark picks up.
func (s *Service) SubmitSection(caregiverID, logID uint, section string) (*ds.CareLog, error) {
	if !ds.ValidSection(section) {
		return nil, Validation(map[string]string{"section": "unknown section name"})
	}
	log, err := s.requireCaregiverOwnership(caregiverID, logID)
	if err != nil {
		return nil, err
	}
	if log.Status != ds.StatusDraft {
		return nil, InvalidState(ds.StatusDraft, log.Status)
	}

	completion := ds.SectionCompletion{SubmittedAt: s.now(), SubmittedBy: caregiverID}
	rows, err := s.repo.MergeCompletedSection(logID, section, completion)
	if err != nil {
		return nil, Internal(err)
	}
	if rows == 0 {
		return nil, InvalidState(ds.StatusDraft, ds.StatusSubmitted)
	}

	s.recordAudit(&ds.AuditEntry{
		CareLogID:        logID,
		ChangedBy:        caregiverID,
		ChangedByType:    ds.ChangedByCaregiver,
		ChangedByName:    s.caregiverName(caregiverID),
		Action:           ds.ActionSubmitSection,
		SectionSubmitted: &section,
	})

	return s.reload(logID)
}
