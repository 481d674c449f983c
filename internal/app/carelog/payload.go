package carelog

import (
	"careledger/internal/app/ds"
)

// UpdatePayload is a partial edit of a care log. A nil pointer means "not
// provided" and leaves the stored value untouched; there is no way to null a
// field out through an update, matching the audit rule that an absent field
// is not a change to undefined.
type UpdatePayload struct {
	Medications *[]ds.MedicationEntry `json:"medications"`
	Meals       *[]ds.MealEntry       `json:"meals"`
	Fluids      *[]ds.FluidEntry      `json:"fluids"`

	WakeTime      *string    `json:"wake_time"`
	MorningMood   *string    `json:"morning_mood"`
	MorningVitals *ds.Vitals `json:"morning_vitals"`

	AfternoonActivities *string    `json:"afternoon_activities"`
	AfternoonVitals     *ds.Vitals `json:"afternoon_vitals"`
	NapDetails          *string    `json:"nap_details"`

	EveningMood   *string         `json:"evening_mood"`
	EveningVitals *ds.Vitals      `json:"evening_vitals"`
	SleepDetails  *ds.SleepRecord `json:"sleep_details"`

	Toileting          *ds.ToiletingRecord `json:"toileting"`
	FallRisk           *ds.FallRiskRecord  `json:"fall_risk"`
	Exercise           *ds.ExerciseRecord  `json:"exercise"`
	SpiritualEmotional *string             `json:"spiritual_emotional"`
	SpecialConcerns    *string             `json:"special_concerns"`
	Notes              *string             `json:"notes"`
}

func (p *UpdatePayload) apply(log *ds.CareLog) {
	if p == nil {
		return
	}
	if p.Medications != nil {
		log.Medications = *p.Medications
	}
	if p.Meals != nil {
		log.Meals = *p.Meals
	}
	if p.Fluids != nil {
		log.Fluids = *p.Fluids
	}
	if p.WakeTime != nil {
		log.WakeTime = p.WakeTime
	}
	if p.MorningMood != nil {
		log.MorningMood = p.MorningMood
	}
	if p.MorningVitals != nil {
		log.MorningVitals = p.MorningVitals
	}
	if p.AfternoonActivities != nil {
		log.AfternoonActivities = p.AfternoonActivities
	}
	if p.AfternoonVitals != nil {
		log.AfternoonVitals = p.AfternoonVitals
	}
	if p.NapDetails != nil {
		log.NapDetails = p.NapDetails
	}
	if p.EveningMood != nil {
		log.EveningMood = p.EveningMood
	}
	if p.EveningVitals != nil {
		log.EveningVitals = p.EveningVitals
	}
	if p.SleepDetails != nil {
		log.SleepDetails = p.SleepDetails
	}
	if p.Toileting != nil {
		log.Toileting = p.Toileting
	}
	if p.FallRisk != nil {
		log.FallRisk = p.FallRisk
	}
	if p.Exercise != nil {
		log.Exercise = p.Exercise
	}
	if p.SpiritualEmotional != nil {
		log.SpiritualEmotional = p.SpiritualEmotional
	}
	if p.SpecialConcerns != nil {
		log.SpecialConcerns = p.SpecialConcerns
	}
	if p.Notes != nil {
		log.Notes = p.Notes
	}
}
