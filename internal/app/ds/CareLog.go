package ds

import "time"

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

const (
	SectionMorning      = "morning"
	SectionAfternoon    = "afternoon"
	SectionEvening      = "evening"
	SectionDailySummary = "dailySummary"
)

// Sections lists the fixed section names in day order.
var Sections = []string{SectionMorning, SectionAfternoon, SectionEvening, SectionDailySummary}

func ValidSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// SectionCompletion marks one section of a draft as shared with family.
type SectionCompletion struct {
	SubmittedAt time.Time `json:"submitted_at"`
	SubmittedBy uint      `json:"submitted_by"`
}

type CompletedSections map[string]SectionCompletion

type Vitals struct {
	BPSystolic       *int     `json:"bp_systolic,omitempty"`
	BPDiastolic      *int     `json:"bp_diastolic,omitempty"`
	Pulse            *int     `json:"pulse,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
	TakenAt          string   `json:"taken_at,omitempty"`
}

type MedicationEntry struct {
	Name    string `json:"name"`
	Dosage  string `json:"dosage,omitempty"`
	GivenAt string `json:"given_at,omitempty"`
	Given   bool   `json:"given"`
	Notes   string `json:"notes,omitempty"`
}

type MealEntry struct {
	Meal        string `json:"meal"`
	Description string `json:"description,omitempty"`
	AmountEaten string `json:"amount_eaten,omitempty"`
	Time        string `json:"time,omitempty"`
}

type FluidEntry struct {
	Type     string `json:"type"`
	AmountMl int    `json:"amount_ml"`
	Time     string `json:"time,omitempty"`
}

type SleepRecord struct {
	Bedtime string `json:"bedtime,omitempty"`
	WakeUps int    `json:"wake_ups"`
	Quality string `json:"quality,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type ToiletingRecord struct {
	BowelMovements     int    `json:"bowel_movements"`
	UrinationFrequency string `json:"urination_frequency,omitempty"`
	Incontinence       bool   `json:"incontinence"`
	Notes              string `json:"notes,omitempty"`
}

type FallRiskRecord struct {
	Incidents          int    `json:"incidents"`
	NearMisses         int    `json:"near_misses"`
	AssistanceRequired bool   `json:"assistance_required"`
	Notes              string `json:"notes,omitempty"`
}

type ExerciseRecord struct {
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes,omitempty"`
}

// CareLog is one caregiver's daily report for a care recipient. A log stays
// editable while status is draft; final submission freezes it until an admin
// invalidates it back to draft. completedSections can fill in while the log
// is still a draft — that is what drives progressive family visibility.
type CareLog struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	CareRecipientID    uint       `gorm:"not null;index" json:"care_recipient_id"`
	CaregiverID        *uint      `gorm:"index" json:"caregiver_id"`
	LogDate            time.Time  `gorm:"type:date;not null;index" json:"log_date"`
	Status             string     `gorm:"type:varchar(20);not null;default:draft" json:"status"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	InvalidatedAt      *time.Time `json:"invalidated_at"`
	InvalidatedBy      *uint      `json:"invalidated_by"`
	InvalidationReason *string    `gorm:"type:text" json:"invalidation_reason"`

	CompletedSections CompletedSections `gorm:"serializer:json;type:text" json:"completed_sections"`

	// Shared fields: visible to family as soon as any section is submitted.
	Medications []MedicationEntry `gorm:"serializer:json;type:text" json:"medications"`
	Meals       []MealEntry       `gorm:"serializer:json;type:text" json:"meals"`
	Fluids      []FluidEntry      `gorm:"serializer:json;type:text" json:"fluids"`
	PhotoURLs   []string          `gorm:"column:photo_urls;serializer:json;type:text" json:"photo_urls"`

	// Morning section.
	WakeTime      *string `gorm:"type:varchar(10)" json:"wake_time"`
	MorningMood   *string `gorm:"type:varchar(30)" json:"morning_mood"`
	MorningVitals *Vitals `gorm:"serializer:json;type:text" json:"morning_vitals"`

	// Afternoon section.
	AfternoonActivities *string `gorm:"type:text" json:"afternoon_activities"`
	AfternoonVitals     *Vitals `gorm:"serializer:json;type:text" json:"afternoon_vitals"`
	NapDetails          *string `gorm:"type:text" json:"nap_details"`

	// Evening section.
	EveningMood   *string      `gorm:"type:varchar(30)" json:"evening_mood"`
	EveningVitals *Vitals      `gorm:"serializer:json;type:text" json:"evening_vitals"`
	SleepDetails  *SleepRecord `gorm:"serializer:json;type:text" json:"sleep_details"`

	// Daily summary section.
	Toileting          *ToiletingRecord `gorm:"serializer:json;type:text" json:"toileting"`
	FallRisk           *FallRiskRecord  `gorm:"serializer:json;type:text" json:"fall_risk"`
	Exercise           *ExerciseRecord  `gorm:"serializer:json;type:text" json:"exercise"`
	SpiritualEmotional *string          `gorm:"type:text" json:"spiritual_emotional"`
	SpecialConcerns    *string          `gorm:"type:text" json:"special_concerns"`
	Notes              *string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	CareRecipient CareRecipient `gorm:"foreignKey:CareRecipientID" json:"-"`
	Caregiver     *Caregiver    `gorm:"foreignKey:CaregiverID" json:"-"`
}
