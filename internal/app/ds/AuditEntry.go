package ds

import "time"

const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionSubmit        = "submit"
	ActionSubmitSection = "submit_section"
)

const (
	ChangedByCaregiver = "caregiver"
	ChangedByUser      = "user"
)

// FieldChange is one field's old/new pair inside an update diff.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// AuditEntry is an append-only record of one mutation to a care log. Entries
// are never updated or deleted.
type AuditEntry struct {
	ID               uint                   `gorm:"primaryKey" json:"id"`
	CareLogID        uint                   `gorm:"not null;index" json:"care_log_id"`
	ChangedBy        uint                   `gorm:"not null" json:"changed_by"`
	ChangedByType    string                 `gorm:"type:varchar(20);not null" json:"changed_by_type"`
	ChangedByName    string                 `gorm:"type:varchar(100)" json:"changed_by_name"`
	Action           string                 `gorm:"type:varchar(20);not null" json:"action"`
	SectionSubmitted *string                `gorm:"type:varchar(20)" json:"section_submitted"`
	Changes          map[string]FieldChange `gorm:"serializer:json;type:text" json:"changes"`
	Snapshot         *CareLog               `gorm:"serializer:json;type:text" json:"snapshot,omitempty"`
	CreatedAt        time.Time              `gorm:"not null;index" json:"created_at"`
}
