package carelog

import (
	"time"

	"careledger/internal/app/ds"
)

// LogView is the family-facing read model: the filtered projection plus the
// caller's unviewed-changes summary.
type LogView struct {
	Log                ds.CareLog `json:"log"`
	HasUnviewedChanges bool       `json:"has_unviewed_changes"`
	ChangedFields      []string   `json:"changed_fields"`
}

// LogsForRecipient returns the recipient's visible logs for a family
// principal: submitted ones plus drafts with at least one completed section,
// each reduced to its visible projection.
func (s *Service) LogsForRecipient(userID, recipientID uint) ([]ds.CareLog, error) {
	ok, err := s.CanAccessCareRecipient(userID, recipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbidden("no access to this care recipient")
	}
	logs, err := s.repo.ListVisibleLogs(recipientID)
	if err != nil {
		return nil, Internal(err)
	}
	filtered := make([]ds.CareLog, 0, len(logs))
	for _, log := range logs {
		filtered = append(filtered, FilterByCompletedSections(log))
	}
	return filtered, nil
}

// FamilyLog returns one log's filtered projection together with the
// caller's watermark comparison.
func (s *Service) FamilyLog(userID, logID uint) (*LogView, error) {
	log, err := s.requireFamilyAccess(userID, logID)
	if err != nil {
		return nil, err
	}
	has, fields, err := s.unviewed(userID, logID)
	if err != nil {
		return nil, err
	}
	return &LogView{
		Log:                FilterByCompletedSections(*log),
		HasUnviewedChanges: has,
		ChangedFields:      fields,
	}, nil
}

// History returns the log's audit trail, most recent first.
func (s *Service) History(userID, logID uint) ([]ds.AuditEntry, error) {
	log, err := s.requireFamilyAccess(userID, logID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListAuditEntries(log.ID)
	if err != nil {
		return nil, Internal(err)
	}
	return entries, nil
}

// CaregiverLog returns the raw, unfiltered log to its owning caregiver.
func (s *Service) CaregiverLog(caregiverID, logID uint) (*ds.CareLog, error) {
	return s.requireCaregiverOwnership(caregiverID, logID)
}

// CaregiverLogs lists the caregiver's own logs, unfiltered.
func (s *Service) CaregiverLogs(caregiverID uint) ([]ds.CareLog, error) {
	logs, err := s.repo.ListLogsByCaregiver(caregiverID)
	if err != nil {
		return nil, Internal(err)
	}
	return logs, nil
}

// DraftForDate finds the caregiver's open draft for a recipient and date, so
// a client reopening mid-shift can resume it instead of creating a second one.
func (s *Service) DraftForDate(caregiverID, recipientID uint, date time.Time) (*ds.CareLog, error) {
	ok, err := s.CaregiverHasAccess(caregiverID, recipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbidden("caregiver is not assigned to this care recipient")
	}
	log, err := s.repo.GetDraftLog(recipientID, caregiverID, date)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return nil, NotFound("no draft for this date")
		}
		return nil, Internal(err)
	}
	return log, nil
}
