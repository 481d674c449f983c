package carelog

import (
	"strings"
	"time"

	"careledger/internal/app/ds"
)

// CreateLog opens a new draft for the recipient, authored by the caregiver.
func (s *Service) CreateLog(caregiverID, recipientID uint, logDate time.Time, payload *UpdatePayload) (*ds.CareLog, error) {
	ok, err := s.CaregiverHasAccess(caregiverID, recipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbidden("caregiver is not assigned to this care recipient")
	}
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}

	log := &ds.CareLog{
		CareRecipientID:   recipientID,
		CaregiverID:       &caregiverID,
		LogDate:           logDate,
		Status:            ds.StatusDraft,
		CompletedSections: ds.CompletedSections{},
	}
	payload.apply(log)

	if err := s.repo.CreateCareLog(log); err != nil {
		return nil, Internal(err)
	}

	s.recordAudit(&ds.AuditEntry{
		CareLogID:     log.ID,
		ChangedBy:     caregiverID,
		ChangedByType: ds.ChangedByCaregiver,
		ChangedByName: s.caregiverName(caregiverID),
		Action:        ds.ActionCreate,
		Snapshot:      log,
	})

	return log, nil
}

// UpdateLog applies a partial edit to a draft. Edits to submitted logs are
// rejected so family readers get a stability guarantee after finalization.
func (s *Service) UpdateLog(caregiverID, logID uint, payload *UpdatePayload) (*ds.CareLog, error) {
	log, err := s.requireCaregiverOwnership(caregiverID, logID)
	if err != nil {
		return nil, err
	}
	if log.Status != ds.StatusDraft {
		return nil, InvalidState(ds.StatusDraft, log.Status)
	}
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}

	updated := *log
	payload.apply(&updated)

	changes := ComputeChanges(*log, updated, TrackedFields)
	if len(changes) == 0 {
		return log, nil
	}

	columns := make([]string, 0, len(changes))
	for field := range changes {
		columns = append(columns, field)
	}
	rows, err := s.repo.SaveDraft(&updated, columns)
	if err != nil {
		return nil, Internal(err)
	}
	if rows == 0 {
		return nil, InvalidState(ds.StatusDraft, ds.StatusSubmitted)
	}

	s.recordAudit(&ds.AuditEntry{
		CareLogID:     logID,
		ChangedBy:     caregiverID,
		ChangedByType: ds.ChangedByCaregiver,
		ChangedByName: s.caregiverName(caregiverID),
		Action:        ds.ActionUpdate,
		Changes:       changes,
	})

	return s.reload(logID)
}

// SubmitLog finalizes a draft. Not idempotent: submitting an already
// submitted log is an InvalidState rejection, not a no-op.
func (s *Service) SubmitLog(caregiverID, logID uint) (*ds.CareLog, error) {
	log, err := s.requireCaregiverOwnership(caregiverID, logID)
	if err != nil {
		return nil, err
	}
	if log.Status != ds.StatusDraft {
		return nil, InvalidState(ds.StatusDraft, log.Status)
	}

	rows, err := s.repo.SetSubmitted(logID, s.now())
	if err != nil {
		return nil, Internal(err)
	}
	if rows == 0 {
		return nil, InvalidState(ds.StatusDraft, ds.StatusSubmitted)
	}

	s.recordAudit(&ds.AuditEntry{
		CareLogID:     logID,
		ChangedBy:     caregiverID,
		ChangedByType: ds.ChangedByCaregiver,
		ChangedByName: s.caregiverName(caregiverID),
		Action:        ds.ActionSubmit,
	})

	return s.reload(logID)
}

// InvalidateLog is the one backward transition: an admin re-opens a
// submitted log for caregiver edits, with a mandatory reason. Completed
// sections are kept, so already-shared content stays visible until the
// caregiver overwrites it.
func (s *Service) InvalidateLog(userID, logID uint, reason string) (*ds.CareLog, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, Validation(map[string]string{"reason": "a non-empty reason is required"})
	}
	log, err := s.repo.GetCareLogByID(logID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return nil, NotFound("care log not found")
		}
		return nil, Internal(err)
	}
	ok, err := s.CanManageCaregivers(userID, log.CareRecipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbidden("only the recipient's admin owner can invalidate a log")
	}
	if log.Status != ds.StatusSubmitted {
		return nil, InvalidState(ds.StatusSubmitted, log.Status)
	}

	rows, err := s.repo.SetInvalidated(logID, userID, reason, s.now())
	if err != nil {
		return nil, Internal(err)
	}
	if rows == 0 {
		return nil, InvalidState(ds.StatusSubmitted, ds.StatusDraft)
	}

	s.log.WithField("care_log_id", logID).
		WithField("invalidated_by", s.userName(userID)).
		Info("care log invalidated, back to draft")

	return s.reload(logID)
}

// AttachPhoto appends an uploaded photo URL to a draft. Photos count as a
// shared field for visibility.
func (s *Service) AttachPhoto(caregiverID, logID uint, photoURL string) (*ds.CareLog, error) {
	log, err := s.requireCaregiverOwnership(caregiverID, logID)
	if err != nil {
		return nil, err
	}
	if log.Status != ds.StatusDraft {
		return nil, InvalidState(ds.StatusDraft, log.Status)
	}

	updated := *log
	updated.PhotoURLs = append(append([]string{}, log.PhotoURLs...), photoURL)

	changes := ComputeChanges(*log, updated, []string{"photo_urls"})
	rows, err := s.repo.SaveDraft(&updated, []string{"photo_urls"})
	if err != nil {
		return nil, Internal(err)
	}
	if rows == 0 {
		return nil, InvalidState(ds.StatusDraft, ds.StatusSubmitted)
	}

	s.recordAudit(&ds.AuditEntry{
		CareLogID:     logID,
		ChangedBy:     caregiverID,
		ChangedByType: ds.ChangedByCaregiver,
		ChangedByName: s.caregiverName(caregiverID),
		Action:        ds.ActionUpdate,
		Changes:       changes,
	})

	return s.reload(logID)
}

// RemovePhoto drops a previously attached photo URL from a draft. Removing a
// URL the log does not carry is a no-op.
func (s *Service) RemovePhoto(caregiverID, logID uint, photoURL string) (*ds.CareLog, error) {
	log, err := s.requireCaregiverOwnership(caregiverID, logID)
	if err != nil {
		return nil, err
	}
	if log.Status != ds.StatusDraft {
		return nil, InvalidState(ds.StatusDraft, log.Status)
	}

	updated := *log
	updated.PhotoURLs = make([]string, 0, len(log.PhotoURLs))
	for _, u := range log.PhotoURLs {
		if u != photoURL {
			updated.PhotoURLs = append(updated.PhotoURLs, u)
		}
	}
	if len(updated.PhotoURLs) == len(log.PhotoURLs) {
		return log, nil
	}

	changes := ComputeChanges(*log, updated, []string{"photo_urls"})
	rows, err := s.repo.SaveDraft(&updated, []string{"photo_urls"})
	if err != nil {
		return nil, Internal(err)
	}
	if rows == 0 {
		return nil, InvalidState(ds.StatusDraft, ds.StatusSubmitted)
	}

	s.recordAudit(&ds.AuditEntry{
		CareLogID:     logID,
		ChangedBy:     caregiverID,
		ChangedByType: ds.ChangedByCaregiver,
		ChangedByName: s.caregiverName(caregiverID),
		Action:        ds.ActionUpdate,
		Changes:       changes,
	})

	return s.reload(logID)
}

func (s *Service) reload(logID uint) (*ds.CareLog, error) {
	log, err := s.repo.GetCareLogByID(logID)
	if err != nil {
		return nil, Internal(err)
	}
	return log, nil
}
