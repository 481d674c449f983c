package carelog

import (
	"encoding/json"

	"careledger/internal/app/ds"
)

// snapshotFields flattens a log to json-name → serialized-value, so that
// structurally equal objects and arrays compare equal regardless of pointer
// identity.
func snapshotFields(log ds.CareLog) map[string]json.RawMessage {
	b, err := json.Marshal(log)
	if err != nil {
		return map[string]json.RawMessage{}
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]json.RawMessage{}
	}
	return m
}

// ComputeChanges diffs two snapshots over the fixed tracked-field list.
// Only fields whose serialized forms differ and whose new value is defined
// are recorded; a field a partial update never mentioned is not a change to
// undefined. Nested records compare by full-value equality, not deep merge.
func ComputeChanges(oldLog, newLog ds.CareLog, tracked []string) map[string]ds.FieldChange {
	oldFields := snapshotFields(oldLog)
	newFields := snapshotFields(newLog)

	changes := map[string]ds.FieldChange{}
	for _, field := range tracked {
		newRaw, ok := newFields[field]
		if !ok || string(newRaw) == "null" {
			continue
		}
		oldRaw := oldFields[field]
		if string(oldRaw) == string(newRaw) {
			continue
		}
		var oldVal, newVal interface{}
		if len(oldRaw) > 0 {
			_ = json.Unmarshal(oldRaw, &oldVal)
		}
		_ = json.Unmarshal(newRaw, &newVal)
		changes[field] = ds.FieldChange{Old: oldVal, New: newVal}
	}
	return changes
}

// recordAudit appends best-effort: a failed audit write is logged and
// swallowed so it can never fail or roll back the primary mutation.
func (s *Service) recordAudit(entry *ds.AuditEntry) {
	entry.CreatedAt = s.now()
	if err := s.repo.CreateAuditEntry(entry); err != nil {
		s.log.WithError(err).
			WithField("care_log_id", entry.CareLogID).
			WithField("action", entry.Action).
			Error("audit write failed, continuing")
	}
}

func (s *Service) caregiverName(caregiverID uint) string {
	c, err := s.repo.GetCaregiverByID(caregiverID)
	if err != nil {
		return ""
	}
	return c.Name
}

func (s *Service) userName(userID uint) string {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return ""
	}
	return u.Name
}
