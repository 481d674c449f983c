package carelog

import (
	"sort"
	"time"
)

// MarkViewed upserts the caller's watermark on the log: created on first
// view, viewed_at overwritten on every later one.
func (s *Service) MarkViewed(userID, logID uint) error {
	if _, err := s.requireFamilyAccess(userID, logID); err != nil {
		return err
	}
	if err := s.repo.UpsertViewRecord(logID, userID, s.now()); err != nil {
		return Internal(err)
	}
	return nil
}

// HasUnviewedChanges reports whether anything happened to the log since the
// user last looked. A never-viewed log with any audit history counts as
// unviewed by definition.
func (s *Service) HasUnviewedChanges(userID, logID uint) (bool, error) {
	has, _, err := s.unviewed(userID, logID)
	return has, err
}

// ChangedFields names what changed since the user's last view: the union of
// diffed field names across unviewed entries, plus the section name of any
// unviewed section submission (the section stands in for "this whole section
// is new since you looked").
func (s *Service) ChangedFields(userID, logID uint) ([]string, error) {
	_, fields, err := s.unviewed(userID, logID)
	return fields, err
}

func (s *Service) unviewed(userID, logID uint) (bool, []string, error) {
	entries, err := s.repo.ListAuditEntriesAsc(logID)
	if err != nil {
		return false, nil, Internal(err)
	}
	view, err := s.repo.GetViewRecord(logID, userID)
	if err != nil {
		return false, nil, Internal(err)
	}

	fieldSet := map[string]struct{}{}
	count := 0
	for _, entry := range entries {
		if view != nil && !afterAtSecond(entry.CreatedAt, view.ViewedAt) {
			continue
		}
		count++
		for field := range entry.Changes {
			fieldSet[field] = struct{}{}
		}
		if entry.SectionSubmitted != nil {
			fieldSet[*entry.SectionSubmitted] = struct{}{}
		}
	}

	fields := make([]string, 0, len(fieldSet))
	for field := range fieldSet {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return count > 0, fields, nil
}

// afterAtSecond compares at second resolution, matching the storage layer's
// coarsest timestamp precision. An edit and a view inside the same second
// compare equal and the edit counts as seen; callers needing strict ordering
// must separate the two by more than a second.
func afterAtSecond(entryAt, viewedAt time.Time) bool {
	return entryAt.Truncate(time.Second).After(viewedAt.Truncate(time.Second))
}
