package carelog

import (
	"careledger/internal/app/ds"
)

// Access predicates. Each is a pure read against current state with no
// caching: a revoked grant or deactivated caregiver must be refused on the
// very next call.

// CanAccessCareRecipient is true for the recipient's admin owner and for any
// user holding an active (non-revoked) grant.
func (s *Service) CanAccessCareRecipient(userID, recipientID uint) (bool, error) {
	rec, err := s.repo.GetCareRecipientByID(recipientID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return false, nil
		}
		return false, Internal(err)
	}
	if rec.AdminUserID == userID {
		return true, nil
	}
	ok, err := s.repo.HasActiveGrant(recipientID, userID)
	if err != nil {
		return false, Internal(err)
	}
	return ok, nil
}

// CanManageCaregivers requires admin role plus ownership. Grants confer read
// access only, never caregiver management.
func (s *Service) CanManageCaregivers(userID, recipientID uint) (bool, error) {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return false, nil
		}
		return false, Internal(err)
	}
	if u.Role != ds.RoleAdmin {
		return false, nil
	}
	rec, err := s.repo.GetCareRecipientByID(recipientID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return false, nil
		}
		return false, Internal(err)
	}
	return rec.AdminUserID == userID, nil
}

// CanInvalidateCareLog resolves the log's recipient and requires admin
// ownership of it.
func (s *Service) CanInvalidateCareLog(userID, logID uint) (bool, error) {
	log, err := s.repo.GetCareLogByID(logID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return false, nil
		}
		return false, Internal(err)
	}
	return s.CanManageCaregivers(userID, log.CareRecipientID)
}

// CaregiverOwnsCareLog gates edit and submit paths: a caregiver may not touch
// another caregiver's draft even for the same recipient.
func (s *Service) CaregiverOwnsCareLog(caregiverID, logID uint) (bool, error) {
	log, err := s.repo.GetCareLogByID(logID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return false, nil
		}
		return false, Internal(err)
	}
	return log.CaregiverID != nil && *log.CaregiverID == caregiverID, nil
}

// CaregiverHasAccess is true iff the caregiver is active and assigned to the
// recipient.
func (s *Service) CaregiverHasAccess(caregiverID, recipientID uint) (bool, error) {
	c, err := s.repo.GetCaregiverByID(caregiverID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return false, nil
		}
		return false, Internal(err)
	}
	return c.IsActive && c.CareRecipientID == recipientID, nil
}

// AccessibleCareRecipients lists owned recipients for an admin, granted ones
// for a member, nothing otherwise.
func (s *Service) AccessibleCareRecipients(userID uint) ([]ds.CareRecipient, error) {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return []ds.CareRecipient{}, nil
		}
		return nil, Internal(err)
	}
	switch u.Role {
	case ds.RoleAdmin:
		recipients, err := s.repo.ListRecipientsOwnedBy(userID)
		if err != nil {
			return nil, Internal(err)
		}
		return recipients, nil
	case ds.RoleMember:
		recipients, err := s.repo.ListRecipientsGrantedTo(userID)
		if err != nil {
			return nil, Internal(err)
		}
		return recipients, nil
	}
	return []ds.CareRecipient{}, nil
}

// requireFamilyAccess loads the log and checks the family principal may read
// it, returning the log on success.
func (s *Service) requireFamilyAccess(userID, logID uint) (*ds.CareLog, error) {
	log, err := s.repo.GetCareLogByID(logID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return nil, NotFound("care log not found")
		}
		return nil, Internal(err)
	}
	ok, err := s.CanAccessCareRecipient(userID, log.CareRecipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbidden("no access to this care recipient")
	}
	return log, nil
}

// requireCaregiverOwnership loads the log and checks the caregiver owns it.
func (s *Service) requireCaregiverOwnership(caregiverID, logID uint) (*ds.CareLog, error) {
	log, err := s.repo.GetCareLogByID(logID)
	if err != nil {
		if s.repo.IsNotFound(err) {
			return nil, NotFound("care log not found")
		}
		return nil, Internal(err)
	}
	if log.CaregiverID == nil || *log.CaregiverID != caregiverID {
		return nil, Forbidden("care log belongs to another caregiver")
	}
	return log, nil
}
