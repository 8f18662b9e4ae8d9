package domain

// Authorize is the single ownership rule used across resources: the actor may
// act when it owns the resource or holds at least the given role. An ownerID of
// zero means there is no owner, so only the role can grant access.
func Authorize(actor User, ownerID uint, role Role) error {
	if ownerID != 0 && actor.ID == ownerID {
		return nil
	}
	if actor.Role.AtLeast(role) {
		return nil
	}

	return ErrAccessDenied
}
