package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	owner := User{ID: 1, Role: RoleUser}
	stranger := User{ID: 2, Role: RoleUser}
	organizer := User{ID: 3, Role: RoleOrganizer}
	admin := User{ID: 4, Role: RoleAdmin}

	tests := []struct {
		name    string
		actor   User
		ownerID uint
		role    Role
		wantErr error
	}{
		{"owner", owner, 1, RoleAdmin, nil},
		{"stranger", stranger, 1, RoleAdmin, ErrAccessDenied},
		{"organizer is not admin", organizer, 1, RoleAdmin, ErrAccessDenied},
		{"admin", admin, 1, RoleAdmin, nil},
		{"organizer role without owner", organizer, 0, RoleOrganizer, nil},
		{"admin satisfies organizer", admin, 0, RoleOrganizer, nil},
		{"user lacks organizer", owner, 0, RoleOrganizer, ErrAccessDenied},
		{"zero owner never matches", User{}, 0, RoleAdmin, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.ownerID, tt.role)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestEvent_VisibleTo(t *testing.T) {
	organizer := User{ID: 1, Role: RoleOrganizer}
	other := User{ID: 2, Role: RoleOrganizer}
	admin := User{ID: 3, Role: RoleAdmin}

	public := Event{OrganizerID: 1, Privacy: PrivacyPublic}
	private := Event{OrganizerID: 1, Privacy: PrivacyPrivate}
	inviteOnly := Event{OrganizerID: 1, Privacy: PrivacyInviteOnly}

	assert.True(t, public.VisibleTo(nil))
	assert.False(t, private.VisibleTo(nil))
	assert.False(t, inviteOnly.VisibleTo(nil))
	assert.True(t, private.VisibleTo(&organizer))
	assert.False(t, private.VisibleTo(&other))
	assert.False(t, inviteOnly.VisibleTo(&other))
	assert.True(t, inviteOnly.VisibleTo(&admin))
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleOrganizer))
	assert.True(t, RoleOrganizer.AtLeast(RoleOrganizer))
	assert.False(t, RoleUser.AtLeast(RoleOrganizer))
	assert.False(t, Role("root").AtLeast(RoleUser))
	assert.False(t, Role("root").Valid())
}
