package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestThread(t *testing.T) {
	roots := []Post{{ID: 1}, {ID: 2}}
	replies := []Post{
		{ID: 3, ParentID: ptr(uint(1))},
		{ID: 4, ParentID: ptr(uint(3))},
		{ID: 5, ParentID: ptr(uint(1))},
		{ID: 6, ParentID: ptr(uint(99))},
	}

	threads := Thread(roots, replies)

	require.Len(t, threads, 2)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, uint(3), threads[0].Replies[0].ID)
	assert.Equal(t, uint(5), threads[0].Replies[1].ID)
	require.Len(t, threads[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(4), threads[0].Replies[0].Replies[0].ID)
	assert.Empty(t, threads[1].Replies)
}

func TestAudience(t *testing.T) {
	direct := Direct(5)
	id, ok := direct.UserID()
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)
	assert.False(t, direct.IsBroadcast())
	assert.Equal(t, uint(5), direct.OwnerID())

	broadcast := Broadcast()
	_, ok = broadcast.UserID()
	assert.False(t, ok)
	assert.True(t, broadcast.IsBroadcast())
	assert.Equal(t, uint(0), broadcast.OwnerID())

	b, err := json.Marshal(Notification{Audience: direct})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"audience":{"kind":"direct","userId":5}`)

	b, err = json.Marshal(Notification{Audience: broadcast})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"audience":{"kind":"broadcast"}`)
}
