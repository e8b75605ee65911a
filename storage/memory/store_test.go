package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerCannotJoinEmptyRoom(t *testing.T) {
	ms := NewMemStore()

	others, err := ms.Join("v1", "ghijkl", false)
	require.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, others)
	assert.Empty(t, ms.MembersOf("ghijkl"))

	roomID, remaining := ms.Leave("v1")
	assert.Empty(t, roomID)
	assert.Empty(t, remaining)
}

func TestPresenterCreatesRoom(t *testing.T) {
	ms := NewMemStore()

	others, err := ms.Join("p1", "abcdef", true)
	require.NoError(t, err)
	assert.Empty(t, others)
	assert.Equal(t, []string{"p1"}, ms.MembersOf("abcdef"))

	others, err = ms.Join("v1", "abcdef", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, others)
	assert.ElementsMatch(t, []string{"p1", "v1"}, ms.MembersOf("abcdef"))
}

func TestSecondPresenterRejected(t *testing.T) {
	ms := NewMemStore()

	_, err := ms.Join("p1", "abcdef", true)
	require.NoError(t, err)

	_, err = ms.Join("p2", "abcdef", true)
	require.ErrorIs(t, err, ErrPresenterTaken)
	assert.Equal(t, []string{"p1"}, ms.MembersOf("abcdef"))
}

func TestPresenterSlotFreedOnLeave(t *testing.T) {
	ms := NewMemStore()

	_, err := ms.Join("p1", "abcdef", true)
	require.NoError(t, err)
	_, err = ms.Join("v1", "abcdef", false)
	require.NoError(t, err)

	roomID, remaining := ms.Leave("p1")
	assert.Equal(t, "abcdef", roomID)
	assert.Equal(t, []string{"v1"}, remaining)

	// room is kept alive by the viewer, slot is reclaimable
	others, err := ms.Join("p2", "abcdef", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, others)
}

func TestSessionJoinsAtMostOneRoom(t *testing.T) {
	ms := NewMemStore()

	_, err := ms.Join("p1", "room-a", true)
	require.NoError(t, err)

	_, err = ms.Join("p1", "room-b", true)
	require.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Empty(t, ms.MembersOf("room-b"))

	_, err = ms.Join("p1", "room-a", false)
	require.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Equal(t, []string{"p1"}, ms.MembersOf("room-a"))
}

func TestViewerMembershipIsDistinct(t *testing.T) {
	ms := NewMemStore()

	_, err := ms.Join("p1", "abcdef", true)
	require.NoError(t, err)

	const viewers = 5
	want := []string{"p1"}
	for i := 0; i < viewers; i++ {
		viewer := fmt.Sprintf("v%d", i)
		others, errJ := ms.Join(viewer, "abcdef", false)
		require.NoError(t, errJ)
		assert.ElementsMatch(t, want, others)
		want = append(want, viewer)
	}
	assert.Len(t, ms.MembersOf("abcdef"), viewers+1)
	assert.ElementsMatch(t, want, ms.MembersOf("abcdef"))
}

func TestRoomDeletedWhenEmpty(t *testing.T) {
	ms := NewMemStore()

	_, err := ms.Join("p1", "abcdef", true)
	require.NoError(t, err)

	roomID, remaining := ms.Leave("p1")
	assert.Equal(t, "abcdef", roomID)
	assert.Empty(t, remaining)
	assert.Empty(t, ms.MembersOf("abcdef"))

	// empty equals nonexistent: viewers are rejected again
	_, err = ms.Join("v1", "abcdef", false)
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLeaveIsIdempotent(t *testing.T) {
	ms := NewMemStore()

	_, err := ms.Join("p1", "abcdef", true)
	require.NoError(t, err)
	_, err = ms.Join("v1", "abcdef", false)
	require.NoError(t, err)

	roomID, remaining := ms.Leave("v1")
	assert.Equal(t, "abcdef", roomID)
	assert.Equal(t, []string{"p1"}, remaining)

	roomID, remaining = ms.Leave("v1")
	assert.Empty(t, roomID)
	assert.Empty(t, remaining)
	assert.Equal(t, []string{"p1"}, ms.MembersOf("abcdef"))
}
