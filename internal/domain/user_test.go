package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_TrimsWhitespace(t *testing.T) {
	req := require.New(t)

	u, err := NewUser("  alice  ")
	req.NoError(err)
	req.Equal("alice", u.Username)
}

func TestNewUser_RejectsEmpty(t *testing.T) {
	req := require.New(t)

	_, err := NewUser("   ")
	req.ErrorIs(err, ErrUsernameEmpty)

	_, err = NewUser("")
	req.ErrorIs(err, ErrUsernameEmpty)
}

func TestNewUser_RejectsTooLong(t *testing.T) {
	req := require.New(t)

	_, err := NewUser(strings.Repeat("a", MaxUsernameLen+1))
	req.ErrorIs(err, ErrUsernameTooLong)
}

func TestNewRoomID(t *testing.T) {
	req := require.New(t)

	id, err := NewRoomID(" r1 ")
	req.NoError(err)
	req.Equal(RoomID("r1"), id)

	_, err = NewRoomID(" ")
	req.ErrorIs(err, ErrRoomIDEmpty)

	_, err = NewRoomID(strings.Repeat("r", MaxRoomIDLen+1))
	req.ErrorIs(err, ErrRoomIDTooLong)
}
