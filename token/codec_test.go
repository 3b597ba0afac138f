package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return NewCodec(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestCodecRoundTrip(t *testing.T) {
	codec := newTestCodec()

	access, err := codec.IssueAccess("user-1", "sess-1")
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh("user-1", "sess-1")
	require.NoError(t, err)

	claims, err := codec.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)

	claims, err = codec.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestCodecCrossSecretRejection(t *testing.T) {
	codec := newTestCodec()

	access, err := codec.IssueAccess("user-1", "sess-1")
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh("user-1", "sess-1")
	require.NoError(t, err)

	// An access credential must never pass refresh verification, and
	// vice versa.
	_, err = codec.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = codec.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestCodecExpiry(t *testing.T) {
	now := time.Now()
	codec := newTestCodec().WithClock(func() time.Time { return now })

	access, err := codec.IssueAccess("user-1", "sess-1")
	require.NoError(t, err)

	// Still valid just inside the window.
	now = now.Add(14 * time.Minute)
	_, err = codec.VerifyAccess(access)
	require.NoError(t, err)

	// Expired past it.
	now = now.Add(2 * time.Minute)
	_, err = codec.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrExpiredCredential)
}

func TestCodecTamperedCredential(t *testing.T) {
	codec := newTestCodec()

	other := NewCodec([]byte("wrong"), []byte("wrong"), time.Minute, time.Minute)
	forged, err := other.IssueAccess("user-1", "sess-1")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(forged)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = codec.VerifyAccess("not-a-credential")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = codec.VerifyAccess("")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestCodecRejectsEmptySubject(t *testing.T) {
	codec := newTestCodec()

	cred, err := codec.IssueAccess("", "")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(cred)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
