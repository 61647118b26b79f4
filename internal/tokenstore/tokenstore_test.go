package tokenstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := Open(path)
	require.NoError(t, err)

	assert.Empty(t, s.ClaimToken("my-board-ab12"))

	require.NoError(t, s.SaveClaimToken("my-board-ab12", "fb_claim_abc"))
	assert.Equal(t, "fb_claim_abc", s.ClaimToken("my-board-ab12"))

	// survives reopen
	s2, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "fb_claim_abc", s2.ClaimToken("my-board-ab12"))

	require.NoError(t, s2.DeleteClaimToken("my-board-ab12"))
	assert.Empty(t, s2.ClaimToken("my-board-ab12"))
}

func TestVerifiedEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := Open(path)
	require.NoError(t, err)

	assert.Empty(t, s.VerifiedEmail())

	require.NoError(t, s.SaveVerifiedEmail("user@example.com", time.Now().Add(time.Hour)))
	assert.Equal(t, "user@example.com", s.VerifiedEmail())

	// expired slot reads as empty and is cleared
	require.NoError(t, s.SaveVerifiedEmail("user@example.com", time.Now().Add(-time.Second)))
	assert.Empty(t, s.VerifiedEmail())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s2.VerifiedEmail())
}

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nested", "dir", "tokens.json"))
	require.NoError(t, err)
	require.NoError(t, s.SaveClaimToken("slug", "token"))
}
