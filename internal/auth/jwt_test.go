package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/auth"
)

func TestIssueAndParse(t *testing.T) {
	m := auth.NewTokenManager("secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRejectsExpired(t *testing.T) {
	m := auth.NewTokenManager("secret", -time.Minute)

	token, err := m.Issue(42)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := auth.NewTokenManager("secret", time.Hour)

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
