package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viva4all/viva4all_backend/models"
)

// Without a Redis connection the mirror is a no-op, never an error.
func TestSessionCacheWithoutRedis(t *testing.T) {
	ctx := context.Background()

	err := StoreSession(ctx, nil, &models.AuthSession{UserID: "abc"}, &models.User{})
	assert.NoError(t, err)

	session, user, err := LoadSession(ctx, nil, "abc")
	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)

	ClearSession(ctx, nil, "abc")
}
