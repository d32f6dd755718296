// utils/session_cache.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/viva4all/viva4all_backend/models"
)

const (
	authUserKeyPrefix = "authUser:"
	userDataKeyPrefix = "userData:"
	sessionTTL        = 30 * 24 * time.Hour
)

// ErrCorruptCache is returned when a mirrored session or profile cannot be
// decoded. The caller must treat it as a forced re-login; the bad entries
// are already cleared when it is returned.
var ErrCorruptCache = errors.New("corrupt session cache")

// StoreSession mirrors the session and profile to Redis so a client can
// rehydrate before its own auth listener resolves.
func StoreSession(ctx context.Context, rdb *redis.Client, session *models.AuthSession, user *models.User) error {
	if rdb == nil {
		return nil
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return err
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := rdb.Pipeline()
	pipe.Set(ctx, authUserKeyPrefix+session.UserID, sessionJSON, sessionTTL)
	pipe.Set(ctx, userDataKeyPrefix+session.UserID, userJSON, sessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadSession reads the mirrored session and profile back. A missing entry
// returns nils; a malformed entry clears the mirror and returns
// ErrCorruptCache.
func LoadSession(ctx context.Context, rdb *redis.Client, userID string) (*models.AuthSession, *models.User, error) {
	if rdb == nil {
		return nil, nil, nil
	}

	sessionJSON, err := rdb.Get(ctx, authUserKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	userJSON, err := rdb.Get(ctx, userDataKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var session models.AuthSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		ClearSession(ctx, rdb, userID)
		return nil, nil, ErrCorruptCache
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		ClearSession(ctx, rdb, userID)
		return nil, nil, ErrCorruptCache
	}

	return &session, &user, nil
}

// ClearSession removes the mirrored session and profile
func ClearSession(ctx context.Context, rdb *redis.Client, userID string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, authUserKeyPrefix+userID, userDataKeyPrefix+userID)
}
