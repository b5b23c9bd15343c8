package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type sessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *sessionStore {
	return &sessionStore{client: client}
}

// sessionKey is the single keying scheme for refresh sessions. Login, refresh,
// and logout all derive the key the same way; at most one live session exists
// per user, and a second login overwrites the first.
func sessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("refreshToken:%s", userID)
}

func (s *sessionStore) Put(ctx context.Context, userID uuid.UUID, session *domain.RefreshSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(userID), data, ttl).Err()
}

func (s *sessionStore) Get(ctx context.Context, userID uuid.UUID) (*domain.RefreshSession, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.RefreshSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *sessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}
