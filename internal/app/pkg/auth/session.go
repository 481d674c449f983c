package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionData is a family-user session.
type SessionData struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// CaregiverSessionData is a PIN-authenticated caregiver session.
type CaregiverSessionData struct {
	CaregiverID     uint   `json:"caregiver_id"`
	Name            string `json:"name"`
	CareRecipientID uint   `json:"care_recipient_id"`
}

// SessionService keeps both session kinds in Redis under distinct key
// prefixes, each with its own TTL, extended on use.
type SessionService struct {
	client       *redis.Client
	ttl          time.Duration
	caregiverTTL time.Duration
}

func NewSessionService(host string, port int, password string, db int) (*SessionService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &SessionService{
		client:       client,
		ttl:          24 * time.Hour,
		caregiverTTL: 12 * time.Hour,
	}, nil
}

func (s *SessionService) Create(ctx context.Context, sessionID string, data SessionData) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "session:"+sessionID, jsonData, s.ttl).Err()
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := s.client.Get(ctx, "session:"+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, "session:"+sessionID).Err()
}

func (s *SessionService) Extend(ctx context.Context, sessionID string) error {
	return s.client.Expire(ctx, "session:"+sessionID, s.ttl).Err()
}

func (s *SessionService) CreateCaregiver(ctx context.Context, token string, data CaregiverSessionData) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "caregiver_session:"+token, jsonData, s.caregiverTTL).Err()
}

func (s *SessionService) GetCaregiver(ctx context.Context, token string) (*CaregiverSessionData, error) {
	val, err := s.client.Get(ctx, "caregiver_session:"+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data CaregiverSessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SessionService) DeleteCaregiver(ctx context.Context, token string) error {
	return s.client.Del(ctx, "caregiver_session:"+token).Err()
}

func (s *SessionService) ExtendCaregiver(ctx context.Context, token string) error {
	return s.client.Expire(ctx, "caregiver_session:"+token, s.caregiverTTL).Err()
}

func (s *SessionService) Close() error {
	return s.client.Close()
}
