package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	errorspkg "mazdady-market/internal/types/errors"
)

// sessions live in their own key space, apart from the marketplace blobs
const sessionKeyPrefix = "session:"

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	tokenSecret  string
	baseDuration time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		tokenSecret:  tokenSecret,
		baseDuration: baseDuration,
	}
}

func (sr *SessionRepository) CreateSession(
	ctx context.Context,
	w http.ResponseWriter,
	userID string,
	isAdmin bool,
) (*Session, error) {
	now := time.Now()

	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		IsAdmin:   isAdmin,
		StartTime: now,
		EndTime:   now.Add(sr.baseDuration),
	}

	if err := sr.saveSessionToRedis(ctx, session); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":         userID,
		"is_admin":   isAdmin,
		"iat":        session.StartTime.Unix(),
		"exp":        session.EndTime.Unix(),
		"session_id": session.ID,
	})

	tokenStr, err := token.SignedString([]byte(sr.tokenSecret))
	if err != nil {
		sr.Logger.Error("Failed to sign JWT token", zap.Error(err))
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	response := struct {
		Token string `json:"token"`
	}{
		Token: tokenStr,
	}
	respJSON, err := json.Marshal(response)
	if err != nil {
		sr.Logger.Error("Failed to marshal JSON response", zap.Error(err))
		return nil, fmt.Errorf("error marshaling response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(respJSON); err != nil {
		sr.Logger.Error("Failed to write response", zap.Error(err))
		return nil, fmt.Errorf("error writing response: %w", err)
	}

	sr.Logger.Infof("Session %s created for user %s", session.ID, userID)
	return session, nil
}

func (sr *SessionRepository) CheckSession(r *http.Request) (*Session, error) {
	const bearerPrefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errorspkg.ErrNoAuth
	}
	tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			sr.Logger.Warnf("Unexpected signing method: %v", token.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(sr.tokenSecret), nil
	})
	if err != nil || !token.Valid {
		sr.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, errorspkg.ErrNoAuth
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errorspkg.ErrNoAuth
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		sr.Logger.Warn("Missing session_id claim in JWT")
		return nil, errorspkg.ErrNoAuth
	}

	ctx := r.Context()
	session, err := sr.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.EndTime) {
		_ = sr.RedisClient.Del(ctx, sessionKeyPrefix+sessionID).Err() // nolint:errcheck
		return nil, errorspkg.ErrSessionIsExpired
	}

	return session, nil
}

func (sr *SessionRepository) ExtendSession(ctx context.Context, sessionID string) error {
	session, err := sr.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return err
	}

	session.EndTime = time.Now().Add(sr.baseDuration)

	if err = sr.saveSessionToRedis(ctx, session); err != nil {
		sr.Logger.Error(
			"Failed to update session end time",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return err
	}

	return nil
}

func (sr *SessionRepository) saveSessionToRedis(ctx context.Context, session *Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		sr.Logger.Error(
			"Failed to encode session",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)
		return err
	}

	err = sr.RedisClient.Set(ctx, sessionKeyPrefix+session.ID, sessionJSON, sr.baseDuration).Err()
	if err != nil {
		sr.Logger.Error(
			"Failed to save session to Redis",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)
		return err
	}

	return nil
}

func (sr *SessionRepository) getSessionFromRedis(ctx context.Context, sessionID string) (*Session, error) {
	sessionJSON, err := sr.RedisClient.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorspkg.ErrSessionNotFound
		}
		sr.Logger.Error(
			"Failed to get session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return nil, err
	}

	var session Session
	if err = json.Unmarshal(sessionJSON, &session); err != nil {
		sr.Logger.Error(
			"Failed to decode session",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return nil, err
	}

	return &session, nil
}
