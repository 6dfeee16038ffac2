package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
)

const defaultKeyPrefix = "qr"

// RedisSessionStore keeps scan sessions as JSON strings under
// "<prefix>:session:<id>" with a TTL equal to their remaining lifetime. A
// sorted set scored by expiry lets Sweep account for sessions Redis expired.
type RedisSessionStore struct {
	client *redis.Client
	random qrService.RandomSource
	maxAge time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisSessionStore creates a store on an already connected client.
func NewRedisSessionStore(
	client *redis.Client,
	random qrService.RandomSource,
	maxAge time.Duration,
) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		random: random,
		maxAge: maxAge,
		prefix: defaultKeyPrefix,
		now:    time.Now,
	}
}

func (s *RedisSessionStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, sessionID)
}

func (s *RedisSessionStore) indexKey() string {
	return fmt.Sprintf("%s:sessions:expiry", s.prefix)
}

// Redeem stores a new session with SET NX so an id collision never
// overwrites a live session.
func (s *RedisSessionStore) Redeem(
	ctx context.Context,
	payload *qrDomain.SessionPayload,
	subject string,
) (string, error) {
	if payload == nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "session payload is required")
	}

	now := s.now()
	ttl := s.maxAge - payload.Age(now)
	if ttl <= 0 {
		return "", qrDomain.ErrTokenExpired
	}
	expiresAt := payload.IssuedAtMillis + s.maxAge.Milliseconds()

	for range maxIDAttempts {
		id, err := s.random.SessionID()
		if err != nil {
			return "", err
		}

		data, err := json.Marshal(&qrDomain.ScanSession{
			ID:        id,
			Subject:   subject,
			Payload:   payload,
			CreatedAt: now.UTC(),
		})
		if err != nil {
			return "", fmt.Errorf("failed to marshal scan session: %w", err)
		}

		stored, err := s.client.SetNX(ctx, s.sessionKey(id), data, ttl).Result()
		if err != nil {
			return "", fmt.Errorf("failed to store scan session in redis: %w", err)
		}
		if !stored {
			continue
		}

		err = s.client.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(expiresAt), Member: id}).Err()
		if err != nil {
			if delErr := s.client.Del(ctx, s.sessionKey(id)).Err(); delErr != nil {
				err = errors.Join(err, delErr)
			}
			return "", fmt.Errorf("failed to index scan session in redis: %w", err)
		}
		return id, nil
	}

	return "", fmt.Errorf("failed to allocate unique session id after %d attempts", maxIDAttempts)
}

// Lookup reads and decodes the session.
func (s *RedisSessionStore) Lookup(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	data, err := s.client.Get(ctx, s.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, qrDomain.ErrScanSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan session from redis: %w", err)
	}

	var session qrDomain.ScanSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan session: %w", err)
	}

	if session.ExpiredAt(s.now(), s.maxAge) {
		return nil, qrDomain.ErrScanSessionNotFound
	}

	return &session, nil
}

// Take claims the session with GETDEL so only one caller can read it, then
// drops its index entry.
func (s *RedisSessionStore) Take(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	var getdel *redis.StringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		getdel = pipe.GetDel(ctx, s.sessionKey(sessionID))
		pipe.ZRem(ctx, s.indexKey(), sessionID)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to take scan session from redis: %w", err)
	}

	data, err := getdel.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, qrDomain.ErrScanSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take scan session from redis: %w", err)
	}

	var session qrDomain.ScanSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan session: %w", err)
	}

	if session.ExpiredAt(s.now(), s.maxAge) {
		return nil, qrDomain.ErrScanSessionNotFound
	}

	return &session, nil
}

// Restore writes a taken session back with the TTL it had left.
func (s *RedisSessionStore) Restore(ctx context.Context, session *qrDomain.ScanSession) error {
	if session == nil || session.ID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "scan session is required")
	}
	if session.ExpiredAt(s.now(), s.maxAge) {
		return qrDomain.ErrScanSessionNotFound
	}

	ttl := s.maxAge - session.Payload.Age(s.now())
	if ttl <= 0 {
		return qrDomain.ErrScanSessionNotFound
	}
	expiresAt := session.Payload.IssuedAtMillis + s.maxAge.Milliseconds()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal scan session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.sessionKey(session.ID), data, ttl)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(expiresAt), Member: session.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to restore scan session in redis: %w", err)
	}
	return nil
}

// Release deletes the session and its index entry. It reports whether the
// session key was deleted.
func (s *RedisSessionStore) Release(ctx context.Context, sessionID string) (bool, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.sessionKey(sessionID))
		pipe.ZRem(ctx, s.indexKey(), sessionID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to release scan session in redis: %w", err)
	}

	return del.Val() > 0, nil
}

// Sweep drops index entries (and any lingering keys) whose expiry is before
// now. Redis has usually expired the keys already.
func (s *RedisSessionStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.client.ZRangeByScore(ctx, s.indexKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list expired scan sessions: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = s.sessionKey(id)
		members[i] = id
	}

	var zrem *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		zrem = pipe.ZRem(ctx, s.indexKey(), members...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep scan sessions: %w", err)
	}

	return int(zrem.Val()), nil
}

// NewRedisClient connects to a single Redis node and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
