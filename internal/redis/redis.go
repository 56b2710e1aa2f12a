package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// ErrUnavailable is returned by pairing operations when no redis client is
// configured. The server runs without redis; pairing then degrades cleanly
// instead of crashing.
var ErrUnavailable = errors.New("redis is not configured")

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

const (
	pairingTTL  = 5 * time.Minute
	presenceTTL = 30 * time.Second
)

// StorePairingCode maps a short-lived pairing code to a terminal ID.
func StorePairingCode(ctx context.Context, code string, terminalID int) error {
	if Rdb == nil {
		return ErrUnavailable
	}
	return Rdb.Set(ctx, "pairing:"+code, terminalID, pairingTTL).Err()
}

// ConsumePairingCode returns the terminal ID for a code and deletes it, so a
// code can be exchanged at most once. Returns redis.Nil for unknown codes.
func ConsumePairingCode(ctx context.Context, code string) (int, error) {
	if Rdb == nil {
		return 0, ErrUnavailable
	}
	key := "pairing:" + code
	id, err := Rdb.Get(ctx, key).Int()
	if err != nil {
		return 0, err
	}
	if err := Rdb.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to delete pairing code")
	}
	return id, nil
}

// TouchPresence refreshes the terminal's presence key. Called on every
// heartbeat; expiry means the terminal stopped reporting. Best effort, a nil
// client is tolerated so the API keeps working without redis.
func TouchPresence(ctx context.Context, terminalID int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, presenceKey(terminalID), 1, presenceTTL).Err(); err != nil {
		log.Warn().Err(err).Int("terminal", terminalID).Msg("failed to refresh presence")
	}
}

// IsPresent reports whether the terminal's presence key is alive.
func IsPresent(ctx context.Context, terminalID int) bool {
	if Rdb == nil {
		return true
	}
	n, err := Rdb.Exists(ctx, presenceKey(terminalID)).Result()
	if err != nil {
		log.Warn().Err(err).Int("terminal", terminalID).Msg("presence lookup failed")
		return true
	}
	return n > 0
}

func presenceKey(terminalID int) string {
	return "presence:" + strconv.Itoa(terminalID)
}
