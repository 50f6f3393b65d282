package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medical-triage-be/pkg/store"
)

const (
	sessionKeyPrefix = "triage:session:"
	sessionTTL       = 1 * time.Hour
)

// SessionRepository keeps bounded conversation histories in Redis so
// histories survive process restarts and are shared across instances.
type SessionRepository struct {
	rdb   *redis.Client
	limit int
}

func NewSessionRepository(rdb *redis.Client, historyLimit int) *SessionRepository {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &SessionRepository{
		rdb:   rdb,
		limit: historyLimit,
	}
}

// Record appends a turn and trims to the last N in one transaction, so
// concurrent requests on a session cannot interleave append and trim.
func (r *SessionRepository) Record(ctx context.Context, sessionID, userText, systemText string) error {
	turn := store.ConversationTurn{
		UserInput:      userText,
		SystemResponse: systemText,
		Timestamp:      time.Now(),
	}
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := sessionKeyPrefix + sessionID
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-r.limit), -1)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	return nil
}

func (r *SessionRepository) History(ctx context.Context, sessionID string) ([]store.ConversationTurn, error) {
	entries, err := r.rdb.LRange(ctx, sessionKeyPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	turns := make([]store.ConversationTurn, 0, len(entries))
	for _, entry := range entries {
		var turn store.ConversationTurn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			// A corrupt entry loses one turn, not the whole session.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
