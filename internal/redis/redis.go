package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"character-search/internal/model"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "character-search:chat:"

type RedisClient struct {
	client   *redis.Client
	stateTTL time.Duration
}

func NewRedisClient(addr string, password string, db int, stateTTL time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &RedisClient{client: client, stateTTL: stateTTL}, nil
}

func stateKey(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

func seqKey(chatID int64) string {
	return stateKey(chatID) + ":seq"
}

func (r *RedisClient) SaveState(ctx context.Context, chatID int64, state model.SearchState) error {
	data, err := json.Marshal(state)
	if err != nil {
		slog.Error("Error marshaling state", "error", err)
		return err
	}
	return r.client.Set(ctx, stateKey(chatID), data, r.stateTTL).Err()
}

// GetState returns nil without error when the chat has no stored state.
func (r *RedisClient) GetState(ctx context.Context, chatID int64) (*model.SearchState, error) {
	data, err := r.client.Get(ctx, stateKey(chatID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		slog.Error("Error getting state", "error", err)
		return nil, err
	}

	var state model.SearchState
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Error("Error unmarshaling state", "error", err)
		return nil, err
	}
	return &state, nil
}

func (r *RedisClient) DeleteState(ctx context.Context, chatID int64) error {
	return r.client.Del(ctx, stateKey(chatID)).Err()
}

// NextSeq issues the next search tag for a chat.
func (r *RedisClient) NextSeq(ctx context.Context, chatID int64) (uint64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, seqKey(chatID))
	pipe.Expire(ctx, seqKey(chatID), r.stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

// LatestSeq returns the last tag issued for a chat, zero if none is live.
func (r *RedisClient) LatestSeq(ctx context.Context, chatID int64) (uint64, error) {
	seq, err := r.client.Get(ctx, seqKey(chatID)).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return seq, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
