package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// DefaultKey is the Redis key used when RedisJournal.Key is empty.
const DefaultKey = "relay:journal"

// RedisJournal is a Recorder that appends entries to a Redis list, as JSON.
type RedisJournal struct {
	Client *redis.Client
	Key    string

	// MaxLen, if positive, caps the list to the most recent MaxLen entries.
	MaxLen int64
}

// Record appends entry to the journal.
func (j *RedisJournal) Record(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := j.Client.TxPipeline()
	pipe.RPush(ctx, j.key(), data)
	if j.MaxLen > 0 {
		pipe.LTrim(ctx, j.key(), -j.MaxLen, -1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording journal entry %s: %w", entry.ID, err)
	}

	return nil
}

// Entries returns up to n of the most recent entries, oldest first. If n is
// not positive, all entries are returned.
func (j *RedisJournal) Entries(ctx context.Context, n int64) ([]Entry, error) {
	start := int64(0)
	if n > 0 {
		start = -n
	}

	values, err := j.Client.LRange(ctx, j.key(), start, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		var entry Entry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("decoding journal entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (j *RedisJournal) key() string {
	if j.Key == "" {
		return DefaultKey
	}
	return j.Key
}
