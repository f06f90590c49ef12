package persistence

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petrijr/choreo/pkg/api"
)

// RedisEventStore is an EventStore backed by Redis.
// It uses a simple key structure:
//
//	<prefix>run:<id>           => LIST of gob-encoded events
//	<prefix>idx:runs           => ZSET of run IDs scored by start time
//	<prefix>idx:script:<name>  => ZSET of run IDs for one script
type RedisEventStore struct {
	client *redis.Client
	prefix string
}

var _ EventStore = (*RedisEventStore)(nil)

// NewRedisEventStore creates a RedisEventStore.
// prefix is optional but recommended (e.g. "choreo:").
func NewRedisEventStore(client *redis.Client, prefix string) *RedisEventStore {
	if prefix == "" {
		prefix = "choreo:"
	}
	return &RedisEventStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisEventStore) keyRun(id string) string {
	return s.prefix + "run:" + id
}

func (s *RedisEventStore) keyRuns() string {
	return s.prefix + "idx:runs"
}

func (s *RedisEventStore) keyScript(name string) string {
	return s.prefix + "idx:script:" + name
}

func encodeEvent(ev api.RunEvent) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ev); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeEvent(data []byte) (api.RunEvent, error) {
	var ev api.RunEvent
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ev)
	return ev, err
}

func (s *RedisEventStore) AppendEvent(ctx context.Context, ev api.RunEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	data, err := encodeEvent(ev)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.keyRun(ev.RunID), data)
	if ev.Type == api.EventRunStarted {
		z := redis.Z{Score: float64(ev.At.UnixNano()), Member: ev.RunID}
		pipe.ZAdd(ctx, s.keyRuns(), z)
		pipe.ZAdd(ctx, s.keyScript(ev.Script), z)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisEventStore) ListEvents(ctx context.Context, runID string) ([]api.RunEvent, error) {
	raw, err := s.client.LRange(ctx, s.keyRun(runID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrRunNotFound
	}

	out := make([]api.RunEvent, 0, len(raw))
	for _, r := range raw {
		ev, err := decodeEvent([]byte(r))
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *RedisEventStore) ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error) {
	key := s.keyRuns()
	if filter.Script != "" {
		key = s.keyScript(filter.Script)
	}
	stop := int64(-1)
	if filter.Limit > 0 {
		stop = int64(filter.Limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.LRange(ctx, s.keyRun(id), 0, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	out := make([]RunSummary, 0, len(ids))
	for i, id := range ids {
		var events []api.RunEvent
		for _, r := range cmds[i].Val() {
			ev, err := decodeEvent([]byte(r))
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		out = append(out, summarize(id, events))
	}
	return out, nil
}
