package recorder

import (
	"context"
	"fmt"

	"github.com/launchdarkly/assert-harness/framework/ldtest"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultRedisPrefix is the key prefix used if RedisRecorder.Prefix is empty.
const DefaultRedisPrefix = "assert-harness"

// RedisRecorder stores failures in Redis hashes:
//
//	<prefix>:failures       test ID -> error messages, one per line
//	<prefix>:noncritical    test ID -> explanation
//
// Both hashes are replaced in a single transaction.
type RedisRecorder struct {
	Client *redis.Client
	Prefix string
}

// NewRedisRecorder creates a RedisRecorder with its own client for the given address.
func NewRedisRecorder(addr string) *RedisRecorder {
	return &RedisRecorder{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (r *RedisRecorder) FailuresKey() string    { return r.prefix() + ":failures" }
func (r *RedisRecorder) NonCriticalKey() string { return r.prefix() + ":noncritical" }

func (r *RedisRecorder) prefix() string {
	if r.Prefix == "" {
		return DefaultRedisPrefix
	}
	return r.Prefix
}

func (r *RedisRecorder) RecordFailures(ctx context.Context, results ldtest.Results) error {
	failures := make(map[string]interface{}, len(results.Failures))
	for _, test := range results.Failures {
		failures[test.TestID.String()] = describeErrors(test.Errors)
	}
	nonCritical := make(map[string]interface{}, len(results.NonCriticalFailures))
	for _, test := range results.NonCriticalFailures {
		nonCritical[test.TestID.String()] = test.Explanation
	}

	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.FailuresKey(), r.NonCriticalKey())
		if len(failures) != 0 {
			pipe.HSet(ctx, r.FailuresKey(), failures)
		}
		if len(nonCritical) != 0 {
			pipe.HSet(ctx, r.NonCriticalKey(), nonCritical)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cannot record failures in Redis at %s: %w", r.Client.Options().Addr, err)
	}
	return nil
}

// FailedTests returns the IDs of the recorded failures in sorted order.
func (r *RedisRecorder) FailedTests(ctx context.Context) ([]string, error) {
	all, err := r.Client.HGetAll(ctx, r.FailuresKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("cannot read failures from Redis: %w", err)
	}
	ids := maps.Keys(all)
	slices.Sort(ids)
	return ids, nil
}

func (r *RedisRecorder) Close() error {
	return r.Client.Close()
}
