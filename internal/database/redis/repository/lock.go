package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/telemetry"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld 另一個排程實例持有鎖
var ErrLockHeld = errors.New("scheduler lock held by another run")

// releaseScript 只刪除自己持有的鎖
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SchedulerLockRepository 以 SETNX + TTL 保證同時間只有一個排程 run
type SchedulerLockRepository struct {
	trace  *telemetry.Trace
	client redis.UniversalClient
}

func NewSchedulerLockRepository(trace *telemetry.Trace, redisClient *client.RedisClient) *SchedulerLockRepository {
	return &SchedulerLockRepository{trace: trace, client: redisClient.Client()}
}

// NewSchedulerLockRepositoryWithClient 測試用
func NewSchedulerLockRepositoryWithClient(trace *telemetry.Trace, redisClient redis.UniversalClient) *SchedulerLockRepository {
	return &SchedulerLockRepository{trace: trace, client: redisClient}
}

// Acquire 成功時回傳釋放函式；已被持有時回傳 ErrLockHeld
func (repository *SchedulerLockRepository) Acquire(
	contextValue context.Context,
	job string,
	timeToLive time.Duration,
) (release func(context.Context) error, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	token := uuid.NewString()
	repository.trace.ApplyTraceAttributes(span, core.TraceSchedulerMeta{Job: job, LockOwner: token})

	redisKey := repository.buildKey(job)
	acquired, setError := repository.client.SetNX(contextValue, redisKey, token, timeToLive).Result()
	if setError != nil {
		return nil, fmt.Errorf("acquire %s: %w", redisKey, setError)
	}
	if !acquired {
		return nil, ErrLockHeld
	}

	release = func(releaseContext context.Context) error {
		return releaseScript.Run(releaseContext, repository.client, []string{redisKey}, token).Err()
	}
	return release, nil
}

// Holder 目前持有者 token；無人持有回傳空字串
func (repository *SchedulerLockRepository) Holder(contextValue context.Context, job string) (string, error) {
	token, err := repository.client.Get(contextValue, repository.buildKey(job)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (repository *SchedulerLockRepository) buildKey(job string) string {
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeySchedulerLock, job)
}
