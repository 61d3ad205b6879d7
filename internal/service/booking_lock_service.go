package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockTimeout is returned when another booking for the same instructor holds the lock too long.
var ErrLockTimeout = errors.New("booking lock wait timed out")

// releaseLockScript deletes the key only if it still holds our token, so an
// expired lock that was re-acquired elsewhere is never released by us.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisBookingLockKeyPrefix = "booking:lock:instructor:"

	redisLockTimeout   = 5 * time.Second
	lockRetryInterval  = 25 * time.Millisecond
	defaultLockTTL     = 10 * time.Second
	defaultLockWait    = 3 * time.Second
	mutexCleanupPeriod = 10 * time.Minute
	mutexStaleAfter    = 10 * time.Minute
)

// BookingLockService serialises appointment creation per instructor.
//
// Lock ordering: the in-process mutex is taken first, then the Redis lock.
// The Redis lock only matters when several API instances share one database;
// when Redis is disabled or unreachable the database row lock and exclusion
// constraint still hold.
type BookingLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	wait        time.Duration

	instructorMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewBookingLockService starts the mutex janitor. Call Stop() during shutdown.
// redisClient may be nil.
func NewBookingLockService(redisClient *redis.Client, log *logrus.Logger, ttl, wait time.Duration) *BookingLockService {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	svc := &BookingLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		wait:        wait,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop is safe to call multiple times.
func (s *BookingLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("BookingLockService stopped")
	}
}

// Acquire blocks until the instructor's lock is held and returns its release func.
func (s *BookingLockService) Acquire(ctx context.Context, instructorID uuid.UUID) (func(), error) {
	mt := s.getInstructorMutex(instructorID)
	if err := s.lockLocal(ctx, mt); err != nil {
		return nil, err
	}

	if s.redisClient == nil {
		return func() { mt.mu.Unlock() }, nil
	}

	key := RedisBookingLockKeyPrefix + instructorID.String()
	token := uuid.NewString()
	acquired, err := s.lockRedis(ctx, key, token)
	if err != nil {
		if errors.Is(err, ErrLockTimeout) || ctx.Err() != nil {
			mt.mu.Unlock()
			return nil, err
		}
		// Redis trouble degrades to process-local plus database guarantees.
		s.log.Warnf("Failed to acquire redis booking lock for instructor %s: %+v", instructorID, err)
	}

	return func() {
		if acquired {
			s.unlockRedis(key, token)
		}
		mt.mu.Unlock()
	}, nil
}

func (s *BookingLockService) lockLocal(ctx context.Context, mt *mutexWithTimestamp) error {
	if mt.mu.TryLock() {
		return nil
	}
	deadline := time.NewTimer(s.wait)
	defer deadline.Stop()
	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrLockTimeout
		case <-ticker.C:
			if mt.mu.TryLock() {
				return nil
			}
		}
	}
}

func (s *BookingLockService) lockRedis(ctx context.Context, key, token string) (bool, error) {
	deadline := time.Now().Add(s.wait)
	for {
		opCtx, cancel := context.WithTimeout(ctx, redisLockTimeout)
		ok, err := s.redisClient.SetNX(opCtx, key, token, s.ttl).Result()
		cancel()
		if err != nil {
			return false, fmt.Errorf("redis setnx %s: %w", key, err)
		}
		if ok {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

func (s *BookingLockService) unlockRedis(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisLockTimeout)
	defer cancel()

	if err := releaseLockScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warnf("Failed to release redis booking lock %s: %+v", key, err)
	}
}

func (s *BookingLockService) getInstructorMutex(instructorID uuid.UUID) *mutexWithTimestamp {
	mt, _ := s.instructorMu.LoadOrStore(instructorID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *BookingLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleAfter))
		}
	}
}

// cleanupStaleMutexes drops mutexes unused since cutoff. lastUsed is checked under
// the lock so a concurrent Acquire cannot lose its mutex.
func (s *BookingLockService) cleanupStaleMutexes(cutoff time.Time) int {
	var cleaned int

	s.instructorMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				s.instructorMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale booking mutexes", cleaned)
	}
	return cleaned
}
