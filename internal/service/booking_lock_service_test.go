package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestBookingLockServiceSerialisesSameInstructor(t *testing.T) {
	svc := NewBookingLockService(nil, newTestLogger(), time.Second, 2*time.Second)
	defer svc.Stop()

	instructorID := uuid.New()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := svc.Acquire(context.Background(), instructorID)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestBookingLockServiceDifferentInstructorsDoNotBlock(t *testing.T) {
	svc := NewBookingLockService(nil, newTestLogger(), time.Second, 50*time.Millisecond)
	defer svc.Stop()

	releaseA, err := svc.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := svc.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	releaseB()
}

func TestBookingLockServiceTimesOut(t *testing.T) {
	svc := NewBookingLockService(nil, newTestLogger(), time.Second, 50*time.Millisecond)
	defer svc.Stop()

	instructorID := uuid.New()
	release, err := svc.Acquire(context.Background(), instructorID)
	require.NoError(t, err)
	defer release()

	_, err = svc.Acquire(context.Background(), instructorID)
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestBookingLockServiceHonoursContext(t *testing.T) {
	svc := NewBookingLockService(nil, newTestLogger(), time.Second, time.Minute)
	defer svc.Stop()

	instructorID := uuid.New()
	release, err := svc.Acquire(context.Background(), instructorID)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = svc.Acquire(ctx, instructorID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBookingLockServiceCleanupSkipsHeldMutex(t *testing.T) {
	svc := NewBookingLockService(nil, newTestLogger(), time.Second, time.Second)
	defer svc.Stop()

	held := uuid.New()
	release, err := svc.Acquire(context.Background(), held)
	require.NoError(t, err)

	idle := uuid.New()
	releaseIdle, err := svc.Acquire(context.Background(), idle)
	require.NoError(t, err)
	releaseIdle()

	cleaned := svc.cleanupStaleMutexes(time.Now().Add(time.Hour))
	assert.Equal(t, 1, cleaned)

	_, stillThere := svc.instructorMu.Load(held)
	assert.True(t, stillThere)
	release()
}

func TestBookingLockServiceStopIsIdempotent(t *testing.T) {
	svc := NewBookingLockService(nil, newTestLogger(), 0, 0)
	svc.Stop()
	svc.Stop()
}
