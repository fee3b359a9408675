package lock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPlayerLockExclusive(t *testing.T) {
	l := NewPlayerLock()
	playerID := uuid.New()

	release, err := l.Acquire(context.Background(), playerID)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := l.Acquire(ctx, playerID); err != ErrTimeout {
		t.Fatalf("expected ErrTimeout while held, got %v", err)
	}

	release()

	release2, err := l.Acquire(context.Background(), playerID)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	release2()
}

func TestPlayerLockIndependentPerPlayer(t *testing.T) {
	l := NewPlayerLock()
	a, b := uuid.New(), uuid.New()

	releaseA, err := l.Acquire(context.Background(), a)
	if err != nil {
		t.Fatalf("acquire a: %v", err)
	}
	defer releaseA()

	releaseB, err := l.Acquire(context.Background(), b)
	if err != nil {
		t.Fatalf("acquire b should not block on a's lock: %v", err)
	}
	releaseB()
}

func TestPlayerLockImplementsLocker(t *testing.T) {
	var _ Locker = NewPlayerLock()
}
