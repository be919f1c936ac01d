package lock

import (
	"context"
	"testing"
	"time"
)

func TestLocalAlwaysAcquires(t *testing.T) {
	var l Locker = Local{}
	ok, release, err := l.Acquire(context.Background(), "insights:sweep", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected lease, got ok=%v err=%v", ok, err)
	}
	release()
}

func TestRedisWithoutClientFails(t *testing.T) {
	var r *Redis
	ok, release, err := r.Acquire(context.Background(), "insights:sweep", time.Minute)
	if err == nil || ok {
		t.Fatalf("expected failure without client")
	}
	release()
}

func TestNewRedisRequiresAddr(t *testing.T) {
	if _, err := NewRedis(context.Background(), " ", ""); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
