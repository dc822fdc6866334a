package progression

import (
	"sync"
	"testing"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
	"github.com/pulsefit-app/pulsefit/internal/infra/sqlite"
)

// ═══════════════════════════════════════════════════════════════════════════
// Per-User Lock Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestUserLocks_EvictedWhenIdle(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewService(db, domain.DefaultRuleTable(), Catalog(), nil)
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	users := []string{"alice", "bob", "carol"}
	for i, id := range users {
		if _, err := s.Register(id, now); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
		if _, err := s.CompleteWorkout(domain.WorkoutEvent{
			UserID: id, WorkoutID: "w" + id, Category: domain.CategoryCardio,
			CompletedAt: now.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
		if _, err := s.Deduct(id, now); err != nil {
			t.Fatalf("deduct %s: %v", id, err)
		}
	}

	s.mu.Lock()
	n := len(s.locks)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("lock entries after idle = %d, want 0 (evicted)", n)
	}
}

func TestUserLocks_SerializeUnderContention(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewService(db, domain.DefaultRuleTable(), Catalog(), nil)
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	if _, err := s.Register("alice", now); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Contending holders of the same user's lock must still leave the
	// map empty once everyone is done, despite interleaved eviction.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := s.lockUser("alice")
			s.unlockUser("alice", l)
		}()
	}
	wg.Wait()

	s.mu.Lock()
	n := len(s.locks)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("lock entries after contention = %d, want 0", n)
	}
}
