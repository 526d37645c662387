package matchmaking

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/quipapp/quip-backend/internal/store"
)

// ErrUserNotFound and ErrActivityNotFound surface dangling toggle targets
// to the HTTP layer.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrActivityNotFound = errors.New("activity not found")
)

// Engine owns interest toggling, the debounced trigger coordinator, the
// match evaluator and the dedup cache. All store mutation is serialized
// through a single mutex; the debounce timer is the only asynchronous
// primitive involved.
type Engine struct {
	store store.Store
	cache *dedupCache
	coord *coordinator

	// mu is the single execution context: toggles and evaluation passes
	// never interleave their staged batches.
	mu sync.Mutex
}

func NewEngine(st store.Store, quiet time.Duration) *Engine {
	e := &Engine{
		store: st,
		cache: newDedupCache(),
	}
	e.coord = newCoordinator(quiet, func(target *uuid.UUID) {
		// Evaluation failures are logged, never raised back to the
		// toggle that triggered the pass.
		if err := e.RunPass(target); err != nil {
			slog.Error("match evaluation pass failed", "error", err)
		}
	})
	return e
}

// Close cancels any pending evaluation timer.
func (e *Engine) Close() {
	e.coord.stop()
}

// Notify schedules a debounced evaluation pass. A nil target evaluates
// every activity. Safe to call from any goroutine.
func (e *Engine) Notify(target *uuid.UUID) {
	e.coord.notify(target)
}

// ToggleInterest adds an interest for (user, activity) if none exists,
// otherwise removes the existing one. The toggle commits immediately and
// then schedules evaluation; it never waits for matching. Returns whether
// an interest now exists for the pair.
func (e *Engine) ToggleInterest(userID, activityID uuid.UUID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.store.InterestByUserAndActivity(userID, activityID)
	switch {
	case err == nil:
		e.store.StageDelete(existing)
		if err := e.store.Commit(); err != nil {
			return true, fmt.Errorf("remove interest: %w", err)
		}
		e.Notify(&activityID)
		return false, nil

	case errors.Is(err, store.ErrNotFound):
		if _, err := e.store.UserByID(userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, ErrUserNotFound
			}
			return false, err
		}
		if _, err := e.store.ActivityByID(activityID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, ErrActivityNotFound
			}
			return false, err
		}
		e.store.StageInsert(models.NewInterest(userID, activityID))
		if err := e.store.Commit(); err != nil {
			return false, fmt.Errorf("add interest: %w", err)
		}
		e.Notify(&activityID)
		return true, nil

	default:
		return false, err
	}
}

// RunPass evaluates one activity (or all, when target is nil), stages a
// session insert plus interest deletes for every match, and commits the
// whole batch atomically. Dedup cache entries recorded during the pass are
// kept even when the commit fails: a stale entry can only suppress a
// duplicate, which is the preferred failure mode.
func (e *Engine) RunPass(target *uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var activities []models.Activity
	if target != nil {
		activity, err := e.store.ActivityByID(*target)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between trigger and firing; nothing to evaluate.
			return nil
		}
		if err != nil {
			return err
		}
		activities = []models.Activity{*activity}
	} else {
		var err error
		activities, err = e.store.AllActivities()
		if err != nil {
			return err
		}
	}

	// Sessions load lazily, once per pass: activities resolved entirely
	// from the dedup cache never query the session table.
	var sessions []models.GroupSession
	sessionsLoaded := false
	getSessions := func() ([]models.GroupSession, error) {
		if !sessionsLoaded {
			var err error
			sessions, err = e.store.AllSessions()
			if err != nil {
				return nil, err
			}
			sessionsLoaded = true
		}
		return sessions, nil
	}

	formed := 0
	for i := range activities {
		activity := &activities[i]
		result, err := e.evaluate(activity, getSessions)
		if err != nil {
			return err
		}
		if result.outcome != formSession {
			continue
		}

		e.store.StageInsert(result.session)
		for j := range result.consumed {
			e.store.StageDelete(&result.consumed[j])
		}
		// Sessions formed earlier in this pass count as existing for
		// the activities still to be evaluated.
		sessions = append(sessions, *result.session)
		formed++

		slog.Info("session formed",
			"activity", activity.Name,
			"participants", len(result.session.Participants),
			"scheduled", result.session.ScheduledTime)
	}

	if formed == 0 {
		return nil
	}
	if err := e.store.Commit(); err != nil {
		slog.Error("session commit failed", "sessions", formed, "error", err)
		return err
	}
	return nil
}

// PendingSessions returns every formed session, soonest first. The client
// polls this after toggles settle.
func (e *Engine) PendingSessions() ([]models.GroupSession, error) {
	sessions, err := e.store.AllSessions()
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ScheduledTime.Before(sessions[j].ScheduledTime)
	})
	return sessions, nil
}

// InterestCounts returns the current interest count per activity.
func (e *Engine) InterestCounts() (map[uuid.UUID]int, error) {
	activities, err := e.store.AllActivities()
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int, len(activities))
	for _, activity := range activities {
		interests, err := e.store.InterestsByActivity(activity.ID)
		if err != nil {
			return nil, err
		}
		counts[activity.ID] = len(interests)
	}
	return counts, nil
}
