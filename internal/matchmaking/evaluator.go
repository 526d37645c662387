package matchmaking

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/quipapp/quip-backend/internal/store"
)

type outcome int

const (
	// noAction covers quorum-not-met and already-resolved compositions.
	// Neither is an error.
	noAction outcome = iota
	formSession
)

// evaluation is the decision for one activity within a pass.
type evaluation struct {
	outcome  outcome
	session  *models.GroupSession
	consumed []models.Interest
}

// candidate is an interest whose user reference resolved.
type candidate struct {
	interest models.Interest
	userID   uuid.UUID
	name     string
}

// evaluate decides whether the activity's current interests should form a
// session. getSessions loads the existing sessions on first use, so a dedup
// cache hit resolves without touching the session table at all. evaluate
// mutates nothing in the store; the only side effect is recording resolved
// compositions in the cache.
func (e *Engine) evaluate(activity *models.Activity, getSessions func() ([]models.GroupSession, error)) (evaluation, error) {
	interests, err := e.store.InterestsByActivity(activity.ID)
	if err != nil {
		return evaluation{}, fmt.Errorf("fetch interests for %q: %w", activity.Name, err)
	}

	// A non-positive threshold means "always eligible", but never with an
	// empty interest set.
	quorum := activity.MinParticipants
	if quorum < 1 {
		quorum = 1
	}
	if len(interests) < quorum {
		return evaluation{outcome: noAction}, nil
	}

	// Resolve each interest to its user; dangling references are dropped,
	// the rest of the pass continues.
	candidates := make([]candidate, 0, len(interests))
	for _, interest := range interests {
		if interest.UserID == nil {
			slog.Debug("skipping interest without user", "interest_id", interest.ID, "activity", activity.Name)
			continue
		}
		user, err := e.store.UserByID(*interest.UserID)
		if errors.Is(err, store.ErrNotFound) {
			slog.Debug("skipping interest with dangling user", "interest_id", interest.ID, "activity", activity.Name)
			continue
		}
		if err != nil {
			return evaluation{}, fmt.Errorf("resolve user for interest %s: %w", interest.ID, err)
		}
		candidates = append(candidates, candidate{interest: interest, userID: user.ID, name: user.Name})
	}
	if len(candidates) == 0 {
		return evaluation{outcome: noAction}, nil
	}

	// Canonical ordering: name ascending, ties broken by id so identical
	// names stay deterministic. Every later comparison and the cache key
	// derive from this ordering.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].name != candidates[j].name {
			return candidates[i].name < candidates[j].name
		}
		return candidates[i].userID.String() < candidates[j].userID.String()
	})

	participantIDs := make([]uuid.UUID, len(candidates))
	participantNames := make([]string, len(candidates))
	for i, c := range candidates {
		participantIDs[i] = c.userID
		participantNames[i] = c.name
	}

	key := compositionKey(activity.ID, participantIDs)
	if e.cache.contains(key) {
		slog.Debug("composition already resolved", "activity", activity.Name)
		return evaluation{outcome: noAction}, nil
	}

	// An older session with this exact activity name and participant set
	// means the composition is already satisfied. Cache it so the next
	// trigger does not rescan sessions. Partial overlaps with existing
	// sessions are deliberately not considered.
	sessions, err := getSessions()
	if err != nil {
		return evaluation{}, err
	}
	for _, session := range sessions {
		if session.ActivityName != activity.Name {
			continue
		}
		existing := append([]string(nil), session.Participants...)
		sort.Strings(existing)
		if slices.Equal(existing, participantNames) {
			slog.Debug("duplicate composition, session already exists",
				"activity", activity.Name, "session_id", session.ID)
			e.cache.insert(key)
			return evaluation{outcome: noAction}, nil
		}
	}

	consumed := make([]models.Interest, len(candidates))
	for i, c := range candidates {
		consumed[i] = c.interest
	}
	e.cache.insert(key)

	return evaluation{
		outcome:  formSession,
		session:  models.NewGroupSession(activity.Name, participantNames),
		consumed: consumed,
	}, nil
}
