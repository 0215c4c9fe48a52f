package services

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"social-server/metrics"
	"social-server/models"
	"social-server/store"
	"social-server/utils/errors"
)

// The two sides of an edge live on two documents written separately, with no
// transaction around them. Both writes use set semantics, so the second one
// is idempotent and safe to retry.
const reverseWriteAttempts = 3

// FollowUser adds a directed follow edge from actor to target, writing
// targetID into actor.following and actorID into target.followers.
func (s *UserService) FollowUser(ctx context.Context, actorID, targetID string) (string, error) {
	if actorID == targetID {
		return "", errors.ErrSelfFollow
	}

	actor, target, err := s.loadEndpoints(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}

	for _, id := range actor.Following {
		if id == targetID {
			return "", errors.ErrAlreadyFollowing
		}
	}

	if err := s.store.AddToSet(ctx, actorID, store.FieldFollowing, targetID); err != nil {
		if store.IsNotFound(err) {
			return "", errors.ErrUserNotFound
		}
		return "", errors.Wrap(err, "DB_ERROR", "Failed to follow user", http.StatusInternalServerError)
	}

	if err := s.writeReverseEdge(ctx, func() error {
		return s.store.AddToSet(ctx, targetID, store.FieldFollowers, actorID)
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("You are now following %s", target.Username), nil
}

// UnfollowUser removes the edge from both endpoints. The reverse removal is
// applied regardless of whether the reverse entry existed; pulling an absent
// value is a no-op.
func (s *UserService) UnfollowUser(ctx context.Context, actorID, targetID string) (string, error) {
	actor, target, err := s.loadEndpoints(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}

	following := false
	for _, id := range actor.Following {
		if id == targetID {
			following = true
			break
		}
	}
	if !following {
		return "", errors.ErrNotFollowing
	}

	if err := s.store.Pull(ctx, actorID, store.FieldFollowing, targetID); err != nil {
		if store.IsNotFound(err) {
			return "", errors.ErrUserNotFound
		}
		return "", errors.Wrap(err, "DB_ERROR", "Failed to unfollow user", http.StatusInternalServerError)
	}

	if err := s.writeReverseEdge(ctx, func() error {
		return s.store.Pull(ctx, targetID, store.FieldFollowers, actorID)
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("You have unfollowed %s", target.Username), nil
}

func (s *UserService) loadEndpoints(ctx context.Context, actorID, targetID string) (models.User, models.User, error) {
	actor, err := s.store.Get(ctx, actorID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.User{}, models.User{}, errors.ErrUserNotFound
		}
		return models.User{}, models.User{}, errors.Wrap(err, "DB_ERROR", "Failed to load user", http.StatusInternalServerError)
	}
	target, err := s.store.Get(ctx, targetID)
	if err != nil {
		if store.IsNotFound(err) {
			return models.User{}, models.User{}, errors.ErrUserNotFound
		}
		return models.User{}, models.User{}, errors.Wrap(err, "DB_ERROR", "Failed to load user", http.StatusInternalServerError)
	}
	return actor, target, nil
}

// writeReverseEdge applies the second of the two edge writes with bounded
// retries. If the other endpoint vanished under us (a racing delete), the
// half-written edge is left as a dangling id for readers to drop; that is the
// same state a purge pass losing the race produces. Persistent store failure
// leaves the arrays diverged, which is counted and surfaced.
func (s *UserService) writeReverseEdge(ctx context.Context, write func() error) error {
	var err error
	for attempt := 1; attempt <= reverseWriteAttempts; attempt++ {
		err = write()
		if err == nil {
			return nil
		}
		if store.IsNotFound(err) {
			metrics.OrphanedRefs.Inc()
			log.Printf("Reverse edge endpoint deleted mid-write, leaving dangling id for readers to drop")
			return nil
		}
		log.Printf("Reverse edge write failed (attempt %d/%d): %v", attempt, reverseWriteAttempts, err)
	}
	metrics.EdgeDivergence.Inc()
	log.Printf("Edge arrays diverged, reverse write gave up: %v", err)
	return errors.Wrap(err, "DB_ERROR", "Failed to update follow lists", http.StatusInternalServerError)
}
