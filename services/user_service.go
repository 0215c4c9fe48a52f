package services

import (
	"context"
	"log"
	"net/http"

	"social-server/metrics"
	"social-server/models"
	"social-server/store"
	"social-server/utils/errors"
)

type UserService struct {
	store     store.UserStore
	jwtSecret string
}

func NewUserService(st store.UserStore, jwtSecret string) *UserService {
	return &UserService{
		store:     st,
		jwtSecret: jwtSecret,
	}
}

// GetProfile loads a user and expands the follower/following id lists into
// summaries. Ids that no longer resolve are dropped from the expanded lists;
// the raw stored arrays stay the source of truth.
func (s *UserService) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Profile{}, errors.ErrUserNotFound
		}
		return models.Profile{}, errors.Wrap(err, "DB_ERROR", "Failed to load user", http.StatusInternalServerError)
	}

	followers, err := s.resolveSummaries(ctx, user.Followers)
	if err != nil {
		return models.Profile{}, err
	}
	following, err := s.resolveSummaries(ctx, user.Following)
	if err != nil {
		return models.Profile{}, err
	}

	return models.Profile{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Bio:        user.Bio,
		ProfilePic: user.ProfilePic,
		CoverPic:   user.CoverPic,
		Followers:  followers,
		Following:  following,
	}, nil
}

// resolveSummaries expands edge ids into summary views, preserving the stored
// order. An id with no backing document was orphaned by a failed or racing
// cascade delete; it is counted and skipped, never surfaced as an error.
func (s *UserService) resolveSummaries(ctx context.Context, ids []string) ([]models.UserSummary, error) {
	summaries := make([]models.UserSummary, 0, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	users, err := s.store.GetMany(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to resolve users", http.StatusInternalServerError)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			metrics.OrphanedRefs.Inc()
			log.Printf("Dropping orphaned edge reference %s", id)
			continue
		}
		summaries = append(summaries, models.UserSummary{
			ID:         u.ID,
			Username:   u.Username,
			ProfilePic: u.ProfilePic,
		})
	}
	return summaries, nil
}

// UpdateProfile applies the recognized mutable fields to the requester's own
// document and returns the updated document.
func (s *UserService) UpdateProfile(ctx context.Context, requesterID, targetID string, update models.ProfileUpdate) (models.User, error) {
	if requesterID != targetID {
		return models.User{}, errors.ErrForbidden
	}

	fields := map[string]any{}
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.ProfilePic != nil {
		fields["profile_pic"] = *update.ProfilePic
	}
	if update.CoverPic != nil {
		fields["cover_pic"] = *update.CoverPic
	}
	if len(fields) == 0 {
		user, err := s.store.Get(ctx, targetID)
		if err != nil {
			if store.IsNotFound(err) {
				return models.User{}, errors.ErrUserNotFound
			}
			return models.User{}, errors.Wrap(err, "DB_ERROR", "Failed to load user", http.StatusInternalServerError)
		}
		return user, nil
	}

	user, err := s.store.UpdateFields(ctx, targetID, fields)
	if err != nil {
		if store.IsNotFound(err) {
			return models.User{}, errors.ErrUserNotFound
		}
		return models.User{}, errors.Wrap(err, "DB_ERROR", "Failed to update user", http.StatusInternalServerError)
	}
	return user, nil
}

// DeleteUser removes the requester's own document, then purges the deleted id
// from every other user's edge arrays. The purge passes are best effort: the
// primary delete is never rolled back, and a failed pass leaves dangling ids
// that readers drop at resolution time. Failures are logged and counted so
// orphaning is observable.
func (s *UserService) DeleteUser(ctx context.Context, requesterID, targetID string) error {
	if requesterID != targetID {
		return errors.ErrForbidden
	}

	if err := s.store.Delete(ctx, targetID); err != nil {
		if store.IsNotFound(err) {
			return errors.ErrUserNotFound
		}
		return errors.Wrap(err, "DB_ERROR", "Failed to delete user", http.StatusInternalServerError)
	}

	for _, field := range []string{store.FieldFollowers, store.FieldFollowing} {
		modified, err := s.store.PullFromAll(ctx, field, targetID)
		if err != nil {
			metrics.OrphanedRefs.Inc()
			log.Printf("Purge of %s from %s arrays failed, peers may retain dangling ids: %v", targetID, field, err)
			continue
		}
		log.Printf("Purged %s from %s arrays of %d users", targetID, field, modified)
	}
	return nil
}
