package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-server/models"
	"social-server/store"
	"social-server/utils/errors"
)

func strptr(s string) *string { return &s }

func TestGetProfileResolvesSummaries(t *testing.T) {
	svc, _ := newTestService(t,
		models.User{ID: "a", Username: "alice", ProfilePic: "alice.png", Following: []string{"b"}},
		models.User{ID: "b", Username: "bob", ProfilePic: "bob.png", Followers: []string{"a"}, Following: []string{"a"}},
	)

	profile, err := svc.GetProfile(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, "bob", profile.Username)
	require.Len(t, profile.Followers, 1)
	assert.Equal(t, models.UserSummary{ID: "a", Username: "alice", ProfilePic: "alice.png"}, profile.Followers[0])
	require.Len(t, profile.Following, 1)
	assert.Equal(t, "a", profile.Following[0].ID)
}

func TestGetProfileDropsOrphanedReferences(t *testing.T) {
	// "ghost" was deleted but a purge pass never reached b's document
	svc, _ := newTestService(t,
		models.User{ID: "a", Username: "alice"},
		models.User{ID: "b", Username: "bob", Following: []string{"ghost", "a"}},
	)

	profile, err := svc.GetProfile(context.Background(), "b")
	require.NoError(t, err)

	require.Len(t, profile.Following, 1)
	assert.Equal(t, "a", profile.Following[0].ID)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestGetProfileExcludesCredential(t *testing.T) {
	svc, _ := newTestService(t, models.User{ID: "a", Username: "alice", PasswordHash: "$2a$10$secret"})

	profile, err := svc.GetProfile(context.Background(), "a")
	require.NoError(t, err)
	assert.NotContains(t, fmt.Sprintf("%+v", profile), "secret")
}

func TestUpdateProfileOwnershipCheck(t *testing.T) {
	svc, st := newTestService(t,
		models.User{ID: "a", Username: "alice"},
		models.User{ID: "b", Username: "bob", Bio: "original"},
	)

	_, err := svc.UpdateProfile(context.Background(), "a", "b", models.ProfileUpdate{Bio: strptr("hacked")})
	assert.Equal(t, errors.ErrForbidden, err)
	assert.Equal(t, "original", mustGet(t, st, "b").Bio)
}

func TestUpdateProfileAppliesSubmittedFieldsOnly(t *testing.T) {
	svc, _ := newTestService(t,
		models.User{ID: "a", Username: "alice", Bio: "old bio", ProfilePic: "old.png"},
	)

	user, err := svc.UpdateProfile(context.Background(), "a", "a", models.ProfileUpdate{
		Bio:      strptr("new bio"),
		CoverPic: strptr("cover.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "cover.png", user.CoverPic)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "old.png", user.ProfilePic)
}

func TestUpdateProfileEmptyUpdate(t *testing.T) {
	svc, _ := newTestService(t, models.User{ID: "a", Username: "alice", Bio: "bio"})

	user, err := svc.UpdateProfile(context.Background(), "a", "a", models.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "bio", user.Bio)
}

func TestDeleteUserOwnershipCheck(t *testing.T) {
	svc, st := newTestService(t,
		models.User{ID: "a", Username: "alice"},
		models.User{ID: "b", Username: "bob"},
	)

	err := svc.DeleteUser(context.Background(), "a", "b")
	assert.Equal(t, errors.ErrForbidden, err)

	_, err = st.Get(context.Background(), "b")
	assert.NoError(t, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.DeleteUser(context.Background(), "ghost", "ghost")
	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestDeleteUserCascadePurge(t *testing.T) {
	svc, st := newTestService(t,
		models.User{ID: "a", Username: "alice", Followers: []string{"b", "c"}, Following: []string{"b"}},
		models.User{ID: "b", Username: "bob", Followers: []string{"a"}, Following: []string{"a"}},
		models.User{ID: "c", Username: "carol", Following: []string{"a", "b"}},
	)
	ctx := context.Background()

	require.NoError(t, svc.DeleteUser(ctx, "a", "a"))

	_, err := st.Get(ctx, "a")
	assert.True(t, store.IsNotFound(err))

	for _, id := range []string{"b", "c"} {
		user := mustGet(t, st, id)
		assert.NotContains(t, user.Followers, "a", "user %s", id)
		assert.NotContains(t, user.Following, "a", "user %s", id)
	}
	assert.Contains(t, mustGet(t, st, "c").Following, "b")
}

func TestDeleteUserPurgeFailureStillSucceeds(t *testing.T) {
	_, st := newTestService(t,
		models.User{ID: "a", Username: "alice", Followers: []string{"b"}},
		models.User{ID: "b", Username: "bob", Following: []string{"a"}},
	)
	flaky := &hookStore{
		UserStore: st,
		pullFromAllErr: func(field string) error {
			if field == store.FieldFollowing {
				return fmt.Errorf("cursor timeout")
			}
			return nil
		},
	}
	svc := NewUserService(flaky, "test-secret")
	ctx := context.Background()

	// The primary delete is not rolled back when a purge pass fails
	require.NoError(t, svc.DeleteUser(ctx, "a", "a"))

	_, err := st.Get(ctx, "a")
	assert.True(t, store.IsNotFound(err))

	// b keeps the dangling id, and readers drop it at resolution time
	assert.Contains(t, mustGet(t, st, "b").Following, "a")

	profile, err := svc.GetProfile(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, profile.Following)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	user := mustGet(t, st, id)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.Empty(t, user.Followers)
	assert.Empty(t, user.Following)

	token, err := svc.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "b@example.com", "pw")
	assert.Equal(t, errors.ErrUsernameTaken, err)
}
