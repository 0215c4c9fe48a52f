package store

import (
	"context"
	"errors"

	"social-server/models"
)

// Edge array fields a store is allowed to mutate with set operations.
const (
	FieldFollowers = "followers"
	FieldFollowing = "following"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("duplicate key")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// UserStore is the narrow document-store interface the services talk to.
// Every method operates on one document at a time except PullFromAll, which
// is the best-effort collection-wide purge used by cascade deletion.
type UserStore interface {
	Insert(ctx context.Context, user models.User) error
	Get(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	// GetMany returns the users whose ids were found; missing ids are simply
	// absent from the result, in no guaranteed order.
	GetMany(ctx context.Context, ids []string) ([]models.User, error)
	// UpdateFields sets the given bson fields on one document and returns the
	// updated document.
	UpdateFields(ctx context.Context, id string, fields map[string]any) (models.User, error)
	// AddToSet appends value to an edge array iff not already present.
	AddToSet(ctx context.Context, id, field, value string) error
	// Pull removes value from an edge array; removing an absent value is a
	// no-op, not an error.
	Pull(ctx context.Context, id, field, value string) error
	// PullFromAll removes value from the named edge array of every document
	// containing it and reports how many documents were modified.
	PullFromAll(ctx context.Context, field, value string) (int64, error)
	Delete(ctx context.Context, id string) error
}
