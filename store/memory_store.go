package store

import (
	"context"
	"fmt"
	"sync"

	"social-server/models"
)

// MemoryStore is a mutex-guarded in-memory UserStore with the same semantics
// as MongoStore. It exists for tests and local development without a Mongo
// instance.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

func cloneUser(u models.User) models.User {
	u.Followers = append([]string(nil), u.Followers...)
	u.Following = append([]string(nil), u.Following...)
	return u
}

func (s *MemoryStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return ErrDuplicate
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) GetMany(_ context.Context, ids []string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (s *MemoryStore) UpdateFields(_ context.Context, id string, fields map[string]any) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	for k, v := range fields {
		val, _ := v.(string)
		switch k {
		case "username":
			user.Username = val
		case "bio":
			user.Bio = val
		case "profile_pic":
			user.ProfilePic = val
		case "cover_pic":
			user.CoverPic = val
		default:
			return models.User{}, fmt.Errorf("unknown field %q", k)
		}
	}
	s.users[id] = user
	return cloneUser(user), nil
}

func (s *MemoryStore) edgeArray(user *models.User, field string) (*[]string, error) {
	switch field {
	case FieldFollowers:
		return &user.Followers, nil
	case FieldFollowing:
		return &user.Following, nil
	default:
		return nil, fmt.Errorf("unknown edge field %q", field)
	}
}

func (s *MemoryStore) AddToSet(_ context.Context, id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	arr, err := s.edgeArray(&user, field)
	if err != nil {
		return err
	}
	for _, v := range *arr {
		if v == value {
			s.users[id] = user
			return nil
		}
	}
	*arr = append(*arr, value)
	s.users[id] = user
	return nil
}

func (s *MemoryStore) Pull(_ context.Context, id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	arr, err := s.edgeArray(&user, field)
	if err != nil {
		return err
	}
	kept := (*arr)[:0]
	for _, v := range *arr {
		if v != value {
			kept = append(kept, v)
		}
	}
	*arr = kept
	s.users[id] = user
	return nil
}

func (s *MemoryStore) PullFromAll(_ context.Context, field, value string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for id, user := range s.users {
		arr, err := s.edgeArray(&user, field)
		if err != nil {
			return modified, err
		}
		kept := make([]string, 0, len(*arr))
		removed := false
		for _, v := range *arr {
			if v == value {
				removed = true
				continue
			}
			kept = append(kept, v)
		}
		if removed {
			*arr = kept
			s.users[id] = user
			modified++
		}
	}
	return modified, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
