package user

import (
	"context"
	"sort"
)

type StubUserRepo struct {
	Users     map[string]User
	PinHashes map[string]string
	Err       error
	nextId    int
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{
		Users:     make(map[string]User),
		PinHashes: make(map[string]string),
		nextId:    1,
	}
}

func (s *StubUserRepo) CreateUser(_ context.Context, u User, pinHash string) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	u.Id = s.nextId
	s.nextId++
	s.Users[u.Uid] = u
	s.PinHashes[u.Username] = pinHash
	return u.Id, nil
}

func (s *StubUserRepo) GetUser(_ context.Context, userId int) (User, error) {
	if s.Err != nil {
		return User{}, s.Err
	}
	for _, u := range s.Users {
		if u.Id == userId {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetUserByUid(_ context.Context, uid string) (User, error) {
	if s.Err != nil {
		return User{}, s.Err
	}
	u, ok := s.Users[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepo) GetUserByUsername(_ context.Context, username string) (User, string, error) {
	if s.Err != nil {
		return User{}, "", s.Err
	}
	for _, u := range s.Users {
		if u.Username == username {
			return u, s.PinHashes[username], nil
		}
	}
	return User{}, "", ErrUserNotFound
}

func (s *StubUserRepo) ListUsers(_ context.Context) ([]User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]User, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (s *StubUserRepo) UpdateUser(_ context.Context, userId int, u User) (User, error) {
	if s.Err != nil {
		return User{}, s.Err
	}
	for uid, existing := range s.Users {
		if existing.Id == userId {
			u.Id = userId
			u.Uid = existing.Uid
			s.Users[uid] = u
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}
