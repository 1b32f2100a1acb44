package fakeuserrepo

import (
	"sync"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
	"github.com/tmori/wishkeeper/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

func (ur *FakeUserRepo) Find(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	u := *user
	return &u, nil
}

func (ur *FakeUserRepo) Save(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u := *user
	ur.users[u.ID] = &u
	return nil
}
