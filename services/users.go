package services

import (
	"fmt"

	"parkirku/models"
	"parkirku/utils"
)

// Users 帳號查驗：對呼叫端而言只是不透明的 lookup，不發 token、不管 session
type Users struct {
	store Store
}

func NewUsers(store Store) *Users {
	return &Users{store: store}
}

// Lookup returns a user by username.
func (u *Users) Lookup(username string) (*models.User, error) {
	users, err := u.store.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
}

// Verify checks a credential pair against the stored bcrypt hash.
func (u *Users) Verify(username, password string) (*models.User, error) {
	user, err := u.Lookup(username)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}
	return user, nil
}
