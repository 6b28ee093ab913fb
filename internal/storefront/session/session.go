package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/glutt28/ecommerce-prototype/internal/storefront/localstore"
)

var ErrUnknownUser = errors.New("username not found")

// User is an account held by the remote user service.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity is a signed-in user together with its auth token.
type Identity struct {
	User
	Token string `json:"token"`
}

// Directory is the remote auth/user contract. Login exchanges credentials
// for a token; Users and UserByID resolve identities. Credential to
// identity resolution happens against this contract, never against a
// baked-in default account.
type Directory interface {
	Login(ctx context.Context, username, password string) (string, error)
	Users(ctx context.Context) ([]User, error)
	UserByID(ctx context.Context, id int) (User, error)
}

// CartBinder is the slice of the cart store the session interacts with:
// binding a freshly signed-in identity, and discarding cart state on
// sign-out.
type CartBinder interface {
	BindIdentity(ctx context.Context, userID int)
	Reset()
}

// Store holds the current identity used to key remote cart sync. The
// identity is persisted to local storage under the token, userId and
// userData keys.
type Store struct {
	mu     sync.Mutex
	local  *localstore.Store
	dir    Directory
	binder CartBinder
	user   *Identity
}

func NewStore(local *localstore.Store, dir Directory, binder CartBinder) *Store {
	return &Store{local: local, dir: dir, binder: binder}
}

// Load restores a persisted identity from local storage. A missing or
// malformed blob leaves the session signed out.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id Identity
	if !s.local.GetJSON(localstore.KeyUserData, &id) || id.ID == 0 {
		return
	}
	s.user = &id
}

// Login authenticates against the remote auth service and resolves the
// credentials to a real account by username. On success the identity is
// persisted and bound to the cart store.
func (s *Store) Login(ctx context.Context, username, password string) (Identity, error) {
	token, err := s.dir.Login(ctx, username, password)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to log in: %w", err)
	}

	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{User: user, Token: token}

	s.mu.Lock()
	s.user = &id
	s.persistLocked(id)
	s.mu.Unlock()

	if s.binder != nil {
		s.binder.BindIdentity(ctx, id.ID)
	}
	return id, nil
}

// resolveUser finds the account matching username in the remote user
// listing.
func (s *Store) resolveUser(ctx context.Context, username string) (User, error) {
	users, err := s.dir.Users(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, ErrUnknownUser
}

// Logout discards the identity, its persisted keys and the cart.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	for _, key := range []string{localstore.KeyToken, localstore.KeyUserID, localstore.KeyUserData} {
		if err := s.local.Delete(key); err != nil {
			log.Printf("[Session] Failed to delete %s: %v", key, err)
		}
	}
	s.mu.Unlock()

	if s.binder != nil {
		s.binder.Reset()
	}
}

// Current returns the signed-in identity, if any.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return Identity{}, false
	}
	return *s.user, true
}

// Profile fetches the signed-in user's account from the remote user
// service.
func (s *Store) Profile(ctx context.Context) (User, error) {
	id, ok := s.Current()
	if !ok {
		return User{}, errors.New("not signed in")
	}
	return s.dir.UserByID(ctx, id.ID)
}

func (s *Store) persistLocked(id Identity) {
	if err := s.local.SetJSON(localstore.KeyToken, id.Token); err != nil {
		log.Printf("[Session] Failed to persist token: %v", err)
	}
	if err := s.local.SetJSON(localstore.KeyUserID, id.ID); err != nil {
		log.Printf("[Session] Failed to persist user id: %v", err)
	}
	if err := s.local.SetJSON(localstore.KeyUserData, id); err != nil {
		log.Printf("[Session] Failed to persist user data: %v", err)
	}
}
