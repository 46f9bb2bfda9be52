// Package session models the client-side auth state as an explicit value
// object instead of ambient global state. Consumers inject whatever
// key-value persistence they have (browser storage, a file, memory).
package session

const (
	keyLogged = "user_logged"
	keyEmail  = "user_email"
	keyToken  = "user_token"
)

// Store is the persistence boundary. Get returns "" for missing keys.
type Store interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// State tracks one signed-in identity and its bearer token.
type State struct {
	Authenticated bool
	Email         string
	Token         string

	store Store
}

// Load restores the state persisted in store.
func Load(store Store) *State {
	return &State{
		Authenticated: store.Get(keyLogged) == "true",
		Email:         store.Get(keyEmail),
		Token:         store.Get(keyToken),
		store:         store,
	}
}

// Login marks the session authenticated for email.
func (s *State) Login(email string) {
	s.Authenticated = true
	s.Email = email

	s.store.Set(keyLogged, "true")
	s.store.Set(keyEmail, email)
}

// SetToken stores the bearer token, or clears it when token is "".
func (s *State) SetToken(token string) {
	s.Token = token

	if token == "" {
		s.store.Delete(keyToken)
		return
	}

	s.store.Set(keyToken, token)
}

// Logout clears the whole session.
func (s *State) Logout() {
	s.Authenticated = false
	s.Email = ""
	s.Token = ""

	s.store.Delete(keyLogged)
	s.store.Delete(keyEmail)
	s.store.Delete(keyToken)
}
