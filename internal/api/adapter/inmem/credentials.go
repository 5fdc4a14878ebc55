package inmem

import (
	"crypto/subtle"
	"slices"

	"employeeapi/internal/domain"
)

// CredentialStore is an immutable, ordered table of users. It is built once at
// startup and read concurrently without locking.
type CredentialStore struct {
	entries []domain.Credential
}

// NewCredentialStore copies creds so later changes by the caller are not observed.
func NewCredentialStore(creds []domain.Credential) *CredentialStore {
	entries := make([]domain.Credential, len(creds))
	for i, c := range creds {
		entries[i] = domain.Credential{
			Username: c.Username,
			Password: c.Password,
			Roles:    slices.Clone(c.Roles),
		}
	}
	return &CredentialStore{entries: entries}
}

// Lookup returns every entry for username in store order. Usernames are not
// required to be unique.
func (s *CredentialStore) Lookup(username string) []domain.Credential {
	var out []domain.Credential
	for _, c := range s.entries {
		if c.Username == username {
			out = append(out, c)
		}
	}
	return out
}

// Verify returns a principal for the first entry of username whose password
// is exactly password.
func (s *CredentialStore) Verify(username, password string) (domain.Principal, bool) {
	for _, c := range s.Lookup(username) {
		if subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1 {
			return domain.Principal{
				Username: c.Username,
				Roles:    slices.Clone(c.Roles),
			}, true
		}
	}
	return domain.Principal{}, false
}

// Len returns the number of entries, duplicates included.
func (s *CredentialStore) Len() int {
	return len(s.entries)
}
