// Package teacher produces the password-gated teacher materials: printable
// level and formal tests with answer keys, an index page and XLSX answer
// key workbooks.
package teacher

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHeader carries the teacher password on requests.
const PasswordHeader = "X-Teacher-Password"

// ErrUnauthorized is returned for a missing or wrong password.
var ErrUnauthorized = errors.New("unauthorized")

// Gate checks the teacher password against a bcrypt hash.
type Gate struct {
	hash []byte
}

// NewGate builds a gate from a bcrypt hash or, when hash is empty, from a
// plaintext password hashed at startup.
func NewGate(password, hash string) (*Gate, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid teacher password hash: %w", err)
		}
		return &Gate{hash: []byte(hash)}, nil
	}
	if password == "" {
		return nil, fmt.Errorf("teacher password is empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing teacher password: %w", err)
	}
	return &Gate{hash: h}, nil
}

// Check compares password with the stored hash in constant time.
func (g *Gate) Check(password string) error {
	if password == "" {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// Middleware rejects requests without the right password header.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.Check(r.Header.Get(PasswordHeader)); err != nil {
			slog.Warn("teacher materials access denied", "path", r.URL.Path, "remote", r.RemoteAddr)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintln(w, "teacher password required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
