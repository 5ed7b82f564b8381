package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/niranjan1960/banos-dessert/internal/store"
	"github.com/niranjan1960/banos-dessert/pkg/logger"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PolicyPermissive)

	u, err := f.auth.Signup(ctx, "s1", SignupInput{Name: "  Sarah  ", Email: " Sarah@Example.COM ", Password: "secret1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.ID == "" || u.Name != "Sarah" || u.Email != "sarah@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	cur, err := f.auth.Current(ctx, "s1")
	if err != nil || cur == nil || cur.ID != u.ID {
		t.Fatalf("signup should sign the session in: %+v %v", cur, err)
	}

	raw, err := f.store.Get(ctx, "user:"+u.ID)
	if err != nil {
		t.Fatalf("user record: %v", err)
	}
	if strings.Contains(string(raw), "password") {
		t.Fatalf("user record leaks credentials: %s", raw)
	}
	if _, err := f.store.Get(ctx, "credential:"+u.ID); err != nil {
		t.Fatalf("credential record missing: %v", err)
	}

	t.Run("duplicate email differing only in case", func(t *testing.T) {
		_, err := f.auth.Signup(ctx, "s2", SignupInput{Name: "Other", Email: "SARAH@example.com", Password: "another1"})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	tests := []struct {
		name   string
		in     SignupInput
		fields []string
	}{
		{"all missing", SignupInput{}, []string{"name", "email", "password"}},
		{"bad email", SignupInput{Name: "A", Email: "not-an-email", Password: "secret1"}, []string{"email"}},
		{"short password", SignupInput{Name: "A", Email: "a@b.co", Password: "12345"}, []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Signup(context.Background(), "s", tt.in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(ve.Fields) != len(tt.fields) {
				t.Fatalf("fields = %+v, want %v", ve.Fields, tt.fields)
			}
			for i, fe := range ve.Fields {
				if fe.Field != tt.fields[i] {
					t.Fatalf("field %d = %s, want %s", i, fe.Field, tt.fields[i])
				}
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PolicyPermissive)
	f.signIn(t, "s1", "sarah@example.com")

	_, wrongPassword := f.auth.Login(ctx, "s2", "sarah@example.com", "wrong-password")
	_, unknownUser := f.auth.Login(ctx, "s2", "nobody@example.com", "wrong-password")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials twice, got %v / %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownUser)
	}
	if cur, _ := f.auth.Current(ctx, "s2"); cur != nil {
		t.Fatal("failed login signed the session in")
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, PolicyPermissive)
	u := f.signIn(t, "s1", "sarah@example.com")

	got, err := f.auth.Login(ctx, "s2", "  SARAH@example.com", "secret1")
	if err != nil || got.ID != u.ID {
		t.Fatalf("login: %+v %v", got, err)
	}
	if cur, _ := f.auth.Current(ctx, "s2"); cur == nil || cur.ID != u.ID {
		t.Fatal("login did not persist the session")
	}

	if err := f.auth.Logout(ctx, "s2"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if cur, _ := f.auth.Current(ctx, "s2"); cur != nil {
		t.Fatal("session survived logout")
	}
	if _, err := f.auth.Login(ctx, "s3", "sarah@example.com", "secret1"); err != nil {
		t.Fatalf("logout must not delete the account: %v", err)
	}
}

func TestTokensRoundTrip(t *testing.T) {
	tok := NewTokens("test-secret", time.Hour)
	raw, err := tok.Issue("sid-123")
	if err != nil {
		t.Fatal(err)
	}
	sid, err := tok.Parse(raw)
	if err != nil || sid != "sid-123" {
		t.Fatalf("parse: %q %v", sid, err)
	}
	if _, err := NewTokens("other-secret", time.Hour).Parse(raw); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
	expired, _ := NewTokens("test-secret", -time.Minute).Issue("sid")
	if _, err := tok.Parse(expired); err == nil {
		t.Fatal("expired token accepted")
	}
}

// failingSet rejects writes to keys under one prefix.
type failingSet struct {
	*store.Memory
	prefix string
}

func (f failingSet) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasPrefix(key, f.prefix) {
		return errors.New("boom")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestSignupRollsBackPartialWrites(t *testing.T) {
	ctx := context.Background()

	for _, prefix := range []string{prefixUser, prefixEmail, prefixSession} {
		t.Run(prefix, func(t *testing.T) {
			mem := store.NewMemory()
			auth, err := NewAuthService(failingSet{Memory: mem, prefix: prefix}, bcrypt.MinCost, logger.Discard())
			if err != nil {
				t.Fatal(err)
			}

			_, err = auth.Signup(ctx, "s1", SignupInput{Name: "Sarah", Email: "sarah@example.com", Password: "secret1"})
			if !errors.Is(err, ErrStore) {
				t.Fatalf("expected store error, got %v", err)
			}

			for _, p := range []string{prefixUser, prefixCredential, prefixEmail, prefixSession} {
				recs, err := mem.GetByPrefix(ctx, p)
				if err != nil {
					t.Fatal(err)
				}
				if len(recs) != 0 {
					t.Fatalf("%s records left behind: %d", p, len(recs))
				}
			}
		})
	}

	t.Run("retry after failure succeeds", func(t *testing.T) {
		mem := store.NewMemory()
		broken, _ := NewAuthService(failingSet{Memory: mem, prefix: prefixEmail}, bcrypt.MinCost, logger.Discard())
		in := SignupInput{Name: "Sarah", Email: "sarah@example.com", Password: "secret1"}
		if _, err := broken.Signup(ctx, "s1", in); err == nil {
			t.Fatal("expected failure")
		}

		healthy, _ := NewAuthService(mem, bcrypt.MinCost, logger.Discard())
		if _, err := healthy.Signup(ctx, "s1", in); err != nil {
			t.Fatalf("retry: %v", err)
		}
		users, _ := mem.GetByPrefix(ctx, prefixUser)
		if len(users) != 1 {
			t.Fatalf("expected exactly one user, got %d", len(users))
		}
	})
}
