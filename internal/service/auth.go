package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService owns the user directory and the per-session "current
// user" record. sid identifies the client session scope.
type AuthService interface {
	Signup(ctx context.Context, sid string, in SignupInput) (model.User, error)
	Login(ctx context.Context, sid, email, password string) (model.User, error)
	Logout(ctx context.Context, sid string) error
	// Current returns nil when the session is anonymous.
	Current(ctx context.Context, sid string) (*model.User, error)
}

type authService struct {
	users    *store.Repository[model.User]
	creds    *store.Repository[model.Credential]
	emails   *store.Repository[model.EmailIndex]
	sessions *store.Repository[model.Session]

	cost      int
	dummyHash []byte
	mu        sync.Mutex // email uniqueness
	log       *slog.Logger
	now       func() time.Time
}

// NewAuthService hashes passwords with bcrypt at cost; zero means
// bcrypt.DefaultCost.
func NewAuthService(s store.Store, cost int, log *slog.Logger) (AuthService, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &authService{
		users:     store.NewRepository[model.User](s, prefixUser),
		creds:     store.NewRepository[model.Credential](s, prefixCredential),
		emails:    store.NewRepository[model.EmailIndex](s, prefixEmail),
		sessions:  store.NewRepository[model.Session](s, prefixSession),
		cost:      cost,
		dummyHash: dummy,
		log:       log,
		now:       time.Now,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(in SignupInput) error {
	v := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "Please enter your name")
	}
	switch email := strings.TrimSpace(in.Email); {
	case email == "":
		v.Add("email", "Please enter your email address")
	case !emailPattern.MatchString(email):
		v.Add("email", "Please enter a valid email address")
	}
	switch {
	case in.Password == "":
		v.Add("password", "Please enter a password")
	case len(in.Password) < minPasswordLen:
		v.Add("password", "Password must be at least 6 characters long")
	}
	return v.Err()
}

func (a *authService) Signup(ctx context.Context, sid string, in SignupInput) (model.User, error) {
	if err := validateSignup(in); err != nil {
		return model.User{}, err
	}
	email := normalizeEmail(in.Email)

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.emails.Get(ctx, email)
	if err == nil {
		return model.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.User{}, storeErr("lookup email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return model.User{}, err
	}

	now := a.now().UTC()
	u := model.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		CreatedAt: now,
	}
	cred := model.Credential{UserID: u.ID, PasswordHash: string(hash), CreatedAt: now}

	var written []func(context.Context) error
	fail := func(err error) (model.User, error) {
		a.rollback(u.ID, written)
		return model.User{}, err
	}

	if err := a.creds.Put(ctx, u.ID, cred); err != nil {
		return fail(storeErr("save credential", err))
	}
	written = append(written, func(ctx context.Context) error { return a.creds.Delete(ctx, u.ID) })
	if err := a.users.Put(ctx, u.ID, u); err != nil {
		return fail(storeErr("save user", err))
	}
	written = append(written, func(ctx context.Context) error { return a.users.Delete(ctx, u.ID) })
	// The index entry is what makes the email taken.
	if err := a.emails.Put(ctx, email, model.EmailIndex{UserID: u.ID}); err != nil {
		return fail(storeErr("save email index", err))
	}
	written = append(written, func(ctx context.Context) error { return a.emails.Delete(ctx, email) })
	if err := a.startSession(ctx, sid, u); err != nil {
		return fail(err)
	}

	a.log.Info("user signed up", slog.String("user_id", u.ID))
	return u, nil
}

// rollback undoes a partial signup, newest write first. It runs on a
// fresh context so a cancelled request still cleans up.
func (a *authService) rollback(userID string, undo []func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			a.log.Error("signup rollback failed", slog.String("user_id", userID), slog.Any("err", err))
		}
	}
}

func (a *authService) Login(ctx context.Context, sid, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, invalid("credentials", "Please fill in all fields")
	}

	hash, userID, err := a.lookupHash(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || userID == "" {
		return model.User{}, ErrInvalidCredentials
	}

	u, err := a.users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, storeErr("load user", err)
	}
	if err := a.startSession(ctx, sid, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// lookupHash falls back to the dummy hash for unknown accounts so both
// failure paths cost one bcrypt comparison.
func (a *authService) lookupHash(ctx context.Context, email string) ([]byte, string, error) {
	idx, err := a.emails.Get(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return a.dummyHash, "", nil
	}
	if err != nil {
		return nil, "", storeErr("lookup email", err)
	}
	cred, err := a.creds.Get(ctx, idx.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return a.dummyHash, "", nil
	}
	if err != nil {
		return nil, "", storeErr("load credential", err)
	}
	return []byte(cred.PasswordHash), idx.UserID, nil
}

func (a *authService) startSession(ctx context.Context, sid string, u model.User) error {
	if err := a.sessions.Put(ctx, sid, model.Session{User: u, SignedInAt: a.now().UTC()}); err != nil {
		return storeErr("save session", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context, sid string) error {
	if err := a.sessions.Delete(ctx, sid); err != nil {
		return storeErr("clear session", err)
	}
	return nil
}

func (a *authService) Current(ctx context.Context, sid string) (*model.User, error) {
	return currentUser(ctx, a.sessions, sid)
}

func currentUser(ctx context.Context, sessions *store.Repository[model.Session], sid string) (*model.User, error) {
	sess, err := sessions.Get(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load session", err)
	}
	return &sess.User, nil
}
