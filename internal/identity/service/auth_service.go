// Package service orchestrates user creation, lookup, login, and per-request
// session validation.
package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	auditdomain "user-session-backend/internal/audit/domain"
	"user-session-backend/internal/logging"
	"user-session-backend/internal/security"
	sessiondomain "user-session-backend/internal/session/domain"
	userdomain "user-session-backend/internal/user/domain"
	userrepo "user-session-backend/internal/user/repository"
)

// Sentinel errors for the auth service; the HTTP handler maps them to status codes.
var (
	// ErrEmailTaken is returned by AddUser when the normalized email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by GetUser for a missing id.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthenticated is returned by Validate for a missing session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrSessionExpired is returned by Validate for an expired session. Callers
	// treat it like ErrUnauthenticated; it exists for logging.
	ErrSessionExpired = errors.New("session expired")
	// ErrStoreUnavailable is returned when the backing store fails. It is never
	// conflated with ErrInvalidCredentials so a store outage cannot be used to
	// probe credentials, and it carries no store-internal detail.
	ErrStoreUnavailable = errors.New("store unavailable")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewUser holds the fields accepted when creating a user. Password is the
// plaintext from the request; it is hashed before persistence and never stored.
type NewUser struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	UserTypeID int64
	CreatedBy  *int64
}

// LoginResult is the outcome of a successful login. The caller is responsible
// for transporting SessionID to the client (e.g. as a cookie whose max-age is
// derived from ExpiresAt).
type LoginResult struct {
	SessionID string
	UserID    int64
	ExpiresAt time.Time
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	GetByID(ctx context.Context, id string) (*sessiondomain.Session, error)
	Create(ctx context.Context, s *sessiondomain.Session) error
}

// AuditRecorder records best-effort audit events for auth actions.
type AuditRecorder interface {
	Record(ctx context.Context, userID *int64, action, metadata string)
}

// AuthService implements user creation, lookup, cookie-session login, and
// session validation.
type AuthService struct {
	userRepo    UserRepo
	sessionRepo SessionRepo
	hasher      *security.Hasher
	audit       AuditRecorder
	cookieLife  time.Duration
	log         logging.Logger
	nowF        func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies. audit may
// be nil to disable audit recording. cookieLife is how long issued sessions
// stay valid.
func NewAuthService(
	userRepo UserRepo,
	sessionRepo SessionRepo,
	hasher *security.Hasher,
	audit AuditRecorder,
	cookieLife time.Duration,
	log logging.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		audit:       audit,
		cookieLife:  cookieLife,
		log:         log,
		nowF:        func() time.Time { return time.Now().UTC() },
	}
}

// AddUser creates a user with the given fields. The email is normalized before
// the uniqueness check; a duplicate returns ErrEmailTaken. The password policy
// is enforced at the request-validation layer before this is called.
func (s *AuthService) AddUser(ctx context.Context, nu NewUser) (*userdomain.User, error) {
	email := userdomain.NormalizeEmail(nu.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if nu.UserTypeID == 0 {
		return nil, errors.New("user type is required")
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup user by email", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hashed, err := s.hasher.Hash([]byte(nu.Password))
	if err != nil {
		return nil, err
	}
	now := s.nowF()
	user := &userdomain.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		UserTypeID:   nu.UserTypeID,
		CreatedBy:    nu.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint can still fire between the pre-check and the
		// insert; surface it the same way.
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, s.storeFailure(ctx, "create user", err)
	}
	if s.audit != nil {
		id := user.ID
		s.audit.Record(ctx, &id, auditdomain.ActionUserCreated, user.Email)
	}
	return user, nil
}

// GetUser returns the user for id, or ErrUserNotFound.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*userdomain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup user by id", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Login authenticates with email/password and issues a session. Unknown email
// and wrong password both return ErrInvalidCredentials. Store failures return
// ErrStoreUnavailable, never ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = userdomain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup user by email", err)
	}
	if user == nil {
		s.recordLoginFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		s.recordLoginFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}
	now := s.nowF()
	sess := &sessiondomain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cookieLife),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, s.storeFailure(ctx, "create session", err)
	}
	if s.audit != nil {
		id := user.ID
		s.audit.Record(ctx, &id, auditdomain.ActionLogin, "")
	}
	return &LoginResult{
		SessionID: sess.ID,
		UserID:    user.ID,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// Validate checks the presented session id and resolves the owning user.
// Missing sessions return ErrUnauthenticated; expired sessions return
// ErrSessionExpired. Validity is fixed at issuance and not extended by use.
func (s *AuthService) Validate(ctx context.Context, sessionID string) (*userdomain.User, error) {
	if sessionID == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup session", err)
	}
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if sess.IsExpired(s.nowF()) {
		return nil, ErrSessionExpired
	}
	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup session user", err)
	}
	if user == nil {
		// Session points at a deleted user; treat like a missing session.
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// storeFailure logs the underlying store error and returns the generic
// ErrStoreUnavailable so no store-internal detail reaches the caller.
func (s *AuthService) storeFailure(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "store failure", "op", op, "error", err.Error())
	return ErrStoreUnavailable
}

func (s *AuthService) recordLoginFailure(ctx context.Context, email string) {
	if s.audit != nil {
		s.audit.Record(ctx, nil, auditdomain.ActionLoginFailure, email)
	}
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}
