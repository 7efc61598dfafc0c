// Package stores holds the client-side state stores: session, property, and
// booking. Stores are explicit service objects constructed once at app start
// and injected where needed, never ambient singletons.
//
// Every operation follows the same failure pattern: a loading flag is set
// before the call; on failure the store's error slot gets the server message
// (or a store-specific fallback) AND the error is returned to the caller.
// Both channels are deliberate: some callers watch the slot, others handle
// the returned error directly.
package stores

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/models"
	"github.com/crowdhq/crowd-client-go/internal/storage"
	"github.com/crowdhq/crowd-client-go/internal/utils"
)

var validate = validator.New()

// Session holds the authentication token and user identity. The token, user,
// and authenticated flag persist to durable storage (models.Session is the
// serialization boundary); everything else is process-transient.
type Session struct {
	mu      sync.Mutex
	client  *api.Client
	storage *storage.Store

	token          string
	user           *models.User
	profile        *models.Profile
	authenticated  bool
	verificationID string

	loading bool
	errMsg  string
}

// NewSession builds the session store, rehydrating the persisted subset from
// durable storage so an authenticated session survives process restart.
func NewSession(client *api.Client, st *storage.Store) *Session {
	s := &Session{client: client, storage: st}

	var persisted models.Session
	ok, err := st.Get(models.SessionStorageKey, &persisted)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error restoring persisted session")
	}
	if ok {
		s.token = persisted.Token
		s.user = persisted.User
		s.authenticated = persisted.Authenticated
	}
	return s
}

// -----------------------------------------------------------------------------
// Observable state
// -----------------------------------------------------------------------------

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Session) VerificationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verificationID
}

// Role peeks at the role claim of the bearer token without verifying the
// signature (the client has no key material; the server is the authority).
func (s *Session) Role() models.Role {
	claims := s.tokenClaims()
	if claims == nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return models.Role(role)
}

// TokenExpiresAt returns the bearer token's expiry, or zero when absent.
func (s *Session) TokenExpiresAt() time.Time {
	claims := s.tokenClaims()
	if claims == nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func (s *Session) tokenClaims() jwt.MapClaims {
	tok := s.Token()
	if tok == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return nil
	}
	return claims
}

// -----------------------------------------------------------------------------
// Internal plumbing
// -----------------------------------------------------------------------------

func (s *Session) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Session) fail(err error, fallback string) error {
	s.mu.Lock()
	s.errMsg = api.Message(err, fallback)
	s.loading = false
	s.mu.Unlock()
	return err
}

// persistLocked snapshots the durable subset. Caller holds s.mu.
func (s *Session) persistLocked() {
	snapshot := models.Session{
		Token:         s.token,
		User:          s.user,
		Authenticated: s.authenticated,
	}
	if err := s.storage.Set(models.SessionStorageKey, snapshot); err != nil {
		utils.Logger.WithError(err).Error("Error persisting session")
	}
}

func (s *Session) setAuthenticated(resp dtos.AuthResponse, clearVerification bool) {
	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	s.authenticated = true
	if clearVerification {
		s.verificationID = ""
	}
	s.loading = false
	s.persistLocked()
	s.mu.Unlock()
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// Register creates an account and returns the pending-verification id, which
// is also retained for the subsequent OTP verification.
func (s *Session) Register(ctx context.Context, req dtos.RegisterRequest) (string, error) {
	s.begin()
	if err := validate.Struct(req); err != nil {
		return "", s.fail(err, "Registration failed")
	}

	var env struct {
		Data dtos.RegisterResponse `json:"data"`
	}
	if err := s.client.Post(ctx, "/auth/register", req, &env); err != nil {
		return "", s.fail(err, "Registration failed")
	}

	s.mu.Lock()
	s.verificationID = env.Data.UserID
	s.loading = false
	s.mu.Unlock()
	return env.Data.UserID, nil
}

// VerifyOTP confirms a one-time code. When req.UserID is empty the pending
// id from the preceding Register call is supplied implicitly.
func (s *Session) VerifyOTP(ctx context.Context, req dtos.VerifyOTPRequest) (*dtos.AuthResponse, error) {
	s.begin()

	s.mu.Lock()
	if req.UserID == "" {
		req.UserID = s.verificationID
	}
	s.mu.Unlock()

	if err := validate.Struct(req); err != nil {
		return nil, s.fail(err, "OTP verification failed")
	}

	var resp dtos.AuthResponse
	if err := s.client.Post(ctx, "/auth/verify-otp", req, &resp); err != nil {
		return nil, s.fail(err, "OTP verification failed")
	}

	s.setAuthenticated(resp, true)
	return &resp, nil
}

// Login authenticates with email or phone credentials. On success the
// profile fetch kicks off in the background; its failure is not surfaced
// here.
func (s *Session) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthResponse, error) {
	s.begin()
	if err := validate.Struct(req); err != nil {
		return nil, s.fail(err, "Login failed")
	}

	var resp dtos.AuthResponse
	if err := s.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, s.fail(err, "Login failed")
	}

	s.setAuthenticated(resp, false)

	go func() {
		if _, err := s.GetProfile(context.WithoutCancel(ctx)); err != nil {
			utils.Logger.WithError(err).Debug("Post-login profile fetch failed")
		}
	}()

	return &resp, nil
}

// GetProfile fetches the role-specific profile. Returns nil without calling
// the server when the session is unauthenticated.
func (s *Session) GetProfile(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return nil, nil
	}
	s.loading = true
	s.mu.Unlock()

	var env struct {
		Data models.Profile `json:"data"`
	}
	if err := s.client.Get(ctx, "/auth/me", nil, &env); err != nil {
		return nil, s.fail(err, "Failed to fetch user profile")
	}

	s.mu.Lock()
	s.profile = &env.Data
	s.loading = false
	s.mu.Unlock()
	return &env.Data, nil
}

// UpdateProfile patches the current user's details and refreshes the profile
// in the background.
func (s *Session) UpdateProfile(ctx context.Context, updates map[string]any) (*models.User, error) {
	s.begin()

	var env struct {
		Data models.User `json:"data"`
	}
	if err := s.client.Put(ctx, "/auth/me", updates, &env); err != nil {
		return nil, s.fail(err, "Update failed")
	}

	s.mu.Lock()
	if s.user != nil {
		s.user = &env.Data
		s.persistLocked()
	}
	s.loading = false
	s.mu.Unlock()

	go func() {
		_, _ = s.GetProfile(context.WithoutCancel(ctx))
	}()

	return &env.Data, nil
}

func (s *Session) UpdatePassword(ctx context.Context, req dtos.UpdatePasswordRequest) error {
	s.begin()
	if err := validate.Struct(req); err != nil {
		return s.fail(err, "Password update failed")
	}
	if err := s.client.Put(ctx, "/auth/update-password", req, nil); err != nil {
		return s.fail(err, "Password update failed")
	}
	s.finish()
	return nil
}

func (s *Session) ForgotPassword(ctx context.Context, req dtos.ForgotPasswordRequest) error {
	s.begin()
	if err := s.client.Post(ctx, "/auth/forgot-password", req, nil); err != nil {
		return s.fail(err, "Request failed")
	}
	s.finish()
	return nil
}

func (s *Session) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	s.begin()
	req := dtos.ResetPasswordRequest{Password: newPassword}
	if err := validate.Struct(req); err != nil {
		return s.fail(err, "Password reset failed")
	}
	if err := s.client.Put(ctx, "/auth/reset-password/"+resetToken, req, nil); err != nil {
		return s.fail(err, "Password reset failed")
	}
	s.finish()
	return nil
}

// ResendOTP requests a fresh one-time code, threading the pending id the
// same way VerifyOTP does.
func (s *Session) ResendOTP(ctx context.Context, req dtos.ResendOTPRequest) error {
	s.begin()

	s.mu.Lock()
	if req.UserID == "" {
		req.UserID = s.verificationID
	}
	s.mu.Unlock()

	if err := s.client.Post(ctx, "/auth/resend-otp", req, nil); err != nil {
		return s.fail(err, "Failed to resend OTP")
	}
	s.finish()
	return nil
}

// Logout clears token, user, profile, authenticated flag, and the pending
// verification id in a single state transition, and persists the cleared
// session so no later call can pick up a stale token.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.profile = nil
	s.authenticated = false
	s.verificationID = ""
	s.errMsg = ""
	s.persistLocked()
	s.mu.Unlock()
	utils.Logger.Info("Logged out")
}

// RefreshToken exchanges the current token for a fresh one. A failed refresh
// logs the session out.
func (s *Session) RefreshToken(ctx context.Context) bool {
	if s.Token() == "" {
		return false
	}

	var resp dtos.AuthResponse
	if err := s.client.Post(ctx, "/auth/refresh-token", nil, &resp); err != nil {
		s.Logout()
		return false
	}

	s.mu.Lock()
	s.token = resp.Token
	s.authenticated = true
	s.persistLocked()
	s.mu.Unlock()
	return true
}

func (s *Session) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
