package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    "u-1",
		Name:  "Ada Obi",
		Email: "ada@example.com",
		Role:  models.RoleTenant,
	}
}

// authRoutes serves a login that succeeds and the profile fetch that the
// store fires in the background afterwards.
func authRoutes(t *testing.T, r *mux.Router, token string) {
	r.HandleFunc("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, dtos.AuthResponse{Token: token, User: testUser()})
	}).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", func(w http.ResponseWriter, req *http.Request) {
		writeData(t, w, map[string]any{"user": testUser()})
	}).Methods(http.MethodGet)
}

func TestLoginPersistsSessionSubset(t *testing.T) {
	client, st := newTestBackend(t, func(r *mux.Router) {
		authRoutes(t, r, "tok-1")
	})
	s := NewSession(client, st)

	resp, err := s.Login(context.Background(),
		dtos.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok-1", s.Token())
	require.Equal(t, "u-1", s.User().ID)
	require.Empty(t, s.Err())

	// Exactly token, user, and the flag survive in durable storage.
	var persisted models.Session
	ok, err := st.Get(models.SessionStorageKey, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-1", persisted.Token)
	require.True(t, persisted.Authenticated)
	require.Equal(t, "u-1", persisted.User.ID)
}

func TestLoginValidation(t *testing.T) {
	client, st := newTestBackend(t, func(r *mux.Router) {})
	s := NewSession(client, st)

	_, err := s.Login(context.Background(), dtos.LoginRequest{Email: "ada@example.com"})
	require.Error(t, err)
	require.Equal(t, "Login failed", s.Err())
	require.False(t, s.IsAuthenticated())
}

func TestSessionRehydratesFromStorage(t *testing.T) {
	client, st := newTestBackend(t, func(r *mux.Router) {})
	require.NoError(t, st.Set(models.SessionStorageKey, models.Session{
		Token:         "tok-9",
		User:          testUser(),
		Authenticated: true,
	}))

	s := NewSession(client, st)
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok-9", s.Token())
	require.Equal(t, "Ada Obi", s.User().Name)
}

func TestLogoutClearsEverything(t *testing.T) {
	client, st := newTestBackend(t, func(r *mux.Router) {
		authRoutes(t, r, "tok-1")
	})
	s := NewSession(client, st)

	_, err := s.Login(context.Background(),
		dtos.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Let the background profile fetch land before clearing state.
	require.Eventually(t, func() bool { return s.Profile() != nil },
		time.Second, 10*time.Millisecond)

	s.Logout()

	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.Token())
	require.Nil(t, s.User())
	require.Nil(t, s.Profile())
	require.Empty(t, s.VerificationID())
	require.Empty(t, s.Err())

	var persisted models.Session
	ok, err := st.Get(models.SessionStorageKey, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, persisted.Token)
	require.False(t, persisted.Authenticated)
}

func TestRegisterThreadsVerificationID(t *testing.T) {
	client, st := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/auth/register", func(w http.ResponseWriter, req *http.Request) {
			writeData(t, w, dtos.RegisterResponse{UserID: "u-42"})
		}).Methods(http.MethodPost)
		r.HandleFunc("/auth/verify-otp", func(w http.ResponseWriter, req *http.Request) {
			var body dtos.VerifyOTPRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			// The pending id from Register must be supplied implicitly.
			require.Equal(t, "u-42", body.UserID)
			require.Equal(t, "123456", body.OTP)
			writeJSON(t, w, dtos.AuthResponse{Token: "tok-2", User: testUser()})
		}).Methods(http.MethodPost)
		r.HandleFunc("/auth/me", func(w http.ResponseWriter, req *http.Request) {
			writeData(t, w, map[string]any{"user": testUser()})
		}).Methods(http.MethodGet)
	})
	s := NewSession(client, st)

	id, err := s.Register(context.Background(), dtos.RegisterRequest{
		Name:     "Ada Obi",
		Email:    "ada@example.com",
		Phone:    "+2348012345678",
		Password: "secret123",
		Role:     models.RoleTenant,
	})
	require.NoError(t, err)
	require.Equal(t, "u-42", id)
	require.Equal(t, "u-42", s.VerificationID())
	require.False(t, s.IsAuthenticated())

	resp, err := s.VerifyOTP(context.Background(), dtos.VerifyOTPRequest{OTP: "123456"})
	require.NoError(t, err)
	require.Equal(t, "tok-2", resp.Token)
	require.True(t, s.IsAuthenticated())
	require.Empty(t, s.VerificationID())
}

func TestFailureReportsOnBothChannels(t *testing.T) {
	t.Run("server message wins", func(t *testing.T) {
		client, st := newTestBackend(t, func(r *mux.Router) {
			r.HandleFunc("/auth/login", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": "Invalid credentials"}`))
			}).Methods(http.MethodPost)
		})
		s := NewSession(client, st)

		_, err := s.Login(context.Background(),
			dtos.LoginRequest{Email: "ada@example.com", Password: "wrong-one"})
		require.Error(t, err)
		require.Equal(t, "Invalid credentials", s.Err())
		require.False(t, s.Loading())
	})

	t.Run("fallback when the body has no message", func(t *testing.T) {
		client, st := newTestBackend(t, func(r *mux.Router) {
			r.HandleFunc("/auth/login", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}).Methods(http.MethodPost)
		})
		s := NewSession(client, st)

		_, err := s.Login(context.Background(),
			dtos.LoginRequest{Email: "ada@example.com", Password: "secret123"})
		require.Error(t, err)
		require.Equal(t, "Login failed", s.Err())
	})

	t.Run("transport failure normalized", func(t *testing.T) {
		client, st := newTestBackend(t, func(r *mux.Router) {})
		s := NewSession(client, st)

		badClient, err := api.New("http://127.0.0.1:1", 0, st)
		require.NoError(t, err)
		s.client = badClient

		_, err = s.Login(context.Background(),
			dtos.LoginRequest{Email: "ada@example.com", Password: "secret123"})
		require.Error(t, err)
		require.Equal(t, api.NetworkErrorMessage, s.Err())
	})
}

func TestGetProfileSkipsServerWhenLoggedOut(t *testing.T) {
	called := false
	client, st := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/auth/me", func(w http.ResponseWriter, req *http.Request) {
			called = true
		})
	})
	s := NewSession(client, st)

	profile, err := s.GetProfile(context.Background())
	require.NoError(t, err)
	require.Nil(t, profile)
	require.False(t, called)
}

func TestRefreshTokenFailureLogsOut(t *testing.T) {
	client, st := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "Token expired"}`))
		}).Methods(http.MethodPost)
	})
	require.NoError(t, st.Set(models.SessionStorageKey, models.Session{
		Token:         "stale",
		User:          testUser(),
		Authenticated: true,
	}))
	s := NewSession(client, st)

	require.False(t, s.RefreshToken(context.Background()))
	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.Token())
}

func TestRoleAndExpiryPeekedFromToken(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u-1",
		"role": "landlord",
		"exp":  exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	client, st := newTestBackend(t, func(r *mux.Router) {})
	require.NoError(t, st.Set(models.SessionStorageKey, models.Session{
		Token:         tok,
		User:          testUser(),
		Authenticated: true,
	}))

	s := NewSession(client, st)
	require.Equal(t, models.RoleLandlord, s.Role())
	require.True(t, s.TokenExpiresAt().Equal(exp))
}
