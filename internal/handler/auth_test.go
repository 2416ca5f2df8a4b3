package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/retail-pos-backend/internal/handler"
	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/repository"
	"github.com/iliyamo/retail-pos-backend/internal/utils"
)

// stubCredentialStore satisfies handler.CredentialStore without a
// database; tests seed it and inspect what the handler asked for.
type stubCredentialStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User

	createErr   error
	createdRole string

	storedUserID string
	storedToken  string
	storedExp    time.Time
	clearedID    string
}

func (s *stubCredentialStore) Create(_ context.Context, email, names, phone, role, _ string, _ int) (*model.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createdRole = role
	return &model.User{ID: "new-user-id", Email: email, Names: names, Phone: phone, Role: role}, nil
}

func (s *stubCredentialStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubCredentialStore) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubCredentialStore) StoreRefresh(_ context.Context, id, token string, exp time.Time) error {
	s.storedUserID, s.storedToken, s.storedExp = id, token, exp
	return nil
}

func (s *stubCredentialStore) ClearRefresh(_ context.Context, id string) error {
	s.clearedID = id
	return nil
}

func authTestIssuer() utils.TokenIssuer {
	return utils.TokenIssuer{
		Secret:         "test-secret",
		Issuer:         "pos-api",
		Audience:       "pos-web",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
	}
}

func newAuthHandler(store *stubCredentialStore) *handler.AuthHandler {
	return handler.NewAuthHandler(authTestIssuer(), store, bcrypt.MinCost)
}

func seedUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           "u-1",
		Email:        "admin@easystore.local",
		Names:        "Store Admin",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	}
}

func TestRegisterGrantsAdminRole(t *testing.T) {
	store := &stubCredentialStore{}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/register",
		`{"email":"new@easystore.local","names":"New Admin","password":"secret1"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.RoleAdmin, store.createdRole)
	assert.Contains(t, rec.Body.String(), "new-user-id")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := &stubCredentialStore{createErr: repository.ErrEmailExists}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/register",
		`{"email":"taken@easystore.local","names":"Dup","password":"secret1"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is already in use")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := newAuthHandler(&stubCredentialStore{})

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/register",
		`{"email":"a@b.c","names":"A","password":"abc"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	u := seedUser(t, "Admin123!")
	store := &stubCredentialStore{byEmail: map[string]*model.User{u.Email: u}}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"admin@easystore.local","password":"Admin123!"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The refresh token handed to the client is the one persisted.
	assert.Equal(t, u.ID, store.storedUserID)
	assert.Equal(t, resp.RefreshToken, store.storedToken)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	u := seedUser(t, "Admin123!")
	store := &stubCredentialStore{byEmail: map[string]*model.User{u.Email: u}}
	h := newAuthHandler(store)
	e := newEcho()

	wrongPass := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"admin@easystore.local","password":"nope"}`)
	require.NoError(t, h.Login(e.NewContext(req, wrongPass)))

	unknown := httptest.NewRecorder()
	req = jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"ghost@easystore.local","password":"Admin123!"}`)
	require.NoError(t, h.Login(e.NewContext(req, unknown)))

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestRefreshRotatesToken(t *testing.T) {
	exp := time.Now().UTC().Add(24 * time.Hour)
	u := seedUser(t, "Admin123!")
	u.RefreshToken = "current-refresh-token"
	u.RefreshTokenExpiresAt = &exp
	store := &stubCredentialStore{byID: map[string]*model.User{u.ID: u}}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/refresh",
		`{"user_id":"u-1","refresh_token":"current-refresh-token"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Refresh(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, "current-refresh-token", resp.RefreshToken)
	assert.Equal(t, resp.RefreshToken, store.storedToken)
}

func TestRefreshRejectsMismatch(t *testing.T) {
	exp := time.Now().UTC().Add(24 * time.Hour)
	u := seedUser(t, "Admin123!")
	u.RefreshToken = "current-refresh-token"
	u.RefreshTokenExpiresAt = &exp
	store := &stubCredentialStore{byID: map[string]*model.User{u.ID: u}}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/refresh",
		`{"user_id":"u-1","refresh_token":"stale-token"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Refresh(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.storedToken, "no new token may be issued")
}

func TestRefreshRejectsExpired(t *testing.T) {
	exp := time.Now().UTC().Add(-time.Minute)
	u := seedUser(t, "Admin123!")
	u.RefreshToken = "current-refresh-token"
	u.RefreshTokenExpiresAt = &exp
	store := &stubCredentialStore{byID: map[string]*model.User{u.ID: u}}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/refresh",
		`{"user_id":"u-1","refresh_token":"current-refresh-token"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Refresh(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRejectsLoggedOutUser(t *testing.T) {
	u := seedUser(t, "Admin123!")
	store := &stubCredentialStore{byID: map[string]*model.User{u.ID: u}}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/auth/refresh",
		`{"user_id":"u-1","refresh_token":"anything"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Refresh(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsRefreshToken(t *testing.T) {
	u := seedUser(t, "Admin123!")
	store := &stubCredentialStore{byID: map[string]*model.User{u.ID: u}}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/logout", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", u.ID) // as JWTAuth would after validating the bearer token
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, u.ID, store.clearedID)
}

func TestLogoutUnknownUser(t *testing.T) {
	store := &stubCredentialStore{}
	h := newAuthHandler(store)

	e := newEcho()
	req := jsonRequest(http.MethodPost, "/v1/logout", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "gone")
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.clearedID)
}
