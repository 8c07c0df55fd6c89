package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvaleed/catalog/internal/auth"
	"github.com/mvaleed/catalog/internal/config"
	"github.com/mvaleed/catalog/internal/event"
	"github.com/mvaleed/catalog/internal/result"
	"github.com/mvaleed/catalog/internal/service"
	"github.com/mvaleed/catalog/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memory.New()
	pub := event.NewNoopPublisher()
	handlers := service.NewHandlers(
		service.NewUserService(store, auth.NewBcryptHasher(bcrypt.MinCost), pub),
		service.NewGameService(store, pub),
		validator.New(validator.WithRequiredStructEnabled()),
		logger,
	)
	cfg := &config.Config{RequestTimeout: 5 * time.Second, AllowedOrigins: []string{"*"}}
	srv := httptest.NewServer(NewServer(cfg, handlers, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, actor string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(actorHeader, actor)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func validUser() map[string]any {
	return map[string]any{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@doe.com",
		"password":  "Valid@1234",
		"role":      "User",
	}
}

func validGame() map[string]any {
	return map[string]any{
		"name":        "Celeste",
		"developer":   "Maddy Makes Games",
		"publisher":   "Maddy Makes Games",
		"price":       19.99,
		"diskSize":    1.2,
		"ageRating":   "E10+",
		"releaseDate": "2018-01-25",
	}
}

func errorCodes(body map[string]any) []string {
	var codes []string
	list, _ := body["validationErrors"].([]any)
	for _, item := range list {
		codes = append(codes, item.(map[string]any)["errorCode"].(string))
	}
	return codes
}

func TestCreateAndGetUser(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", validUser())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "john@doe.com", body["email"])
	assert.NotContains(t, body, "password")
	id := body["id"].(string)
	assert.Equal(t, "/api/v1/users/"+id, resp.Header.Get("Location"))

	resp, body = do(t, http.MethodGet, srv.URL+"/api/v1/users/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "John", body["firstName"])

	resp, body = do(t, http.MethodGet, srv.URL+"/api/v1/users/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NotFound", body["status"])
}

func TestCreateUser_InvalidReturnsEveryError(t *testing.T) {
	srv := newTestServer(t)
	user := validUser()
	user["email"] = "nope"
	user["password"] = "Valid@abcd"
	user["role"] = "Root"

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", user)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid", body["status"])
	assert.Equal(t, []string{"Email.InvalidFormat", "Password.Digit", "Role.Invalid"}, errorCodes(body))

	first := body["validationErrors"].([]any)[0].(map[string]any)
	assert.Equal(t, "Email", first["identifier"])
	assert.Equal(t, "Error", first["severity"])
	assert.NotEmpty(t, first["errorMessage"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", validUser())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", validUser())

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Email.AlreadyExists"}, errorCodes(body))
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", "{not json")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Body.InvalidFormat"}, errorCodes(body))
}

func TestAuthenticate(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/v1/users", "", validUser())

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/auth/authenticate", "", map[string]any{
		"email": "john@doe.com", "password": "Valid@1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User", body["role"])

	resp, body = do(t, http.MethodPost, srv.URL+"/api/v1/auth/authenticate", "", map[string]any{
		"email": "john@doe.com", "password": "Wrong@1234",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["status"])
}

func TestGameLifecycle(t *testing.T) {
	srv := newTestServer(t)
	admin := validUser()
	admin["email"] = "ada@example.com"
	admin["role"] = "Admin"
	_, adminBody := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", admin)
	_, userBody := do(t, http.MethodPost, srv.URL+"/api/v1/users", "", validUser())
	adminID, userID := adminBody["id"].(string), userBody["id"].(string)

	resp, game := do(t, http.MethodPost, srv.URL+"/api/v1/games", "", validGame())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	gameURL := srv.URL + "/api/v1/games/" + game["id"].(string)
	assert.Equal(t, "2018-01-25", game["releaseDate"])

	resp, _ = do(t, http.MethodPut, gameURL+"/price", userID, map[string]any{"price": 0})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := do(t, http.MethodPut, gameURL+"/price", adminID, map[string]any{"price": 4.99})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4.99, body["price"])

	resp, body = do(t, http.MethodPut, gameURL+"/price", "", map[string]any{"price": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"ActorID.Required"}, errorCodes(body))

	resp, _ = do(t, http.MethodDelete, gameURL, adminID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, gameURL, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateGame_DuplicateName(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/v1/games", "", validGame())

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/games", "", validGame())

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Name.AlreadyExists"}, errorCodes(body))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestWriteFailure_HidesUnknownErrors(t *testing.T) {
	s := &Server{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	respond(s, rec, req, result.Error[string]("boom"), errors.New("pq: relation does not exist"), http.StatusOK, func(v string) string { return v })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(result.StatusOK))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(result.StatusInvalid))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(result.StatusNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(result.StatusUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(result.StatusForbidden))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(result.StatusError))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(result.Status(99)))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/games", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://store.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
