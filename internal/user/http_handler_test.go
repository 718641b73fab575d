package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookmanager/internal/auth"
	"bookmanager/internal/httpx"
)

const testSecret = "handler-test-secret"

func newHandler(repo Repository) *HTTPHandler {
	return NewHTTPHandler(NewService(repo), testSecret, time.Hour)
}

func jsonRequest(method, target, body string) *http.Request {
	return httptest.NewRequest(method, target, strings.NewReader(body))
}

func authedRequest(method, target, body, username, pathUsername string) *http.Request {
	r := jsonRequest(method, target, body)
	r = r.WithContext(httpx.ContextWithUsername(r.Context(), username))
	r.SetPathValue("username", pathUsername)
	return r
}

func TestRegisterHandler(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "reader_01").Return(User{}, ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		rec := httptest.NewRecorder()
		body := `{"username":"reader_01","firstname":"Dan","lastname":"Brown","password":"s3cret-pw"}`
		newHandler(repo).Register(rec, jsonRequest(http.MethodPost, "/users", body))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp httpx.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "reader_01", data["username"])
	})

	t.Run("conflict on duplicate username", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "reader_01").Return(User{Username: "reader_01"}, nil)

		rec := httptest.NewRecorder()
		body := `{"username":"reader_01","firstname":"Dan","lastname":"Brown","password":"s3cret-pw"}`
		newHandler(repo).Register(rec, jsonRequest(http.MethodPost, "/users", body))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		cases := map[string]string{
			"username too short":      `{"username":"ab","firstname":"Dan","lastname":"Brown","password":"s3cret-pw"}`,
			"username bad characters": `{"username":"reader 01!","firstname":"Dan","lastname":"Brown","password":"s3cret-pw"}`,
			"firstname has digits":    `{"username":"reader_01","firstname":"D4n","lastname":"Brown","password":"s3cret-pw"}`,
			"lastname too long":       `{"username":"reader_01","firstname":"Dan","lastname":"Brownbrownbrownbrownbrown","password":"s3cret-pw"}`,
			"missing password":        `{"username":"reader_01","firstname":"Dan","lastname":"Brown"}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(mockRepo)
				rec := httptest.NewRecorder()
				newHandler(repo).Register(rec, jsonRequest(http.MethodPost, "/users", body))

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newHandler(new(mockRepo)).Register(rec, jsonRequest(http.MethodPost, "/users", `{not json`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pw")
	require.NoError(t, err)

	t.Run("returns signed token", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "reader_01").Return(User{Username: "reader_01", Password: hash}, nil)

		rec := httptest.NewRecorder()
		body := `{"username":"reader_01","password":"s3cret-pw"}`
		newHandler(repo).Login(rec, jsonRequest(http.MethodPost, "/users/login", body))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp httpx.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)

		claims, err := auth.ParseToken(testSecret, data["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, "reader_01", claims.Sub)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "reader_01").Return(User{Username: "reader_01", Password: hash}, nil)

		rec := httptest.NewRecorder()
		body := `{"username":"reader_01","password":"wrong"}`
		newHandler(repo).Login(rec, jsonRequest(http.MethodPost, "/users/login", body))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "nobody_here").Return(User{}, ErrNotFound)

		rec := httptest.NewRecorder()
		body := `{"username":"nobody_here","password":"whatever"}`
		newHandler(repo).Login(rec, jsonRequest(http.MethodPost, "/users/login", body))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetByUsernameHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "reader_01").Return(User{Username: "reader_01", FirstName: "Dan", LastName: "Brown"}, nil)

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/reader_01", nil)
		r.SetPathValue("username", "reader_01")
		newHandler(repo).GetByUsername(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp httpx.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "Dan", data["firstname"])
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "nobody_here").Return(User{}, ErrNotFound)

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/nobody_here", nil)
		r.SetPathValue("username", "nobody_here")
		newHandler(repo).GetByUsername(rec, r)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateHandler(t *testing.T) {
	body := `{"firstname":"Daniel","lastname":"Browne"}`

	t.Run("owner can update", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByUsername", mock.Anything, "reader_01").Return(User{Username: "reader_01", FirstName: "Dan", LastName: "Brown"}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		rec := httptest.NewRecorder()
		newHandler(repo).Update(rec, authedRequest(http.MethodPut, "/users/reader_01", body, "reader_01", "reader_01"))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp httpx.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "Daniel", data["firstname"])
	})

	t.Run("other accounts are forbidden", func(t *testing.T) {
		repo := new(mockRepo)
		rec := httptest.NewRecorder()
		newHandler(repo).Update(rec, authedRequest(http.MethodPut, "/users/reader_01", body, "someone_else", "reader_01"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteHandler(t *testing.T) {
	t.Run("owner can delete", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Delete", mock.Anything, "reader_01").Return(nil)

		rec := httptest.NewRecorder()
		newHandler(repo).Delete(rec, authedRequest(http.MethodDelete, "/users/reader_01", "", "reader_01", "reader_01"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("missing account", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Delete", mock.Anything, "reader_01").Return(ErrNotFound)

		rec := httptest.NewRecorder()
		newHandler(repo).Delete(rec, authedRequest(http.MethodDelete, "/users/reader_01", "", "reader_01", "reader_01"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("other accounts are forbidden", func(t *testing.T) {
		repo := new(mockRepo)
		rec := httptest.NewRecorder()
		newHandler(repo).Delete(rec, authedRequest(http.MethodDelete, "/users/reader_01", "", "someone_else", "reader_01"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
