package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/storyline/pkg/data"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(srv.URL, 5*time.Second, func() string { return "test-token" }, zerolog.Nop())
	return client, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []data.Category{{ID: 1, Name: "Romance"}})
	}))

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "JWT test-token", gotAuth)
	assert.Len(t, categories, 1)
	assert.Equal(t, "Romance", categories[0].Name)
}

func TestClient_AnonymousHasNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []data.Category{})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, nil, zerolog.Nop())
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ListStoriesQueryParams(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "3", q.Get("category"))
		assert.Equal(t, "vampire", q.Get("search"))
		assert.Equal(t, "-views", q.Get("ordering"))
		assert.Equal(t, "10", q.Get("page_size"))
		writeJSON(w, http.StatusOK, data.Page[data.Story]{Results: []data.Story{}})
	}))

	_, err := client.ListStories(context.Background(), StoriesQuery{
		Category: "3",
		Search:   "vampire",
		Ordering: "-views",
		PageSize: 10,
	})
	require.NoError(t, err)
}

func TestClient_FollowsAbsoluteNextLink(t *testing.T) {
	var mux http.ServeMux
	srv := httptest.NewServer(&mux)
	defer srv.Close()

	mux.HandleFunc("/api/stories/", func(w http.ResponseWriter, r *http.Request) {
		next := srv.URL + "/api/stories/?page=2"
		writeJSON(w, http.StatusOK, data.Page[data.Story]{
			Links:   data.PageLinks{Next: &next},
			Total:   3,
			Page:    1,
			Results: []data.Story{{ID: 1}, {ID: 2}},
		})
	})

	client := New(srv.URL, 5*time.Second, nil, zerolog.Nop())

	page, err := client.ListStories(context.Background(), StoriesQuery{})
	require.NoError(t, err)
	require.NotNil(t, page.Links.Next)

	// Passing the next link verbatim must hit the same server again.
	page2, err := client.ListStories(context.Background(), StoriesQuery{NextURL: *page.Links.Next})
	require.NoError(t, err)
	assert.Equal(t, 3, page2.Total)
}

func TestClient_FieldErrorsFlattened(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"email":    {"enter a valid email address."},
			"password": {"this field may not be blank."},
		})
	}))

	_, err := client.Login(context.Background(), Credentials{})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	messages := apiErr.Messages()
	assert.Len(t, messages, 2)
	assert.Contains(t, messages, "Enter a valid email address.")
	assert.Contains(t, messages, "This field may not be blank.")
}

func TestClient_SingleFieldErrorCapitalized(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"email": {"enter a valid email address."},
		})
	}))

	_, err := client.Login(context.Background(), Credentials{Email: "bad"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Empty(t, apiErr.Detail)
	assert.Equal(t, []string{"Enter a valid email address."}, apiErr.Messages())
}

func TestClient_NonFieldErrors(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Unable to log in with provided credentials."},
		})
	}))

	_, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Unable to log in with provided credentials."}, apiErr.Messages())
}

func TestClient_SingleDetailError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "No active account found with the given credentials",
		})
	}))

	_, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"No active account found with the given credentials"}, apiErr.Messages())
}

func TestClient_VerifyToken(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		valid  bool
	}{
		{"valid", http.StatusOK, map[string]string{}, true},
		{"invalid code in body", http.StatusOK, map[string]string{"code": "token_not_valid"}, false},
		{"unauthorized", http.StatusUnauthorized, map[string]string{"detail": "token invalid"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))

			valid, err := client.VerifyToken(context.Background(), "some-token")
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, TokenExpired("not-a-jwt"))
	assert.True(t, TokenExpired(""))

	// Unsigned token with a far-future expiry parses as not expired.
	header := `{"alg":"none","typ":"JWT"}`
	claims := fmt.Sprintf(`{"exp":%d}`, time.Now().Add(time.Hour).Unix())
	token := encodeSegment(header) + "." + encodeSegment(claims) + "."
	assert.False(t, TokenExpired(token))

	claims = fmt.Sprintf(`{"exp":%d}`, time.Now().Add(-time.Hour).Unix())
	token = encodeSegment(header) + "." + encodeSegment(claims) + "."
	assert.True(t, TokenExpired(token))
}

func encodeSegment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestClient_ToggleStoryLike(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/stories/7/toggle-like/", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]bool{"liked": true})
	}))

	liked, err := client.ToggleStoryLike(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestClient_SaveThenUnsaveByJoinID(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/api/saved-stories/", r.URL.Path)
			writeJSON(w, http.StatusCreated, map[string]int{"id": 42, "story": 7})
		case http.MethodDelete:
			assert.Equal(t, "/api/saved-stories/42/", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))

	savedID, err := client.SaveStory(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 42, savedID)

	require.NoError(t, client.UnsaveStory(context.Background(), savedID))
}
