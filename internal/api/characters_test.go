package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"character-search/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("name")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotQuery
}

func TestSearchArrayBody(t *testing.T) {
	srv, gotQuery := newServer(t, http.StatusOK, `[
		{"_id": 1, "name": "Rick Sanchez", "status": "Alive", "species": "Human", "gender": "Male", "image": "http://img/1.jpeg"},
		{"id": 2, "name": "Morty Smith", "status": "Alive", "species": "Human", "gender": "Male", "image": "http://img/2.jpeg"}
	]`)

	resp := NewCharacterAPI(srv.URL + "/search").Search(context.Background(), "Rick")

	require.IsType(t, Success{}, resp)
	assert.Equal(t, "Rick", *gotQuery)
	assert.Equal(t, []model.Character{
		{ID: 1, Name: "Rick Sanchez", Status: "Alive", Species: "Human", Gender: "Male", Image: "http://img/1.jpeg"},
		{ID: 2, Name: "Morty Smith", Status: "Alive", Species: "Human", Gender: "Male", Image: "http://img/2.jpeg"},
	}, resp.(Success).Characters)
}

func TestSearchEmptyArrayIsSuccess(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `[]`)

	resp := NewCharacterAPI(srv.URL + "/search").Search(context.Background(), "nobody")

	require.IsType(t, Success{}, resp)
	assert.Empty(t, resp.(Success).Characters)
	assert.NotNil(t, resp.(Success).Characters)
}

func TestSearchNonArrayBodies(t *testing.T) {
	for name, body := range map[string]string{
		"wrapped": `{"message": "ok", "data": [{"_id": 1, "name": "Rick"}]}`,
		"null":    `null`,
		"string":  `"Rick"`,
		"number":  `42`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, body)

			resp := NewCharacterAPI(srv.URL + "/search").Search(context.Background(), "Rick")

			assert.Equal(t, Failure{Reason: NoResults}, resp)
		})
	}
}

func TestSearchBadStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, "Missing 'name' query parameter\n")

	resp := NewCharacterAPI(srv.URL + "/search").Search(context.Background(), "")

	assert.Equal(t, Failure{Reason: "bad status: 400"}, resp)
}

func TestSearchMalformedBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `[{"_id": 1,`)

	resp := NewCharacterAPI(srv.URL + "/search").Search(context.Background(), "Rick")

	require.IsType(t, Failure{}, resp)
	assert.NotEqual(t, NoResults, resp.(Failure).Reason)
	assert.NotEmpty(t, resp.(Failure).Reason)
}

func TestSearchEscapesQuery(t *testing.T) {
	srv, gotQuery := newServer(t, http.StatusOK, `[]`)

	NewCharacterAPI(srv.URL+"/search").Search(context.Background(), "Rick & Morty?#")

	assert.Equal(t, "Rick & Morty?#", *gotQuery)
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/search"
	srv.Close()

	resp := NewCharacterAPI(url).Search(context.Background(), "Rick")

	require.IsType(t, Failure{}, resp)
	assert.Contains(t, resp.(Failure).Reason, "connect")
}

func TestNewCharacterAPIDefaultURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewCharacterAPI("").baseUrl)
}
