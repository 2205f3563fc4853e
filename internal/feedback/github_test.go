package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	var got issueRequest
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/querbox/tally-app/issues", r.URL.Path)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(issueResponse{Number: 42, HTMLURL: "https://github.com/querbox/tally-app/issues/42"})
	}))
	defer srv.Close()

	c := NewClient("token-123", "querbox/tally-app")
	c.baseURL = srv.URL

	issue, err := c.Submit(context.Background(), KindBug, "  Crash on save  ", "Steps to reproduce", "1.2.3")
	require.NoError(t, err)
	require.EqualValues(t, 42, issue.Number)
	require.Equal(t, "https://github.com/querbox/tally-app/issues/42", issue.URL)

	require.Equal(t, "Crash on save", got.Title)
	require.Contains(t, got.Body, "Steps to reproduce")
	require.Contains(t, got.Body, "Sent from Tally v1.2.3")
	require.Equal(t, []string{"bug", "from-app"}, got.Labels)

	require.Equal(t, "Bearer token-123", gotHeaders.Get("Authorization"))
	require.Equal(t, "Tally-App", gotHeaders.Get("User-Agent"))
	require.Equal(t, "application/vnd.github+json", gotHeaders.Get("Accept"))
	require.Equal(t, "2022-11-28", gotHeaders.Get("X-GitHub-Api-Version"))
}

func TestSubmitRejectsEmptyTitle(t *testing.T) {
	c := NewClient("token", "owner/repo")
	_, err := c.Submit(context.Background(), KindFeedback, "   ", "body", "1.0.0")
	require.ErrorContains(t, err, "title must not be empty")
}

func TestSubmitSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Validation Failed"}`))
	}))
	defer srv.Close()

	c := NewClient("token", "owner/repo")
	c.baseURL = srv.URL

	_, err := c.Submit(context.Background(), KindFeature, "New thing", "", "1.0.0")
	require.ErrorContains(t, err, "github api error (422)")
	require.ErrorContains(t, err, "Validation Failed")
}

func TestLabelsFor(t *testing.T) {
	cases := map[string][]string{
		KindFeature:  {"enhancement", "from-app"},
		KindBug:      {"bug", "from-app"},
		KindFeedback: {"feedback", "from-app"},
		"other":      {"from-app"},
	}
	for kind, want := range cases {
		require.Equal(t, want, labelsFor(kind), "kind %q", kind)
	}
}
