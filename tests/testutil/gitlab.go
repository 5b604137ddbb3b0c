package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// GitLabServer is an in-process stand-in for the subset of the GitLab v4 API
// used by prospectus modules.
//
// Example usage:
//
//	srv := testutil.NewGitLabServer(t, "glpat-test").
//	    WithTags("group/project", "v1.2.0", "v1.1.0")
//	m.SetEndpoint(srv.URL)
type GitLabServer struct {
	*httptest.Server

	token string

	mu       sync.Mutex
	tags     map[string][]string
	status   int
	requests int
}

// NewGitLabServer starts a server that accepts only token. It is closed
// automatically when the test completes.
func NewGitLabServer(t *testing.T, token string) *GitLabServer {
	t.Helper()

	s := &GitLabServer{
		token: token,
		tags:  make(map[string][]string),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// WithTags sets the tags of project, newest first.
func (s *GitLabServer) WithTags(project string, tags ...string) *GitLabServer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[project] = tags
	return s
}

// FailWith makes every request answer with status.
func (s *GitLabServer) FailWith(status int) *GitLabServer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	return s
}

// Requests returns the number of API requests served.
func (s *GitLabServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *GitLabServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	w.Header().Set("Content-Type", "application/json")

	if s.status != 0 {
		writeMessage(w, s.status, http.StatusText(s.status))
		return
	}
	if r.Header.Get("PRIVATE-TOKEN") != s.token {
		writeMessage(w, http.StatusUnauthorized, "401 Unauthorized")
		return
	}

	path := r.URL.EscapedPath()
	const prefix, suffix = "/api/v4/projects/", "/repository/tags"
	if r.Method != http.MethodGet || !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		writeMessage(w, http.StatusNotFound, "404 Not Found")
		return
	}

	project, err := url.PathUnescape(strings.TrimSuffix(strings.TrimPrefix(path, prefix), suffix))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	tags, ok := s.tags[project]
	if !ok {
		writeMessage(w, http.StatusNotFound, "404 Project Not Found")
		return
	}

	body := make([]map[string]string, 0, len(tags))
	for _, name := range tags {
		body = append(body, map[string]string{"name": name})
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
