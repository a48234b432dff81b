// Package clientstest provides an in-memory Client REST resource for tests
// of packages that drive a clients.Controller.
package clientstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Server serves /client/api the way the real backend does: a list on GET,
// 409 for a duplicate (code, service) on POST, and 204 on DELETE.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	clients  []map[string]interface{}
	nextID   int64
	requests map[string]int
	bodies   []map[string]interface{}
	failWith map[string]int
}

// Seed returns a client record with predictable names.
func Seed(id int64, code, service string) map[string]interface{} {
	return map[string]interface{}{
		"id": id, "code": code, "service": service,
		"nameTh": "th-" + code, "nameEn": "en-" + code,
		"createdBy": 1, "createdAt": "2024-01-01 00:00:00",
		"updatedBy": nil,
	}
}

// NewServer starts a server holding seed and closes it with the test.
func NewServer(t *testing.T, seed ...map[string]interface{}) *Server {
	t.Helper()
	s := &Server{
		nextID:   100,
		requests: map[string]int{},
		failWith: map[string]int{},
	}
	s.clients = append(s.clients, seed...)
	s.Server = httptest.NewServer(s)
	t.Cleanup(s.Close)
	return s
}

// Endpoint is the base URL a clients controller should use.
func (s *Server) Endpoint() string {
	return s.URL + "/client/"
}

// FailWith makes every request with method answer status. Zero clears it.
func (s *Server) FailWith(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failWith, method)
		return
	}
	s.failWith[method] = status
}

// Count returns how many requests with method were received.
func (s *Server) Count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method]
}

// Bodies returns the decoded POST and PUT bodies in arrival order.
func (s *Server) Bodies() []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]interface{}(nil), s.bodies...)
}

// Len returns the number of stored clients.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.Method]++

	if status, ok := s.failWith[r.Method]; ok {
		http.Error(w, "forced failure", status)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/client/api")
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(s.clients)
		case http.MethodPost:
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.bodies = append(s.bodies, body)
			for _, c := range s.clients {
				if c["code"] == body["code"] && c["service"] == body["service"] {
					http.Error(w, "duplicate", http.StatusConflict)
					return
				}
			}
			s.nextID++
			body["id"] = s.nextID
			body["createdAt"] = "2024-05-05 10:00:00"
			s.clients = append(s.clients, body)
			_ = json.NewEncoder(w).Encode(body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(rest, "/"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	idx := -1
	for i, c := range s.clients {
		if fmt.Sprint(c["id"]) == strconv.FormatInt(id, 10) {
			idx = i
		}
	}
	if idx < 0 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(s.clients[idx])
	case http.MethodPut:
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.bodies = append(s.bodies, body)
		for k, v := range body {
			s.clients[idx][k] = v
		}
		s.clients[idx]["updatedAt"] = "2024-06-06 12:00:00"
		_ = json.NewEncoder(w).Encode(s.clients[idx])
	case http.MethodDelete:
		s.clients = append(s.clients[:idx], s.clients[idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
