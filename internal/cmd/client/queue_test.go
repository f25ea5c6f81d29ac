package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostActionEnvelope(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/actions" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer ts.Close()

	_, err := postAction(func() string { return ts.URL }, "queue:add", "caffeine", map[string]any{"name": "Alice"})
	if err != nil {
		t.Fatalf("postAction: %v", err)
	}
	if got["action"] != "queue:add" || got["team"] != "caffeine" {
		t.Fatalf("envelope: %v", got)
	}
	if data := got["data"].(map[string]any); data["name"] != "Alice" {
		t.Fatalf("data: %v", data)
	}
}

func TestPostActionErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Queue item not found"})
	}))
	defer ts.Close()

	_, err := postAction(func() string { return ts.URL }, "queue:remove", "", map[string]any{"id": "x"})
	if err == nil || err.Error() != "Queue item not found" {
		t.Fatalf("err: %v", err)
	}
}

func TestRootRegistersGroups(t *testing.T) {
	root := NewRoot(func() string { return "http://127.0.0.1:8080" })
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	if !names["queue"] || !names["actionitems"] {
		t.Fatalf("commands: %v", names)
	}
}
