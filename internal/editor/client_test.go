package editor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/custom-rules" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("area_id"); got != "audience" {
			t.Errorf("unexpected area_id: %s", got)
		}
		if got := r.URL.Query().Get("include_templates"); got != "true" {
			t.Errorf("unexpected include_templates: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "rules": [{"id": "r1", "rule": "boost recent", "isTemplate": false}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rules, err := client.List(context.Background(), domain.Scope{AreaID: "audience", TabID: "segments"}, true)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "r1", rules[0].ID)
	assert.Equal(t, "boost recent", rules[0].Body)
}

func TestClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["areaId"] != "audience" {
			t.Errorf("unexpected areaId: %s", body["areaId"])
		}
		if body["name"] != "Conservative Scoring" {
			t.Errorf("unexpected name: %s", body["name"])
		}
		if body["rule"] != "Apply conservative scoring" {
			t.Errorf("unexpected rule: %s", body["rule"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success": true, "rule": {"id": "r42", "rule": "Apply conservative scoring"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rule, err := client.Create(context.Background(), domain.Scope{AreaID: "audience", TabID: "segments"},
		"Conservative Scoring", "", "Apply conservative scoring")
	require.NoError(t, err)
	assert.Equal(t, "r42", rule.ID)
}

func TestClient_Create_EmptyBodyRejectedLocally(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Create(context.Background(), domain.Scope{AreaID: "a", TabID: "t"}, "n", "", "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called, "empty body must be rejected before any request is issued")
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"validation", http.StatusBadRequest, `{"success": false, "error": "rule body must not be empty"}`, ErrValidation},
		{"not found", http.StatusNotFound, `{"success": false, "error": "rule not found"}`, ErrNotFound},
		{"server", http.StatusInternalServerError, `{"success": false, "error": "boom"}`, ErrServer},
		{"success false on 200", http.StatusOK, `{"success": false, "error": "soft failure"}`, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.Update(context.Background(), "r1", "n", "", "some body")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.List(context.Background(), domain.Scope{AreaID: "a", TabID: "t"}, false)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.URL.Query().Get("id"); got != "r42" {
			t.Errorf("unexpected id: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Delete(context.Background(), "r42"))
}
