package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, ServiceKey: "service-key"})
}

func TestClient_List_SendsPaginationAndAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "3" {
			t.Errorf("page: %s", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "1000" {
			t.Errorf("per_page: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-key" {
			t.Errorf("authorization: %s", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"id": "u1", "email": "a@x.com", "user_metadata": map[string]string{"name": "Ana"}},
			},
		})
	})

	got, err := c.List(context.Background(), 3, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "u1" || got[0].Name != "Ana" {
		t.Fatalf("unexpected identities: %+v", got)
	}
}

func TestClient_List_EmptyPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"users":[]}`))
	})

	got, err := c.List(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %d", len(got))
	}
}

func TestClient_Create_SendsConfirmedUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/users" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["email"] != "ana@x.com" {
			t.Errorf("email: %v", payload["email"])
		}
		if payload["email_confirm"] != true {
			t.Error("email_confirm must be true")
		}
		if payload["password"] == "" || payload["password"] == nil {
			t.Error("password must be sent")
		}
		meta, _ := payload["user_metadata"].(map[string]any)
		if meta["name"] != "Ana" {
			t.Errorf("user_metadata.name: %v", meta["name"])
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"u1","email":"ana@x.com","user_metadata":{"name":"Ana"}}`))
	})

	got, err := c.Create(context.Background(), ports.CreateIdentityInput{
		Email:      "ana@x.com",
		Credential: "random-secret",
		Name:       "Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("id: %s", got.ID)
	}
}

func TestClient_Create_DuplicateEmail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"msg":"A user with this email address has already been registered"}`))
	})

	_, err := c.Create(context.Background(), ports.CreateIdentityInput{Email: "dup@x.com"})
	if !errors.Is(err, domain.ErrIdentityExists) {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}
}

func TestClient_Get_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"user not found"}`))
	})

	_, err := c.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for missing identity")
	}
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
