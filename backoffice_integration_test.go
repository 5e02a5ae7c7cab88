package backoffice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-command/dispatcher"

	backoffice "github.com/goliatone/go-backoffice"
)

type fakeBackend struct {
	mu      sync.Mutex
	deletes []string
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /settings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"siteName": "Horizon Visa Services", "contactEmail": "info@horizon.test"},
		})
	})
	mux.HandleFunc("GET /faqs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "f1", "question": "Do you handle student visas?", "answer": "Yes.", "isActive": true},
			{"id": "f2", "question": "How long does processing take?", "answer": "Four weeks.", "isActive": false},
		})
	})
	mux.HandleFunc("POST /faqs", func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{}
		json.NewDecoder(r.Body).Decode(&payload)
		payload["id"] = "f3"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("DELETE /faqs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.deletes = append(b.deletes, r.PathValue("id"))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newTestModule(t *testing.T) (*backoffice.Module, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	cfg := backoffice.DefaultConfig()
	cfg.Gateway.BaseURL = server.URL
	cfg.Features.Journal = true
	cfg.Journal.Driver = "memory"
	cfg.Features.Commands = true
	cfg.Commands.AutoRegisterDispatcher = true

	module, err := backoffice.New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(module.Close)
	return module, backend
}

func TestModuleStartWarmsSettings(t *testing.T) {
	module, _ := newTestModule(t)

	if got := module.Settings().GetString("siteName"); got != "" {
		t.Fatalf("siteName before Start = %q, want empty", got)
	}
	if err := module.Start(context.Background()); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	if got := module.Settings().GetString("siteName"); got != "Horizon Visa Services" {
		t.Fatalf("siteName = %q", got)
	}
}

func TestModuleControllerRoundTrip(t *testing.T) {
	module, backend := newTestModule(t)
	ctx := context.Background()

	controller, err := module.Controller("faqs")
	if err != nil {
		t.Fatalf("Controller(faqs) error = %v", err)
	}
	if err := controller.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(controller.Visible()); got != 2 {
		t.Fatalf("visible = %d, want 2", got)
	}

	created, err := controller.Create(ctx, map[string]any{"question": "Fees?", "answer": "Depends on the visa class."})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "f3" {
		t.Fatalf("created id = %q", created.ID)
	}
	if got := len(controller.Visible()); got != 3 {
		t.Fatalf("visible after create = %d, want 3", got)
	}

	if err := controller.Remove(ctx, "f2"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	backend.mu.Lock()
	deletes := append([]string(nil), backend.deletes...)
	backend.mu.Unlock()
	if len(deletes) != 1 || deletes[0] != "f2" {
		t.Fatalf("deletes = %v", deletes)
	}
}

func TestModuleDispatchedCommandsReachBackendAndJournal(t *testing.T) {
	module, backend := newTestModule(t)
	ctx := context.Background()

	err := dispatcher.Dispatch(ctx, backoffice.RemoveResourceCommand{Resource: "faqs", TargetID: "f1"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	backend.mu.Lock()
	deletes := append([]string(nil), backend.deletes...)
	backend.mu.Unlock()
	if len(deletes) != 1 || deletes[0] != "f1" {
		t.Fatalf("deletes = %v", deletes)
	}

	entries, err := module.Journal().ByResource(ctx, "faqs", 10)
	if err != nil {
		t.Fatalf("ByResource() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != "delete" || entries[0].TargetID != "f1" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestModuleRejectsConfigWithoutBaseURL(t *testing.T) {
	cfg := backoffice.DefaultConfig()
	if _, err := backoffice.New(cfg); err == nil {
		t.Fatal("expected config validation failure")
	}
}
