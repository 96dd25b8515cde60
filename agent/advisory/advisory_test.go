package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	contractx "github.com/webroker/concierge/agent/contract"
	openrouterx "github.com/webroker/concierge/pkg/openrouter"
)

func completionServer(t *testing.T, content string) (*httptest.Server, *map[string]any) {
	t.Helper()

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","model":"test-model","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()

	client := openrouterx.NewClient(openrouterx.Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
	if client == nil {
		t.Fatal("expected client")
	}

	svc, err := New(client, "test-model")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestAnalyzeLeadReturnsModelText(t *testing.T) {
	t.Parallel()

	server, captured := completionServer(t, "Push urgency, anchor on the penthouse.")
	svc := newTestService(t, server.URL)

	got := svc.AnalyzeLead(context.Background(), contractx.Lead{
		Name:        "Subject 404",
		Budget:      "$1.2M - $1.5M",
		Preferences: "Penthouse, Downtown",
		Urgency:     contractx.UrgencyHigh,
	})
	if got != "Push urgency, anchor on the penthouse." {
		t.Fatalf("unexpected analysis: %q", got)
	}

	msgs, ok := (*captured)["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected system + user message, got %#v", (*captured)["messages"])
	}
}

func TestAnalyzeLeadOfflineOnTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	svc := newTestService(t, server.URL)
	got := svc.AnalyzeLead(context.Background(), contractx.Lead{Name: "Subject 404"})
	if got != LeadOfflineReply {
		t.Fatalf("expected offline reply, got %q", got)
	}
}

func TestAnalyzeLeadOfflineOnEmptyContent(t *testing.T) {
	t.Parallel()

	server, _ := completionServer(t, "")
	svc := newTestService(t, server.URL)

	got := svc.AnalyzeLead(context.Background(), contractx.Lead{Name: "Subject 404"})
	if got != LeadOfflineReply {
		t.Fatalf("expected offline reply for empty content, got %q", got)
	}
}

func TestEvaluateProjectReturnsModelText(t *testing.T) {
	t.Parallel()

	server, _ := completionServer(t, "Mid-rise mixed-use, young professionals, cantilevered sky garden.")
	svc := newTestService(t, server.URL)

	got := svc.EvaluateProject(context.Background(), contractx.Project{
		Location: "Sector 7",
		Size:     "2.5 acres",
		Zoning:   "Mixed-Use",
	})
	if got != "Mid-rise mixed-use, young professionals, cantilevered sky garden." {
		t.Fatalf("unexpected evaluation: %q", got)
	}
}

func TestEvaluateProjectOfflineOnTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	svc := newTestService(t, server.URL)
	got := svc.EvaluateProject(context.Background(), contractx.Project{Location: "Sector 7"})
	if got != ProjectOfflineReply {
		t.Fatalf("expected offline reply, got %q", got)
	}
}
