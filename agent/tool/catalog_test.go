package tool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	contractx "github.com/webroker/concierge/agent/contract"
	directoryx "github.com/webroker/concierge/agent/directory"
)

func TestInfosDeclareSearchBrokers(t *testing.T) {
	t.Parallel()

	infos := Infos()
	if len(infos) != 1 {
		t.Fatalf("expected 1 tool info, got %d", len(infos))
	}
	if infos[0].Name != ToolSearchBrokers {
		t.Fatalf("unexpected tool name: %s", infos[0].Name)
	}
}

func TestDispatchSearchBrokers(t *testing.T) {
	t.Parallel()

	dispatcher, err := NewDispatcher(directoryx.Default())
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	out, err := dispatcher.Dispatch(context.Background(), contractx.ToolRequest{
		CallID: "call_1",
		Tool:   ToolSearchBrokers,
		Args:   map[string]any{"specialty": "luxury condos"},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if out.Result.CallID != "call_1" {
		t.Fatalf("result must echo the call id, got %s", out.Result.CallID)
	}
	if out.Result.Tool != ToolSearchBrokers {
		t.Fatalf("unexpected result tool: %s", out.Result.Tool)
	}

	payload, ok := out.Result.Result.(string)
	if !ok {
		t.Fatalf("expected string payload, got %T", out.Result.Result)
	}
	var brokers []contractx.Broker
	if err := json.Unmarshal([]byte(payload), &brokers); err != nil {
		t.Fatalf("payload must round-trip as broker list: %v", err)
	}
	if len(brokers) == 0 {
		t.Fatal("expected matched brokers in payload")
	}
	if brokers[0].Name == "" || brokers[0].Specialty == "" || brokers[0].Rating == 0 || brokers[0].DealsClosed == 0 {
		t.Fatalf("broker fields must survive serialization: %#v", brokers[0])
	}

	if out.Lead == nil {
		t.Fatal("expected derived lead")
	}
	if out.Lead.Urgency != contractx.UrgencyHigh || out.Lead.MatchScore != 99 {
		t.Fatalf("unexpected derived lead: %#v", out.Lead)
	}
	if !strings.Contains(out.Lead.Preferences, "LUXURY CONDOS") {
		t.Fatalf("unexpected lead preferences: %q", out.Lead.Preferences)
	}
}

func TestDispatchMissingSpecialtyFallsBack(t *testing.T) {
	t.Parallel()

	dispatcher, err := NewDispatcher(directoryx.Default())
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	out, err := dispatcher.Dispatch(context.Background(), contractx.ToolRequest{
		CallID: "call_2",
		Tool:   ToolSearchBrokers,
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	// Empty query matches every specialty label, so the whole directory
	// comes back rather than the two-broker fallback.
	if len(out.Brokers) != 4 {
		t.Fatalf("expected all brokers for empty query, got %d", len(out.Brokers))
	}
	if out.Lead == nil {
		t.Fatal("a successful search still derives a lead")
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	dispatcher, err := NewDispatcher(directoryx.Default())
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	_, err = dispatcher.Dispatch(context.Background(), contractx.ToolRequest{
		CallID: "call_3",
		Tool:   "searchListings",
	})
	if !errors.Is(err, contractx.ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}
