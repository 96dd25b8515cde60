package contract

import "context"

// Directory exposes specialty-based broker lookup over reference data.
type Directory interface {
	Search(specialty string) []Broker
}

// LeadBook is the append-only registry of derived leads, newest first.
type LeadBook interface {
	Record(interest string) Lead
	Add(lead Lead)
	List() []Lead
}

// Dispatcher resolves a single tool invocation against local capabilities.
type Dispatcher interface {
	Dispatch(ctx context.Context, req ToolRequest) (ToolOutcome, error)
}
