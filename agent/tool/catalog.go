package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/webroker/concierge/agent/contract"
	leadx "github.com/webroker/concierge/agent/lead"
)

const ToolSearchBrokers = "searchBrokers"

// Infos declares the tools exposed to the concierge model.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchBrokers,
			Desc: "Search for real estate brokers based on property type or specialty.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"specialty": {
					Type:     schema.String,
					Desc:     "The type of property or specialty (e.g., luxury, commercial, family homes).",
					Required: true,
				},
			}),
		},
	}
}

// Dispatcher executes tool invocations against the broker directory.
type Dispatcher struct {
	directory contractx.Directory
}

func NewDispatcher(directory contractx.Directory) (*Dispatcher, error) {
	if directory == nil {
		return nil, errors.New("broker directory is required")
	}
	return &Dispatcher{directory: directory}, nil
}

// Dispatch resolves one tool request. An unrecognized tool name is a
// protocol error, not a transient failure: the model asked for a
// capability this orchestrator does not implement.
func (d *Dispatcher) Dispatch(ctx context.Context, req contractx.ToolRequest) (contractx.ToolOutcome, error) {
	switch req.Tool {
	case ToolSearchBrokers:
		return d.searchBrokers(req)
	default:
		return contractx.ToolOutcome{}, fmt.Errorf("%w: tool=%s", contractx.ErrUnknownTool, req.Tool)
	}
}

func (d *Dispatcher) searchBrokers(req contractx.ToolRequest) (contractx.ToolOutcome, error) {
	specialty, ok := stringArg(req.Args, "specialty")
	if !ok {
		// Declared required, but a missing value is tolerated: the
		// directory's no-match fallback absorbs the empty query.
		log.Warn().Str("tool", req.Tool).Str("call_id", req.CallID).
			Msg("specialty argument missing, searching with empty query")
	}

	brokers := d.directory.Search(specialty)

	payload, err := json.Marshal(brokers)
	if err != nil {
		return contractx.ToolOutcome{}, fmt.Errorf("marshal broker results: %w", err)
	}

	derived := leadx.FromInterest(specialty)

	return contractx.ToolOutcome{
		Result: contractx.ToolResult{
			CallID: req.CallID,
			Tool:   req.Tool,
			Result: string(payload),
		},
		Brokers: brokers,
		Lead:    &derived,
	}, nil
}

func stringArg(args map[string]any, key string) (string, bool) {
	raw, ok := args[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	if !ok {
		return "", false
	}
	return value, true
}
