package concierge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/webroker/concierge/agent/contract"
)

type graphInput struct {
	messages []*schema.Message
}

type graphOutput struct {
	messages []*schema.Message
	reply    Reply
}

// exchangeState threads one send exchange through the graph. messages is a
// working transcript; the session commits it only when the exchange
// finished, so a failed round leaves no dangling tool messages behind.
type exchangeState struct {
	messages []*schema.Message
	first    *schema.Message
}

func (s *Session) compileSendGraph(
	ctx context.Context,
	toolModel einomodel.ToolCallingChatModel,
) (compose.Runnable[graphInput, graphOutput], error) {
	graph := compose.NewGraph[graphInput, graphOutput]()

	if err := graph.AddLambdaNode("invoke_model",
		compose.InvokableLambda(func(ctx context.Context, in graphInput) (*exchangeState, error) {
			msg, err := toolModel.Generate(ctx, in.messages)
			if err != nil {
				return nil, fmt.Errorf("%w: concierge invoke: %v", contractx.ErrModelInvoke, err)
			}
			if msg == nil {
				return nil, fmt.Errorf("%w: empty concierge response", contractx.ErrSchemaViolation)
			}
			return &exchangeState{messages: in.messages, first: msg}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_model: %w", err)
	}

	if err := graph.AddLambdaNode("direct_path",
		compose.InvokableLambda(func(ctx context.Context, in *exchangeState) (graphOutput, error) {
			if in == nil {
				return graphOutput{}, fmt.Errorf("%w: exchange state is nil", contractx.ErrValidation)
			}
			text := strings.TrimSpace(in.first.Content)
			if text == "" {
				return graphOutput{}, fmt.Errorf("%w: concierge reply is empty", contractx.ErrSchemaViolation)
			}
			return graphOutput{
				messages: append(in.messages, in.first),
				reply:    Reply{Text: text},
			}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node direct_path: %w", err)
	}

	if err := graph.AddLambdaNode("tool_path",
		compose.InvokableLambda(func(ctx context.Context, in *exchangeState) (graphOutput, error) {
			if in == nil {
				return graphOutput{}, fmt.Errorf("%w: exchange state is nil", contractx.ErrValidation)
			}
			return s.resolveToolRound(ctx, toolModel, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node tool_path: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *exchangeState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: exchange state is nil", contractx.ErrValidation)
			}
			if len(in.first.ToolCalls) > 0 {
				return "tool_path", nil
			}
			return "direct_path", nil
		},
		map[string]bool{
			"direct_path": true,
			"tool_path":   true,
		},
	)

	if err := graph.AddBranch("invoke_model", branch); err != nil {
		return nil, fmt.Errorf("add send branch: %w", err)
	}
	if err := graph.AddEdge(compose.START, "invoke_model"); err != nil {
		return nil, fmt.Errorf("add edge start->invoke_model: %w", err)
	}
	if err := graph.AddEdge("direct_path", compose.END); err != nil {
		return nil, fmt.Errorf("add edge direct->end: %w", err)
	}
	if err := graph.AddEdge("tool_path", compose.END); err != nil {
		return nil, fmt.Errorf("add edge tool->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("concierge.send"))
	if err != nil {
		return nil, fmt.Errorf("compile send graph: %w", err)
	}
	return runner, nil
}

// resolveToolRound dispatches every tool call in emission order, commits
// derived leads as each dispatch succeeds, and runs the second model round
// with the full set of results. Each request gets exactly one result
// before the second round is issued.
func (s *Session) resolveToolRound(
	ctx context.Context,
	toolModel einomodel.ToolCallingChatModel,
	in *exchangeState,
) (graphOutput, error) {
	msgs := append(in.messages, in.first)

	var brokers []contractx.Broker
	for _, call := range in.first.ToolCalls {
		req, err := toToolRequest(call)
		if err != nil {
			return graphOutput{}, err
		}

		outcome, err := s.dispatcher.Dispatch(ctx, req)
		if err != nil {
			return graphOutput{}, err
		}

		if outcome.Lead != nil {
			s.book.Add(*outcome.Lead)
		}
		brokers = append(brokers, outcome.Brokers...)

		content, err := resultContent(outcome.Result)
		if err != nil {
			return graphOutput{}, err
		}
		msgs = append(msgs, schema.ToolMessage(content, call.ID))
	}

	final, err := toolModel.Generate(ctx, msgs)
	if err != nil {
		return graphOutput{}, fmt.Errorf("%w: resolve tool results: %v", contractx.ErrModelInvoke, err)
	}
	if final == nil || strings.TrimSpace(final.Content) == "" {
		return graphOutput{}, fmt.Errorf("%w: empty reply after tool round", contractx.ErrSchemaViolation)
	}

	return graphOutput{
		messages: append(msgs, final),
		reply: Reply{
			Text:    strings.TrimSpace(final.Content),
			Brokers: dedupeByID(brokers),
		},
	}, nil
}

func toToolRequest(call schema.ToolCall) (contractx.ToolRequest, error) {
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return contractx.ToolRequest{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contractx.ToolRequest{}, fmt.Errorf("%w: invalid args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
		}
	}

	return contractx.ToolRequest{
		CallID: call.ID,
		Tool:   name,
		Args:   args,
	}, nil
}

func resultContent(result contractx.ToolResult) (string, error) {
	if s, ok := result.Result.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(result.Result)
	if err != nil {
		return "", fmt.Errorf("marshal tool result for call=%s: %w", result.CallID, err)
	}
	return string(raw), nil
}

func dedupeByID(brokers []contractx.Broker) []contractx.Broker {
	if len(brokers) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(brokers))
	out := make([]contractx.Broker, 0, len(brokers))
	for _, b := range brokers {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}
