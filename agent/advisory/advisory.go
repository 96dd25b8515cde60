package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
	contractx "github.com/webroker/concierge/agent/contract"
	promptx "github.com/webroker/concierge/agent/prompt"
)

// Fixed user-visible replies for advisory failures. Callers cannot tell a
// transport failure apart from an empty model response; both are
// best-effort advisory calls with no retry.
const (
	LeadOfflineReply    = "System offline. Cannot analyze lead."
	ProjectOfflineReply = "System offline. Cannot evaluate project."
)

// Service issues stateless one-shot prompts. No history, no tools.
type Service struct {
	client  *openai.Client
	model   string
	prompts promptx.PromptSet
}

func New(client *openai.Client, model string) (*Service, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model name is required")
	}
	return &Service{
		client:  client,
		model:   strings.TrimSpace(model),
		prompts: promptx.LoadPromptSet(),
	}, nil
}

// AnalyzeLead asks for a short tactical recommendation for one lead.
func (s *Service) AnalyzeLead(ctx context.Context, l contractx.Lead) string {
	details := fmt.Sprintf(
		"Name: %s\nBudget: %s\nPreferences: %s\nUrgency: %s",
		l.Name, l.Budget, l.Preferences, l.Urgency,
	)
	return s.complete(ctx, s.prompts.AnalyzeLead, details, LeadOfflineReply)
}

// EvaluateProject asks for a short development concept for one plot.
func (s *Service) EvaluateProject(ctx context.Context, p contractx.Project) string {
	details := fmt.Sprintf(
		"Location: %s\nSize: %s\nZoning: %s",
		p.Location, p.Size, p.Zoning,
	)
	return s.complete(ctx, s.prompts.EvaluateProject, details, ProjectOfflineReply)
}

func (s *Service) complete(ctx context.Context, system, user, offline string) string {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("advisory completion failed")
		return offline
	}
	if len(resp.Choices) == 0 {
		return offline
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return offline
	}
	return text
}
