package concierge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/webroker/concierge/agent/contract"
	toolx "github.com/webroker/concierge/agent/tool"
)

// FallbackReply is returned whenever the model capability fails mid
// exchange. The user's own turn is never rolled back.
const FallbackReply = "I'm having trouble connecting to the real estate network. Please try again."

// Reply is the outcome of one Send call.
type Reply struct {
	Text    string
	Brokers []contractx.Broker
}

// Session owns one conversation with the concierge model. Callers must
// serialize Send calls on the same session; the lead book and directory
// behind the dispatcher are safe to share across sessions.
type Session struct {
	dispatcher contractx.Dispatcher
	book       contractx.LeadBook

	runner compose.Runnable[graphInput, graphOutput]

	turns      []contractx.Turn
	transcript []*schema.Message

	now func() time.Time
}

func NewSession(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	dispatcher contractx.Dispatcher,
	book contractx.LeadBook,
	systemPrompt string,
) (*Session, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if dispatcher == nil {
		return nil, errors.New("tool dispatcher is required")
	}
	if book == nil {
		return nil, errors.New("lead book is required")
	}

	toolModel, err := chatModel.WithTools(toolx.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind concierge tools: %v", contractx.ErrModelInvoke, err)
	}

	s := &Session{
		dispatcher: dispatcher,
		book:       book,
		now:        time.Now,
	}

	if prompt := strings.TrimSpace(systemPrompt); prompt != "" {
		s.transcript = append(s.transcript, schema.SystemMessage(prompt))
	}

	runner, err := s.compileSendGraph(ctx, toolModel)
	if err != nil {
		return nil, err
	}
	s.runner = runner

	return s, nil
}

// Send runs one full exchange: user text in, final reply out. Tool rounds
// requested by the model are resolved before the reply is produced. Model
// failures never escape; they degrade to FallbackReply. The only error
// returned is ErrValidation for empty input, in which case nothing is
// appended to history.
func (s *Session) Send(ctx context.Context, text string) (Reply, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Reply{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	now := s.now()
	userMsg := schema.UserMessage(trimmed)
	s.turns = append(s.turns, contractx.Turn{
		ID:        uuid.NewString(),
		Role:      contractx.RoleUser,
		Text:      trimmed,
		CreatedAt: now,
	})

	input := make([]*schema.Message, 0, len(s.transcript)+1)
	input = append(input, s.transcript...)
	input = append(input, userMsg)

	out, err := s.runner.Invoke(ctx, graphInput{messages: input})
	if err != nil {
		if errors.Is(err, contractx.ErrUnknownTool) {
			log.Error().Err(err).Msg("tool protocol violation, degrading to fallback reply")
		} else {
			log.Warn().Err(err).Msg("concierge exchange failed, degrading to fallback reply")
		}
		s.transcript = append(s.transcript, userMsg, schema.AssistantMessage(FallbackReply, nil))
		s.turns = append(s.turns, contractx.Turn{
			ID:        uuid.NewString(),
			Role:      contractx.RoleAssistant,
			Text:      FallbackReply,
			CreatedAt: s.now(),
		})
		return Reply{Text: FallbackReply}, nil
	}

	s.transcript = out.messages
	s.turns = append(s.turns, contractx.Turn{
		ID:               uuid.NewString(),
		Role:             contractx.RoleAssistant,
		Text:             out.reply.Text,
		CreatedAt:        s.now(),
		Brokers:          out.reply.Brokers,
		IsRecommendation: len(out.reply.Brokers) > 0,
	})

	return out.reply, nil
}

// History returns a snapshot of the public conversation turns.
func (s *Session) History() []contractx.Turn {
	out := make([]contractx.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}
