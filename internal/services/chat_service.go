// Package services – ChatService
//
// This file implements the chat dispatcher, the state machine behind POST
// /chat. Every turn runs the command interpreters first, then the configured
// FAQ matcher, and finally the response formatter. Multi-match turns park a
// ranked id list in the caller's session until the user disambiguates; the
// chat page entry point clears that state.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// user identifiers and the dispatch outcome.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/search"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Dispatcher states carried on every reply.
const (
	StateNormal       = "normal"
	StateFAQSelection = "faq_selection"
)

// Fallback replies.
const (
	msgNothingFound   = "Desculpe, não encontrei nada sobre isso. Tente reformular a pergunta ou abra um chamado."
	msgDisambiguation = "Encontrei mais de uma resposta possível. Selecione a opção desejada:"
)

// Session is the per-user disambiguation store. The HTTP layer adapts the
// cookie session to this interface; tests substitute an in-memory map.
type Session interface {
	// PendingFAQs returns the ranked id list parked by the last multi-match
	// turn, or nil when the dispatcher is in the normal state.
	PendingFAQs() []string
	// SetPendingFAQs parks a ranked id list, entering faq_selection.
	SetPendingFAQs(ids []string)
	// ClearPendingFAQs drops any parked list, returning to normal.
	ClearPendingFAQs()
}

// Option is one clickable disambiguation candidate.
type Option struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// Dispatch outcomes, reported for observability but not serialized.
const (
	OutcomeCommand   = "command"
	OutcomeHit       = "hit"
	OutcomeAmbiguous = "ambiguous"
	OutcomeMiss      = "miss"
)

// ChatReply is the dispatcher's output for one turn.
type ChatReply struct {
	Text    string   `json:"text"`
	Rich    bool     `json:"rich"`
	State   string   `json:"state"`
	Options []Option `json:"options,omitempty"`
	LogID   string   `json:"log_id,omitempty"`

	// Outcome names the dispatch branch taken, for metrics.
	Outcome string `json:"-"`
}

// ChatService orchestrates commands, matching, formatting, and the chat log.
type ChatService struct {
	DB        *gorm.DB
	Commands  *CommandChain
	Matcher   search.Matcher
	Formatter *Formatter

	// MaxOptions caps the disambiguation list shown to the user.
	MaxOptions int
}

// NewChatService wires the dispatcher with its collaborators.
func NewChatService(db *gorm.DB, commands *CommandChain, matcher search.Matcher, formatter *Formatter, maxOptions int) *ChatService {
	if maxOptions < 1 {
		maxOptions = 5
	}
	return &ChatService{
		DB:         db,
		Commands:   commands,
		Matcher:    matcher,
		Formatter:  formatter,
		MaxOptions: maxOptions,
	}
}

// HandleMessage runs one chat turn for userID and returns the reply. Input
// that can't be handled degrades to the "nothing found" reply; hard errors
// are reserved for storage failures.
func (s *ChatService) HandleMessage(ctx context.Context, userID, msg string, sess Session) (*ChatReply, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "HandleMessage",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	msg = strings.TrimSpace(msg)
	if msg == "" {
		return s.finish(ctx, span, userID, msg, &ChatReply{Text: msgNothingFound, State: StateNormal, Outcome: OutcomeMiss}, nil)
	}

	// Pending disambiguation: a message naming one of the parked FAQs
	// resolves it directly; anything else abandons the selection.
	if pending := sess.PendingFAQs(); len(pending) > 0 {
		if id, ok := s.resolveSelection(ctx, pending, msg); ok {
			sess.ClearPendingFAQs()
			reply, faqID, err := s.renderFAQ(ctx, id)
			if err != nil {
				return nil, err
			}
			return s.finish(ctx, span, userID, msg, reply, faqID)
		}
		sess.ClearPendingFAQs()
	}

	// Commands run before any FAQ search.
	if s.Commands != nil {
		handled, err := s.Commands.Dispatch(ctx, msg)
		if err != nil {
			return nil, err
		}
		if handled != "" {
			span.SetAttributes(attribute.String("chat.outcome", OutcomeCommand))
			return s.finish(ctx, span, userID, msg, &ChatReply{Text: handled, State: StateNormal, Outcome: OutcomeCommand}, nil)
		}
	}

	candidates, err := s.Matcher.Match(ctx, msg)
	if err != nil {
		return nil, err
	}

	switch {
	case len(candidates) == 0:
		span.SetAttributes(attribute.String("chat.outcome", OutcomeMiss))
		return s.finish(ctx, span, userID, msg, &ChatReply{Text: msgNothingFound, State: StateNormal, Outcome: OutcomeMiss}, nil)

	case len(candidates) == 1:
		span.SetAttributes(attribute.String("chat.outcome", OutcomeHit))
		reply, faqID, err := s.renderFAQ(ctx, candidates[0].Entry.ID)
		if err != nil {
			return nil, err
		}
		return s.finish(ctx, span, userID, msg, reply, faqID)

	default:
		span.SetAttributes(
			attribute.String("chat.outcome", OutcomeAmbiguous),
			attribute.Int("chat.candidates", len(candidates)),
		)
		ids := make([]string, len(candidates))
		for i, c := range candidates {
			ids[i] = c.Entry.ID
		}
		sess.SetPendingFAQs(ids)

		n := len(candidates)
		if n > s.MaxOptions {
			n = s.MaxOptions
		}
		opts := make([]Option, n)
		for i := 0; i < n; i++ {
			opts[i] = Option{ID: candidates[i].Entry.ID, Question: candidates[i].Entry.Question}
		}
		reply := &ChatReply{Text: msgDisambiguation, State: StateFAQSelection, Options: opts, Outcome: OutcomeAmbiguous}
		return s.finish(ctx, span, userID, msg, reply, nil)
	}
}

// ClearSession drops any pending disambiguation. Called on chat-page entry so
// every visit starts in the normal state.
func (s *ChatService) ClearSession(sess Session) {
	sess.ClearPendingFAQs()
}

// LeaveFeedback attaches a helpful/unhelpful verdict to one of the user's own
// chat turns.
func (s *ChatService) LeaveFeedback(ctx context.Context, userID, logID, verdict string) error {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "LeaveFeedback",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("chatlog.id", logID),
		),
	)
	defer span.End()

	if verdict != domain.FeedbackHelpful && verdict != domain.FeedbackUnhelpful {
		return ErrInvalidFeedback
	}
	err := repo.SetChatFeedback(ctx, s.DB, logID, userID, verdict)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrChatLogNotFound
	}
	return err
}

// History returns the user's chat turns, oldest first.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]domain.ChatLog, error) {
	return repo.ListChatLogs(ctx, s.DB, userID, limit)
}

// resolveSelection matches the message against the parked candidates, by id
// or by exact question text (the widget re-sends the chosen question).
func (s *ChatService) resolveSelection(ctx context.Context, pending []string, msg string) (string, bool) {
	for _, id := range pending {
		if strings.EqualFold(msg, id) {
			return id, true
		}
	}
	norm := strings.ToLower(msg)
	for _, id := range pending {
		faq, err := repo.GetFAQ(ctx, s.DB, id)
		if err != nil {
			continue
		}
		if strings.ToLower(strings.TrimSpace(faq.Question)) == norm {
			return id, true
		}
	}
	return "", false
}

// renderFAQ loads the FAQ and produces the rich reply.
func (s *ChatService) renderFAQ(ctx context.Context, id string) (*ChatReply, *string, error) {
	faq, err := repo.GetFAQ(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &ChatReply{Text: msgNothingFound, State: StateNormal, Outcome: OutcomeMiss}, nil, nil
		}
		return nil, nil, err
	}
	return &ChatReply{
		Text:    s.Formatter.Render(faq),
		Rich:    true,
		State:   StateNormal,
		Outcome: OutcomeHit,
	}, &faq.ID, nil
}

// finish persists the turn and stamps the reply with its log id.
func (s *ChatService) finish(ctx context.Context, span trace.Span, userID, msg string, reply *ChatReply, faqID *string) (*ChatReply, error) {
	log, err := repo.CreateChatLog(ctx, s.DB, userID, msg, reply.Text, reply.Rich, faqID)
	if err != nil {
		return nil, err
	}
	reply.LogID = log.ID
	span.SetAttributes(attribute.String("chat.state", reply.State))
	return reply, nil
}
