// Package chat drives conversation turns end to end: prompt building,
// provider dispatch, protocol decoding, and modification application.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"viber/internal/domain"
	chatmodels "viber/internal/domain/models/chat"
	workspacemodels "viber/internal/domain/models/workspace"
	"viber/internal/protocol"
	"viber/internal/service/gateway"
	"viber/internal/service/workspace"
)

const maxMessageChars = 8000

// Greeting seeded into every new conversation log.
const greeting = "Hello! I'm your AI assistant in Viber. I can help you build applications, " +
	"write code, debug issues, and modify your project files directly. " +
	"What would you like to create or change today?"

// Sender is the provider gateway capability the orchestrator depends on.
type Sender interface {
	Send(ctx context.Context, prompt string, settings chatmodels.Settings, credential string) (string, error)
}

// SettingsSource provides the settings blob and provider credentials. Both
// are read at call time and treated as opaque inputs; the orchestrator never
// mutates them.
type SettingsSource interface {
	Settings() chatmodels.Settings
	Credential(provider string) string
}

// Service is the conversation orchestrator. It owns the ordered message log
// and serializes turns: only one may be in flight at a time, and an
// overlapping submission is rejected at the boundary.
type Service struct {
	gateway   Sender
	workspace *workspace.Service
	applier   *workspace.Applier
	settings  SettingsSource
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	messages []*chatmodels.Message
	loading  bool
}

// NewService creates the orchestrator with the greeting already in the log.
func NewService(
	gw Sender,
	ws *workspace.Service,
	applier *workspace.Applier,
	settings SettingsSource,
	logger *slog.Logger,
) *Service {
	s := &Service{
		gateway:   gw,
		workspace: ws,
		applier:   applier,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	s.messages = []*chatmodels.Message{{
		ID:        s.newID(),
		Role:      chatmodels.RoleAssistant,
		Content:   greeting,
		Timestamp: s.now(),
	}}
	return s
}

// SendMessage runs one user turn: it appends the user message, calls the
// selected provider, decodes and applies any modification blocks, and appends
// exactly one assistant message - on failure a fixed, user-readable
// explanation instead of the completion. The assistant message is returned.
//
// A second call while a turn is in flight returns domain.ErrTurnInFlight
// without touching the log.
func (s *Service) SendMessage(ctx context.Context, content string) (*chatmodels.Message, error) {
	content = strings.TrimSpace(content)
	if err := validation.Validate(content,
		validation.Required,
		validation.Length(1, maxMessageChars),
	); err != nil {
		return nil, fmt.Errorf("%w: message: %v", domain.ErrValidation, err)
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, domain.ErrTurnInFlight
	}
	s.loading = true
	s.messages = append(s.messages, &chatmodels.Message{
		ID:        s.newID(),
		Role:      chatmodels.RoleUser,
		Content:   content,
		Timestamp: s.now(),
	})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	settings := s.settings.Settings()
	credential := s.settings.Credential(settings.AIProvider)
	project := s.workspace.Current()

	prompt := BuildPrompt(content, project)

	reply := ""
	raw, err := s.gateway.Send(ctx, prompt, settings, credential)
	if err != nil {
		reply = failureMessage(settings.AIProvider, err)
	} else {
		reply = s.processResponse(raw, project)
	}

	msg := &chatmodels.Message{
		ID:        s.newID(),
		Role:      chatmodels.RoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
		Model:     settings.DefaultModel,
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg, nil
}

// processResponse decodes the raw completion, applies any modification
// records against the snapshot the prompt was built from, and swaps the
// resulting tree in as one unit. The returned text is the completion with
// all well-formed blocks stripped.
func (s *Service) processResponse(raw string, project *workspacemodels.Project) string {
	display, records := protocol.Decode(raw)
	if len(records) == 0 {
		return display
	}

	files, applied, err := s.applier.Apply(project.Files, records)
	if err != nil {
		// Earlier records in the batch stay applied; there is no rollback.
		s.logger.Warn("modification batch aborted",
			"error", err,
			"applied", applied,
			"total", len(records),
		)
	}
	if applied > 0 {
		s.workspace.Swap(files)
		s.logger.Info("file modifications applied", "count", applied)
	}
	return display
}

// Messages returns a copy of the ordered conversation log.
func (s *Service) Messages() []*chatmodels.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*chatmodels.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// IsLoading reports whether a turn is currently in flight.
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// failureMessage converts a gateway failure into the fixed explanation shown
// to the user. Raw provider payloads only surface through the generic case.
func failureMessage(provider string, err error) string {
	name := strings.ToUpper(provider)
	switch {
	case errors.Is(err, gateway.ErrMissingCredential):
		return fmt.Sprintf("To use AI features, please configure your %s API key in Settings. "+
			"Click the Settings button in the top right corner and add your API key under the AI Provider section.", name)
	case errors.Is(err, gateway.ErrUnsupportedProvider):
		return fmt.Sprintf("Provider %s is not supported yet. Please pick a different provider in Settings.", provider)
	case errors.Is(err, gateway.ErrRateLimited):
		return fmt.Sprintf("Rate limit exceeded for %s. Please wait a moment and try again. "+
			"Consider upgrading your API plan for higher limits.", name)
	case errors.Is(err, gateway.ErrUnauthorized):
		return fmt.Sprintf("Invalid API key for %s. Please check your API key in Settings.", name)
	case errors.Is(err, gateway.ErrBadRequest):
		return fmt.Sprintf("Invalid request to %s. Please try a different message or check your settings.", name)
	default:
		return fmt.Sprintf("%s API error: %v", name, err)
	}
}
