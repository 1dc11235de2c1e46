// Package chat relays trip questions to a generative-language model and
// keeps the conversation transcript.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"viagens/internal/log"
)

const (
	Greeting       = "Olá! Sou a IA do VIAgens. Conheço todo o seu roteiro para África do Sul. Pergunte sobre voos, horários, budget ou dicas!"
	EmptyReply     = "Desculpe, não consegui processar isso agora."
	FailureReply   = "Estou tendo problemas para conectar com minha rede neural. Tente novamente em instantes."
	DefaultTimeout = 30 * time.Second
)

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

var (
	ErrEmptyQuestion = errors.New("empty question")
	// ErrNoReply is returned by a Generator when the model produced no text.
	ErrNoReply = errors.New("model returned no reply")
)

type (
	Role string

	Message struct {
		Role Role      `json:"role"`
		Text string    `json:"text"`
		At   time.Time `json:"at"`
	}

	// Generator sends one prompt with a system instruction to a model.
	Generator interface {
		Generate(ctx context.Context, system, prompt string) (string, error)
	}

	// ContextFunc returns the trip data current at call time.
	ContextFunc func() TripContext
)

// Relay forwards questions with the trip context and records both turns.
type Relay struct {
	gen     Generator
	context ContextFunc
	timeout time.Duration
	logger  *log.Logger
	now     func() time.Time

	mu         sync.Mutex
	transcript []Message
}

// NewRelay seeds the transcript with the greeting. A zero timeout means
// DefaultTimeout.
func NewRelay(gen Generator, contextFn ContextFunc, timeout time.Duration, logger *log.Logger) *Relay {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Relay{
		gen:     gen,
		context: contextFn,
		timeout: timeout,
		logger:  logger.WithComponent(log.ComponentChat),
		now:     time.Now,
	}
	r.transcript = []Message{{Role: RoleModel, Text: Greeting, At: r.now()}}
	return r
}

// Ask appends the question, queries the model and appends its reply. Model
// failures become a fallback reply and are never returned as errors.
func (r *Relay) Ask(ctx context.Context, question string) (Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, ErrEmptyQuestion
	}
	r.append(Message{Role: RoleUser, Text: question, At: r.now()})

	reply := r.generate(ctx, question)
	msg := Message{Role: RoleModel, Text: reply, At: r.now()}
	r.append(msg)
	return msg, nil
}

func (r *Relay) generate(ctx context.Context, question string) string {
	if r.gen == nil {
		r.logger.WarnContext(ctx, "No model configured")
		return FailureReply
	}

	system, err := SystemInstruction(r.context())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to build trip context", log.FieldError, err)
		return FailureReply
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := r.gen.Generate(ctx, system, question)
	switch {
	case errors.Is(err, ErrNoReply):
		r.logger.WarnContext(ctx, "Model returned no text", log.FieldOperation, log.OpAsk)
		return EmptyReply
	case err != nil:
		r.logger.ErrorContext(ctx, "Model request failed",
			log.FieldOperation, log.OpAsk,
			log.FieldError, err,
			"error_type", log.ErrorTypeUpstream)
		return FailureReply
	case strings.TrimSpace(text) == "":
		return EmptyReply
	}

	r.logger.InfoContext(ctx, "Model replied",
		log.FieldOperation, log.OpAsk,
		log.FieldDuration, time.Since(start).Milliseconds(),
		"reply_len", len(text))
	return text
}

func (r *Relay) append(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcript = append(r.transcript, m)
}

// Transcript returns a copy of the conversation so far.
func (r *Relay) Transcript() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.transcript)
}
