package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"ledes/internal/config"
	"ledes/internal/logger"
	"ledes/internal/metrics"
	"ledes/internal/models"
)

// FallbackReply is returned when the model answers without any text.
const FallbackReply = "I apologize, but I encountered an error generating a response."

// FlowSignal is an out-of-band hint telling the client to switch UI mode.
type FlowSignal string

const (
	FlowNone        FlowSignal = ""
	FlowStartIntake FlowSignal = "start_intake"
)

// ChatModel is the subset of an eino chat model the controller needs.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// ContextSource supplies the grounding data. It must not fail.
type ContextSource interface {
	Collect(ctx context.Context) models.Snapshot
}

// ChatRequest is one submitted turn. The caller holds all conversational state and
// sends the full history and intake form every time.
type ChatRequest struct {
	Messages []models.Message
	Section  string
	Intake   *models.IntakeForm
}

// ChatResponse is the assistant's answer for one turn.
type ChatResponse struct {
	Message     string
	FlowSignal  FlowSignal
	IntakeStage models.IntakeStage
}

// Options configures a Controller.
type Options struct {
	// APIKey is the model credential. Empty means every Chat call fails with ErrNotConfigured.
	APIKey    string
	Model     ChatModel
	Source    ContextSource
	MaxTokens int
	Detector  IntentDetector
	Now       func() time.Time
	Logger    *zap.Logger
}

// Controller turns a chat turn into a grounded model call. It keeps no state between calls.
type Controller struct {
	apiKey    string
	model     ChatModel
	source    ContextSource
	maxTokens int
	detect    IntentDetector
	now       func() time.Time
	logger    *zap.Logger
}

// NewController builds a controller from opts, filling defaults.
func NewController(opts Options) *Controller {
	c := &Controller{
		apiKey:    strings.TrimSpace(opts.APIKey),
		model:     opts.Model,
		source:    opts.Source,
		maxTokens: opts.MaxTokens,
		detect:    opts.Detector,
		now:       opts.Now,
		logger:    logger.OrNop(opts.Logger),
	}
	if c.maxTokens <= 0 {
		c.maxTokens = config.DefaultMaxTokens
	}
	if c.detect == nil {
		c.detect = DetectCreateEntity
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Configured reports whether chat requests can reach the model.
func (c *Controller) Configured() bool {
	return c.apiKey != "" && c.model != nil
}

// Chat answers one turn.
func (c *Controller) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.Configured() {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeNotConfigured).Inc()
		return nil, ErrNotConfigured
	}

	snap := models.EmptySnapshot()
	if c.source != nil {
		snap = c.source.Collect(ctx)
	}
	system := BuildSystemPrompt(PromptInput{
		Now:      c.now(),
		Section:  req.Section,
		Snapshot: snap,
		Intake:   req.Intake,
	})

	start := time.Now()
	resp, err := c.model.Generate(ctx, toSchemaMessages(system, req.Messages), model.WithMaxTokens(c.maxTokens))
	metrics.ModelCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
		c.logger.Error("model request failed", zap.Error(err), zap.Int("turns", len(req.Messages)))
		return nil, &UpstreamError{Err: err}
	}

	out := &ChatResponse{Message: replyText(resp)}
	if req.Intake != nil {
		out.IntakeStage = req.Intake.Stage()
	} else if last, ok := lastUserMessage(req.Messages); ok && c.detect(last) {
		out.FlowSignal = FlowStartIntake
		metrics.IntakeSignals.Inc()
	}
	metrics.ChatRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	return out, nil
}

// toSchemaMessages prepends the system instruction and maps every turn to user or
// assistant; any role other than assistant is sent as user.
func toSchemaMessages(system string, history []models.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+1)
	messages = append(messages, &schema.Message{Role: schema.System, Content: system})
	for _, msg := range history {
		role := schema.User
		if msg.IsAssistant() {
			role = schema.Assistant
		}
		messages = append(messages, &schema.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages
}

func replyText(resp *schema.Message) string {
	if resp == nil {
		return FallbackReply
	}
	if strings.TrimSpace(resp.Content) != "" {
		return resp.Content
	}
	for _, part := range resp.MultiContent {
		if part.Type == schema.ChatMessagePartTypeText && strings.TrimSpace(part.Text) != "" {
			return part.Text
		}
	}
	return FallbackReply
}
