// Package ai gates, builds and dispatches generation requests to the
// external model provider, debiting one monthly credit per successful call.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/config"
	"github.com/nansinho/innovtec-v2/internal/models"
	"github.com/nansinho/innovtec-v2/internal/quota"
	"github.com/nansinho/innovtec-v2/internal/settings"
)

// maxAttachmentSize caps uploaded files at 10 MiB.
const maxAttachmentSize = 10 << 20

// Accepted attachment media types.
const (
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeWebP = "image/webp"
)

// allowedMimeTypes lists the attachment types the provider accepts.
var allowedMimeTypes = map[string]struct{}{
	MimePDF:  {},
	MimePNG:  {},
	MimeJPEG: {},
	MimeWebP: {},
}

// Attachment is an uploaded file to analyze.
type Attachment struct {
	Data     []byte
	MimeType string
}

// GenerateInput carries one generation request through the gateway.
type GenerateInput struct {
	UserID     uint64
	Role       string
	Task       Task
	Prompt     string
	Context    string
	Attachment *Attachment
}

// Generation is a successful gateway response.
type Generation struct {
	Result           Result
	CreditsUsed      int64
	CreditsLimit     int64
	CreditsRemaining int64
}

// Gateway orchestrates quota checks, prompt construction, the provider call
// and credit accounting.
type Gateway struct {
	db       *gorm.DB
	ledger   *quota.Ledger
	provider Provider
	cfg      config.AIConfig
}

// NewGateway constructs a Gateway.
func NewGateway(db *gorm.DB, ledger *quota.Ledger, provider Provider, cfg config.AIConfig) *Gateway {
	return &Gateway{db: db, ledger: ledger, provider: provider, cfg: cfg}
}

// Generate runs one gated generation request. Exactly one provider call is
// made, and exactly one credit is debited, only after the call succeeds.
func (g *Gateway) Generate(ctx context.Context, input GenerateInput) (*Generation, error) {
	record, errGet := g.ledger.GetOrCreate(ctx, input.UserID, input.Role)
	if errGet != nil {
		// Fail closed: no quota record, no service.
		return nil, errGet
	}

	if quota.Exhausted(record) {
		return nil, &QuotaError{Used: record.CreditsUsed, Limit: record.CreditsLimit}
	}

	if errValidate := validateInput(input); errValidate != nil {
		return nil, errValidate
	}

	req := g.buildRequest(input)

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout())
	defer cancel()

	start := time.Now().UTC()
	completion, errCall := g.provider.Complete(callCtx, req)
	g.recordUsage(ctx, input, req.Model, start, completion, errCall)

	if errCall != nil {
		var provErr *ProviderError
		if errors.As(errCall, &provErr) {
			return nil, errCall
		}
		return nil, &ProviderError{Err: errCall}
	}

	updated, errConsume := g.ledger.Consume(ctx, record.ID)
	if errConsume != nil {
		if errors.Is(errConsume, quota.ErrExhausted) {
			// A concurrent request took the last credit between our check and
			// the debit. The provider call already succeeded, so serve the
			// result; the counter stays clamped at the limit.
			log.WithFields(log.Fields{"user_id": input.UserID, "period": record.Period}).
				Warn("ai: credit debit lost race with exhaustion")
			return &Generation{
				Result:           ParseResult(completion.Text),
				CreditsUsed:      record.CreditsLimit,
				CreditsLimit:     record.CreditsLimit,
				CreditsRemaining: 0,
			}, nil
		}
		return nil, errConsume
	}

	return &Generation{
		Result:           ParseResult(completion.Text),
		CreditsUsed:      updated.CreditsUsed,
		CreditsLimit:     updated.CreditsLimit,
		CreditsRemaining: quota.Remaining(updated),
	}, nil
}

// callTimeout returns the provider call timeout, preferring the DB setting
// over the config file value.
func (g *Gateway) callTimeout() time.Duration {
	if seconds := settings.IntValue(settings.AITimeoutSecondsKey, 0); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return g.cfg.Timeout()
}

// validateInput enforces task-specific input rules before any provider call.
func validateInput(input GenerateInput) error {
	if !ValidTask(input.Task) {
		return fmt.Errorf("%w: unknown task %q", ErrInvalidInput, string(input.Task))
	}

	if input.Attachment == nil {
		if input.Task.RequiresAttachment() {
			return fmt.Errorf("%w: task %s requires a file", ErrInvalidInput, input.Task)
		}
		if strings.TrimSpace(input.Prompt) == "" {
			return fmt.Errorf("%w: empty prompt", ErrInvalidInput)
		}
		return nil
	}

	if len(input.Attachment.Data) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	if len(input.Attachment.Data) > maxAttachmentSize {
		return fmt.Errorf("%w: file exceeds 10 MiB", ErrInvalidInput)
	}
	if _, ok := allowedMimeTypes[input.Attachment.MimeType]; !ok {
		return fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, input.Attachment.MimeType)
	}
	return nil
}

// buildRequest assembles the provider request for a validated input.
func (g *Gateway) buildRequest(input GenerateInput) CompletionRequest {
	hasAttachment := input.Attachment != nil

	var blocks []ContentBlock
	if hasAttachment {
		if input.Attachment.MimeType == MimePDF {
			blocks = append(blocks, DocumentBlock(input.Attachment.Data))
		} else {
			blocks = append(blocks, ImageBlock(input.Attachment.MimeType, input.Attachment.Data))
		}
	}

	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		prompt = defaultFilePrompt
	}
	if ctxText := strings.TrimSpace(input.Context); ctxText != "" {
		prompt = fmt.Sprintf("Contexte supplémentaire: %s\n\nDemande: %s", ctxText, prompt)
	}
	blocks = append(blocks, TextBlock(prompt))

	maxTokens := settings.IntValue(settings.AIMaxTokensKey, g.cfg.MaxTokens)
	if hasAttachment {
		maxTokens = settings.IntValue(settings.AIFileMaxTokensKey, settings.DefaultAIFileMaxTokens)
	}

	return CompletionRequest{
		Model:     settings.StringValue(settings.AIModelKey, g.cfg.Model),
		System:    buildSystemPrompt(input.Task, hasAttachment),
		Blocks:    blocks,
		MaxTokens: maxTokens,
	}
}

// recordUsage persists one metering row per provider call, best effort.
func (g *Gateway) recordUsage(ctx context.Context, input GenerateInput, model string, requestedAt time.Time, completion *Completion, callErr error) {
	if g.db == nil {
		return
	}

	row := models.AIUsage{
		UserID:      input.UserID,
		Task:        string(input.Task),
		Model:       model,
		RequestedAt: requestedAt,
	}
	if callErr != nil {
		row.Failed = true
		var provErr *ProviderError
		if errors.As(callErr, &provErr) {
			if provErr.StatusCode != 0 {
				code := provErr.StatusCode
				row.ErrorStatusCode = &code
			}
			detail, errMarshal := json.Marshal(map[string]any{
				"timeout": provErr.Timeout,
				"message": provErr.Error(),
			})
			if errMarshal == nil {
				row.ErrorDetail = datatypes.JSON(detail)
			}
		}
	} else if completion != nil {
		row.InputTokens = completion.InputTokens
		row.OutputTokens = completion.OutputTokens
	}

	if errCreate := g.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).Warn("ai: record usage failed")
	}
}
