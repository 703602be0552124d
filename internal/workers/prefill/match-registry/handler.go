package matchregistry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/metrics"
	"cstore-prefill/internal/models"
)

const (
	TaskType = "match-registry"
)

type Matcher interface {
	Match(ctx context.Context, address string) *models.RegistryMatch
}

type Handler struct {
	config       *Config
	matcher      Matcher
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, matcher Matcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		matcher:      matcher,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle completes every parseable job; registry problems produce a nil match.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.ErrCodeInputParsing)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewInputParsingError(err))
		return
	}

	output := h.execute(ctx, &input)

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) *Output {
	if input == nil || h.matcher == nil {
		return &Output{}
	}
	match := h.matcher.Match(ctx, input.Address)
	return &Output{Registry: match, Matched: match != nil}
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}
