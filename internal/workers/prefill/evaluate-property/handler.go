package evaluateproperty

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/metrics"
	"cstore-prefill/internal/reconcile"
)

const (
	TaskType = "evaluate-property"
)

// Handler fuses records gathered by earlier process steps. It never calls
// a provider, so the same variables always complete with the same output.
type Handler struct {
	config       *Config
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

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

	output := h.execute(&input)

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

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":      job.Key,
		"success":     output.Success,
		"fieldsCount": output.FieldsCount,
	})
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(input *Input) *Output {
	var captured reconcile.Captured
	if input != nil {
		captured = *input
	}

	result := reconcile.Assemble(captured, h.config.Fusion)
	return &Output{
		Success:     result.Success,
		Data:        result.Data,
		Validation:  result.Validation,
		Ownership:   result.Ownership,
		Message:     result.Message,
		FieldsCount: result.FieldsCount,
	}
}

func (h *Handler) Execute(input *Input) *Output {
	return h.execute(input)
}
