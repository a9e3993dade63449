package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskReportEmail is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskReportEmail = "report:email"
)

// ReportEmailPayload is the JSON payload of the report email task.
type ReportEmailPayload struct {
	TenantID string            `json:"tenant_id"`
	Kind     string            `json:"kind"`
	Params   map[string]string `json:"params"`
	To       string            `json:"to"`
}

// NewReportEmailTask constructs an Asynq task that renders a report and emails it.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): send into the "default" queue
//   - Timeout(2m): rendering reads whole tables
func NewReportEmailTask(p ReportEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReportEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(2*time.Minute),
	), nil
}
