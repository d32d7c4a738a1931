package notification

import (
	"time"

	"github.com/oklog/ulid/v2"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
)

// Job is one pending submission email. Attempts counts sends in the current
// delivery; Deliveries counts how often the sweeper has requeued it.
type Job struct {
	ID         ulid.ULID                 `json:"id"`
	Record     salarydomain.SalaryRecord `json:"record"`
	Attempts   int                       `json:"attempts"`
	Deliveries int                       `json:"deliveries"`
	EnqueuedAt time.Time                 `json:"enqueued_at"`
	RequestID  string                    `json:"request_id,omitempty"`
	LastError  string                    `json:"last_error,omitempty"`
}

func NewJob(record salarydomain.SalaryRecord, now time.Time, requestID string) Job {
	return Job{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()),
		Record:     record,
		EnqueuedAt: now,
		RequestID:  requestID,
	}
}
