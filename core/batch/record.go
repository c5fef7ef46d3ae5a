package batch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a batch.
type Status string

const (
	StatusPending               Status = "pending"
	StatusInProgress            Status = "in_progress"
	StatusCompleted             Status = "completed"
	StatusCompletedWithWarnings Status = "completed_with_warnings"
	StatusFailed                Status = "failed"
)

// IsTerminal reports whether no worker will touch the batch again.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCompletedWithWarnings, StatusFailed:
		return true
	default:
		return false
	}
}

// Hash fields of a stored batch record.
const (
	FieldBatchID        = "batch_id"
	FieldSpecs          = "specs"
	FieldTargetCount    = "target_count"
	FieldGeneratedCount = "generated_count"
	FieldStatus         = "status"
	FieldErrorMessage   = "error_message"
)

// Record is a work order handed to exactly one worker invocation.
type Record[S any] struct {
	BatchID        string `json:"batch_id"`
	Specs          []S    `json:"specs"`
	TargetCount    int    `json:"target_count"`
	GeneratedCount int    `json:"generated_count"`
	Status         Status `json:"status"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// Key expands a key template such as "generation_task:item:{batch_id}".
func Key(template, batchID string) string {
	return strings.ReplaceAll(template, "{batch_id}", batchID)
}

// encodeFields renders values as hash fields: strings as-is, integers in decimal,
// everything else as JSON.
func encodeFields(values map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		switch t := v.(type) {
		case string:
			out[k] = t
		case Status:
			out[k] = string(t)
		case int:
			out[k] = strconv.Itoa(t)
		case int64:
			out[k] = strconv.FormatInt(t, 10)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode field %s: %w", k, err)
			}
			out[k] = string(b)
		}
	}
	return out, nil
}

func encodeRecord[S any](rec Record[S]) (map[string]string, error) {
	specs := rec.Specs
	if specs == nil {
		specs = []S{}
	}
	values := map[string]any{
		FieldBatchID:        rec.BatchID,
		FieldSpecs:          specs,
		FieldTargetCount:    rec.TargetCount,
		FieldGeneratedCount: rec.GeneratedCount,
		FieldStatus:         rec.Status,
	}
	if rec.ErrorMessage != "" {
		values[FieldErrorMessage] = rec.ErrorMessage
	}
	return encodeFields(values)
}

func decodeRecord[S any](batchID string, fields map[string]string) (*Record[S], error) {
	rec := &Record[S]{
		BatchID:      batchID,
		Status:       Status(fields[FieldStatus]),
		ErrorMessage: fields[FieldErrorMessage],
	}
	if id := fields[FieldBatchID]; id != "" {
		rec.BatchID = id
	}
	if raw := fields[FieldSpecs]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &rec.Specs); err != nil {
			return nil, fmt.Errorf("decode specs of batch %s: %w", batchID, err)
		}
	}
	var err error
	if rec.TargetCount, err = atoiField(fields, FieldTargetCount); err != nil {
		return nil, err
	}
	if rec.GeneratedCount, err = atoiField(fields, FieldGeneratedCount); err != nil {
		return nil, err
	}
	return rec, nil
}

func atoiField(fields map[string]string, name string) (int, error) {
	raw := fields[name]
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", name, err)
	}
	return n, nil
}
