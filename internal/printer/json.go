package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/webcat/nifictl/internal/model"
)

// JSONPrinter prints flow information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// historyItem represents a flow run in the history output.
type historyItem struct {
	ID        string    `json:"id"`
	FlowID    string    `json:"flow_id"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintHistory prints flow runs in JSON format.
func (j *JSONPrinter) PrintHistory(runs []model.FlowRun) error {
	items := make([]historyItem, len(runs))
	for i, r := range runs {
		items[i] = historyItem{
			ID:        r.ID,
			FlowID:    r.FlowID,
			Action:    string(r.Action),
			Status:    string(r.Status),
			Error:     r.Error,
			CreatedAt: r.CreatedAt,
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(messageOutput{Message: msg})
}
