package printer

import "github.com/webcat/nifictl/internal/model"

// Printer knows how to print flow information in different formats.
type Printer interface {
	PrintHistory(runs []model.FlowRun) error
	PrintMessage(msg string) error
}
