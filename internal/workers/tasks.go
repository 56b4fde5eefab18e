// internal/workers/tasks.go
package workers

import "time"

const (
	TypeInvoiceProcess   = "invoice:process"
	TypeReportGenerate   = "report:generate"
	TypeReorderScan      = "reorder:scan"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// InvoiceJobPayload represents the payload for supplier invoice processing jobs
type InvoiceJobPayload struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
}

// InvoiceJobResult represents the result of invoice processing
type InvoiceJobResult struct {
	LinesParsed    int      `json:"lines_parsed"`
	ItemsRestocked int      `json:"items_restocked"`
	UnknownSKUs    []string `json:"unknown_skus,omitempty"`
	Errors         []string `json:"errors,omitempty"`
	ProcessingTime string   `json:"processing_time"`
}

// ReportJobPayload represents the payload for sales report generation jobs
type ReportJobPayload struct {
	JobID string    `json:"job_id"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// ReportJobResult represents the result of report generation
type ReportJobResult struct {
	Key            string `json:"key"`
	Location       string `json:"location"`
	Entries        int    `json:"entries"`
	ProcessingTime string `json:"processing_time"`
}
