package worker

// export_worker.go
// Renders RFQ and ORS sheets to PDF files under the storage path.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"biowearth/internal/document"
	"biowearth/internal/infra"
	"biowearth/internal/repository"

	"github.com/rs/zerolog/log"
)

// ExportPayload names the record to export: Type is "rfq" or "ors".
type ExportPayload struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ExportWorker processes export jobs from QueueExports.
type ExportWorker struct {
	snapshot    func() *repository.Snapshot
	storagePath string
}

func NewExportWorker(snapshot func() *repository.Snapshot, storagePath string) *ExportWorker {
	return &ExportWorker{snapshot: snapshot, storagePath: storagePath}
}

// Process writes one PDF per sheet of the record and returns their paths.
// Unknown records and types fail permanently; rendering errors are retried.
func (w *ExportWorker) Process(_ context.Context, job Job) ([]string, error) {
	var payload ExportPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, Permanent(fmt.Errorf("export_worker: invalid payload: %w", err))
	}

	sheets, err := document.Sheets(w.snapshot(), payload.Type, payload.ID)
	if err != nil {
		if errors.Is(err, document.ErrSourceNotFound) || errors.Is(err, document.ErrUnknownType) {
			return nil, Permanent(err)
		}
		return nil, err
	}

	files := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		path, err := infra.WriteSheetPDF(sh, w.storagePath)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	log.Info().Str("type", payload.Type).Str("id", payload.ID).Int("files", len(files)).Msg("export_worker: sheets written")
	return files, nil
}
