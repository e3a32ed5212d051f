package backup

import (
	"context"
	"io"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=backup_test

const maxImportBodyBytes = 5 << 20

type backupService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, source, text string) (ImportResult, error)
}

type Handler struct {
	service backupService
}

func NewHandler(service backupService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.export")
	defer span.End()

	data, err := handler.service.Export(ctx)
	if err != nil {
		log.Errorf("export backup: %s", err)
		http.Error(w, "failed to export backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="fitness-backup.json"`)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, data)
}

// HandleImport takes the raw backup text as the request body.
func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.import")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBodyBytes))
	if err != nil {
		log.Errorf("import backup: read body: %s", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Import(ctx, SourceHTTP, string(body))
	if err != nil {
		if message, ok := UserMessage(err); ok {
			pkg.WriteMessage(w, message, http.StatusBadRequest)
			return
		}
		log.Errorf("import backup: %s", err)
		http.Error(w, "failed to import backup", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}
