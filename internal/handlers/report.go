package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskflow-app/taskflow/internal/services"
	"github.com/taskflow-app/taskflow/types"
)

const (
	reportTypeCompleted = "concluidas"
	reportTypePending   = "pendentes"
	reportTypeOverdue   = "atrasadas"
)

// ReportHandler provides HTTP handlers for reports. Web reports are
// always scoped to the requesting user.
type ReportHandler struct {
	reportService *services.ReportService
	userService   *services.UserService
}

// NewReportHandler constructs a handler with the provided services.
func NewReportHandler(reportService *services.ReportService, userService *services.UserService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		userService:   userService,
	}
}

// ReportRouter registers report routes on the given router.
func ReportRouter(
	r chi.Router,
	reportService *services.ReportService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewReportHandler(reportService, userService)

	r.Use(authMiddleware)
	r.Get("/{reportType}", handler.GetReport)
	r.Get("/{reportType}/download", handler.DownloadReport)
}

// ReportResponse is the report listing payload.
type ReportResponse struct {
	Type  string     `json:"tipo"`
	Items []TaskView `json:"items"`
	Total int        `json:"total"`
}

// GetReport returns the status-filtered tasks of the requesting user.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportType := chi.URLParam(r, "reportType")
	tasks, err := h.tasksFor(r, reportType, userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown report type")
		return
	}

	writeJSON(w, http.StatusOK, ReportResponse{
		Type:  reportType,
		Items: taskViews(tasks),
		Total: len(tasks),
	})
}

// DownloadReport serves the report as a JSON or CSV attachment, the way
// the dashboard export buttons consume it.
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportType := chi.URLParam(r, "reportType")
	tasks, err := h.tasksFor(r, reportType, userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown report type")
		return
	}

	stamp := time.Now().Format("20060102_150405")
	switch r.URL.Query().Get("formato") {
	case "csv":
		data, err := h.reportService.EncodeCSV(tasks)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode report")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=relatorio_%s_%s.csv", reportType, stamp))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)

	case "json", "":
		data, err := h.reportService.EncodeJSON(tasks)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode report")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=relatorio_%s_%s.json", reportType, stamp))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)

	default:
		writeError(w, http.StatusBadRequest, "unknown format")
	}
}

func (h *ReportHandler) tasksFor(r *http.Request, reportType string, ownerID int) ([]types.Task, error) {
	var (
		tasks []types.Task
		err   error
	)
	switch reportType {
	case reportTypeCompleted:
		tasks, err = h.reportService.Completed(r.Context())
	case reportTypePending:
		tasks, err = h.reportService.Pending(r.Context())
	case reportTypeOverdue:
		tasks, err = h.reportService.Overdue(r.Context())
	default:
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}
	if err != nil {
		return nil, err
	}

	scoped := make([]types.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.OwnerID == ownerID {
			scoped = append(scoped, task)
		}
	}
	return scoped, nil
}
