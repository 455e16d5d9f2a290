package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio-api/pkg/importer"

	"github.com/sirupsen/logrus"
)

// ImportsHandler handles Excel import operations
type ImportsHandler struct {
	DB          importer.TxStarter
	Log         *logrus.Logger
	MaxBytes    int64
	MappingPath string
}

// NewImportsHandler creates a new imports handler
func NewImportsHandler(db importer.TxStarter, log *logrus.Logger) *ImportsHandler {
	return &ImportsHandler{
		DB:       db,
		Log:      log,
		MaxBytes: 20 << 20, // 20 MB
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// UploadExcel handles multipart .xlsx uploads for bulk project import
func (h *ImportsHandler) UploadExcel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content-type must be multipart/form-data", Code: "UNSUPPORTED_CONTENT_TYPE"})
		return
	}

	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form: " + err.Error(), Code: "INVALID_FORM"})
		return
	}

	dryRun := r.FormValue("dry_run") == "true"
	maxErrors := 0
	if v := r.FormValue("max_errors"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "max_errors must be a positive integer", Code: "INVALID_FORM"})
			return
		}
		maxErrors = n
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file is required: " + err.Error(), Code: "INVALID_FORM"})
		return
	}
	defer file.Close()

	if !isXLSX(header) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "only .xlsx files are accepted", Code: "INVALID_FILE_TYPE"})
		return
	}

	log := h.Log.WithFields(logrus.Fields{
		"file":    header.Filename,
		"dry_run": dryRun,
	})

	sum, impErr := importer.ImportExcel(r.Context(), h.DB, file, importer.ImportOptions{
		MappingPath: h.MappingPath,
		DryRun:      dryRun,
		MaxErrors:   maxErrors,
	})
	if impErr != nil {
		log.WithError(impErr).Warn("Excel import failed")
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   "IMPORT_FAILED",
			"details": impErr.Error(),
			"data":    sum,
		})
		return
	}

	log.WithFields(logrus.Fields{
		"inserted": sum.Inserted,
		"updated":  sum.Updated,
		"errors":   sum.Errors,
	}).Info("Excel import finished")

	writeJSON(w, http.StatusOK, map[string]any{
		"data": sum,
		"meta": map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// isXLSX checks if the uploaded file is an Excel .xlsx file
func isXLSX(h *multipart.FileHeader) bool {
	return strings.HasSuffix(strings.ToLower(h.Filename), ".xlsx")
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}
