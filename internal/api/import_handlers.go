package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/importer"
)

type importRequest struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name,omitempty"`
	StartRow  int    `json:"start_row,omitempty"`
}

// handleStartImport accepts either a multipart upload (field "file") or a
// JSON body naming a file already on the server.
func (s *Server) handleStartImport(w http.ResponseWriter, r *http.Request) {
	var body importRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		path, err := saveUpload(r)
		if err != nil {
			handleError(w, r, err)
			return
		}
		body.FilePath = path
		body.SheetName = r.FormValue("sheet_name")
	} else if err := decodeBody(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	if body.FilePath == "" {
		handleError(w, r, errors.NewValidationError("file_path", "is required"))
		return
	}

	cfg := importer.DefaultConfig(body.FilePath)
	if body.SheetName != "" {
		cfg.SheetName = body.SheetName
	}
	if body.StartRow > 0 {
		cfg.StartRow = body.StartRow
	}

	run, err := s.Imports.Enqueue(r.Context(), cfg)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, run)
}

const maxUploadBytes = 32 << 20

// saveUpload copies the uploaded spreadsheet to a temp file and returns its
// path. The import job reads it from there.
func saveUpload(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", errors.NewBadRequestError("invalid multipart form")
	}
	src, header, err := r.FormFile("file")
	if err != nil {
		return "", errors.NewValidationError("file", "is required")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".csv", ".xlsx", ".xlsm":
	default:
		return "", errors.NewValidationError("file", "must be a .csv, .xlsx or .xlsm file")
	}

	dst, err := os.CreateTemp("", "word-import-*"+ext)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", errors.NewInternalError(err)
	}
	return dst.Name(), nil
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	run, err := s.Imports.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, run)
}
