package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gofactura/internal/adapter/http/dto"
)

// maxUploadSize caps uploaded source files at 32 MiB.
const maxUploadSize = 32 << 20

// SourceFileStore defines the source-file management behavior.
type SourceFileStore interface {
	ListFiles() ([]string, error)
	ReadFile(name string) ([]byte, error)
	SaveFile(name string, content []byte) error
	LastImported() (string, error)
}

// SourceFileHandler manages the folder of importable JSON files.
type SourceFileHandler struct {
	store SourceFileStore
}

// NewSourceFileHandler creates a new SourceFileHandler.
func NewSourceFileHandler(store SourceFileStore) *SourceFileHandler {
	return &SourceFileHandler{store: store}
}

// List lists the JSON files available for import.
func (h *SourceFileHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.store.ListFiles()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list source files", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SourceFilesResponse{Files: files})
}

// Read returns the raw content of a source file.
func (h *SourceFileHandler) Read(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	content, err := h.store.ReadFile(name)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to read source file", err.Error())

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// Upload stores a source file sent as multipart/form-data.
func (h *SourceFileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart/form-data", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided", err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload", err.Error())
		return
	}

	if err := h.store.SaveFile(header.Filename, content); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store source file", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UploadResponse{FileName: header.Filename})
}

// LastImported returns the name of the most recently imported file.
func (h *SourceFileHandler) LastImported(w http.ResponseWriter, r *http.Request) {
	name, err := h.store.LastImported()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read last imported marker", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LastImportedResponse{FileName: name})
}
