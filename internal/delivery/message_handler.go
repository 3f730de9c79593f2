package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/saywith/saywith-server/internal/domain"
	"github.com/saywith/saywith-server/internal/models"
	"github.com/saywith/saywith-server/internal/ports"
)

const maxUploadBytes = 64 << 20

type MessageHandler struct {
	svc ports.MessageWorkflow
	log *logger.ZapLogger
}

func NewMessageHandler(svc ports.MessageWorkflow, log *logger.ZapLogger) *MessageHandler {
	return &MessageHandler{
		svc: svc,
		log: log,
	}
}

// GET /api/templates
func (h *MessageHandler) Templates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.Templates())
}

// POST /api/messages
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	in := ports.CreateInput{
		Name:     r.FormValue("name"),
		Template: r.FormValue("template"),
		Enabled:  parseBool(r.FormValue("enabled")),
		Mute:     parseBool(r.FormValue("mute")),
	}

	var err error
	if in.Media, err = formFile(r, "media"); err != nil {
		http.Error(w, "read media file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Audio, err = formFile(r, "audio"); err != nil {
		http.Error(w, "read audio file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Srt, err = formFile(r, "srt"); err != nil {
		http.Error(w, "read srt file: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "message created",
		Fields: map[string]any{
			"id":       msg.ID,
			"template": msg.Template,
			"hasMedia": msg.MediaURL != "",
			"hasAudio": msg.AudioURL != "",
		},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(msg)
}

// GET /api/messages/{id}
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	msg, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(msg)
}

// PATCH /api/messages/{id}
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Only fields actually present in the form take part in the diff.
	in := ports.UpdateInput{
		Name:     formString(r, "name"),
		Template: formString(r, "template"),
		Enabled:  formBool(r, "enabled"),
		Mute:     formBool(r, "mute"),
		SrtText:  formString(r, "srtContent"),
	}

	var err error
	if in.Media, err = formFile(r, "media"); err != nil {
		http.Error(w, "read media file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Audio, err = formFile(r, "audio"); err != nil {
		http.Error(w, "read audio file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Srt, err = formFile(r, "srt"); err != nil {
		http.Error(w, "read srt file: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg, changed, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "message update",
		Fields: map[string]any{
			"id":      id,
			"changed": changed,
		},
	})

	resp := map[string]any{
		"changed": changed,
		"record":  msg,
	}
	if !changed {
		resp["status"] = "no changes"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// GET /api/messages/{id}/qr.zip
func (h *MessageHandler) QRBundle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	bundle, err := domain.QRBundle(h.svc.ShareURL(id))
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="saywith-%s-qr.zip"`, id))
	_, _ = w.Write(bundle)
}

// writeError converts the workflow error taxonomy to HTTP statuses. Nothing
// propagates past here.
func (h *MessageHandler) writeError(w http.ResponseWriter, err error) {
	var vErr *ports.ValidationError
	if errors.As(err, &vErr) {
		http.Error(w, vErr.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, ports.ErrNotFound) {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	var uErr *ports.UploadError
	if errors.As(err, &uErr) {
		http.Error(w, uErr.Message, http.StatusBadGateway)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: "message workflow failed",
		Error:   err,
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func formFile(r *http.Request, field string) (*ports.FileInput, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &ports.FileInput{
		Name:        header.Filename,
		ContentType: fileContentType(header),
		Data:        data,
	}, nil
}

func fileContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func formString(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[field]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func formBool(r *http.Request, field string) *bool {
	s := formString(r, field)
	if s == nil {
		return nil
	}
	b := parseBool(*s)
	return &b
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return s == "on"
	}
	return b
}
