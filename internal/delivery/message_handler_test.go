package delivery

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/saywith/saywith-server/internal/models"
	"github.com/saywith/saywith-server/internal/ports"
	"go.uber.org/zap"
)

type fakeWorkflow struct {
	msg *models.Message

	createIn  ports.CreateInput
	createErr error

	getErr error

	updateIn      ports.UpdateInput
	updateChanged bool
	updateErr     error
}

func (f *fakeWorkflow) Create(ctx context.Context, in ports.CreateInput) (*models.Message, error) {
	f.createIn = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.msg, nil
}

func (f *fakeWorkflow) Get(ctx context.Context, id string) (*models.Message, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.msg, nil
}

func (f *fakeWorkflow) Update(ctx context.Context, id string, in ports.UpdateInput) (*models.Message, bool, error) {
	f.updateIn = in
	if f.updateErr != nil {
		return nil, false, f.updateErr
	}
	return f.msg, f.updateChanged, nil
}

func (f *fakeWorkflow) ShareURL(id string) string {
	return "https://saywith.com/" + id
}

func (f *fakeWorkflow) Events() <-chan ports.MessageEvent { return nil }

func testRouter(svc ports.MessageWorkflow) chi.Router {
	zl := logger.NewZapLogger(zap.NewNop().Sugar())
	h := NewMessageHandler(svc, zl)

	r := chi.NewRouter()
	r.Post("/api/messages", h.Create)
	r.Get("/api/messages/{id}", h.Get)
	r.Patch("/api/messages/{id}", h.Update)
	r.Get("/api/messages/{id}/qr.zip", h.QRBundle)
	r.Get("/api/templates", h.Templates)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for field, nameAndContent := range files {
		fw, err := mw.CreateFormFile(field, nameAndContent[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(nameAndContent[1])); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestCreateHandler(t *testing.T) {
	f := &fakeWorkflow{msg: &models.Message{ID: "abc", Name: "Promo", Template: "template1"}}
	r := testRouter(f)

	body, ct := multipartBody(t,
		map[string]string{"name": "Promo", "template": "template1", "enabled": "true"},
		map[string][2]string{"media": {"clip.mp4", "vvv"}},
	)

	req := httptest.NewRequest("POST", "/api/messages", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if f.createIn.Name != "Promo" || f.createIn.Template != "template1" || !f.createIn.Enabled {
		t.Errorf("create input = %+v", f.createIn)
	}
	if f.createIn.Media == nil || f.createIn.Media.Name != "clip.mp4" || string(f.createIn.Media.Data) != "vvv" {
		t.Errorf("media input = %+v", f.createIn.Media)
	}
	if f.createIn.Audio != nil || f.createIn.Srt != nil {
		t.Errorf("unexpected file inputs: %+v", f.createIn)
	}

	var got models.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "abc" {
		t.Errorf("response id = %q", got.ID)
	}
}

func TestCreateHandler_ValidationError(t *testing.T) {
	f := &fakeWorkflow{createErr: &ports.ValidationError{Field: "template", Reason: "required"}}
	r := testRouter(f)

	body, ct := multipartBody(t, map[string]string{"name": "x"}, nil)

	req := httptest.NewRequest("POST", "/api/messages", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateHandler_UploadError(t *testing.T) {
	f := &fakeWorkflow{createErr: &ports.UploadError{Message: "disk full", Status: 500}}
	r := testRouter(f)

	body, ct := multipartBody(t, map[string]string{"template": "template1"}, nil)

	req := httptest.NewRequest("POST", "/api/messages", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "disk full" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	f := &fakeWorkflow{getErr: ports.ErrNotFound}
	r := testRouter(f)

	req := httptest.NewRequest("GET", "/api/messages/zzz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "message not found" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestGetHandler(t *testing.T) {
	f := &fakeWorkflow{msg: &models.Message{ID: "abc", Name: "Promo"}}
	r := testRouter(f)

	req := httptest.NewRequest("GET", "/api/messages/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got models.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Promo" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestUpdateHandler_NoChanges(t *testing.T) {
	f := &fakeWorkflow{msg: &models.Message{ID: "abc"}, updateChanged: false}
	r := testRouter(f)

	body, ct := multipartBody(t, map[string]string{"name": "Promo"}, nil)

	req := httptest.NewRequest("PATCH", "/api/messages/abc", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Changed bool   `json:"changed"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Changed {
		t.Error("changed = true")
	}
	if resp.Status != "no changes" {
		t.Errorf("status = %q", resp.Status)
	}

	// only the submitted field reaches the workflow
	if f.updateIn.Name == nil || *f.updateIn.Name != "Promo" {
		t.Errorf("name input = %v", f.updateIn.Name)
	}
	if f.updateIn.Enabled != nil || f.updateIn.Template != nil || f.updateIn.SrtText != nil {
		t.Errorf("unsubmitted fields present: %+v", f.updateIn)
	}
}

func TestQRBundleHandler(t *testing.T) {
	f := &fakeWorkflow{msg: &models.Message{ID: "abc"}}
	r := testRouter(f)

	req := httptest.NewRequest("GET", "/api/messages/abc/qr.zip", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 3 {
		t.Errorf("zip entries = %d, want 3", len(zr.File))
	}
}

func TestQRBundleHandler_NotFound(t *testing.T) {
	f := &fakeWorkflow{getErr: ports.ErrNotFound}
	r := testRouter(f)

	req := httptest.NewRequest("GET", "/api/messages/zzz/qr.zip", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTemplatesHandler(t *testing.T) {
	r := testRouter(&fakeWorkflow{})

	req := httptest.NewRequest("GET", "/api/templates", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var opts []models.TemplateOption
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatal(err)
	}
	if len(opts) == 0 {
		t.Error("empty catalog")
	}
}
