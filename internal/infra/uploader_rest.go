package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/saywith/saywith-server/internal/ports"
)

// RestUploader is the custom endpoint mode: a multipart POST carrying the
// message id as "folder" plus the file in its slot field ("file1" for media,
// "file2" for audio). The endpoint answers {"file1URL": …, "file2URL": …},
// or {"error": …} with a non-2xx status.
type RestUploader struct {
	endpoint string
	client   *http.Client
}

func NewRestUploader(endpoint string) *RestUploader {
	return &RestUploader{
		endpoint: endpoint,
		client:   http.DefaultClient,
	}
}

type restUploadResponse struct {
	File1URL string `json:"file1URL"`
	File2URL string `json:"file2URL"`
	Error    string `json:"error"`
}

func (u *RestUploader) Upload(ctx context.Context, data []byte, id string, slot ports.Slot, filename, contentType string) (string, error) {
	var field string
	switch slot {
	case ports.SlotMedia:
		field = "file1"
	case ports.SlotAudio:
		field = "file2"
	default:
		// The endpoint only has two file slots; subtitle text is inlined
		// into the record and never reaches this backend.
		return "", &ports.UploadError{Message: fmt.Sprintf("slot %q not supported by upload endpoint", slot)}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("folder", id); err != nil {
		return "", &ports.UploadError{Message: err.Error()}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", &ports.UploadError{Message: err.Error()}
	}
	if _, err := part.Write(data); err != nil {
		return "", &ports.UploadError{Message: err.Error()}
	}
	if err := mw.Close(); err != nil {
		return "", &ports.UploadError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u.endpoint, &body)
	if err != nil {
		return "", &ports.UploadError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", &ports.UploadError{Message: fmt.Sprintf("upload request: %v", err)}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var parsed restUploadResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := parsed.Error
		if msg == "" {
			msg = fmt.Sprintf("upload failed with http %d", resp.StatusCode)
		}
		return "", &ports.UploadError{Message: msg, Status: resp.StatusCode}
	}

	url := parsed.File1URL
	if field == "file2" {
		url = parsed.File2URL
	}
	if url == "" {
		return "", &ports.UploadError{Message: "upload response missing " + field + "URL"}
	}
	return url, nil
}
