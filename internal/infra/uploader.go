package infra

import (
	"fmt"
	"strings"

	"github.com/saywith/saywith-server/internal/config"
	"github.com/saywith/saywith-server/internal/ports"
)

// NewUploader builds the blob backend named by the configuration. The choice
// is made once here; nothing downstream knows which provider is active.
func NewUploader(cfg config.UploadConfig) (ports.Uploader, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Uploader(cfg.S3)
	case "rest":
		if cfg.Rest.Endpoint == "" {
			return nil, fmt.Errorf("upload provider rest: endpoint not configured")
		}
		return NewRestUploader(cfg.Rest.Endpoint), nil
	default:
		return nil, fmt.Errorf("unknown upload provider %q", cfg.Provider)
	}
}

// fileExt returns the substring after the last dot of the original filename,
// or "" when the name has no dot.
func fileExt(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// objectName derives the stored name for a slot: "media.mp4", or bare "media"
// when the original filename carries no extension.
func objectName(slot ports.Slot, filename string) string {
	ext := fileExt(filename)
	if ext == "" {
		return string(slot)
	}
	return string(slot) + "." + ext
}
