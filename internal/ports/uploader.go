package ports

import "context"

// Slot is one of the three file roles a message can carry.
type Slot string

const (
	SlotMedia Slot = "media"
	SlotAudio Slot = "audio"
	SlotSrt   Slot = "srt"
)

// Uploader stores a file under a path derived from the message id and slot
// and returns the public URL of the stored object. The declared content type
// is preserved; the stored extension comes from the original filename.
type Uploader interface {
	Upload(ctx context.Context, data []byte, id string, slot Slot, filename, contentType string) (string, error)
}
