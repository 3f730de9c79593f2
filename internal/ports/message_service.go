package ports

import (
	"context"

	"github.com/saywith/saywith-server/internal/models"
)

// FileInput is one file picked by the operator, already read into memory.
type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

type CreateInput struct {
	Name     string
	Template string
	Enabled  bool
	Mute     bool
	Media    *FileInput
	Audio    *FileInput
	Srt      *FileInput
}

// UpdateInput: nil pointers mean "field was not submitted". A non-nil value
// becomes part of the patch only when it differs from the stored record.
type UpdateInput struct {
	Name     *string
	Template *string
	Enabled  *bool
	Mute     *bool
	Media    *FileInput
	Audio    *FileInput
	Srt      *FileInput
	SrtText  *string
}

type MessageEvent struct {
	ID     string
	Action string // "created" | "updated"
}

type MessageWorkflow interface {
	Create(ctx context.Context, in CreateInput) (*models.Message, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	// Update returns the merged record and whether a write was issued.
	// changed == false means no dirty fields and no new files: no store call.
	Update(ctx context.Context, id string, in UpdateInput) (*models.Message, bool, error)
	ShareURL(id string) string
	Events() <-chan MessageEvent
}
