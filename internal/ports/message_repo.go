package ports

import (
	"context"

	"github.com/saywith/saywith-server/internal/models"
)

type MessageRepository interface {
	// NewID reserves a fresh unique identifier without writing anything.
	// The value for the key is written later, at the end of the create flow.
	NewID() string

	// Write replaces the full document at the key.
	Write(ctx context.Context, id string, msg *models.Message) error

	// Fetch returns ErrNotFound when the key was never written.
	Fetch(ctx context.Context, id string) (*models.Message, error)

	// Update merges only the named fields into the stored document.
	Update(ctx context.Context, id string, patch models.Partial) error
}
