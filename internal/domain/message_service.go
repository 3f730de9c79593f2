package domain

import (
	"context"

	"github.com/saywith/saywith-server/internal/models"
	"github.com/saywith/saywith-server/internal/ports"
)

// MessageService runs the two record workflows: create (reserve id, upload
// present slots, write full record) and edit (fetch snapshot, diff, minimal
// merge update). Change events go out on a buffered channel consumed by the
// websocket broadcast loop.
type MessageService struct {
	repo     ports.MessageRepository
	uploader ports.Uploader
	baseURL  string

	events chan ports.MessageEvent
}

func NewMessageService(
	repo ports.MessageRepository,
	uploader ports.Uploader,
	baseURL string,
) *MessageService {
	return &MessageService{
		repo:     repo,
		uploader: uploader,
		baseURL:  baseURL,
		events:   make(chan ports.MessageEvent, 100),
	}
}

func (s *MessageService) Events() <-chan ports.MessageEvent { return s.events }

func (s *MessageService) ShareURL(id string) string {
	return s.baseURL + id
}

func (s *MessageService) Create(ctx context.Context, in ports.CreateInput) (*models.Message, error) {
	if in.Template == "" {
		return nil, &ports.ValidationError{Field: "template", Reason: "required"}
	}
	if !models.ValidTemplate(in.Template) {
		return nil, &ports.ValidationError{Field: "template", Reason: "unknown template"}
	}

	// The id is freshly minted, so a failure below leaves no row behind.
	id := s.repo.NewID()

	msg := &models.Message{
		ID:       id,
		Name:     in.Name,
		Template: in.Template,
		Enabled:  in.Enabled,
		Mute:     in.Mute,
	}

	// Absent slots are not an error: their URLs simply stay empty.
	if in.Media != nil {
		url, err := s.uploader.Upload(ctx, in.Media.Data, id, ports.SlotMedia, in.Media.Name, in.Media.ContentType)
		if err != nil {
			return nil, err
		}
		msg.MediaURL = url
	}
	if in.Audio != nil {
		url, err := s.uploader.Upload(ctx, in.Audio.Data, id, ports.SlotAudio, in.Audio.Name, in.Audio.ContentType)
		if err != nil {
			return nil, err
		}
		msg.AudioURL = url
	}
	if in.Srt != nil {
		msg.SrtContent = StripWatermark(string(in.Srt.Data))
	}

	if err := s.repo.Write(ctx, id, msg); err != nil {
		return nil, err
	}

	s.events <- ports.MessageEvent{ID: id, Action: "created"}
	return msg, nil
}

func (s *MessageService) Get(ctx context.Context, id string) (*models.Message, error) {
	return s.repo.Fetch(ctx, id)
}

// Update fetches the stored record as the snapshot, uploads only freshly
// supplied files, and sends a merge patch containing exactly the fields
// whose submitted value differs. An empty patch issues no store call.
func (s *MessageService) Update(ctx context.Context, id string, in ports.UpdateInput) (*models.Message, bool, error) {
	if in.Template != nil && !models.ValidTemplate(*in.Template) {
		return nil, false, &ports.ValidationError{Field: "template", Reason: "unknown template"}
	}

	cur, err := s.repo.Fetch(ctx, id)
	if err != nil {
		return nil, false, err
	}

	patch := models.Partial{}

	if in.Name != nil && *in.Name != cur.Name {
		patch["name"] = *in.Name
	}
	if in.Template != nil && *in.Template != cur.Template {
		patch["template"] = *in.Template
	}
	if in.Enabled != nil && *in.Enabled != cur.Enabled {
		patch["enabled"] = *in.Enabled
	}
	if in.Mute != nil && *in.Mute != cur.Mute {
		patch["mute"] = *in.Mute
	}

	// Files are uploaded only when the operator chose a new one; an existing
	// URL is left untouched rather than re-sent.
	if in.Media != nil {
		url, err := s.uploader.Upload(ctx, in.Media.Data, id, ports.SlotMedia, in.Media.Name, in.Media.ContentType)
		if err != nil {
			return nil, false, err
		}
		patch["mediaUrl"] = url
	}
	if in.Audio != nil {
		url, err := s.uploader.Upload(ctx, in.Audio.Data, id, ports.SlotAudio, in.Audio.Name, in.Audio.ContentType)
		if err != nil {
			return nil, false, err
		}
		patch["audioUrl"] = url
	}

	// A newly uploaded subtitle file wins over edited text.
	var srt *string
	if in.Srt != nil {
		text := string(in.Srt.Data)
		srt = &text
	} else if in.SrtText != nil {
		srt = in.SrtText
	}
	if srt != nil {
		text := StripWatermark(*srt)
		if text != cur.SrtContent {
			patch["srtContent"] = text
		}
	}

	if len(patch) == 0 {
		return cur, false, nil
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, false, err
	}

	// Merge into the loaded snapshot instead of re-fetching.
	models.ApplyPartial(cur, patch)

	s.events <- ports.MessageEvent{ID: id, Action: "updated"}
	return cur, true, nil
}
