package ports

import (
	"context"

	"github.com/mohammaddehghani/fuelrep/pkg/analytics"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// Transport is the outbound side of the chat collaborator: the three
// primitive sends the core relies on. Wire format is the adapter's concern.
type Transport interface {
	// SendText delivers a text message, optionally with a 2-D keyboard of
	// button labels.
	SendText(ctx context.Context, sessionID, text string, keyboard [][]string) error

	// SendDocument delivers a named binary document with a caption.
	SendDocument(ctx context.Context, sessionID string, doc domain.Attachment) error

	// SendPhoto delivers a named image with a caption.
	SendPhoto(ctx context.Context, sessionID string, photo domain.Attachment) error
}

// FileFetcher retrieves the byte content of an attached document by its
// transport-level ID.
type FileFetcher interface {
	FetchDocument(ctx context.Context, fileID string) ([]byte, error)
}

// ChartRenderer turns a computed trend into an image. The engine supplies
// data only; colors, marker sizes and legend are the renderer's concern.
type ChartRenderer interface {
	Render(trend *analytics.Trend) ([]byte, error)
}

// UpdateHandler consumes one inbound update. Implemented by the dispatcher;
// consumed by inbound transport adapters (webhook, pollers).
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, up domain.Update) error
}
