package ports

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
)

// Notifier delivers out-of-band messages to agents, e.g. when a completed
// top-up could not win the order and the collected amount was credited back.
// Implementations must not fail the calling flow; delivery is best effort.
type Notifier interface {
	NotifyAgent(ctx context.Context, agentID kernel.UUID, message string)
}
