package payment

import (
	"context"
	"log/slog"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
)

// LogNotifier implements ports.Notifier by writing the notification to the
// structured log. It stands in for an SMS or push channel; delivery is best
// effort and never fails the calling flow.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs agent notifications.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyAgent records the notification for the agent.
func (n *LogNotifier) NotifyAgent(ctx context.Context, agentID kernel.UUID, message string) {
	n.logger.InfoContext(ctx, "agent notification",
		"agent_id", agentID.String(),
		"message", message,
	)
}
