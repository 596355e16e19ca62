package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/vlogger/pkg/domain"
)

// LoggingHooks logs stage transitions at debug and run outcomes at info or error.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start", "location", e.Location)
		},
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_enter", "stage", e.Stage)
		},
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "stage_leave", "stage", e.Stage, "duration", e.Duration, "error", e.Err)
				return
			}
			logger.DebugContext(ctx, "stage_leave", "stage", e.Stage, "duration", e.Duration)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "run_end", "location", e.Location, "duration", e.Duration, "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "run_end", "location", e.Location, "duration", e.Duration, "score", e.Score)
		},
	}
}

// Combine fans every event out to each set of hooks, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnRunStart = chainRun(out.OnRunStart, h.OnRunStart)
		out.OnStageEnter = chainStage(out.OnStageEnter, h.OnStageEnter)
		out.OnStageLeave = chainStage(out.OnStageLeave, h.OnStageLeave)
		out.OnRunEnd = chainRun(out.OnRunEnd, h.OnRunEnd)
	}
	return out
}

func chainRun(a, b func(context.Context, *domain.RunEvent)) func(context.Context, *domain.RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStage(a, b func(context.Context, *domain.StageEvent)) func(context.Context, *domain.StageEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.StageEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
