package command

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/observability"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// RegisterMiddlewares attaches the standard chain: error results outermost,
// then command logging, then panic recovery.
func RegisterMiddlewares(r *Router, logger *zap.Logger, metrics *observability.Metrics) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.Use(
		errorResultMiddleware(logger, metrics),
		commandLoggerMiddleware(logger, metrics),
		recoverMiddleware(logger),
	)
}

// errorResultMiddleware turns handler errors into error results addressed
// to the command's user and timestamp.
func errorResultMiddleware(logger *zap.Logger, metrics *observability.Metrics) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
			result, err := next(ctx, cmd)
			if err == nil || errors.Is(err, ErrUnknownCommand) {
				return result, err
			}
			domainErr := apperrors.ToDomainError(err)
			metrics.RecordError(string(cmd.Kind), domainErr.Code)
			if domainErr.Code == apperrors.CodeInternal {
				logger.Error("command failed",
					zap.String("command", string(cmd.Kind)),
					zap.String("username", cmd.Username),
					zap.Error(domainErr))
			}
			return dto.ErrorResult(cmd, domainErr.Message), nil
		}
	}
}

// commandLoggerMiddleware records one metrics sample and one debug entry per
// command.
func commandLoggerMiddleware(logger *zap.Logger, metrics *observability.Metrics) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
			start := time.Now()
			result, err := next(ctx, cmd)
			duration := time.Since(start)

			outcome := observability.OutcomeResult
			switch {
			case errors.Is(err, ErrUnknownCommand):
				outcome = observability.OutcomeIgnored
			case err != nil:
				outcome = observability.OutcomeError
			case result == nil:
				outcome = observability.OutcomeSilent
			}
			metrics.RecordCommand(string(cmd.Kind), outcome, duration)

			fields := []zap.Field{
				zap.String("command", string(cmd.Kind)),
				zap.String("username", cmd.Username),
				zap.String("timestamp", cmd.Timestamp),
				zap.String("outcome", string(outcome)),
				zap.Duration("duration", duration),
			}
			if outcome == observability.OutcomeError {
				fields = append(fields, zap.String("code", apperrors.CodeOf(err)))
			}
			logger.Debug("command", fields...)
			return result, err
		}
	}
}

// recoverMiddleware converts a handler panic into an internal error so the
// replay continues with the next command.
func recoverMiddleware(logger *zap.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd dto.Command) (result *dto.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						zap.String("command", string(cmd.Kind)),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))
					result, err = nil, apperrors.NewInternalError(nil)
				}
			}()
			return next(ctx, cmd)
		}
	}
}
