package interceptor

import (
	"context"
	"runtime/debug"
	"time"

	"ombrello-backend/internal/logger"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDKey = "x-request-id"

type LoggingInterceptor struct{}

func NewLoggingInterceptor() *LoggingInterceptor {
	return &LoggingInterceptor{}
}

// Unary returns a server interceptor that tags the call with a request id,
// recovers panics and logs the outcome of each unary RPC.
func (i *LoggingInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		ctx = logger.WithRequestID(ctx, requestID(ctx))
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "Panic in gRPC handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
				err = status.Error(codes.Internal, "internal error")
			}
			logCall(ctx, info.FullMethod, start, err)
		}()

		return handler(ctx, req)
	}
}

// Stream logs streaming RPCs such as health Watch when they end.
func (i *LoggingInterceptor) Stream() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := logger.WithRequestID(ss.Context(), requestID(ss.Context()))
		start := time.Now()
		err := handler(srv, ss)
		logCall(ctx, info.FullMethod, start, err)
		return err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDKey); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

func logCall(ctx context.Context, method string, start time.Time, err error) {
	code := status.Code(err)
	attrs := []any{"method", method, "code", code.String(), "duration_ms", time.Since(start).Milliseconds()}
	if err != nil && code != codes.NotFound && code != codes.Canceled {
		logger.WarnContext(ctx, "gRPC call failed", append(attrs, "error", err)...)
		return
	}
	logger.DebugContext(ctx, "gRPC call", attrs...)
}
