package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// HealthCheckMethod is reachable without a token so orchestrators can probe the server
const HealthCheckMethod = "/grpc.health.v1.Health/Check"

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// If the token is missing or invalid, it returns status.Unauthenticated.
// If valid, or the method is listed in publicMethods, it calls the handler with the original context.
func AuthInterceptor(validToken string, publicMethods ...string) grpc.UnaryServerInterceptor {
	public := make(map[string]bool, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if public[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if authHeaders[0] != validToken {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor returns a gRPC unary server interceptor that logs every call
// with its method, duration and status code. Internal errors log at error level.
func LoggingInterceptor(logger logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		entry := logger.WithFields(logrus.Fields{
			"method":   info.FullMethod,
			"duration": time.Since(start),
			"code":     code.String(),
		})
		switch code {
		case codes.OK:
			entry.Debug("rpc completed")
		case codes.Internal, codes.Unknown:
			entry.WithError(err).Error("rpc failed")
		default:
			entry.WithError(err).Info("rpc rejected")
		}

		return resp, err
	}
}
