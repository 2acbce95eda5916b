// Package dategrpc maps date errors onto gRPC status errors,
// for servers exposing date operations over gRPC.
package dategrpc

import (
	"context"
	"errors"

	"github.com/muhlemmer/cleanutils/pkg/date"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code returns the gRPC code for err.
// Errors not originating from the date package result in codes.Unknown.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, date.ErrRange):
		return codes.OutOfRange
	case errors.Is(err, date.ErrParse),
		errors.Is(err, date.ErrFormat),
		errors.Is(err, date.ErrInvalidArgument):
		return codes.InvalidArgument
	}
	return codes.Unknown
}

// Status converts a date error into a gRPC status error.
// Other errors, including existing status errors, are returned as-is.
func Status(err error) error {
	if err == nil {
		return nil
	}
	code := Code(err)
	if code == codes.Unknown {
		return err
	}
	return status.Error(code, err.Error())
}

// UnaryInterceptor puts logger in the context of each request and
// converts date errors returned by the handler into status errors.
func UnaryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx = logger.WithContext(ctx)

		resp, err := handler(ctx, req)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("method", info.FullMethod).Msg("date unary call")
			return nil, Status(err)
		}
		return resp, nil
	}
}

type serverStreamCtx struct {
	grpc.ServerStream
	ctx context.Context
}

func (ss *serverStreamCtx) Context() context.Context {
	return ss.ctx
}

// StreamInterceptor is the streaming counterpart of UnaryInterceptor.
func StreamInterceptor(logger zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := logger.WithContext(ss.Context())

		err := handler(srv, &serverStreamCtx{
			ServerStream: ss,
			ctx:          ctx,
		})
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("method", info.FullMethod).Msg("date stream call")
		}
		return Status(err)
	}
}
