package dategrpc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muhlemmer/cleanutils/pkg/date"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatus(t *testing.T) {
	_, parseErr := date.Parse("foo", date.ISOPattern)
	_, rangeErr := date.AddDays(date.MaxDate, 1)
	_, argErr := date.Age(date.CalendarDate{})
	_, formatErr := date.Format(date.MaxDate, "HH")
	otherErr := errors.New("other")
	statusErr := status.Error(codes.Internal, "internal")

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantSame bool
	}{
		{"nil", nil, codes.OK, true},
		{"parse", parseErr, codes.InvalidArgument, false},
		{"format", formatErr, codes.InvalidArgument, false},
		{"argument", argErr, codes.InvalidArgument, false},
		{"range", rangeErr, codes.OutOfRange, false},
		{"other", otherErr, codes.Unknown, true},
		{"status", statusErr, codes.Internal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Status(tt.err)
			if got := status.Code(err); got != tt.wantCode {
				t.Errorf("Status() code = %v, want %v", got, tt.wantCode)
			}
			if tt.wantSame && err != tt.err {
				t.Errorf("Status() = %v, want %v", err, tt.err)
			}
			if !tt.wantSame && status.Convert(err).Message() != tt.err.Error() {
				t.Errorf("Status() message = %s, want %s", status.Convert(err).Message(), tt.err)
			}
		})
	}
}

func TestUnaryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	interceptor := UnaryInterceptor(zerolog.New(&buf))
	info := &grpc.UnaryServerInfo{FullMethod: "/date.v1.DateService/AddDays"}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		if zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled {
			t.Error("logger missing from context")
		}
		return date.AddDays(req.(date.CalendarDate), 1)
	}

	resp, err := interceptor(context.Background(), date.Of(2024, 2, 28), info, handler)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.Of(2024, 2, 29); resp != want {
		t.Errorf("interceptor() = %v, want %v", resp, want)
	}

	_, err = interceptor(context.Background(), date.MaxDate, info, handler)
	if code := status.Code(err); code != codes.OutOfRange {
		t.Errorf("interceptor() code = %v, want %v", code, codes.OutOfRange)
	}
	if !strings.Contains(buf.String(), info.FullMethod) {
		t.Errorf("log output %q does not contain method", buf.String())
	}
}

type mockServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (m *mockServerStream) Context() context.Context {
	return m.ctx
}

func Test_serverStreamCtx_Context(t *testing.T) {
	s := serverStreamCtx{ctx: context.Background()}
	if err := s.Context().Err(); err != nil {
		t.Fatal(err)
	}
}

func TestStreamInterceptor(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	interceptor := StreamInterceptor(logger)
	info := &grpc.StreamServerInfo{FullMethod: "/date.v1.DateService/Parse"}
	mock := &mockServerStream{ctx: context.Background()}

	handler := func(srv interface{}, stream grpc.ServerStream) error {
		if zerolog.Ctx(stream.Context()).GetLevel() == zerolog.Disabled {
			t.Error("logger missing from context")
		}
		_, err := date.Parse(srv.(string), date.ISOPattern)
		return err
	}

	if err := interceptor("2025-10-28", mock, info, handler); err != nil {
		t.Fatal(err)
	}
	err := interceptor("28/10/2025", mock, info, handler)
	if code := status.Code(err); code != codes.InvalidArgument {
		t.Errorf("interceptor() code = %v, want %v", code, codes.InvalidArgument)
	}
}
