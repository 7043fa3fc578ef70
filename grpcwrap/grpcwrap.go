// Package grpcwrap runs handler middlewares inside gRPC servers and clients.
package grpcwrap

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/meta"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// MetadataRequestID is the incoming metadata key holding the caller's request id.
const MetadataRequestID = "x-request-id"

// UnaryServerInterceptor applies mw to every unary call of a server. The full method
// name becomes the invocation's function name and errors leave as gRPC statuses that
// still carry the errx code, type and fields.
//
// Use handler.Compose to build mw from several wrappers, all instantiated with any:
//
//	grpc.NewServer(grpc.ChainUnaryInterceptor(
//		grpcwrap.UnaryServerInterceptor("greeter", handler.Compose(
//			wrapper.NewPanicRecovery[any, any](log, "grpc"),
//			wrapper.NewLogger[any, any](log, "grpc"),
//		)),
//	))
func UnaryServerInterceptor(serviceName string, mw handler.WrapFunc[any, any]) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		next grpc.UnaryHandler,
	) (any, error) {
		ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
			meta.FunctionName: info.FullMethod,
			meta.RequestID:    firstIncoming(ctx, MetadataRequestID),
		})

		resp, err := mw(handler.HandlerFunc[any, any](next)).Handle(ctx, req)
		if err != nil {
			return resp, errx.ToGRPCError(err, errx.WithTracePrefix(serviceName))
		}

		return resp, nil
	}
}

// UnaryClientInterceptor turns gRPC statuses produced by UnaryServerInterceptor back
// into errx errors. Other errors are returned unchanged.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}

		ok, e := errx.FromGRPCError(err)
		if !ok {
			return err
		}

		return e
	}
}

func firstIncoming(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
