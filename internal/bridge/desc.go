package bridge

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name of the bridge.
const ServiceName = "dashlens.bridge.v1.Bridge"

const (
	methodHashPassword    = "HashPassword"
	methodVerifyPassword  = "VerifyPassword"
	methodSetSession      = "SetSession"
	methodClearSession    = "ClearSession"
	methodGetCurrentUser  = "GetCurrentUser"
	methodCheckAuthStatus = "CheckAuthStatus"
	methodExecute         = "Execute"
	methodSelect          = "Select"
)

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// BridgeServer is the server API of the bridge service.
type BridgeServer interface {
	HashPassword(context.Context, *HashPasswordRequest) (*HashPasswordResponse, error)
	VerifyPassword(context.Context, *VerifyPasswordRequest) (*VerifyPasswordResponse, error)
	SetSession(context.Context, *SetSessionRequest) (*emptypb.Empty, error)
	ClearSession(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	GetCurrentUser(context.Context, *emptypb.Empty) (*GetCurrentUserResponse, error)
	CheckAuthStatus(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	Execute(context.Context, *ExecuteRequest) (*ExecuteResponse, error)
	Select(context.Context, *SelectRequest) (*SelectResponse, error)
}

// unary adapts a typed BridgeServer method to a grpc.MethodHandler.
func unary[Req, Resp any](name string, call func(BridgeServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BridgeServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BridgeServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BridgeServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodHashPassword, BridgeServer.HashPassword),
		unary(methodVerifyPassword, BridgeServer.VerifyPassword),
		unary(methodSetSession, BridgeServer.SetSession),
		unary(methodClearSession, BridgeServer.ClearSession),
		unary(methodGetCurrentUser, BridgeServer.GetCurrentUser),
		unary(methodCheckAuthStatus, BridgeServer.CheckAuthStatus),
		unary(methodExecute, BridgeServer.Execute),
		unary(methodSelect, BridgeServer.Select),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterBridgeServer registers srv on s.
func RegisterBridgeServer(s grpc.ServiceRegistrar, srv BridgeServer) {
	s.RegisterService(&serviceDesc, srv)
}
