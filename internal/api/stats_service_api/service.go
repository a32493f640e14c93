package stats_service_api

import (
	"context"

	"google.golang.org/genproto/googleapis/api/httpbody"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "flightlog.v1.StatsService"

// StatsServiceServer is the server API for flightlog.v1.StatsService.
// Requests are Structs carrying user_id, selector and, for GetTimeGrouping, mode.
type StatsServiceServer interface {
	GetStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDeparturesByCountry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTimeGrouping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMapPaths(context.Context, *structpb.Struct) (*httpbody.HttpBody, error)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unaryHandler[Resp any](name string, call func(StatsServiceServer, context.Context, *structpb.Struct) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StatsServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(StatsServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var StatsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StatsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("GetStats", StatsServiceServer.GetStats),
		unaryHandler("GetDeparturesByCountry", StatsServiceServer.GetDeparturesByCountry),
		unaryHandler("GetTimeGrouping", StatsServiceServer.GetTimeGrouping),
		unaryHandler("GetMapPaths", StatsServiceServer.GetMapPaths),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flightlog/v1/stats.proto",
}

func RegisterStatsServiceServer(s grpc.ServiceRegistrar, srv StatsServiceServer) {
	s.RegisterService(&StatsService_ServiceDesc, srv)
}

// Client calls flightlog.v1.StatsService over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("GetStats"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDeparturesByCountry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("GetDeparturesByCountry"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTimeGrouping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("GetTimeGrouping"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMapPaths(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*httpbody.HttpBody, error) {
	out := new(httpbody.HttpBody)
	if err := c.cc.Invoke(ctx, fullMethod("GetMapPaths"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
