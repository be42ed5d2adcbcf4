package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ForecastServiceName is the fully qualified gRPC service name
const ForecastServiceName = "wealthflow.forecast.v1.ForecastService"

const (
	projectCashFlowMethod = "/" + ForecastServiceName + "/ProjectCashFlow"
	simulateGrowthMethod  = "/" + ForecastServiceName + "/SimulateGrowth"
)

// ForecastServiceServer is the server API for the ForecastService
// Messages are google.protobuf.Struct documents; decimals travel as strings
type ForecastServiceServer interface {
	ProjectCashFlow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SimulateGrowth(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterForecastServiceServer registers the ForecastService implementation on a gRPC server
func RegisterForecastServiceServer(s grpc.ServiceRegistrar, srv ForecastServiceServer) {
	s.RegisterService(&ForecastServiceDesc, srv)
}

// ForecastServiceDesc describes the ForecastService for grpc.Server.RegisterService
var ForecastServiceDesc = grpc.ServiceDesc{
	ServiceName: ForecastServiceName,
	HandlerType: (*ForecastServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ProjectCashFlow", Handler: projectCashFlowHandler},
		{MethodName: "SimulateGrowth", Handler: simulateGrowthHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wealthflow/forecast/v1/forecast.proto",
}

func projectCashFlowHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).ProjectCashFlow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: projectCashFlowMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).ProjectCashFlow(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func simulateGrowthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).SimulateGrowth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: simulateGrowthMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).SimulateGrowth(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ForecastServiceClient is the client API for the ForecastService
type ForecastServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewForecastServiceClient creates a client over an established connection
func NewForecastServiceClient(cc grpc.ClientConnInterface) *ForecastServiceClient {
	return &ForecastServiceClient{cc: cc}
}

// ProjectCashFlow calls the ProjectCashFlow RPC
func (c *ForecastServiceClient) ProjectCashFlow(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, projectCashFlowMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SimulateGrowth calls the SimulateGrowth RPC
func (c *ForecastServiceClient) SimulateGrowth(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, simulateGrowthMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
