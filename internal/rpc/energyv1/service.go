package energyv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "energymonitor.v1.EnergyService"

// FullMethod returns the gRPC path of a method of the service.
func FullMethod(method string) string { return "/" + ServiceName + "/" + method }

type EnergyServiceServer interface {
	ListReadings(context.Context, *ListReadingsRequest) (*ListReadingsResponse, error)
	AddReading(context.Context, *AddReadingRequest) (*AddReadingResponse, error)
	DeleteReading(context.Context, *DeleteReadingRequest) (*DeleteReadingResponse, error)
	GetConsumption(context.Context, *GetConsumptionRequest) (*GetConsumptionResponse, error)
	GetInsights(context.Context, *GetInsightsRequest) (*GetInsightsResponse, error)
	EstimateBill(context.Context, *EstimateBillRequest) (*EstimateBillResponse, error)
	ListRegions(context.Context, *ListRegionsRequest) (*ListRegionsResponse, error)
	Recommend(context.Context, *RecommendRequest) (*RecommendResponse, error)
	ExportCSV(context.Context, *ExportCSVRequest) (*ExportCSVResponse, error)
	ListTips(context.Context, *ListTipsRequest) (*ListTipsResponse, error)
	DetectReading(context.Context, *DetectReadingRequest) (*DetectReadingResponse, error)
}

// UnimplementedEnergyServiceServer answers every method with Unimplemented.
// Embed it to stay compatible with methods added later.
type UnimplementedEnergyServiceServer struct{}

func (UnimplementedEnergyServiceServer) ListReadings(context.Context, *ListReadingsRequest) (*ListReadingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListReadings not implemented")
}
func (UnimplementedEnergyServiceServer) AddReading(context.Context, *AddReadingRequest) (*AddReadingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddReading not implemented")
}
func (UnimplementedEnergyServiceServer) DeleteReading(context.Context, *DeleteReadingRequest) (*DeleteReadingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteReading not implemented")
}
func (UnimplementedEnergyServiceServer) GetConsumption(context.Context, *GetConsumptionRequest) (*GetConsumptionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetConsumption not implemented")
}
func (UnimplementedEnergyServiceServer) GetInsights(context.Context, *GetInsightsRequest) (*GetInsightsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetInsights not implemented")
}
func (UnimplementedEnergyServiceServer) EstimateBill(context.Context, *EstimateBillRequest) (*EstimateBillResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EstimateBill not implemented")
}
func (UnimplementedEnergyServiceServer) ListRegions(context.Context, *ListRegionsRequest) (*ListRegionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRegions not implemented")
}
func (UnimplementedEnergyServiceServer) Recommend(context.Context, *RecommendRequest) (*RecommendResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Recommend not implemented")
}
func (UnimplementedEnergyServiceServer) ExportCSV(context.Context, *ExportCSVRequest) (*ExportCSVResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportCSV not implemented")
}
func (UnimplementedEnergyServiceServer) ListTips(context.Context, *ListTipsRequest) (*ListTipsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTips not implemented")
}
func (UnimplementedEnergyServiceServer) DetectReading(context.Context, *DetectReadingRequest) (*DetectReadingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DetectReading not implemented")
}

func RegisterEnergyServiceServer(s grpc.ServiceRegistrar, srv EnergyServiceServer) {
	s.RegisterService(&EnergyService_ServiceDesc, srv)
}

var EnergyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EnergyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListReadings", EnergyServiceServer.ListReadings),
		unary("AddReading", EnergyServiceServer.AddReading),
		unary("DeleteReading", EnergyServiceServer.DeleteReading),
		unary("GetConsumption", EnergyServiceServer.GetConsumption),
		unary("GetInsights", EnergyServiceServer.GetInsights),
		unary("EstimateBill", EnergyServiceServer.EstimateBill),
		unary("ListRegions", EnergyServiceServer.ListRegions),
		unary("Recommend", EnergyServiceServer.Recommend),
		unary("ExportCSV", EnergyServiceServer.ExportCSV),
		unary("ListTips", EnergyServiceServer.ListTips),
		unary("DetectReading", EnergyServiceServer.DetectReading),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "energymonitor/v1/energy",
}

func unary[Req, Resp any](method string, call func(EnergyServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				r := new(Req)
				if err := Decode(req.(*structpb.Struct), r); err != nil {
					return nil, status.Error(codes.InvalidArgument, err.Error())
				}
				resp, err := call(srv.(EnergyServiceServer), ctx, r)
				if err != nil {
					return nil, err
				}
				out, err := Encode(resp)
				if err != nil {
					return nil, status.Error(codes.Internal, err.Error())
				}
				return out, nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type EnergyServiceClient interface {
	ListReadings(ctx context.Context, in *ListReadingsRequest, opts ...grpc.CallOption) (*ListReadingsResponse, error)
	AddReading(ctx context.Context, in *AddReadingRequest, opts ...grpc.CallOption) (*AddReadingResponse, error)
	DeleteReading(ctx context.Context, in *DeleteReadingRequest, opts ...grpc.CallOption) (*DeleteReadingResponse, error)
	GetConsumption(ctx context.Context, in *GetConsumptionRequest, opts ...grpc.CallOption) (*GetConsumptionResponse, error)
	GetInsights(ctx context.Context, in *GetInsightsRequest, opts ...grpc.CallOption) (*GetInsightsResponse, error)
	EstimateBill(ctx context.Context, in *EstimateBillRequest, opts ...grpc.CallOption) (*EstimateBillResponse, error)
	ListRegions(ctx context.Context, in *ListRegionsRequest, opts ...grpc.CallOption) (*ListRegionsResponse, error)
	Recommend(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*RecommendResponse, error)
	ExportCSV(ctx context.Context, in *ExportCSVRequest, opts ...grpc.CallOption) (*ExportCSVResponse, error)
	ListTips(ctx context.Context, in *ListTipsRequest, opts ...grpc.CallOption) (*ListTipsResponse, error)
	DetectReading(ctx context.Context, in *DetectReadingRequest, opts ...grpc.CallOption) (*DetectReadingResponse, error)
}

type energyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEnergyServiceClient(cc grpc.ClientConnInterface) EnergyServiceClient {
	return &energyServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	req, err := Encode(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	resp := new(Resp)
	if err := Decode(out, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *energyServiceClient) ListReadings(ctx context.Context, in *ListReadingsRequest, opts ...grpc.CallOption) (*ListReadingsResponse, error) {
	return invoke[ListReadingsRequest, ListReadingsResponse](ctx, c.cc, "ListReadings", in, opts...)
}

func (c *energyServiceClient) AddReading(ctx context.Context, in *AddReadingRequest, opts ...grpc.CallOption) (*AddReadingResponse, error) {
	return invoke[AddReadingRequest, AddReadingResponse](ctx, c.cc, "AddReading", in, opts...)
}

func (c *energyServiceClient) DeleteReading(ctx context.Context, in *DeleteReadingRequest, opts ...grpc.CallOption) (*DeleteReadingResponse, error) {
	return invoke[DeleteReadingRequest, DeleteReadingResponse](ctx, c.cc, "DeleteReading", in, opts...)
}

func (c *energyServiceClient) GetConsumption(ctx context.Context, in *GetConsumptionRequest, opts ...grpc.CallOption) (*GetConsumptionResponse, error) {
	return invoke[GetConsumptionRequest, GetConsumptionResponse](ctx, c.cc, "GetConsumption", in, opts...)
}

func (c *energyServiceClient) GetInsights(ctx context.Context, in *GetInsightsRequest, opts ...grpc.CallOption) (*GetInsightsResponse, error) {
	return invoke[GetInsightsRequest, GetInsightsResponse](ctx, c.cc, "GetInsights", in, opts...)
}

func (c *energyServiceClient) EstimateBill(ctx context.Context, in *EstimateBillRequest, opts ...grpc.CallOption) (*EstimateBillResponse, error) {
	return invoke[EstimateBillRequest, EstimateBillResponse](ctx, c.cc, "EstimateBill", in, opts...)
}

func (c *energyServiceClient) ListRegions(ctx context.Context, in *ListRegionsRequest, opts ...grpc.CallOption) (*ListRegionsResponse, error) {
	return invoke[ListRegionsRequest, ListRegionsResponse](ctx, c.cc, "ListRegions", in, opts...)
}

func (c *energyServiceClient) Recommend(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*RecommendResponse, error) {
	return invoke[RecommendRequest, RecommendResponse](ctx, c.cc, "Recommend", in, opts...)
}

func (c *energyServiceClient) ExportCSV(ctx context.Context, in *ExportCSVRequest, opts ...grpc.CallOption) (*ExportCSVResponse, error) {
	return invoke[ExportCSVRequest, ExportCSVResponse](ctx, c.cc, "ExportCSV", in, opts...)
}

func (c *energyServiceClient) ListTips(ctx context.Context, in *ListTipsRequest, opts ...grpc.CallOption) (*ListTipsResponse, error) {
	return invoke[ListTipsRequest, ListTipsResponse](ctx, c.cc, "ListTips", in, opts...)
}

func (c *energyServiceClient) DetectReading(ctx context.Context, in *DetectReadingRequest, opts ...grpc.CallOption) (*DetectReadingResponse, error) {
	return invoke[DetectReadingRequest, DetectReadingResponse](ctx, c.cc, "DetectReading", in, opts...)
}
