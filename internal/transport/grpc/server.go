package grpcserver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/export"
	"github.com/milad/energymonitor/internal/rpc/energyv1"
	"github.com/milad/energymonitor/internal/service"
	"github.com/milad/energymonitor/internal/tips"
)

type Server struct {
	energyv1.UnimplementedEnergyServiceServer
	svc *service.EnergyService
	log *zap.Logger
}

func New(svc *service.EnergyService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

func (s *Server) ListReadings(ctx context.Context, req *energyv1.ListReadingsRequest) (*energyv1.ListReadingsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	start, err := parseOptionalTime(req.Start)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid start: %v", err)
	}
	end, err := parseOptionalTime(req.End)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid end: %v", err)
	}

	res, err := s.svc.ListReadingsPage(ctx, domain.MeterType(req.MeterType), start, end, int(req.PageSize), req.PageToken)
	if err != nil {
		return nil, s.toStatus(ctx, "ListReadings", err)
	}

	out := make([]energyv1.Reading, 0, len(res.Readings))
	for _, r := range res.Readings {
		out = append(out, toWireReading(r))
	}
	return &energyv1.ListReadingsResponse{
		Readings:      out,
		NextPageToken: res.NextPageToken,
	}, nil
}

func (s *Server) AddReading(ctx context.Context, req *energyv1.AddReadingRequest) (*energyv1.AddReadingResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	r, err := fromWireReading(req.Reading)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	saved, err := s.svc.AddReading(ctx, r)
	if err != nil {
		return nil, s.toStatus(ctx, "AddReading", err)
	}
	return &energyv1.AddReadingResponse{Reading: toWireReading(saved)}, nil
}

func (s *Server) DeleteReading(ctx context.Context, req *energyv1.DeleteReadingRequest) (*energyv1.DeleteReadingResponse, error) {
	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.svc.DeleteReading(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, "DeleteReading", err)
	}
	return &energyv1.DeleteReadingResponse{}, nil
}

func (s *Server) GetConsumption(ctx context.Context, req *energyv1.GetConsumptionRequest) (*energyv1.GetConsumptionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	rep, err := s.svc.Consumption(ctx, domain.MeterType(req.MeterType), int(req.Year), time.Month(req.Month))
	if err != nil {
		return nil, s.toStatus(ctx, "GetConsumption", err)
	}
	series := make([]energyv1.CumulativeSample, 0, len(rep.Series))
	for _, c := range rep.Series {
		series = append(series, energyv1.CumulativeSample{
			Time:       formatTime(c.Timestamp),
			Delta:      c.Delta,
			Cumulative: c.Cumulative,
		})
	}
	return &energyv1.GetConsumptionResponse{
		MeterType: string(rep.MeterType),
		Year:      int32(rep.Year),
		Month:     int32(rep.Month),
		Total:     rep.Total,
		Monthly:   rep.Monthly,
		Series:    series,
	}, nil
}

func (s *Server) GetInsights(ctx context.Context, req *energyv1.GetInsightsRequest) (*energyv1.GetInsightsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	insights, err := s.svc.Insights(ctx, domain.MeterType(req.MeterType))
	if err != nil {
		return nil, s.toStatus(ctx, "GetInsights", err)
	}
	out := make([]energyv1.Insight, 0, len(insights))
	for _, in := range insights {
		out = append(out, energyv1.Insight{
			Title:      in.Title,
			Message:    in.Message,
			Severity:   string(in.Severity),
			Actionable: in.Actionable,
		})
	}
	return &energyv1.GetInsightsResponse{Insights: out}, nil
}

func (s *Server) EstimateBill(ctx context.Context, req *energyv1.EstimateBillRequest) (*energyv1.EstimateBillResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	est, err := s.svc.EstimateBill(ctx, req.Consumption, req.Region)
	if err != nil {
		return nil, s.toStatus(ctx, "EstimateBill", err)
	}
	return &energyv1.EstimateBillResponse{
		Region:        est.Region,
		AppliedRegion: est.AppliedRegion,
		RegionKnown:   est.RegionKnown,
		Consumption:   est.Consumption,
		Amount:        est.Amount,
		AverageRate:   est.AverageRate,
	}, nil
}

func (s *Server) ListRegions(context.Context, *energyv1.ListRegionsRequest) (*energyv1.ListRegionsResponse, error) {
	return &energyv1.ListRegionsResponse{
		Regions: s.svc.Regions(),
		Default: s.svc.DefaultRegion(),
	}, nil
}

func (s *Server) Recommend(_ context.Context, req *energyv1.RecommendRequest) (*energyv1.RecommendResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	rec := s.svc.Recommend(req.TemperatureC, int(req.HumidityPct), req.UVIndex)
	return &energyv1.RecommendResponse{
		Mode:              string(rec.Mode),
		TargetTemperature: int32(rec.TargetTemperature),
		Reason:            rec.Reason,
		EstimatedSavings:  rec.EstimatedSavings,
	}, nil
}

func (s *Server) ExportCSV(ctx context.Context, req *energyv1.ExportCSVRequest) (*energyv1.ExportCSVResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	content, err := s.svc.ExportCSV(ctx, domain.MeterType(req.MeterType), export.Kind(req.Kind))
	if err != nil {
		return nil, s.toStatus(ctx, "ExportCSV", err)
	}
	return &energyv1.ExportCSVResponse{Content: content}, nil
}

func (s *Server) ListTips(ctx context.Context, req *energyv1.ListTipsRequest) (*energyv1.ListTipsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	found, lang, err := s.svc.Tips(tips.Category(req.Category), req.Query, req.Language)
	if err != nil {
		return nil, s.toStatus(ctx, "ListTips", err)
	}
	out := make([]energyv1.Tip, 0, len(found))
	for _, t := range found {
		out = append(out, energyv1.Tip{
			ID:               t.ID,
			Title:            t.Title.In(lang),
			Description:      t.Description.In(lang),
			Category:         string(t.Category),
			EstimatedSavings: t.EstimatedSavings,
			Difficulty:       string(t.Difficulty),
			Icon:             t.Icon,
		})
	}
	return &energyv1.ListTipsResponse{Language: string(lang), Tips: out}, nil
}

func (s *Server) DetectReading(ctx context.Context, req *energyv1.DetectReadingRequest) (*energyv1.DetectReadingResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	v, err := s.svc.DetectReading(req.Lines)
	if err != nil {
		return nil, s.toStatus(ctx, "DetectReading", err)
	}
	return &energyv1.DetectReadingResponse{Value: v}, nil
}
