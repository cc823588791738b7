// Package service exposes the locators over gRPC. Messages travel as JSON
// through a gojay codec, so no generated protobuf code is needed.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/observe-l/eggdrop/internal/metrics"
	"github.com/observe-l/eggdrop/locate"
)

const (
	ServiceName         = "eggdrop.Locator"
	MethodDeterministic = "/eggdrop.Locator/Deterministic"
	MethodStochastic    = "/eggdrop.Locator/Stochastic"
)

// LocatorServer is the server API of the Locator service.
type LocatorServer interface {
	Deterministic(context.Context, *LocateRequest) (*DeterministicReply, error)
	Stochastic(context.Context, *LocateRequest) (*StochasticReply, error)
}

// Server implements LocatorServer. Stochastic requests without a seed draw
// from seed+n, where n counts such requests, so a server run is reproducible
// for a fixed request order.
type Server struct {
	log     *zap.Logger
	metrics *metrics.Collector
	seed    int64
	calls   atomic.Int64
}

// NewServer returns a Server. m may be nil.
func NewServer(log *zap.Logger, m *metrics.Collector, seed int64) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, metrics: m, seed: seed}
}

func (s *Server) observer(rec *locate.Recorder) locate.Observer {
	if s.metrics == nil {
		return rec
	}
	return locate.Observers{rec, s.metrics}
}

func (s *Server) Deterministic(_ context.Context, req *LocateRequest) (*DeterministicReply, error) {
	var rec locate.Recorder
	l := locate.DeterministicLocator{Observer: s.observer(&rec)}
	n, err := l.Locate(req.TotalSize, req.CriticalValue)
	if err != nil {
		return nil, toStatus(err)
	}
	if s.metrics != nil {
		s.metrics.ObserveAttempts(n)
	}
	return &DeterministicReply{Attempts: n, Probes: toRecords(rec.Probes)}, nil
}

func (s *Server) Stochastic(_ context.Context, req *LocateRequest) (*StochasticReply, error) {
	seed := req.Seed
	if !req.HasSeed {
		seed = s.seed + s.calls.Add(1)
	}
	alpha := locate.DefaultAlpha
	if req.HasAlpha {
		alpha = req.Alpha
	}
	var rec locate.Recorder
	l := locate.StochasticLocator{
		Source:      locate.NewSource(seed),
		MaxAttempts: req.MaxAttempts,
		Observer:    s.observer(&rec),
	}
	o, err := l.Locate(req.TotalSize, req.CriticalValue, alpha)
	if err != nil {
		return nil, toStatus(err)
	}
	if s.metrics != nil {
		s.metrics.ObserveOutcome(o)
	}
	s.log.Debug("stochastic search finished",
		zap.Int64("seed", seed),
		zap.Int("drops", o.Drops),
		zap.Stringer("certainty", o.Certainty),
	)
	return newStochasticReply(o, seed, rec.Probes), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, locate.ErrInvalidRange),
		errors.Is(err, locate.ErrCriticalValueOutOfBounds),
		errors.Is(err, locate.ErrInvalidProbability):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LocatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Deterministic", Handler: deterministicHandler},
		{MethodName: "Stochastic", Handler: stochasticHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eggdrop/locator",
}

// Register adds srv to a gRPC server.
func Register(r grpc.ServiceRegistrar, srv LocatorServer) {
	r.RegisterService(&serviceDesc, srv)
}

func deterministicHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LocateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LocatorServer).Deterministic(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeterministic}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LocatorServer).Deterministic(ctx, req.(*LocateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func stochasticHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LocateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LocatorServer).Stochastic(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodStochastic}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LocatorServer).Stochastic(ctx, req.(*LocateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// UnaryLogger logs every call with its duration and status code.
func UnaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		t0 := time.Now()
		resp, err := handler(ctx, req)
		log.Info("rpc",
			zap.String("method", info.FullMethod),
			zap.Duration("took", time.Since(t0)),
			zap.Stringer("code", status.Code(err)),
		)
		return resp, err
	}
}

// Client calls a remote Locator service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) Deterministic(ctx context.Context, in *LocateRequest, opts ...grpc.CallOption) (*DeterministicReply, error) {
	out := new(DeterministicReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodDeterministic, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Stochastic(ctx context.Context, in *LocateRequest, opts ...grpc.CallOption) (*StochasticReply, error) {
	out := new(StochasticReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodStochastic, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
