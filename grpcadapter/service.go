// Package grpcadapter exposes package targeting over a unary gRPC
// method without generated protobuf stubs: the service is registered
// with a hand-written grpc.ServiceDesc, and wire encoding goes through
// a JSON codec (codec.go) registered under grpc's default "proto" name
// so ordinary grpc-go clients and servers work unmodified.
package grpcadapter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/feature-mesh/targeting/healthsrv"
	"github.com/feature-mesh/targeting/obslog"
	"github.com/feature-mesh/targeting/request"
	"github.com/feature-mesh/targeting/targeting"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// TargetRequest is the wire shape of a unary Target call.
type TargetRequest struct {
	Attributes map[string]string `json:"attributes"`
}

// TargetResponse is the wire shape of a unary Target reply.
type TargetResponse struct {
	HeaderName string `json:"header_name"`
	Value      string `json:"value"`
}

// Server implements the targeting Target RPC against a hot-swappable
// Config, guarded by a token-bucket rate limiter.
type Server struct {
	logger  *zap.Logger
	metrics *healthsrv.Metrics
	limiter *rate.Limiter

	mu  sync.RWMutex
	cfg *targeting.Config
}

// NewServer builds a Server with no active Config. ratePerSecond and
// burst configure the limiter guarding Target; a ratePerSecond of
// rate.Inf disables limiting.
func NewServer(logger *zap.Logger, metrics *healthsrv.Metrics, ratePerSecond float64, burst int) *Server {
	return &Server{
		logger:  logger,
		metrics: metrics,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// SetConfig atomically swaps the active Config, used on reload.
func (s *Server) SetConfig(cfg *targeting.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.metrics.ConfigReloads.Inc()
	s.metrics.ConfigReloadAt.Set(float64(time.Now().Unix()))
}

// Ready reports whether a Config has been loaded, for /readyz.
func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg != nil
}

// Target implements the Target RPC.
func (s *Server) Target(ctx context.Context, req *TargetRequest) (*TargetResponse, error) {
	if !s.limiter.Allow() {
		return nil, status.Error(codes.ResourceExhausted, "grpcadapter: rate limit exceeded")
	}

	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	if cfg == nil {
		return nil, status.Error(codes.FailedPrecondition, "grpcadapter: no config loaded")
	}

	start := time.Now()
	value := targeting.Target(request.New(req.Attributes), cfg)
	s.metrics.ObserveTarget(value, time.Since(start))

	s.logger.Debug("target evaluated", zap.String("summary", obslog.Flatten(req)), zap.String("value", value))
	return &TargetResponse{HeaderName: cfg.HeaderName, Value: value}, nil
}

func targetHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TargetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).Target(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/targeting.Targeting/Target"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Server).Target(ctx, req.(*TargetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the hand-written replacement for a .proto-generated
// service descriptor, registered with grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "targeting.Targeting",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Target", Handler: targetHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "targeting.proto",
}

// Register attaches the Targeting service to server.
func Register(server *grpc.Server, impl *Server) {
	server.RegisterService(&ServiceDesc, impl)
}
