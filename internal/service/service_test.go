package service

import (
	"context"
	"net"
	"testing"

	"github.com/francoispqt/gojay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/observe-l/eggdrop/internal/metrics"
	"github.com/observe-l/eggdrop/locate"
)

func startServer(t *testing.T, srv LocatorServer, opts ...grpc.ServerOption) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	Register(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func TestDeterministicRPC(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := startServer(t, NewServer(nil, nil, 1), grpc.UnaryInterceptor(UnaryLogger(zap.New(core))))
	ctx := context.Background()

	r, err := c.Deterministic(ctx, &LocateRequest{TotalSize: 100, CriticalValue: 63})
	require.NoError(t, err)
	require.Equal(t, 7, r.Attempts)
	require.Len(t, r.Probes, 7)
	require.Equal(t, 50, r.Probes[0].Position)
	require.Equal(t, 64, r.Probes[6].Position)

	_, err = c.Deterministic(ctx, &LocateRequest{TotalSize: 0})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	require.Equal(t, 2, logs.FilterMessage("rpc").Len())
}

func TestStochasticRPC(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	c := startServer(t, NewServer(zap.NewNop(), m, 100))
	ctx := context.Background()

	req := (&LocateRequest{TotalSize: 100, CriticalValue: 75}).WithAlpha(0.5).WithSeed(8)
	r, err := c.Stochastic(ctx, req)
	require.NoError(t, err)
	require.Equal(t, int64(8), r.Seed)
	require.Len(t, r.Probes, r.Drops)

	// the same seed locally gives the same outcome
	l := locate.NewStochasticLocator(8)
	want, err := l.Locate(100, 75, 0.5)
	require.NoError(t, err)
	got, err := r.Outcome()
	require.NoError(t, err)
	require.Equal(t, want, got)

	// unseeded calls count up from the server seed
	r1, err := c.Stochastic(ctx, &LocateRequest{TotalSize: 100, CriticalValue: 75})
	require.NoError(t, err)
	r2, err := c.Stochastic(ctx, &LocateRequest{TotalSize: 100, CriticalValue: 75})
	require.NoError(t, err)
	require.Equal(t, int64(101), r1.Seed)
	require.Equal(t, int64(102), r2.Seed)

	require.EqualValues(t, 3, stochasticSamples(t, reg))

	_, err = c.Stochastic(ctx, (&LocateRequest{TotalSize: 10, CriticalValue: 5}).WithAlpha(1.5))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	// alpha defaults to 0.5 but an explicit 0 is honoured
	r0, err := c.Stochastic(ctx, (&LocateRequest{TotalSize: 50, CriticalValue: 20}).WithAlpha(0))
	require.NoError(t, err)
	require.Equal(t, "exactly-found", r0.Certainty)
	require.Equal(t, 20, r0.Low)
	require.Equal(t, 20, r0.High)
}

func TestRequestWire(t *testing.T) {
	b, err := gojay.MarshalJSONObject(&LocateRequest{TotalSize: 10, CriticalValue: 3})
	require.NoError(t, err)
	require.Equal(t, `{"total_size":10,"critical_value":3}`, string(b))

	var r LocateRequest
	require.NoError(t, gojay.UnmarshalJSONObject([]byte(`{"total_size":10,"critical_value":3,"alpha":0,"seed":5,"max_attempts":9}`), &r))
	require.Equal(t, LocateRequest{TotalSize: 10, CriticalValue: 3, HasAlpha: true, Seed: 5, HasSeed: true, MaxAttempts: 9}, r)
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	_, err := codec{}.Marshal(struct{}{})
	require.Error(t, err)
	require.Error(t, codec{}.Unmarshal([]byte(`{}`), &struct{}{}))
	require.Equal(t, CodecName, codec{}.Name())
}

func stochasticSamples(t *testing.T, reg *prometheus.Registry) uint64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "eggdrop_attempts" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "variant" && lp.GetValue() == string(locate.VariantStochastic) {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}
