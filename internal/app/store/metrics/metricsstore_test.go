package metricsstore_test

import (
	"context"
	"errors"
	"testing"

	metricsstore "github.com/dalemusser/arenadash/internal/app/store/metrics"
	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"github.com/dalemusser/arenadash/internal/testutil"
	"go.uber.org/zap"
)

// stubGateway records call order and the busy flag observed during each call.
type stubGateway struct {
	client   *metricsstore.Client
	admin    bool
	adminErr error
	nums     platformstore.NumbersResponse
	numsErr  error

	calls    []string
	busySeen []bool
}

func (s *stubGateway) CheckAdmin(context.Context) (bool, error) {
	s.calls = append(s.calls, "check")
	s.busySeen = append(s.busySeen, s.client.Busy())
	return s.admin, s.adminErr
}

func (s *stubGateway) FetchNumbers(context.Context) (platformstore.NumbersResponse, error) {
	s.calls = append(s.calls, "numbers")
	s.busySeen = append(s.busySeen, s.client.Busy())
	return s.nums, s.numsErr
}

func (s *stubGateway) FetchUserDetail(context.Context, string) (*models.UserSummary, error) {
	s.calls = append(s.calls, "detail")
	return nil, nil
}

func newStub(admin bool) *stubGateway {
	s := &stubGateway{
		admin: admin,
		nums: platformstore.NumbersResponse{
			MetricsSnapshot: testutil.SampleMetrics(),
			UsersArray:      testutil.SampleUsers(),
		},
	}
	s.client = metricsstore.New(s, zap.NewNop())
	return s
}

func TestLoad_Authorized(t *testing.T) {
	s := newStub(true)

	res, err := s.client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.Authorized {
		t.Fatal("expected authorized")
	}
	if res.Metrics.TotalUsers != 42 || res.Metrics.TotalGroups != 5 || res.Metrics.TotalContests != 3 {
		t.Errorf("metrics: got %+v", res.Metrics)
	}
	if len(res.Users) != 3 || res.Users[0].ID != "u1" || res.Users[2].ID != "u3" {
		t.Errorf("users order not preserved: %+v", res.Users)
	}
	if got := s.calls; len(got) != 2 || got[0] != "check" || got[1] != "numbers" {
		t.Errorf("call order: got %v", got)
	}
}

func TestLoad_NotAuthorizedSkipsNumbers(t *testing.T) {
	s := newStub(false)

	res, err := s.client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Authorized {
		t.Error("expected not authorized")
	}
	for _, c := range s.calls {
		if c == "numbers" {
			t.Error("numbers must not be fetched for a non-admin session")
		}
	}
}

func TestLoad_BusyCoversBothSteps(t *testing.T) {
	s := newStub(true)

	if s.client.Busy() {
		t.Fatal("busy before load")
	}
	if _, err := s.client.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, b := range s.busySeen {
		if !b {
			t.Errorf("call %d (%s) ran while not busy", i, s.calls[i])
		}
	}
	if s.client.Busy() {
		t.Error("busy after successful load")
	}
}

func TestLoad_ErrorsClearBusy(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		setup func(s *stubGateway)
	}{
		{"check fails", func(s *stubGateway) { s.adminErr = boom }},
		{"numbers fail", func(s *stubGateway) { s.numsErr = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStub(true)
			tt.setup(s)

			res, err := s.client.Load(context.Background())
			if !errors.Is(err, boom) {
				t.Errorf("expected wrapped boom, got %v", err)
			}
			if res.Authorized || res.Users != nil {
				t.Errorf("expected zero result, got %+v", res)
			}
			if s.client.Busy() {
				t.Error("busy flag left set after failure")
			}
		})
	}
}

func TestLoad_AgainstPlatform(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	pc, err := platformstore.New(platformstore.Config{BaseURL: fp.URL(), SessionCookie: testutil.SessionCookie}, zap.NewNop())
	if err != nil {
		t.Fatalf("platformstore.New: %v", err)
	}
	c := metricsstore.New(pc.Session("s"), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fp.SetAdmin(false)
	if res, err := c.Load(ctx); err != nil || res.Authorized {
		t.Fatalf("non-admin load: res=%+v err=%v", res, err)
	}
	if n := fp.Calls(platformstore.PathNumbers); n != 0 {
		t.Errorf("getNumbers called %d times for non-admin", n)
	}

	fp.SetAdmin(true)
	res, err := c.Load(ctx)
	if err != nil || !res.Authorized {
		t.Fatalf("admin load: res=%+v err=%v", res, err)
	}
	if n := fp.Calls(platformstore.PathNumbers); n != 1 {
		t.Errorf("getNumbers calls: got %d, want 1", n)
	}
}

func TestNew_NilGatewayIsUnavailable(t *testing.T) {
	c := metricsstore.New(nil, zap.NewNop())
	if _, err := c.Load(context.Background()); !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
