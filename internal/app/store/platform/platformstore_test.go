package platformstore_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"github.com/dalemusser/arenadash/internal/testutil"
	"go.uber.org/zap"
)

func newClient(t *testing.T, fp *testutil.FakePlatform) *platformstore.Client {
	t.Helper()
	c, err := platformstore.New(platformstore.Config{
		BaseURL:       fp.URL(),
		SessionCookie: testutil.SessionCookie,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	for _, raw := range []string{"", "/api", "ftp://example.com", "http://"} {
		if _, err := platformstore.New(platformstore.Config{BaseURL: raw}, zap.NewNop()); err == nil {
			t.Errorf("New(%q) expected error", raw)
		}
	}
}

func TestCheckAdmin_ForwardsSessionCookie(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	gw := newClient(t, fp).Session("tok-123")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ok, err := gw.CheckAdmin(ctx)
	if err != nil {
		t.Fatalf("CheckAdmin: %v", err)
	}
	if !ok {
		t.Error("expected admin")
	}
	cookies := fp.Cookies()
	if len(cookies) != 1 || cookies[0] != "tok-123" {
		t.Errorf("cookies forwarded: got %v", cookies)
	}
}

func TestCheckAdmin_NotAdmin(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	fp.SetAdmin(false)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ok, err := newClient(t, fp).Session("x").CheckAdmin(ctx)
	if err != nil {
		t.Fatalf("CheckAdmin: %v", err)
	}
	if ok {
		t.Error("expected non-admin")
	}
}

func TestFetchNumbers_DecodesBatch(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	out, err := newClient(t, fp).Session("x").FetchNumbers(ctx)
	if err != nil {
		t.Fatalf("FetchNumbers: %v", err)
	}
	if out.MetricsSnapshot != testutil.SampleMetrics() {
		t.Errorf("metrics: got %+v", out.MetricsSnapshot)
	}
	want := testutil.SampleUsers()
	if len(out.UsersArray) != len(want) {
		t.Fatalf("users: got %d, want %d", len(out.UsersArray), len(want))
	}
	for i := range want {
		if out.UsersArray[i].ID != want[i].ID {
			t.Errorf("users[%d]: got %q, want %q", i, out.UsersArray[i].ID, want[i].ID)
		}
	}
	if out.UsersArray[0].Group.Name != "Red Team" {
		t.Errorf("group name: got %q", out.UsersArray[0].Group.Name)
	}
}

func TestFetchNumbers_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fp *testutil.FakePlatform)
	}{
		{"server error", func(fp *testutil.FakePlatform) { fp.FailNumbers(true) }},
		{"malformed json", func(fp *testutil.FakePlatform) { fp.SetRawNumbers(`{"totalUsers":`) }},
		{"negative count", func(fp *testutil.FakePlatform) {
			fp.SetRawNumbers(`{"totalUsers":-1,"totalGroups":0,"totalContests":0,"usersArray":[]}`)
		}},
		{"user without id", func(fp *testutil.FakePlatform) {
			fp.SetRawNumbers(`{"totalUsers":1,"totalGroups":0,"totalContests":0,"usersArray":[{"username":"x"}]}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := testutil.NewFakePlatform(t)
			tt.setup(fp)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			_, err := newClient(t, fp).Session("x").FetchNumbers(ctx)
			if !errors.Is(err, models.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})
	}
}

func TestFetchNumbers_NullUsersBecomesEmpty(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	fp.SetRawNumbers(`{"totalUsers":0,"totalGroups":0,"totalContests":0,"usersArray":null}`)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	out, err := newClient(t, fp).Session("x").FetchNumbers(ctx)
	if err != nil {
		t.Fatalf("FetchNumbers: %v", err)
	}
	if out.UsersArray == nil || len(out.UsersArray) != 0 {
		t.Errorf("expected empty non-nil users, got %#v", out.UsersArray)
	}
}

func TestFetchUserDetail(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	fp.RemoveDetail("u2")
	gw := newClient(t, fp).Session("x")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := gw.FetchUserDetail(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchUserDetail(u1): %v", err)
	}
	if u == nil || u.Username != "alice" {
		t.Errorf("FetchUserDetail(u1): got %+v", u)
	}

	u, err = gw.FetchUserDetail(ctx, "u2")
	if err != nil {
		t.Fatalf("FetchUserDetail(u2): %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing record, got %+v", u)
	}

	fp.FailDetail(true)
	if _, err := gw.FetchUserDetail(ctx, "u1"); !errors.Is(err, models.ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}

func TestPing(t *testing.T) {
	fp := testutil.NewFakePlatform(t)
	c := newClient(t, fp)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	fp.Close()
	if err := c.Ping(ctx); err == nil {
		t.Error("expected Ping error after close")
	}
}

func TestUnavailableGateway(t *testing.T) {
	var gw platformstore.Gateway = platformstore.UnavailableGateway{}
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := gw.CheckAdmin(ctx); !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("CheckAdmin: got %v", err)
	}
	if _, err := gw.FetchNumbers(ctx); !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("FetchNumbers: got %v", err)
	}
	if _, err := gw.FetchUserDetail(ctx, "u1"); !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("FetchUserDetail: got %v", err)
	}
}

func TestCheckAdmin_RejectedSessionIsNotAdmin(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer srv.Close()

			c, err := platformstore.New(platformstore.Config{BaseURL: srv.URL, SessionCookie: testutil.SessionCookie}, zap.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			ctx, cancel := testutil.TestContext()
			defer cancel()

			ok, err := c.Session("expired").CheckAdmin(ctx)
			if err != nil || ok {
				t.Errorf("CheckAdmin: got ok=%v err=%v, want false, nil", ok, err)
			}
		})
	}
}

func TestPing_NilClient(t *testing.T) {
	var c *platformstore.Client
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := c.Ping(ctx); !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("Ping: got %v", err)
	}
}
