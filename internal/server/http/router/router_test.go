package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"suppliertracker/internal/config"
	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
	"suppliertracker/internal/test"
	"suppliertracker/internal/tracker"
)

type routerFacadeStub struct {
	provider *test.ProviderStub
	page     *tracker.Page
	objects  *test.ObjectStoreStub
}

func (f *routerFacadeStub) Register(ctx context.Context, email, password string) (*model.Session, error) {
	return f.provider.Session, nil
}

func (f *routerFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.Session, error) {
	return f.provider.Session, nil
}

func (f *routerFacadeStub) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	return f.provider.CurrentSession(ctx, token)
}

func (f *routerFacadeStub) SignOut(ctx context.Context, token string) error {
	return f.provider.SignOut(ctx, token)
}

func (f *routerFacadeStub) PageFor(userID int64) *tracker.Page { return f.page }

func (f *routerFacadeStub) OpenAttachment(ctx context.Context, path string) (io.ReadCloser, *repository.ObjectMeta, error) {
	return f.objects.Open(ctx, path)
}

func newRouterFixture(cfg *config.Config) (*routerFacadeStub, http.Handler) {
	provider := &test.ProviderStub{Session: &model.Session{
		Token:     "tok",
		UserID:    1,
		Email:     "user@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	objects := test.NewObjectStoreStub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := tracker.NewSessionGate(provider, tracker.NewLogNavigator(logger))
	page := tracker.NewPage(gate, &test.OrderRepositoryStub{}, objects, nil, logger)

	facade := &routerFacadeStub{provider: provider, page: page, objects: objects}
	return facade, Setup(facade, cfg, logger)
}

func TestRouterPing(t *testing.T) {
	_, engine := newRouterFixture(&config.Config{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterProtectsOrderRoutes(t *testing.T) {
	_, engine := newRouterFixture(&config.Config{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterServesOrdersWithToken(t *testing.T) {
	_, engine := newRouterFixture(&config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterAppliesCORS(t *testing.T) {
	_, engine := newRouterFixture(&config.Config{CORSOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
}
