package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	internalauth "github.com/novamart/orderhub-backend/internal/auth"
	"github.com/novamart/orderhub-backend/internal/inventory"
	"github.com/novamart/orderhub-backend/internal/orders"
	pkgauth "github.com/novamart/orderhub-backend/pkg/auth"
	"github.com/novamart/orderhub-backend/pkg/config"
	"github.com/novamart/orderhub-backend/pkg/envelope"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct {
	user *internalauth.AuthUser
}

func (s stubAuthService) Validate(ctx context.Context, username, password string) (*internalauth.AuthUser, error) {
	return s.user, nil
}

type stubOrdersService struct {
	env envelope.Envelope
}

func (s stubOrdersService) Create(ctx context.Context, req orders.CreateOrderRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubOrdersService) Get(ctx context.Context, id int64) envelope.Envelope { return s.env }
func (s stubOrdersService) Update(ctx context.Context, id int64, req orders.UpdateOrderRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubOrdersService) Delete(ctx context.Context, id int64, actor string) envelope.Envelope {
	return s.env
}
func (s stubOrdersService) CreateViaProc(ctx context.Context, req orders.CreateOrderRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubOrdersService) GetViaProc(ctx context.Context, id int64) envelope.Envelope { return s.env }
func (s stubOrdersService) UpdateStatusViaProc(ctx context.Context, id int64, req orders.UpdateOrderStatusRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubOrdersService) DeleteViaProc(ctx context.Context, id int64, actor string) envelope.Envelope {
	return s.env
}

type stubInventoryService struct {
	env envelope.Envelope
}

func (s stubInventoryService) ItemCreate(ctx context.Context, req inventory.ItemCreateRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubInventoryService) ItemUpdate(ctx context.Context, id int64, req inventory.ItemUpdateRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubInventoryService) ItemDelete(ctx context.Context, id int64, actor string) envelope.Envelope {
	return s.env
}
func (s stubInventoryService) ItemGet(ctx context.Context, id int64) envelope.Envelope { return s.env }
func (s stubInventoryService) ItemGetAll(ctx context.Context) envelope.Envelope       { return s.env }
func (s stubInventoryService) StockCreate(ctx context.Context, req inventory.StockCreateRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubInventoryService) StockUpdate(ctx context.Context, id int64, req inventory.StockUpdateRequest, actor string) envelope.Envelope {
	return s.env
}
func (s stubInventoryService) StockDelete(ctx context.Context, id int64, actor string) envelope.Envelope {
	return s.env
}
func (s stubInventoryService) StockGet(ctx context.Context, id int64) envelope.Envelope { return s.env }
func (s stubInventoryService) StockGetAll(ctx context.Context) envelope.Envelope        { return s.env }

type stubSearchService struct {
	env envelope.Envelope
}

func (s stubSearchService) Search(ctx context.Context, query string) envelope.Envelope {
	return s.env
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "orderhub",
			Audience:          "orderhub",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	ok := envelope.Ok(map[string]any{"ok": true})
	return NewRouter(Deps{
		Config:           cfg,
		Logger:           logg,
		DB:               stubPinger{},
		Redis:            nil,
		AuthService:      stubAuthService{user: &internalauth.AuthUser{ID: 1, Username: "alice", Role: pkgauth.RoleManager}},
		OrdersService:    stubOrdersService{env: ok},
		InventoryService: stubInventoryService{env: ok},
		SearchService:    stubSearchService{env: ok},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   1,
		Username: "alice",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestOrderDeleteRequiresElevatedRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asUser := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/1", nil)
	asUser.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asUser)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user got %d", resp.Code)
	}

	asManager := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/1", nil)
	asManager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleManager))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asManager)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager got %d", resp.Code)
	}
}

func TestOrderProcDeleteRequiresAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asManager := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/proc/1", nil)
	asManager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleManager))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asManager)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager got %d", resp.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/proc/1", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestLoginIsPublicAndReturnsToken(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"username":"alice","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		ErrorCode int    `json:"errorCode"`
		Message   string `json:"message"`
		Data      struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.ErrorCode != 0 || payload.Data.Token == "" {
		t.Fatalf("expected token in success envelope, got %s", resp.Body.String())
	}
}

func TestSearchEndpointReachable(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=widget", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
