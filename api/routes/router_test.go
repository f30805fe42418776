package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/tmekonnen/stockroom-backend/internal/auth"
	"github.com/tmekonnen/stockroom-backend/internal/bills"
	"github.com/tmekonnen/stockroom-backend/internal/catalog"
	"github.com/tmekonnen/stockroom-backend/internal/customers"
	"github.com/tmekonnen/stockroom-backend/internal/deliveries"
	"github.com/tmekonnen/stockroom-backend/internal/invoices"
	"github.com/tmekonnen/stockroom-backend/internal/purchases"
	"github.com/tmekonnen/stockroom-backend/internal/sales"
	"github.com/tmekonnen/stockroom-backend/internal/users"
	"github.com/tmekonnen/stockroom-backend/internal/vendors"
	pkgauth "github.com/tmekonnen/stockroom-backend/pkg/auth"
	"github.com/tmekonnen/stockroom-backend/pkg/config"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
	"github.com/tmekonnen/stockroom-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubUsersService struct{}

func (stubUsersService) Create(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubUsersService) Get(ctx context.Context, id uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: id}, nil
}

func (stubUsersService) List(ctx context.Context, params users.ListParams) (*users.ListResult, error) {
	return &users.ListResult{}, nil
}

func (stubUsersService) Update(ctx context.Context, id uuid.UUID, input users.UpdateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: id}, nil
}

func (stubUsersService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateCategory(ctx context.Context, input catalog.CreateCategoryInput) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{}, nil
}

func (stubCatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{ID: id}, nil
}

func (stubCatalogService) ListCategories(ctx context.Context) ([]catalog.CategoryDTO, error) {
	return nil, nil
}

func (stubCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input catalog.UpdateCategoryInput) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{ID: id}, nil
}

func (stubCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCatalogService) CreateItem(ctx context.Context, input catalog.CreateItemInput) (*catalog.ItemDTO, error) {
	return &catalog.ItemDTO{}, nil
}

func (stubCatalogService) GetItem(ctx context.Context, id uuid.UUID) (*catalog.ItemDTO, error) {
	return &catalog.ItemDTO{ID: id}, nil
}

func (stubCatalogService) ListItems(ctx context.Context, params catalog.ListParams) (*catalog.ItemListResult, error) {
	return &catalog.ItemListResult{}, nil
}

func (stubCatalogService) UpdateItem(ctx context.Context, id uuid.UUID, input catalog.UpdateItemInput) (*catalog.ItemDTO, error) {
	return &catalog.ItemDTO{ID: id}, nil
}

func (stubCatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCustomersService struct{}

func (stubCustomersService) Create(ctx context.Context, input customers.CreateCustomerInput) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{}, nil
}

func (stubCustomersService) Get(ctx context.Context, id uuid.UUID) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{ID: id}, nil
}

func (stubCustomersService) List(ctx context.Context, params customers.ListParams) (*customers.ListResult, error) {
	return &customers.ListResult{}, nil
}

func (stubCustomersService) Update(ctx context.Context, id uuid.UUID, input customers.UpdateCustomerInput) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{ID: id}, nil
}

func (stubCustomersService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubVendorsService struct{}

func (stubVendorsService) Create(ctx context.Context, input vendors.CreateVendorInput) (*vendors.VendorDTO, error) {
	return &vendors.VendorDTO{}, nil
}

func (stubVendorsService) Get(ctx context.Context, id uuid.UUID) (*vendors.VendorDTO, error) {
	return &vendors.VendorDTO{ID: id}, nil
}

func (stubVendorsService) ListAll(ctx context.Context) ([]vendors.VendorDTO, error) {
	return nil, nil
}

func (stubVendorsService) Update(ctx context.Context, id uuid.UUID, input vendors.UpdateVendorInput) (*vendors.VendorDTO, error) {
	return &vendors.VendorDTO{ID: id}, nil
}

func (stubVendorsService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubSalesService struct{}

func (stubSalesService) CreateSale(ctx context.Context, input sales.CreateSaleInput) (*sales.SaleDTO, error) {
	return &sales.SaleDTO{}, nil
}

func (stubSalesService) GetSale(ctx context.Context, id uuid.UUID) (*sales.SaleDTO, error) {
	return &sales.SaleDTO{ID: id}, nil
}

func (stubSalesService) ListSales(ctx context.Context, params sales.ListParams) (*sales.ListResult, error) {
	return &sales.ListResult{}, nil
}

func (stubSalesService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubPurchasesService struct{}

func (stubPurchasesService) CreatePurchase(ctx context.Context, input purchases.CreatePurchaseInput) (*purchases.PurchaseDTO, error) {
	return &purchases.PurchaseDTO{}, nil
}

func (stubPurchasesService) GetPurchase(ctx context.Context, id uuid.UUID) (*purchases.PurchaseDTO, error) {
	return &purchases.PurchaseDTO{ID: id}, nil
}

func (stubPurchasesService) ListPurchases(ctx context.Context, params purchases.ListParams) (*purchases.ListResult, error) {
	return &purchases.ListResult{}, nil
}

func (stubPurchasesService) UpdatePurchase(ctx context.Context, id uuid.UUID, input purchases.UpdatePurchaseInput) (*purchases.PurchaseDTO, error) {
	return &purchases.PurchaseDTO{ID: id}, nil
}

func (stubPurchasesService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubDeliveriesService struct{}

func (stubDeliveriesService) Create(ctx context.Context, input deliveries.CreateDeliveryInput) (*deliveries.DeliveryDTO, error) {
	return &deliveries.DeliveryDTO{}, nil
}

func (stubDeliveriesService) Get(ctx context.Context, id uuid.UUID) (*deliveries.DeliveryDTO, error) {
	return &deliveries.DeliveryDTO{ID: id}, nil
}

func (stubDeliveriesService) List(ctx context.Context, params deliveries.ListParams) (*deliveries.ListResult, error) {
	return &deliveries.ListResult{}, nil
}

func (stubDeliveriesService) Update(ctx context.Context, id uuid.UUID, input deliveries.UpdateDeliveryInput) (*deliveries.DeliveryDTO, error) {
	return &deliveries.DeliveryDTO{ID: id}, nil
}

func (stubDeliveriesService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubInvoicesService struct{}

func (stubInvoicesService) Create(ctx context.Context, input invoices.CreateInvoiceInput) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{}, nil
}

func (stubInvoicesService) Get(ctx context.Context, id uuid.UUID) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{ID: id}, nil
}

func (stubInvoicesService) List(ctx context.Context, params invoices.ListParams) (*invoices.ListResult, error) {
	return &invoices.ListResult{}, nil
}

func (stubInvoicesService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubBillsService struct{}

func (stubBillsService) Create(ctx context.Context, input bills.CreateBillInput) (*bills.BillDTO, error) {
	return &bills.BillDTO{}, nil
}

func (stubBillsService) Get(ctx context.Context, id uuid.UUID) (*bills.BillDTO, error) {
	return &bills.BillDTO{ID: id}, nil
}

func (stubBillsService) List(ctx context.Context, params bills.ListParams) (*bills.ListResult, error) {
	return &bills.ListResult{}, nil
}

func (stubBillsService) Update(ctx context.Context, id uuid.UUID, input bills.UpdateBillInput) (*bills.BillDTO, error) {
	return &bills.BillDTO{ID: id}, nil
}

func (stubBillsService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		nil,
		nil,
		Services{
			Auth:       stubAuthService{},
			Users:      stubUsersService{},
			Catalog:    stubCatalogService{},
			Customers:  stubCustomersService{},
			Vendors:    stubVendorsService{},
			Sales:      stubSalesService{},
			Purchases:  stubPurchasesService{},
			Deliveries: stubDeliveriesService{},
			Invoices:   stubInvoicesService{},
			Bills:      stubBillsService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.StaffRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveAlwaysOpen(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupAcceptsValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleOperative))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestUserManagementRequiresPrivilegedRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	operative := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	operative.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleOperative))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, operative)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for operative got %d", resp.Code)
	}

	executive := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	executive.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleExecutive))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, executive)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for executive got %d", resp.Code)
	}
}

func TestItemDeleteRequiresPrivilegedRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	id := uuid.NewString()
	operative := httptest.NewRequest(http.MethodDelete, "/api/v1/items/"+id, nil)
	operative.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleOperative))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, operative)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for operative delete got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodDelete, "/api/v1/items/"+id, nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete got %d", resp.Code)
	}
}
