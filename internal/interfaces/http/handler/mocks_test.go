package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	analyticsapp "github.com/horologe/storefront/internal/application/analytics"
	catalogapp "github.com/horologe/storefront/internal/application/catalog"
	identityapp "github.com/horologe/storefront/internal/application/identity"
	orderapp "github.com/horologe/storefront/internal/application/order"
	settingsapp "github.com/horologe/storefront/internal/application/settings"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/auth"
	"github.com/horologe/storefront/internal/infrastructure/printing"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req orderapp.PlaceOrderRequest) (*orderapp.PlaceOrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.PlaceOrderResult), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, req orderapp.UpdateStatusRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter orderapp.ListOrdersFilter) ([]orderapp.OrderResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id string) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) RenderInvoice(ctx context.Context, id string) (*printing.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.Document), args.Error(1)
}

type MockCustomerLister struct {
	mock.Mock
}

func (m *MockCustomerLister) List(ctx context.Context, search string) ([]orderapp.CustomerResponse, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderapp.CustomerResponse), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Report(ctx context.Context, q analyticsapp.Query) (*analyticsapp.Report, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsapp.Report), args.Error(1)
}

func (m *MockAnalyticsService) Dashboard(ctx context.Context) (*analyticsapp.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsapp.Dashboard), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetPublic(ctx context.Context) (*settings.PublicSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.PublicSettings), args.Error(1)
}

func (m *MockSettingsService) GetStore(ctx context.Context) (*settingsapp.StoreResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.StoreResponse), args.Error(1)
}

func (m *MockSettingsService) UpdateStore(ctx context.Context, req settingsapp.UpdateStoreRequest) (*settingsapp.StoreResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.StoreResponse), args.Error(1)
}

func (m *MockSettingsService) GetLanding(ctx context.Context) (*settingsapp.LandingResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.LandingResponse), args.Error(1)
}

func (m *MockSettingsService) UpdateLanding(ctx context.Context, req settingsapp.UpdateLandingRequest) (*settingsapp.LandingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.LandingResponse), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, q catalogapp.ListProductsQuery) (*shared.Paginated[catalogapp.ProductResponse], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.ProductResponse]), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, idOrSlug string) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) ListReviews(ctx context.Context, idOrSlug string) ([]catalogapp.ReviewResponse, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.ReviewResponse), args.Error(1)
}

func (m *MockProductService) CreateReview(ctx context.Context, idOrSlug string, req catalogapp.CreateReviewRequest) (*catalogapp.ReviewResponse, error) {
	args := m.Called(ctx, idOrSlug, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ReviewResponse), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, idOrSlug string) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) MaxSize() int64 {
	return m.Called().Get(0).(int64)
}

func (m *MockImageUploader) UploadImage(ctx context.Context, folder string, data []byte, contentType string) (*catalogapp.UploadResponse, error) {
	args := m.Called(ctx, folder, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.UploadResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}
