package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/horologe/storefront/internal/application/catalog"
	"github.com/horologe/storefront/internal/domain/shared"
)

// ProductService is the catalog product use case surface
type ProductService interface {
	List(ctx context.Context, q catalogapp.ListProductsQuery) (*shared.Paginated[catalogapp.ProductResponse], error)
	Get(ctx context.Context, idOrSlug string) (*catalogapp.ProductResponse, error)
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListReviews(ctx context.Context, idOrSlug string) ([]catalogapp.ReviewResponse, error)
	CreateReview(ctx context.Context, idOrSlug string, req catalogapp.CreateReviewRequest) (*catalogapp.ReviewResponse, error)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	service ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category query string false "Category slug"
// @Param        featured query bool false "Featured only"
// @Param        search query string false "Name search"
// @Param        minPrice query number false "Minimum price"
// @Param        maxPrice query number false "Maximum price"
// @Param        sort query string false "newest, price_asc, price_desc or rating"
// @Param        page query int false "Page" default(1)
// @Param        pageSize query int false "Page size" default(20)
// @Success      200 {object} shared.Paginated[catalogapp.ProductResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q catalogapp.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Get godoc
// @ID           getProduct
// @Summary      Get a product by id or slug
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID or slug"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update godoc
// @ID           updateProduct
// @Summary      Update a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.HandleError(c, shared.NewNotFoundError("product", c.Param("id")))
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         admin-products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.HandleError(c, shared.NewNotFoundError("product", c.Param("id")))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListReviews godoc
// @ID           listProductReviews
// @Summary      List reviews of a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID or slug"
// @Success      200 {array} catalogapp.ReviewResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /products/{id}/reviews [get]
func (h *ProductHandler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// CreateReview godoc
// @ID           createProductReview
// @Summary      Review a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID or slug"
// @Param        request body catalogapp.CreateReviewRequest true "Review"
// @Success      201 {object} catalogapp.ReviewResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /products/{id}/reviews [post]
func (h *ProductHandler) CreateReview(c *gin.Context) {
	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}
