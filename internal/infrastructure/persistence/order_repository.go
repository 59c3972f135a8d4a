package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items and referenced products
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var m models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "load order", "Order", id.String())
	}

	products, err := r.loadProducts(ctx, []models.OrderModel{m})
	if err != nil {
		return nil, err
	}
	return m.ToDomain(products), nil
}

// FindAll returns orders newest-first with items and referenced products
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Preload("Items", orderItemsByPosition).
		Order("created_at DESC").
		Order("id")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(err, "list orders", "Order", "")
	}

	products, err := r.loadProducts(ctx, rows)
	if err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain(products))
	}
	return orders, nil
}

// Create persists an order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	m := models.OrderModelFromDomain(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(m).Error; err != nil {
			return err
		}
		if len(m.Items) == 0 {
			return nil
		}
		return tx.Create(&m.Items).Error
	})
	return translateError(err, "persist order", "Order", o.ID.String())
}

// UpdateStatus writes the status and update time of an existing order
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"status":     o.Status,
			"updated_at": o.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "update order status", "Order", o.ID.String())
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "", "Order", o.ID.String())
	}
	return nil
}

// CountByStatus returns the number of orders per status; every status is
// present in the result
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.OrderStatus]int64, error) {
	var rows []struct {
		Status order.OrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "count orders", "Order", "")
	}

	counts := make(map[order.OrderStatus]int64, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Summarize returns count and summed totals for orders in a status
func (r *GormOrderRepository) Summarize(ctx context.Context, status order.OrderStatus) (order.Summary, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Where("status = ?", status).
		Scan(&row).Error
	if err != nil {
		return order.Summary{}, translateError(err, "summarize orders", "Order", "")
	}
	return order.Summary{Count: row.Count, Revenue: row.Revenue}, nil
}

// ListCustomers groups orders by lower-cased customer email. Name and phone
// come from the customer's most recent order.
func (r *GormOrderRepository) ListCustomers(ctx context.Context, search string) ([]order.CustomerSummary, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("customer_name, customer_email, customer_phone, status, total, created_at").
		Order("created_at DESC")
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		like := "%" + s + "%"
		query = query.Where("(LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?)", like, like)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(err, "list customers", "Customer", "")
	}

	index := make(map[string]int)
	customers := make([]order.CustomerSummary, 0)
	for _, row := range rows {
		key := strings.ToLower(row.CustomerEmail)
		i, seen := index[key]
		if !seen {
			i = len(customers)
			index[key] = i
			customers = append(customers, order.CustomerSummary{
				Name:        row.CustomerName,
				Email:       key,
				Phone:       row.CustomerPhone,
				TotalSpent:  decimal.Zero,
				LastOrderAt: row.CreatedAt.UTC(),
			})
		}
		c := &customers[i]
		c.OrderCount++
		if row.Status != order.StatusCancelled {
			c.TotalSpent = c.TotalSpent.Add(row.Total)
		}
	}
	return customers, nil
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.ListFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ExcludeCancelled {
		query = query.Where("status <> ?", order.StatusCancelled)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", filter.CreatedTo.UTC())
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		query = query.Where(
			"(LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(CAST(id AS TEXT)) LIKE ?)",
			like, like, like,
		)
	}
	return query
}

// loadProducts fetches the products referenced by the items of rows and
// keys them by the item's product id. Ids that are not product UUIDs or
// that no longer exist are absent from the map.
func (r *GormOrderRepository) loadProducts(ctx context.Context, rows []models.OrderModel) (map[string]*order.ProductRef, error) {
	wanted := make(map[string]uuid.UUID)
	for _, row := range rows {
		for _, item := range row.Items {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				wanted[item.ProductID] = id
			}
		}
	}
	if len(wanted) == 0 {
		return map[string]*order.ProductRef{}, nil
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for _, id := range wanted {
		ids = append(ids, id)
	}

	var products []models.ProductModel
	err := r.db.WithContext(ctx).
		Select("id, name, slug, images, category_id").
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, translateError(err, "load order products", "Product", "")
	}

	byID := make(map[uuid.UUID]*order.ProductRef, len(products))
	for _, p := range products {
		ref := &order.ProductRef{
			ID:         p.ID,
			Name:       p.Name,
			Slug:       p.Slug,
			CategoryID: p.CategoryID,
		}
		if len(p.Images) > 0 {
			ref.Image = p.Images[0]
		}
		byID[p.ID] = ref
	}

	refs := make(map[string]*order.ProductRef, len(wanted))
	for raw, id := range wanted {
		if ref, ok := byID[id]; ok {
			refs[raw] = ref
		}
	}
	return refs, nil
}
