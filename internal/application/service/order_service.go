package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/observability"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// MaxItemQuantity bounds the quantity of one product in an order or invoice
const MaxItemQuantity = 100000

// OrderService handles order-related operations
type OrderService struct {
	tx           repository.Transactor
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
	fiadoRepo    repository.FiadoRepository
	rt           Runtime
}

// NewOrderService creates a new order service
func NewOrderService(
	tx repository.Transactor,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
	fiadoRepo repository.FiadoRepository,
	rt Runtime,
) *OrderService {
	return &OrderService{
		tx:           tx,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		fiadoRepo:    fiadoRepo,
		rt:           rt.withDefaults(),
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput represents the place order input. Either CustomerID or
// CustomerName identifies the buyer.
type PlaceOrderInput struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone *string
	PaymentMethod enum.PaymentMethod
	Notes         *string
	Items         []OrderItemInput
}

// PlaceOrderResult is returned by a successful PlaceOrder
type PlaceOrderResult struct {
	OrderID     uuid.UUID        `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	Total       money.Cents      `json:"total"`
	Status      enum.OrderStatus `json:"status"`
	Order       *entity.Order    `json:"order"`
}

// orderLinePlan is the merged quantity requested for one product
type orderLinePlan struct {
	productID uuid.UUID
	quantity  int
}

func (in *PlaceOrderInput) validate() error {
	var fieldErrors []apperror.FieldError
	if len(in.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range in.Items {
		if item.ProductID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "is required"})
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be greater than zero"})
		} else if item.Quantity > MaxItemQuantity {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: fmt.Sprintf("must not exceed %d", MaxItemQuantity)})
		}
	}
	if _, ok := enum.ParsePaymentMethod(string(in.PaymentMethod)); !ok {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "must be one of cash, card, pix, fiado"})
	}
	if in.CustomerID == nil && strings.TrimSpace(in.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer", Message: "customer_id or customer_name is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// mergeItems sums duplicate product lines, keeping first-seen order. Items
// must already be validated, so every partial sum stays below 2*MaxItemQuantity.
func mergeItems(items []OrderItemInput) ([]orderLinePlan, error) {
	index := make(map[uuid.UUID]int, len(items))
	plans := make([]orderLinePlan, 0, len(items))
	for n, item := range items {
		if i, ok := index[item.ProductID]; ok {
			plans[i].quantity += item.Quantity
			if plans[i].quantity > MaxItemQuantity {
				return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", n),
					fmt.Sprintf("total quantity of product %s must not exceed %d", item.ProductID, MaxItemQuantity))
			}
			continue
		}
		index[item.ProductID] = len(plans)
		plans = append(plans, orderLinePlan{productID: item.ProductID, quantity: item.Quantity})
	}
	return plans, nil
}

// PlaceOrder records a sale. Stock check, order number allocation, header and
// lines, stock decrement and the ledger entry or fiado receipt commit together.
func (s *OrderService) PlaceOrder(ctx context.Context, input *PlaceOrderInput) (result *PlaceOrderResult, err error) {
	ctx, span := observability.StartSpan(ctx, "OrderService.PlaceOrder",
		attribute.Int("items", len(input.Items)),
		attribute.String("payment_method", string(input.PaymentMethod)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := input.validate(); err != nil {
		return nil, err
	}
	method, _ := enum.ParsePaymentMethod(string(input.PaymentMethod))

	customerName := strings.TrimSpace(input.CustomerName)
	customerPhone := input.CustomerPhone
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if customerName == "" {
			customerName = customer.Name
		}
		if customerPhone == nil {
			customerPhone = customer.Phone
		}
	}

	plans, err := mergeItems(input.Items)
	if err != nil {
		return nil, err
	}
	var order *entity.Order
	var lowStock []entity.Product

	err = s.rt.retryOnConflict(ctx, "place_order", func() error {
		order = &entity.Order{
			CustomerID:    input.CustomerID,
			CustomerName:  customerName,
			CustomerPhone: customerPhone,
			PaymentMethod: method,
			Notes:         input.Notes,
		}
		lowStock = nil
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			low, err := s.fulfill(ctx, order, plans)
			lowStock = low
			return err
		})
	})
	if err != nil {
		if apperror.IsKind(err, apperror.KindInsufficientStock) {
			s.rt.Metrics.StockRejected()
			if shortage, ok := apperror.GetAppError(err).Details.(apperror.StockShortage); ok {
				s.rt.Events.Publish(ctx, event.StockRejected, shortage.ProductID, event.StockRejectedPayload{
					ProductID: shortage.ProductID,
					Requested: shortage.Requested,
					Available: shortage.Available,
				})
			}
		}
		return nil, err
	}

	s.rt.Metrics.OrderPlaced(string(method))
	s.rt.invalidateReports(ctx, s.rt.businessDate(order.CreatedAt))
	s.publishPlaced(ctx, order, lowStock)
	s.rt.logger(ctx).Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", string(method)),
		zap.Int64("total_cents", int64(order.Total)),
	)

	full, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		full = order
	}
	return &PlaceOrderResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		Status:      order.Status,
		Order:       full,
	}, nil
}

// fulfill runs inside the order transaction and returns the products that
// reached their low-stock threshold.
func (s *OrderService) fulfill(ctx context.Context, order *entity.Order, plans []orderLinePlan) ([]entity.Product, error) {
	ids := make([]uuid.UUID, len(plans))
	for i, p := range plans {
		ids[i] = p.productID
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var total money.Cents
	lines := make([]entity.OrderLine, 0, len(plans))
	for _, plan := range plans {
		product, ok := productMap[plan.productID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", plan.productID))
		}
		if product.SalePrice <= 0 {
			return nil, apperror.NewFieldError("items", fmt.Sprintf("product %s has no sale price", product.Name))
		}
		if plan.quantity > product.Quantity {
			return nil, shortageError(product, plan.quantity, product.Quantity)
		}
		subtotal := product.SalePrice.Mul(plan.quantity)
		total += subtotal
		lines = append(lines, entity.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    plan.quantity,
			UnitPrice:   product.SalePrice,
			Subtotal:    subtotal,
		})
	}

	seq, err := s.orderRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	order.Sequence = seq
	order.OrderNumber = entity.FormatOrderNumber(seq)
	order.Total = total
	order.Lines = lines
	order.CreatedAt = now
	order.Status = enum.OrderStatusPending
	if order.PaymentMethod.IsImmediate() {
		order.Status = enum.OrderStatusPaid
		order.PaidAt = &now
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	var lowStock []entity.Product
	for _, plan := range plans {
		product := productMap[plan.productID]
		ok, err := s.productRepo.AtomicDecrementQuantity(ctx, plan.productID, plan.quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			available := 0
			if current, err := s.productRepo.GetByID(ctx, plan.productID); err == nil && current != nil {
				available = current.Quantity
			}
			return nil, shortageError(product, plan.quantity, available)
		}
		after := *product
		after.Quantity -= plan.quantity
		if after.IsLowStock() {
			lowStock = append(lowStock, after)
		}
	}

	orderID := order.ID
	if order.IsPaid() {
		return lowStock, s.ledgerRepo.Create(ctx, &entity.LedgerEntry{
			Direction:     enum.LedgerDirectionIn,
			Description:   "Sale " + order.OrderNumber,
			Category:      enum.LedgerCategorySales,
			Amount:        total,
			PaymentMethod: order.PaymentMethod,
			OrderID:       &orderID,
			OccurredAt:    now,
		})
	}
	return lowStock, s.fiadoRepo.Create(ctx, &entity.FiadoReceipt{
		OrderID:       &orderID,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Description:   "Order " + order.OrderNumber,
		Amount:        total,
	})
}

func shortageError(product *entity.Product, requested, available int) error {
	return apperror.NewInsufficientStockError(apperror.StockShortage{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Requested: requested,
		Available: available,
	})
}

func (s *OrderService) publishPlaced(ctx context.Context, order *entity.Order, lowStock []entity.Product) {
	items := make([]event.ItemQty, len(order.Lines))
	for i, l := range order.Lines {
		items[i] = event.ItemQty{ProductID: l.ProductID.String(), Qty: l.Quantity}
	}
	s.rt.Events.Publish(ctx, event.OrderPlaced, order.ID.String(), event.OrderPlacedPayload{
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		PaymentMethod: string(order.PaymentMethod),
		Status:        order.Status.String(),
		Total:         order.Total,
		Items:         items,
	})
	for _, p := range lowStock {
		s.rt.Events.Publish(ctx, event.ProductStockLow, p.ID.String(), event.ProductStockLowPayload{
			ProductID:     p.ID.String(),
			Name:          p.Name,
			Quantity:      p.Quantity,
			QuantityAlert: p.QuantityAlert,
		})
	}
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CancelOrder cancels an order, restores its stock and removes the ledger
// entries and fiado receipt it produced.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	var restocked []event.ItemQty

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCanceled {
			return apperror.NewFieldError("status", "order is already canceled")
		}

		stockIncrements := make(map[uuid.UUID]int)
		for _, line := range order.Lines {
			stockIncrements[line.ProductID] += line.Quantity
		}
		restocked = restocked[:0]
		for _, line := range order.Lines {
			restocked = append(restocked, event.ItemQty{ProductID: line.ProductID.String(), Qty: line.Quantity})
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
			return err
		}

		if _, err := s.ledgerRepo.DeleteByOrderID(ctx, order.ID); err != nil {
			return err
		}
		receipt, err := s.fiadoRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if receipt != nil {
			if _, err := s.ledgerRepo.DeleteByFiadoReceiptID(ctx, receipt.ID); err != nil {
				return err
			}
			if err := s.fiadoRepo.Delete(ctx, receipt.ID); err != nil {
				return err
			}
		}

		now := s.rt.now()
		order.Status = enum.OrderStatusCanceled
		order.CanceledAt = &now
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.rt.invalidateReports(ctx, s.rt.businessDate(order.CreatedAt))
	s.rt.Events.Publish(ctx, event.OrderCanceled, order.ID.String(), event.OrderCanceledPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Restocked:   restocked,
	})
	s.rt.logger(ctx).Info("order canceled", zap.String("order_number", order.OrderNumber))

	return order, nil
}
