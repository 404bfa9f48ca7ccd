package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/pricing"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// OrderUseCase orquesta el ciclo de vida del pedido: creación con re-precio
// servidor-side, consulta con control de dueño, confirmación de pago verificada
// contra el proveedor y confirmación de entrega.
type OrderUseCase struct {
	txRunner    OrderTxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	verifier    PaymentVerifier
	rates       pricing.Rates
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	verifier PaymentVerifier,
	rates pricing.Rates,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		verifier:    verifier,
		rates:       rates,
	}
}

// Create coloca un pedido: valida la entrada, re-resuelve cada línea contra el
// catálogo (el precio del cliente se ignora), calcula los totales y persiste
// el snapshot en una transacción.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	// Resolver productos del catálogo de una sola vez.
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	now := time.Now()
	orderID := uuid.New().String()
	items := make([]entity.OrderItem, 0, len(in.Items))
	lines := make([]pricing.Line, 0, len(in.Items))
	for _, it := range in.Items {
		product, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		// Snapshot: nombre, imagen y precio autoritativo al momento de la compra.
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  it.Quantity,
		})
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: it.Quantity})
	}

	summary, err := pricing.Calculate(lines, uc.rates)
	if err != nil {
		return nil, err
	}

	ord := &entity.Order{
		ID:     orderID,
		UserID: userID,
		Items:  items,
		Shipping: entity.ShippingAddress{
			Address:    in.Shipping.Address,
			City:       in.Shipping.City,
			PostalCode: in.Shipping.PostalCode,
			Country:    in.Shipping.Country,
		},
		PaymentMethod: in.PaymentMethod,
		ItemsPrice:    summary.ItemsPrice,
		TaxPrice:      summary.TaxPrice,
		ShippingPrice: summary.ShippingPrice,
		TotalPrice:    summary.TotalPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(ord)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// GetByID devuelve el pedido solo si el solicitante es el dueño o admin.
func (uc *OrderUseCase) GetByID(ctx context.Context, userID, role, orderID string) (*dto.OrderResponse, error) {
	ord, err := uc.ownedOrder(userID, role, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// ListMine devuelve los pedidos del usuario. Sin pedidos devuelve lista vacía
// con éxito (no un error).
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders), nil
}

// ListAll devuelve todos los pedidos con los datos del dueño (solo admin; el
// RBAC lo aplica el middleware HTTP).
func (uc *OrderUseCase) ListAll(ctx context.Context) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders), nil
}

// ConfirmPayment verifica la captura contra el proveedor y, si cruza, marca el
// pedido como pagado en una sola transición atómica. Un pedido ya pagado corta
// en corto con ErrAlreadyPaid sin tocar al proveedor. Los fallos de
// verificación dejan el pedido impago y reintentable.
func (uc *OrderUseCase) ConfirmPayment(ctx context.Context, userID, orderID, captureID string) (*dto.OrderResponse, error) {
	ord, err := uc.ownedOrder(userID, "", orderID)
	if err != nil {
		return nil, err
	}
	if ord.IsPaid {
		return nil, domain.ErrAlreadyPaid
	}

	details, err := uc.verifier.Verify(ctx, ord, captureID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := entity.PaymentResult{
		CaptureID:  details.CaptureID,
		Status:     details.Status,
		UpdateTime: details.UpdateTime,
		PayerEmail: details.PayerEmail,
	}
	// La carrera la resuelve el storage: update condicional sobre is_paid=FALSE
	// más índice único sobre el capture id. Nunca check-then-write en aplicación.
	if err := uc.orderRepo.MarkPaid(orderID, now, result); err != nil {
		return nil, err
	}

	ord.IsPaid = true
	ord.PaidAt = &now
	ord.PaymentResult = &result
	return toOrderResponse(ord), nil
}

// ConfirmDelivery marca el pedido como entregado (solo admin).
func (uc *OrderUseCase) ConfirmDelivery(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if err := uc.orderRepo.MarkDelivered(orderID, now); err != nil {
		return nil, err
	}
	ord.IsDelivered = true
	ord.DeliveredAt = &now
	return toOrderResponse(ord), nil
}

// ownedOrder carga el pedido y aplica el control de acceso dueño-o-admin.
func (uc *OrderUseCase) ownedOrder(userID, role, orderID string) (*entity.Order, error) {
	return loadOwnedOrder(uc.orderRepo, userID, role, orderID)
}

// loadOwnedOrder regla compartida de acceso a un pedido: dueño o admin.
func loadOwnedOrder(repo repository.OrderRepository, userID, role, orderID string) (*entity.Order, error) {
	ord, err := repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.UserID != userID && role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return ord, nil
}

func validateOrderInput(in dto.CreateOrderRequest) error {
	var bad []string
	if strings.TrimSpace(in.Shipping.Address) == "" {
		bad = append(bad, "shipping.address")
	}
	if strings.TrimSpace(in.Shipping.City) == "" {
		bad = append(bad, "shipping.city")
	}
	if strings.TrimSpace(in.Shipping.PostalCode) == "" {
		bad = append(bad, "shipping.postal_code")
	}
	if strings.TrimSpace(in.Shipping.Country) == "" {
		bad = append(bad, "shipping.country")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		bad = append(bad, "payment_method")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			bad = append(bad, fmt.Sprintf("items[%d].product_id", i))
		}
		if it.Quantity < 1 {
			bad = append(bad, fmt.Sprintf("items[%d].quantity", i))
		}
	}
	return domain.NewValidationError(bad)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	resp := &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		UserName:  o.UserName,
		UserEmail: o.UserEmail,
		Items:     items,
		Shipping: dto.ShippingResponse{
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		},
		PaymentMethod: o.PaymentMethod,
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		IsPaid:        o.IsPaid,
		PaidAt:        o.PaidAt,
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.PaymentResult != nil {
		resp.PaymentResult = &dto.PaymentResultResponse{
			CaptureID:  o.PaymentResult.CaptureID,
			Status:     o.PaymentResult.Status,
			UpdateTime: o.PaymentResult.UpdateTime,
			PayerEmail: o.PaymentResult.PayerEmail,
		}
	}
	return resp
}

func toOrderListResponse(orders []*entity.Order) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items}
}
