package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
//
// La transición a pagado se resuelve en la base: UPDATE condicional sobre
// is_paid = FALSE más el índice único parcial sobre payment_capture_id.
// Nunca se hace check-then-write en Go.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido y sus líneas.
// Llamar dentro de una transacción (ver TxRunner) para que cabecera y líneas
// sean atómicas.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	headQuery := `
		INSERT INTO orders (
			id, user_id, payment_method,
			shipping_address, shipping_city, shipping_postal_code, shipping_country,
			items_price, tax_price, shipping_price, total_price,
			is_paid, is_delivered, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, FALSE, $12, $13)`
	_, err := r.q.Exec(ctx, headQuery,
		order.ID, order.UserID, order.PaymentMethod,
		order.Shipping.Address, order.Shipping.City, order.Shipping.PostalCode, order.Shipping.Country,
		order.ItemsPrice, order.TaxPrice, order.ShippingPrice, order.TotalPrice,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, image, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range order.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, order.ID, it.ProductID, it.Name, it.Image, it.UnitPrice, it.Quantity,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

const orderColumns = `
	o.id, o.user_id, o.payment_method,
	o.shipping_address, o.shipping_city, o.shipping_postal_code, o.shipping_country,
	o.items_price, o.tax_price, o.shipping_price, o.total_price,
	o.is_paid, o.paid_at,
	o.payment_capture_id, o.payment_status, o.payment_update_time, o.payment_payer_email,
	o.is_delivered, o.delivered_at,
	o.created_at, o.updated_at,
	u.name, u.email`

// GetByID obtiene un pedido con sus líneas. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`
	return r.list(query, userID)
}

// ListAll lista todos los pedidos (vista admin), más recientes primero.
func (r *OrderRepo) ListAll() ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`
	return r.list(query)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range list {
		if err := r.loadItems(order); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// MarkPaid transiciona el pedido a pagado de forma condicional.
// El WHERE is_paid = FALSE garantiza a lo sumo una transición aunque lleguen
// confirmaciones concurrentes; el índice único parcial sobre
// payment_capture_id rechaza reutilizar una captura de otro pedido.
func (r *OrderRepo) MarkPaid(id string, paidAt time.Time, result entity.PaymentResult) error {
	query := `
		UPDATE orders SET
			is_paid = TRUE, paid_at = $2,
			payment_capture_id = $3, payment_status = $4,
			payment_update_time = $5, payment_payer_email = $6,
			updated_at = now()
		WHERE id = $1 AND is_paid = FALSE`
	tag, err := r.q.Exec(context.Background(), query,
		id, paidAt, result.CaptureID, result.Status, result.UpdateTime, result.PayerEmail,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El único índice único alcanzable en este UPDATE es el de capture id.
			if name := constraintName(err); name == "" || name == "orders_payment_capture_id_uq" {
				return domain.ErrDuplicateCapture
			}
		}
		return fmt.Errorf("mark order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// O el pedido no existe, o ya estaba pagado: distinguirlos.
		var exists bool
		checkErr := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("check order exists: %w", checkErr)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyPaid
	}
	return nil
}

// MarkDelivered transiciona el pedido a entregado de forma condicional.
func (r *OrderRepo) MarkDelivered(id string, deliveredAt time.Time) error {
	query := `
		UPDATE orders SET is_delivered = TRUE, delivered_at = $2, updated_at = now()
		WHERE id = $1 AND is_delivered = FALSE`
	tag, err := r.q.Exec(context.Background(), query, id, deliveredAt)
	if err != nil {
		return fmt.Errorf("mark order delivered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return fmt.Errorf("check order exists: %w", checkErr)
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}

// ExistsCaptureID indica si la captura ya fue aplicada a algún pedido.
func (r *OrderRepo) ExistsCaptureID(captureID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM orders WHERE payment_capture_id = $1)`, captureID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check capture id: %w", err)
	}
	return exists, nil
}

func (r *OrderRepo) loadItems(order *entity.Order) error {
	query := `
		SELECT id, order_id, product_id, name, image, unit_price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, order.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Image, &it.UnitPrice, &it.Quantity); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	return rows.Err()
}

// scanOrder funciona con pgx.Row y pgx.Rows (ambos tienen Scan).
func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o          entity.Order
		captureID  *string
		status     *string
		updateTime *string
		payerEmail *string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.PaymentMethod,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.PostalCode, &o.Shipping.Country,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt,
		&captureID, &status, &updateTime, &payerEmail,
		&o.IsDelivered, &o.DeliveredAt,
		&o.CreatedAt, &o.UpdatedAt,
		&o.UserName, &o.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	if captureID != nil {
		o.PaymentResult = &entity.PaymentResult{
			CaptureID:  *captureID,
			Status:     deref(status),
			UpdateTime: deref(updateTime),
			PayerEmail: deref(payerEmail),
		}
	}
	return &o, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
