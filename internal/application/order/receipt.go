package order

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de un pedido (descargable por el dueño o un admin).
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orderRepo repository.OrderRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, generator: generator}
}

// DownloadReceipt carga el pedido, aplica dueño-o-admin y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe.
//   - domain.ErrForbidden        si el solicitante no es dueño ni admin.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, userID, role, orderID string) (pdfBytes []byte, filename string, err error) {
	ord, err := loadOwnedOrder(uc.orderRepo, userID, role, orderID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, ord)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("pedido_%s.pdf", ord.ID)
	return pdfBytes, filename, nil
}
