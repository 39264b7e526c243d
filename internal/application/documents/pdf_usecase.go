package documents

import (
	"context"
	"fmt"

	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

// SaleLineForPDF línea de venta enriquecida con el nombre del producto.
type SaleLineForPDF struct {
	entity.SaleDetail
	ProductName string
}

// ReceiptPDFGenerator genera el comprobante imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []SaleLineForPDF) ([]byte, error)
}

// SalePDFUseCase genera el comprobante PDF de una venta.
type SalePDFUseCase struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	generator ReceiptPDFGenerator
}

// NewSalePDFUseCase construye el caso de uso inyectando sus dependencias.
func NewSalePDFUseCase(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *SalePDFUseCase {
	return &SalePDFUseCase{sales: sales, customers: customers, products: products, generator: generator}
}

// DownloadReceiptPDF recupera la venta completa y genera su comprobante.
// Devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *SalePDFUseCase) DownloadReceiptPDF(ctx context.Context, saleID int64) ([]byte, string, error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, "", domain.Internal("buscar venta", err)
	}
	if sale == nil {
		return nil, "", domain.NotFoundf("venta %d no existe", saleID)
	}

	customer, err := uc.customers.GetByID(sale.CustomerID)
	if err != nil {
		return nil, "", domain.Internal("buscar cliente", err)
	}
	if customer == nil {
		return nil, "", domain.NotFoundf("cliente %d no existe", sale.CustomerID)
	}

	details, err := uc.sales.GetDetailsBySaleID(saleID)
	if err != nil {
		return nil, "", domain.Internal("buscar detalle de venta", err)
	}

	lines := make([]SaleLineForPDF, 0, len(details))
	for _, d := range details {
		name := fmt.Sprintf("Producto %d", d.ProductID)
		if product, pErr := uc.products.GetByID(d.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, SaleLineForPDF{SaleDetail: *d, ProductName: name})
	}

	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, sale, customer, lines)
	if err != nil {
		return nil, "", domain.Internal("generar pdf", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%s.pdf", sale.Number), nil
}
