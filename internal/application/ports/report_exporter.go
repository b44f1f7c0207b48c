package ports

import "github.com/profitzen/analytics-api/internal/application/dto"

// ReportExporter puerto de salida para la exportación de reportes a binario.
type ReportExporter interface {
	// ExportSalesReport genera el PDF del reporte de ventas.
	ExportSalesReport(report *dto.SalesReportDTO, storeName string) ([]byte, error)
}
