// Package report genera el informe semanal de suministros de un niño en PDF:
// tasa de consumo por categoría, días de cobertura, lotes críticos y gasto
// mensual proyectado.
package report

import (
	"context"
	"fmt"

	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// SupplyReportGenerator puerto del generador PDF (lo implementa infraestructura).
type SupplyReportGenerator interface {
	GenerateSupplyReport(ctx context.Context, child *entity.Child, summary *domforecast.DashboardSummary) ([]byte, error)
}

// SupplyReportUseCase arma los datos del informe y delega el render al
// generador.
type SupplyReportUseCase struct {
	childRepo repository.ChildRepository
	dashboard *appforecast.DashboardUseCase
	generator SupplyReportGenerator
}

// NewSupplyReportUseCase construye el caso de uso.
func NewSupplyReportUseCase(
	childRepo repository.ChildRepository,
	dashboard *appforecast.DashboardUseCase,
	generator SupplyReportGenerator,
) *SupplyReportUseCase {
	return &SupplyReportUseCase{childRepo: childRepo, dashboard: dashboard, generator: generator}
}

// DownloadSupplyReport calcula el resumen vigente y genera el PDF.
//
// Retorna (pdfBytes, filename, nil) si todo sale bien; domain.ErrNotFound si
// el niño no existe.
func (uc *SupplyReportUseCase) DownloadSupplyReport(
	ctx context.Context,
	childID string,
) (pdfBytes []byte, filename string, err error) {
	child, err := uc.childRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, "", err
	}
	if child == nil {
		return nil, "", domain.ErrNotFound
	}

	summary, err := uc.dashboard.ComputeSummary(ctx, childID)
	if err != nil {
		return nil, "", fmt.Errorf("informe: calcular resumen: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateSupplyReport(ctx, child, summary)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generar PDF: %w", err)
	}

	filename = fmt.Sprintf("suministros_%s_%s.pdf", child.Name, summary.AsOf.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
