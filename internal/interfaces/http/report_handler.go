package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/application/report"
	"github.com/jhoicas/Nido-api/internal/domain"
)

// ReportHandler maneja la descarga del informe de suministros en PDF.
type ReportHandler struct {
	reportUC *report.SupplyReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *report.SupplyReportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// DownloadSupplyReport godoc
// @Summary      Descargar el informe de suministros de un niño (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del niño"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/children/{id}/report [get]
func (h *ReportHandler) DownloadSupplyReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.reportUC.DownloadSupplyReport(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "niño no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
