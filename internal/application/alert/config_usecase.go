package alert

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// ConfigUseCase lee y guarda la configuración de umbrales de un cuidador.
type ConfigUseCase struct {
	cfgRepo  repository.AlertConfigRepository
	clk      clock.Clock
	defaults entity.AlertConfig
}

// NewConfigUseCase construye el caso de uso.
func NewConfigUseCase(cfgRepo repository.AlertConfigRepository, clk clock.Clock, defaults entity.AlertConfig) *ConfigUseCase {
	return &ConfigUseCase{cfgRepo: cfgRepo, clk: clk, defaults: defaults}
}

// Get devuelve la configuración vigente; si el cuidador no guardó ninguna,
// devuelve los valores por defecto del despliegue.
func (uc *ConfigUseCase) Get(ctx context.Context, caregiverID, childID string) (*entity.AlertConfig, error) {
	cfg, err := uc.cfgRepo.Get(ctx, caregiverID, childID)
	if err != nil {
		if err == domain.ErrNotFound {
			d := uc.defaults
			d.CaregiverID = caregiverID
			d.ChildID = childID
			return &d, nil
		}
		return nil, fmt.Errorf("configuración de alertas: %w", err)
	}
	return cfg, nil
}

// Save valida y persiste la configuración.
//
// Invariante del borde de configuración: crítico < bajo, siempre. Una
// configuración que lo viole se rechaza de forma síncrona, antes de
// persistir; nunca se "arregla" intercambiando los valores.
func (uc *ConfigUseCase) Save(ctx context.Context, caregiverID string, in dto.AlertConfigRequest) (*entity.AlertConfig, error) {
	if caregiverID == "" || in.ChildID == "" {
		return nil, domain.ErrInvalidInput
	}

	cfg := &entity.AlertConfig{
		CaregiverID:            caregiverID,
		ChildID:                in.ChildID,
		LowStockThreshold:      in.LowStockThreshold,
		CriticalStockThreshold: in.CriticalStockThreshold,
		WindowDays:             in.WindowDays,
		UpdatedAt:              uc.clk.Now(),
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = uc.defaults.WindowDays
	}
	if !cfg.Valid() {
		return nil, domain.ErrInvalidThresholds
	}

	if err := uc.cfgRepo.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("guardar configuración de alertas: %w", err)
	}
	return cfg, nil
}
