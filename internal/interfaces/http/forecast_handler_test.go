package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nido-api/internal/application/dto"
	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Nido-api/internal/interfaces/http"
)

// fakeChildRepo conoce un único niño.
type fakeChildRepo struct {
	child *entity.Child
}

func (r *fakeChildRepo) GetByID(_ context.Context, id string) (*entity.Child, error) {
	if r.child != nil && r.child.ID == id {
		return r.child, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeChildRepo) ListByHousehold(_ context.Context, _ string) ([]*entity.Child, error) {
	if r.child == nil {
		return nil, nil
	}
	return []*entity.Child{r.child}, nil
}

// fakeLotRepo sirve lotes en memoria; solo implementa las lecturas que usan
// las consultas de pronóstico.
type fakeLotRepo struct {
	repository.InventoryLotRepository
	lots map[string][]*entity.InventoryLot // por categoría
}

func (r *fakeLotRepo) ListActiveCategories(_ context.Context, _ string) ([]string, error) {
	cats := make([]string, 0, len(r.lots))
	for cat := range r.lots {
		cats = append(cats, cat)
	}
	return cats, nil
}

func (r *fakeLotRepo) ListByChild(_ context.Context, _ string, categoryKey string, _ bool) ([]*entity.InventoryLot, error) {
	if categoryKey == "" {
		var all []*entity.InventoryLot
		for _, lots := range r.lots {
			all = append(all, lots...)
		}
		return all, nil
	}
	return r.lots[categoryKey], nil
}

// fakeEventRepo devuelve siempre el mismo conteo de eventos en ventana.
type fakeEventRepo struct {
	repository.UsageEventRepository
	count int
}

func (r *fakeEventRepo) CountSince(_ context.Context, _, _ string, _ time.Time) (int, error) {
	return r.count, nil
}

// buildForecastApp arma una app Fiber con las rutas de consulta de pronóstico
// sobre repos en memoria. El niño registrado es testChildID.
func buildForecastApp() *fiber.App {
	childRepo := &fakeChildRepo{child: &entity.Child{ID: testChildID, HouseholdID: "h-1", Name: "Emma"}}
	lotRepo := &fakeLotRepo{lots: map[string][]*entity.InventoryLot{
		"diaper_t3": {
			{
				ID:                "lot-1",
				ChildID:           testChildID,
				CategoryKey:       "diaper_t3",
				QuantityPurchased: 40,
				QuantityRemaining: 30,
				UnitCost:          decimal.NewFromFloat(0.35),
				CreatedAt:         testNow.AddDate(0, 0, -10),
			},
		},
	}}
	eventRepo := &fakeEventRepo{count: 35} // 5/día en la ventana de 7 días

	th := domforecast.DefaultThresholds()
	clk := clock.NewFakeClock(testNow)
	estimatorUC := appforecast.NewEstimatorUseCase(eventRepo, nil, th)
	supplyUC := appforecast.NewSupplyUseCase(lotRepo, estimatorUC, clk, th)

	app := fiber.New()
	grp := app.Group("/api", apphttp.CaregiverMiddleware())
	handler := apphttp.NewForecastHandler(estimatorUC, supplyUC, childRepo, clk)
	grp.Get("/children/:id/forecast", handler.GetForecast)
	grp.Get("/children/:id/estimate", handler.GetEstimate)
	return app
}

func doForecastGet(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(apphttp.HeaderCaregiverID, testCaregiverID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/children/:id/forecast
// ──────────────────────────────────────────────────────────────────────────────

func TestGetForecast_NinoInexistenteRetorna404(t *testing.T) {
	app := buildForecastApp()

	resp := doForecastGet(t, app, "/api/children/no-existe/forecast")
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGetForecast_NinoExistenteRetornaCategorias(t *testing.T) {
	app := buildForecastApp()

	resp := doForecastGet(t, app, "/api/children/"+testChildID+"/forecast")
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ForecastResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testChildID, body.ChildID)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "diaper_t3", body.Categories[0].CategoryKey)
	assert.Equal(t, 30, body.Categories[0].OnHandQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/children/:id/estimate
// ──────────────────────────────────────────────────────────────────────────────

func TestGetEstimate_NinoInexistenteRetorna404(t *testing.T) {
	app := buildForecastApp()

	resp := doForecastGet(t, app, "/api/children/no-existe/estimate?category_key=diaper_t3")
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGetEstimate_NinoExistenteRetornaTasa(t *testing.T) {
	app := buildForecastApp()

	resp := doForecastGet(t, app, "/api/children/"+testChildID+"/estimate?category_key=diaper_t3")
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ConsumptionEstimateDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "diaper_t3", body.CategoryKey)
	assert.InDelta(t, 5.0, body.DailyRate, 1e-9)
}
