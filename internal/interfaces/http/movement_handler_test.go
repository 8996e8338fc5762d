package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/stockpilot/stockpilot-api/internal/application/ledger"
	"github.com/stockpilot/stockpilot-api/internal/application/usecase"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
	ihttp "github.com/stockpilot/stockpilot-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria mínimos para levantar el router completo con app.Test.
// ──────────────────────────────────────────────────────────────────────────────

type stubStore struct {
	movements []*entity.Movement
	byUUID    map[string]*entity.Movement
	stock     map[string]decimal.Decimal
	nextID    int64
	products  map[string]*entity.Product
	locations map[string]*entity.Location
}

func key(productID, locationID string) string { return productID + "|" + locationID }

type stubMovementRepo struct{ s *stubStore }

func (r *stubMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if _, ok := r.s.byUUID[m.MovementUUID]; ok {
		return domain.ErrDuplicateMovement
	}
	r.s.nextID++
	m.ID = r.s.nextID
	r.s.movements = append(r.s.movements, m)
	r.s.byUUID[m.MovementUUID] = m
	return nil
}

func (r *stubMovementRepo) GetByUUID(_ context.Context, movementUUID string) (*entity.Movement, error) {
	return r.s.byUUID[movementUUID], nil
}

func (r *stubMovementRepo) List(_ context.Context, limit int) ([]*entity.MovementWithNames, error) {
	var list []*entity.MovementWithNames
	for i := len(r.s.movements) - 1; i >= 0 && len(list) < limit; i-- {
		list = append(list, &entity.MovementWithNames{Movement: *r.s.movements[i]})
	}
	return list, nil
}

type stubStockRepo struct{ s *stubStore }

func (r *stubStockRepo) Get(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return &entity.StockLevel{ProductID: productID, LocationID: locationID, Quantity: r.s.stock[key(productID, locationID)]}, nil
}

func (r *stubStockRepo) Ensure(_ context.Context, productID, locationID string) error {
	k := key(productID, locationID)
	if _, ok := r.s.stock[k]; !ok {
		r.s.stock[k] = decimal.Zero
	}
	return nil
}

func (r *stubStockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return r.Get(ctx, productID, locationID)
}

func (r *stubStockRepo) ApplyDelta(_ context.Context, productID, locationID string, delta decimal.Decimal) error {
	k := key(productID, locationID)
	r.s.stock[k] = r.s.stock[k].Add(delta)
	return nil
}

func (r *stubStockRepo) List(_ context.Context, limit, offset int) ([]*entity.StockLevel, error) {
	return nil, nil
}

type stubProductRepo struct{ s *stubStore }

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}
func (r *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *stubProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type stubLocationRepo struct{ s *stubStore }

func (r *stubLocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.locations[l.ID] = l
	return nil
}
func (r *stubLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.s.locations[id], nil
}
func (r *stubLocationRepo) GetByCode(_ context.Context, code string) (*entity.Location, error) {
	return nil, nil
}
func (r *stubLocationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	return nil, nil
}
func (r *stubLocationRepo) SetActive(_ context.Context, id string, active bool) error {
	if l, ok := r.s.locations[id]; ok {
		l.Active = active
	}
	return nil
}

// Sin transaccionalidad real: los tests de rollback viven en la capa de aplicación.
type stubTxRunner struct{ s *stubStore }

func (t *stubTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockLevelRepository,
) error) error {
	return fn(&stubMovementRepo{s: t.s}, &stubStockRepo{s: t.s})
}

// ──────────────────────────────────────────────────────────────────────────────

const (
	testProduct  = "11111111-1111-1111-1111-111111111111"
	testLocation = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaa1"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	s := &stubStore{
		byUUID:    make(map[string]*entity.Movement),
		stock:     make(map[string]decimal.Decimal),
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
	}
	s.products[testProduct] = &entity.Product{ID: testProduct, SKU: "WID-001", Name: "Widget"}
	s.locations[testLocation] = &entity.Location{ID: testLocation, Code: "BOD-1", Name: "Bodega 1", Active: true}

	productRepo := &stubProductRepo{s: s}
	locationRepo := &stubLocationRepo{s: s}
	movementRepo := &stubMovementRepo{s: s}
	stockRepo := &stubStockRepo{s: s}

	app := fiber.New()
	ihttp.Router(app, ihttp.RouterDeps{
		ApplyMovement: appledger.NewApplyMovementUseCase(&stubTxRunner{s: s}, movementRepo, productRepo, locationRepo, false),
		ListMovements: appledger.NewListMovementsUseCase(movementRepo, 100),
		ProductUC:     usecase.NewProductUseCase(productRepo),
		LocationUC:    usecase.NewLocationUseCase(locationRepo),
		StockUC:       usecase.NewStockUseCase(stockRepo),
	})
	return app
}

func postMovement(t *testing.T, app *fiber.App, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMovementHandler_CreateAceptado(t *testing.T) {
	app := newTestApp(t)

	resp := postMovement(t, app, map[string]any{
		"type": "IN", "product_id": testProduct, "to_location_id": testLocation, "quantity": "10",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "IN", body["type"])
	assert.Equal(t, false, body["already_applied"])
	assert.NotEmpty(t, body["movement_uuid"], "el servidor genera el uuid cuando falta")
}

func TestMovementHandler_DuplicadoIdempotente(t *testing.T) {
	app := newTestApp(t)
	in := map[string]any{
		"movement_uuid": "99999999-9999-9999-9999-999999999999",
		"type":          "IN", "product_id": testProduct, "to_location_id": testLocation, "quantity": "10",
	}

	first := postMovement(t, app, in)
	require.Equal(t, fiber.StatusCreated, first.StatusCode)
	firstBody := decodeBody(t, first)

	second := postMovement(t, app, in)
	require.Equal(t, fiber.StatusOK, second.StatusCode, "el duplicado responde 200, no 201")
	secondBody := decodeBody(t, second)

	assert.Equal(t, true, secondBody["already_applied"])
	assert.Equal(t, firstBody["id"], secondBody["id"], "mismo registro en ambas respuestas")
}

func TestMovementHandler_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "tipo desconocido",
			body:       map[string]any{"type": "TELEPORT", "product_id": testProduct, "to_location_id": testLocation, "quantity": "1"},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_TYPE",
		},
		{
			name:       "cantidad faltante",
			body:       map[string]any{"type": "IN", "product_id": testProduct, "to_location_id": testLocation},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "MISSING_FIELD",
		},
		{
			name:       "cantidad no positiva",
			body:       map[string]any{"type": "IN", "product_id": testProduct, "to_location_id": testLocation, "quantity": "-2"},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_QUANTITY",
		},
		{
			name:       "MOVE sin destino",
			body:       map[string]any{"type": "MOVE", "product_id": testProduct, "from_location_id": testLocation, "quantity": "1"},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "MISSING_LOCATION",
		},
		{
			name:       "producto desconocido",
			body:       map[string]any{"type": "IN", "product_id": "00000000-0000-0000-0000-000000000000", "to_location_id": testLocation, "quantity": "1"},
			wantStatus: fiber.StatusNotFound,
			wantCode:   "UNKNOWN_PRODUCT",
		},
		{
			name:       "ubicación desconocida",
			body:       map[string]any{"type": "IN", "product_id": testProduct, "to_location_id": "00000000-0000-0000-0000-000000000000", "quantity": "1"},
			wantStatus: fiber.StatusNotFound,
			wantCode:   "UNKNOWN_LOCATION",
		},
		{
			name:       "stock insuficiente",
			body:       map[string]any{"type": "OUT", "product_id": testProduct, "from_location_id": testLocation, "quantity": "5"},
			wantStatus: fiber.StatusConflict,
			wantCode:   "INSUFFICIENT_STOCK",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			resp := postMovement(t, app, tc.body)
			require.Equal(t, tc.wantStatus, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, tc.wantCode, body["code"])
		})
	}
}

func TestMovementHandler_CuerpoInvalido(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_BODY", body["code"])
}

func TestMovementHandler_List(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 3; i++ {
		resp := postMovement(t, app, map[string]any{
			"type": "IN", "product_id": testProduct, "to_location_id": testLocation, "quantity": "1",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/movements?limit=2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["total"])
	movements, ok := body["movements"].([]any)
	require.True(t, ok)
	require.Len(t, movements, 2)
	first, ok := movements[0].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, first["id"], "más recientes primero")
}
