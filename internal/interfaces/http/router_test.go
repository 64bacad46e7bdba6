package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abarrotes-api/internal/application/ordering"
	"github.com/jhoicas/Abarrotes-api/internal/application/query"
	"github.com/jhoicas/Abarrotes-api/internal/application/usecase"
	"github.com/jhoicas/Abarrotes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Abarrotes-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Abarrotes-api/internal/interfaces/http"
	"github.com/jhoicas/Abarrotes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	app := fiber.New()
	app.Get("/health", apphttp.Health("abarrotes-test"))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(store.Products()),
		ClientUC:  usecase.NewClientUseCase(store.Clients()),
		OrderUC:   usecase.NewOrderUseCase(store.Orders()),
		Ledger:    ordering.NewLoggingLedger(ordering.NewLedger(store), log),
		Queries:   query.NewFacade(store.Products(), store.Clients(), store.Queries()),
		Restock:   pdf.NewRestockReportGenerator("Abarrotes test"),
		Log:       log,
	})
	return app
}

// doJSON lanza una petición y decodifica el cuerpo JSON (si hay) en un mapa.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), "cuerpo: %s", raw)
	}
	return resp.StatusCode, out
}

func doJSONList(t *testing.T, app *fiber.App, path string) (int, []map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createProduct(t *testing.T, app *fiber.App, name string, stock int) int64 {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": name, "price": "3.5", "stock": stock, "category": "Bebidas",
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	return int64(body["id"].(float64))
}

func createClient(t *testing.T, app *fiber.App, email string) int64 {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/clients", map[string]any{
		"name": "Cliente", "email": email, "address": "Calle 1",
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	return int64(body["id"].(float64))
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	status, body := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestProducts_CRUD(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Agua", 10)

	status, body := doJSON(t, app, http.MethodGet, "/api/products/"+itoa(id), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Agua", body["name"])
	assert.Equal(t, "3.5", body["price"])

	status, body = doJSON(t, app, http.MethodPut, "/api/products/"+itoa(id), map[string]any{"stock": 4})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 4, body["stock"])
	assert.Equal(t, "Agua", body["name"])

	status, body = doJSON(t, app, http.MethodGet, "/api/products?category=bebidas", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(id), nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/products/"+itoa(id), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestProducts_Errores(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Agua", "price": "1", "stock": -1, "category": "Bebidas",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "stock", body["field"])

	status, body = doJSON(t, app, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", body["code"])

	status, body = doJSON(t, app, http.MethodGet, "/api/products?category=juguetes", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "category", body["field"])
}

func TestClients_ListaSinDireccionYDuplicado(t *testing.T) {
	app := buildTestApp(t)
	id := createClient(t, app, "ana@x.co")

	status, body := doJSON(t, app, http.MethodPost, "/api/clients", map[string]any{"name": "Otra", "email": "ANA@x.co"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = doJSON(t, app, http.MethodGet, "/api/clients", nil)
	require.Equal(t, fiber.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.NotContains(t, items[0].(map[string]any), "address")

	status, body = doJSON(t, app, http.MethodGet, "/api/clients/"+itoa(id), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Calle 1", body["address"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_Ciclo(t *testing.T) {
	app := buildTestApp(t)
	productID := createProduct(t, app, "Agua", 10)
	clientID := createClient(t, app, "ana@x.co")

	status, body := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"client_id": clientID, "product_id": productID, "quantity": 4,
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	assert.EqualValues(t, 6, body["product_stock"])
	orderID := int64(body["order"].(map[string]any)["id"].(float64))

	status, body = doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"client_id": clientID, "product_id": productID, "quantity": 7,
	})
	require.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.EqualValues(t, 1, body["shortfall"])
	assert.EqualValues(t, 6, body["available"])

	status, body = doJSON(t, app, http.MethodPut, "/api/orders/"+itoa(orderID), map[string]any{"quantity": 6})
	require.Equal(t, fiber.StatusOK, status, "body: %v", body)
	assert.EqualValues(t, 4, body["product_stock"])

	status, body = doJSON(t, app, http.MethodGet, "/api/orders", nil)
	require.Equal(t, fiber.StatusOK, status)
	line := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "Cliente", line["client_name"])
	assert.Equal(t, "Agua", line["product_name"])

	status, body = doJSON(t, app, http.MethodDelete, "/api/orders/"+itoa(orderID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 10, body["product_stock"])
	assert.Equal(t, true, body["stock_restored"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/orders/"+itoa(orderID), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestOrders_ReferenciaInexistente(t *testing.T) {
	app := buildTestApp(t)
	productID := createProduct(t, app, "Agua", 10)

	status, body := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"client_id": 99, "product_id": productID, "quantity": 1,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "REFERENCE", body["code"])
	assert.Equal(t, "client_id", body["field"])

	status, body = doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"client_id": 1, "product_id": productID, "quantity": 0,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "quantity", body["field"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, "Agua", 2)
	createProduct(t, app, "Gaseosa", 40)

	status, summary := doJSONList(t, app, "/api/reports/categories")
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, summary, 11)
	for _, s := range summary {
		if s["category"] == "Bebidas" {
			assert.EqualValues(t, 2, s["products"])
			assert.EqualValues(t, 42, s["total_stock"])
		}
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/reports/low-stock", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 5, body["threshold"])
	assert.Len(t, body["items"], 1)

	status, body = doJSON(t, app, http.MethodGet, "/api/reports/low-stock?threshold=100", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["items"], 2)

	status, _ = doJSON(t, app, http.MethodGet, "/api/reports/low-stock?threshold=x", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/low-stock.pdf?threshold=3", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
