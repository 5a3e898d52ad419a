package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/catalog/internal/types"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	repo := NewInMemoryProductRepository(SampleProducts())
	return NewRouter(repo, zap.NewNop())
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListProducts_ReturnsSeedInIDOrder(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []types.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 4)
	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
	}
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, 1299.99, products[0].Price)
}

func TestListProducts_EmptyRepositoryReturnsArray(t *testing.T) {
	h := NewRouter(NewInMemoryProductRepository(nil), zap.NewNop())
	w := doJSON(t, h, http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetProduct(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"existing", "/api/products/2", http.StatusOK},
		{"missing", "/api/products/99", http.StatusNotFound},
		{"non numeric", "/api/products/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	h := newTestRouter()

	w := doJSON(t, h, http.MethodPost, "/api/products", types.ProductInput{Name: "Pen", Description: "Blue ink", Price: 1.5})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "Pen", created.Name)

	w = doJSON(t, h, http.MethodPut, "/api/products/5", types.ProductInput{Name: "Pen", Description: "Red ink", Price: 2})
	require.Equal(t, http.StatusOK, w.Code)

	var updated types.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, "Red ink", updated.Description)
	assert.Equal(t, 2.0, updated.Price)

	w = doJSON(t, h, http.MethodDelete, "/api/products/5", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/products/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProduct_Missing(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodPut, "/api/products/42", types.ProductInput{Name: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_Missing(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodDelete, "/api/products/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
}

func TestRepository_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProductRepository(SampleProducts())

	require.NoError(t, repo.Delete(ctx, 4))
	p, err := repo.Create(ctx, types.ProductInput{Name: "Tablet"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}

func TestServer_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := New("127.0.0.1:0", NewInMemoryProductRepository(SampleProducts()), zap.NewNop())
	require.NoError(t, srv.Start())

	resp, err := http.Get(srv.URL() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	http.DefaultClient.CloseIdleConnections()
	require.NoError(t, srv.Stop())
	assert.Empty(t, srv.URL())
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := New("127.0.0.1:0", NewInMemoryProductRepository(nil), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	cancel()
	assert.NoError(t, <-errCh)
}
