package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/studiowebux/catalog/internal/types"
	"go.uber.org/zap"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	repo   ProductRepository
	logger *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.handleRepoError(w, "get", id, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	product, err := h.repo.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("product created", zap.Int64("productId", product.ID))
	h.writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{productId}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	product, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		h.handleRepoError(w, "update", id, err)
		return
	}

	h.logger.Info("product updated", zap.Int64("productId", id))
	h.writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{productId}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.handleRepoError(w, "delete", id, err)
		return
	}

	h.logger.Info("product deleted", zap.Int64("productId", id))
	w.WriteHeader(http.StatusNoContent)
}

// productID parses the {productId} URL parameter, writing 400 on failure
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", zap.String("productId", raw), zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) decodeInput(w http.ResponseWriter, r *http.Request) (types.ProductInput, bool) {
	var in types.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("failed to decode product body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	return in, true
}

func (h *ProductHandler) handleRepoError(w http.ResponseWriter, op string, id int64, err error) {
	if errors.Is(err, ErrProductNotFound) {
		h.logger.Info("product not found", zap.String("op", op), zap.Int64("productId", id))
		h.writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.logger.Error("product operation failed", zap.String("op", op), zap.Int64("productId", id), zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "Internal server error")
}

// writeJSON writes a JSON response
func (h *ProductHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// writeError writes an error response
func (h *ProductHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
