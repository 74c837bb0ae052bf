package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	Stock       int32           `json:"stock"`
	CategoryID  int32           `json:"category_id"`
}

type productResponse struct {
	ID           int32           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Stock        int32           `json:"stock"`
	CategoryID   int32           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type idResponse struct {
	ID int32 `json:"id"`
}

type productHandler struct {
	repo            port.ProductRepository
	log             logrus.FieldLogger
	defaultCurrency currency.Unit
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	respondBody(w, http.StatusOK, "products listed", resp)
}

func (h *productHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id)
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	respondBody(w, http.StatusOK, fmt.Sprintf("product[%d] found", id), toProductResponse(product))
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.toDomain(req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	id, err := h.repo.CreateProduct(r.Context(), product)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondBody(w, http.StatusCreated, fmt.Sprintf("product[%d] created", id), idResponse{ID: id})
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.toDomain(req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	product.ID = id

	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		h.respondProductError(w, r, err)
		return
	}

	respondMessage(w, http.StatusOK, fmt.Sprintf("product[%d] updated", id))
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteProduct(r.Context(), id); err != nil {
		h.respondProductError(w, r, err)
		return
	}

	respondMessage(w, http.StatusOK, fmt.Sprintf("product[%d] deleted", id))
}

// respondProductError answers 404 for the addressed product; elsewhere a
// missing product is a bad request.
func (h *productHandler) respondProductError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		respondMessage(w, http.StatusNotFound, err.Error())
		return
	}

	respondError(w, r, h.log, err)
}

func (h *productHandler) toDomain(req productRequest) (domain.Product, error) {
	unit := h.defaultCurrency
	if req.Currency != "" {
		parsed, err := currency.ParseISO(req.Currency)
		if err != nil {
			return domain.Product{}, &domain.ValidationError{
				Kind:   domain.ErrInvalidProduct,
				Reason: fmt.Sprintf("currency[%s] is not valid", req.Currency),
			}
		}
		unit = parsed
	}

	return domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       domain.Money{Amount: req.Price, Currency: unit},
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}, nil
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.Amount,
		Currency:     p.Price.Currency.String(),
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		UpdatedAt:    p.UpdatedAt,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		respondMessage(w, http.StatusBadRequest, fmt.Sprintf("id[%s] is not a positive integer", raw))
		return 0, false
	}

	return int32(id), true
}
