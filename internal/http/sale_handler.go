package http

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type lineItemDTO struct {
	ProductID int32 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type saleResponse struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	Message     string          `json:"message"`
}

type saleHandler struct {
	cart     CartService
	checkout CheckoutService
	log      logrus.FieldLogger
}

func (h *saleHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req lineItemDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	item := domain.LineItem{ProductID: req.ProductID, Quantity: req.Quantity}
	if err := h.cart.Add(r.Context(), item); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondMessage(w, http.StatusOK, "item added to cart")
}

func (h *saleHandler) viewCart(w http.ResponseWriter, _ *http.Request) {
	items := h.cart.View()

	resp := make([]lineItemDTO, 0, len(items))
	for _, item := range items {
		resp = append(resp, lineItemDTO{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	respondBody(w, http.StatusOK, "cart contents", resp)
}

func (h *saleHandler) sale(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkout.Checkout(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	requestLog(h.log, r).WithField("total", result.Total.String()).Info("sale completed")

	respondBody(w, http.StatusOK, result.Message, saleResponse{
		TotalAmount: result.Total.Amount,
		Currency:    result.Total.Currency.String(),
		Message:     result.Message,
	})
}
