package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/sirupsen/logrus"
)

// infraKinds are reported by kind only; the cause stays in the logs.
var infraKinds = []error{
	domain.ErrTxStart,
	domain.ErrTxCommit,
	domain.ErrStockUpdate,
	domain.ErrInventoryRead,
}

func errorStatus(err error) (int, string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty, add items before checkout"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrCheckoutTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, domain.ErrCheckoutTimeout.Error()
	}

	for _, kind := range infraKinds {
		if errors.Is(err, kind) {
			return http.StatusInternalServerError, kind.Error()
		}
	}

	return http.StatusInternalServerError, "internal error"
}

func respondError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	status, message := errorStatus(err)

	if status >= http.StatusInternalServerError {
		requestLog(log, r).WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}

	respondMessage(w, status, message)
}
