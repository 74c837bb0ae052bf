package domain

// LineItem is a requested quantity of a product.
type LineItem struct {
	ProductID int32
	Quantity  int32
}

type SaleResult struct {
	Total   Money
	Message string
}

const SaleProcessedMessage = "sale processed"
