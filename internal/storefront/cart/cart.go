package cart

import "time"

// LineItem is one product-quantity pair within a cart. Title, price and
// image are snapshotted from the product at add time so the cart can be
// displayed without re-fetching the catalog.
type LineItem struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Cart is the serialized shape shared by the local durable copy and the
// remote cart resource. UserID is zero for an anonymous cart. RemoteID is
// assigned by the remote cart resource once the cart has been created
// there.
type Cart struct {
	RemoteID int        `json:"id,omitempty"`
	UserID   int        `json:"userId"`
	Date     time.Time  `json:"date"`
	Items    []LineItem `json:"products"`
}

// TotalPrice returns the sum of price x quantity across all line items.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalItems returns the sum of quantities across all line items.
func (c Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
