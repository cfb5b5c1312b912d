package domain

// CartRequest is the payload for POST /cart/add
type CartRequest struct {
	UserID     int     `json:"userId"`
	ProductID  int     `json:"productId"`
	SKU        string  `json:"sku"`
	Size       string  `json:"size"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Discount   float64 `json:"discount"`
	FinalPrice float64 `json:"finalPrice"`
}

// CartLine is the created cart entry echoed back by the cart API
type CartLine struct {
	ID         int     `json:"id"`
	UserID     int     `json:"userId"`
	ProductID  int     `json:"productId"`
	SKU        string  `json:"sku"`
	Size       string  `json:"size"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Discount   float64 `json:"discount"`
	FinalPrice float64 `json:"finalPrice"`
}
