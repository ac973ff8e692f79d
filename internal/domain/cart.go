package domain

// CartLine is one product's presence in the cart, keyed by ProductID.
// Price is captured at the time the line is added and is not re-synced
// from the catalog; Stock is refreshed opportunistically.
type CartLine struct {
	ProductID   string  `json:"productId"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Quantity    int     `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// LinePatch carries optional field updates for an existing cart line.
// Nil fields are left untouched.
type LinePatch struct {
	Title       *string
	Price       *float64
	Image       *string
	Description *string
}
