package domain

// Product mirrors the backend catalog document. The backend assigns
// the ID; the client never invents one.
type Product struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}
