package catalog

// ---------- RIDES ----------

type CreateRideRequest struct {
	Location    string  `json:"location"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	MinHeightCM int     `json:"min_height_cm" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

// ---------- DINE ----------

type CreateDineItemRequest struct {
	Location    string  `json:"location"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Veg         bool    `json:"veg"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}
