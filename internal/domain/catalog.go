package domain

type Ride struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	MinHeightCM int     `json:"min_height_cm,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Active      bool    `json:"active"`
}

type DineItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Veg         bool    `json:"veg"`
	ImageURL    string  `json:"image_url,omitempty"`
	Active      bool    `json:"active"`
}
