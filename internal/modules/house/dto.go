package house

type CreateHouseRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city"`
	Description string `json:"description"`
}

type UpdateHouseRequest struct {
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Description string `json:"description,omitempty"`
}
