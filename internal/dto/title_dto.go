package dto

// TitleRequest is the write payload: category and genres arrive as slugs and
// are resolved to references, 404 when a slug is unknown.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=300"`
	Year        *int     `json:"year" validate:"omitempty,notfutureyear"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// TitleUpdateRequest is a partial update of the same payload.
type TitleUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=300"`
	Year        *int     `json:"year" validate:"omitempty,notfutureyear"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// TitleFilter narrows the title list.
type TitleFilter struct {
	Category string
	Genre    string
	Year     *int
	Name     string
}
