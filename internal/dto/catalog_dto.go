package dto

// CatalogRequest creates a category or a genre. There is no update payload:
// the catalog surface is list/create/delete only.
type CatalogRequest struct {
	Name string `json:"name" validate:"required,max=300"`
	Slug string `json:"slug" validate:"required,slug,max=50"`
}
