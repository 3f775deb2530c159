package dto

type CreateSiteInput struct {
	Name      string `json:"name" binding:"required"`
	Subdomain string `json:"subdomain" binding:"required"`
}

type UpdateSiteInput struct {
	Name      *string `json:"name"`
	Subdomain *string `json:"subdomain"`
}
