package requests

type DomainRequest struct {
	Domain          string `json:"domain" validate:"required,fqdn"`
	Status          string `json:"status" validate:"omitempty,oneof=ALLOW BLOCK"`
	InstitutionName string `json:"institutionName"`
}

type DomainUpdateRequest struct {
	Domain          *string `json:"domain" validate:"omitempty,fqdn"`
	Status          *string `json:"status" validate:"omitempty,oneof=ALLOW BLOCK"`
	InstitutionName *string `json:"institutionName"`
}
