// Package api contains the API contract definitions of the normalization
// service. Version v1 is the current stable API version.
package api

import (
	"pasarcli/pkg/contracts/domain"
)

// ProcessOrdersRequest carries the form fields of an orders upload. The
// files themselves travel as multipart parts named "files".
type ProcessOrdersRequest struct {
	Marketplace string `json:"marketplace" form:"marketplace" validate:"required,oneof=shopee tiktok"`
	Platform    string `json:"platform" form:"platform" validate:"required,min=2,max=64"`
	Operator    string `json:"operator" form:"operator" validate:"required,min=2,max=128"`
	Format      string `json:"format" form:"format" validate:"omitempty,oneof=json xlsx csv"`
}

// ProcessIncomeRequest carries the form fields of a settlement upload.
type ProcessIncomeRequest struct {
	Marketplace string `json:"marketplace" form:"marketplace" validate:"required,oneof=shopee tiktok"`
	Format      string `json:"format" form:"format" validate:"omitempty,oneof=json xlsx csv"`
}

// ProcessOrdersResponse is the JSON body of a successful orders run.
type ProcessOrdersResponse struct {
	Success bool              `json:"success"`
	Stats   domain.BatchStats `json:"stats"`
	Rows    []domain.OrderRow `json:"rows"`
}

// ProcessIncomeResponse is the JSON body of a successful income run.
type ProcessIncomeResponse struct {
	Success bool               `json:"success"`
	Stats   domain.BatchStats  `json:"stats"`
	Rows    []domain.IncomeRow `json:"rows"`
}

// BrandUploadResponse reports the outcome of a brand mapping upload.
type BrandUploadResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// BrandListResponse returns the current brand mapping table.
type BrandListResponse struct {
	Success  bool                  `json:"success"`
	Count    int                   `json:"count"`
	Mappings []domain.BrandMapping `json:"mappings"`
}
