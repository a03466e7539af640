package dto

type DirectoryQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=verified unverified blacklisted"`
	Search   string `query:"search"`
	Region   string `query:"region"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

type DirectorySpaResponse struct {
	Id              uint   `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	Name            string `json:"name"`
	Address         string `json:"address,omitempty"`
	Region          string `json:"region,omitempty"`
	Category        string `json:"category"`
}

type DirectoryListResponse struct {
	Items    []*DirectorySpaResponse `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

type RegionCountResponse struct {
	Region string `json:"region"`
	Count  int64  `json:"count"`
}
