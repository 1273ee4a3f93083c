package dto

type UserFilters struct {
	Page     int
	PageSize int
}
