package dto

import "time"

type SaleFilters struct {
	From     *time.Time // inclusive
	To       *time.Time // exclusive
	Page     int
	PageSize int // 0 returns every matching sale
}
