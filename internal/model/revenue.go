package model

import "time"

// CabinetRevenue Накопленная выручка кабинета и счетчики игр.
// Balance обнуляется при выводе, счетчики монотонно растут
type CabinetRevenue struct {
	CabinetID    int
	Balance      int64
	TotalPlays   int64
	TotalRevenue int64
	FirstPlayAt  time.Time
	LastPlayAt   time.Time
}

// MaxBatchWithdraw Максимальное количество кабинетов в пакетном выводе
const MaxBatchWithdraw = 10

// Допустимый горизонт прогноза выручки в днях
const (
	MinForecastDays = 1
	MaxForecastDays = 365
)
