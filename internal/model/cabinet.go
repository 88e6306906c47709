package model

// Ограничения конфигурации кабинета
const (
	// MaxItemsLimit Максимальная вместимость пула призов
	MaxItemsLimit = 10
	// MaxFeeRateBps Максимальная комиссия платформы в базисных пунктах
	MaxFeeRateBps = 10000
)

// Cabinet Конфигурация гача-автомата.
// Владение кабинетом задается внешним коллаборатором, здесь хранится только ID владельца
type Cabinet struct {
	ID            int
	OwnerID       int
	PlayPrice     int64 // Цена одной игры (положительная)
	MaxItems      int   // Вместимость пула призов (не больше MaxItemsLimit)
	FeeRateBps    int   // Комиссия платформы в базисных пунктах (0-10000)
	IsActive      bool
	InMaintenance bool
}

type CreateCabinet struct {
	PlayPrice  int64
	MaxItems   int
	FeeRateBps int
}
