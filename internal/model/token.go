package model

// BurnStat Персональная статистика сжигания утилитарного токена.
// Монотонно растет, пути возврата нет
type BurnStat struct {
	UserID      int
	TotalBurned int64
	BurnCount   int64
}

// CabinetTokenConfig Регистрация кабинета в токен-экономике.
// Создается один раз при регистрации, дальше обновляется админом и каждым минтом/сжиганием
type CabinetTokenConfig struct {
	CabinetID       int
	IsActive        bool
	TotalEmitted    int64
	TotalBurned     int64
	EmissionMultBps int // По умолчанию 10000 (100%)
}

// DefaultEmissionMultBps Множитель эмиссии по умолчанию
const DefaultEmissionMultBps = 10000

// EmissionConfig Глобальные границы эмиссии наградного токена
type EmissionConfig struct {
	BaseRate    int64
	MaxRate     int64
	DecayFactor int64
	IsActive    bool
}

// TokenSupply Глобальный счетчик выпуска токена
type TokenSupply struct {
	TotalMinted int64
	TotalBurned int64
}

// TokenStats Сводка по токену для пользователя
type TokenStats struct {
	Balance     int64
	TotalBurned int64
	BurnCount   int64
	OddsBps     int // Текущий бонус к шансам в базисных пунктах
}
