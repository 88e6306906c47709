package model

// MaxBurnSharePct Максимальная доля цены игры, которую можно сжечь ради бонуса к шансам
const MaxBurnSharePct = 20

// PlayRequest Запрос на одну игру
type PlayRequest struct {
	CabinetID  int
	Payment    int64 // Оплата, должна покрывать цену игры
	BurnAmount int64 // Сколько утилитарного токена сжечь ради бонуса (0 - без бонуса)
}

// PlayResult Результат одной игры
type PlayResult struct {
	Won          bool
	Item         *GachaItem // Выигранный приз (nil если пусто)
	BonusPct     int        // Бонус от сожженного в этой игре
	OddsBps      int        // Накопленный бонус из статистики сжиганий
	Minted       int64      // Начислено наградного токена (только при проигрыше)
	Burned       int64      // Сожжено утилитарного токена
	Balance      int64      // Баланс игрока после игры
	TokenBalance int64      // Баланс утилитарного токена после игры
}
