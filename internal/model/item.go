package model

// Вид актива приза
type AssetKind string

const (
	// AssetKindDistinct Уникальный актив (один экземпляр с собственным ID)
	AssetKindDistinct AssetKind = "distinct"
	// AssetKindFungible Количественный актив
	AssetKindFungible AssetKind = "fungible"
)

// Диапазон тиров редкости. Тир 1 самый тяжелый (частый), тир 5 самый редкий
const (
	MinRarityTier = 1
	MaxRarityTier = 5
)

// GachaItem Один приз в пуле кабинета.
// Запись существует только пока актив реально находится в кастодиальном хранении
type GachaItem struct {
	ID         int
	CabinetID  int
	Kind       AssetKind
	AssetRef   string // Идентификатор контракта/коллекции актива
	UnitsOrID  int64  // ID токена для уникальных активов, количество для количественных
	RarityTier int
	IsActive   bool // Неактивный приз исключается из пула без возврата кастодии
	Label      string
}

// DepositItem Заявка на внесение приза в пул
type DepositItem struct {
	Kind       AssetKind
	AssetRef   string
	UnitsOrID  int64
	RarityTier int
	Label      string
}
