package model

import "strconv"

// AssetHolding Запись кастодиального реестра: кто держит какой актив.
// Для уникальных активов одна запись на TokenID, для количественных - сумма на держателя
type AssetHolding struct {
	Holder   string
	Kind     AssetKind
	AssetRef string
	TokenID  int64 // Только для уникальных активов
	Amount   int64 // Только для количественных активов
}

// UserPrincipal Принципал пользователя в кастодиальном реестре
func UserPrincipal(userID int) string {
	return "user:" + strconv.Itoa(userID)
}

// CabinetPrincipal Принципал эскроу кабинета в кастодиальном реестре
func CabinetPrincipal(cabinetID int) string {
	return "cabinet:" + strconv.Itoa(cabinetID)
}
