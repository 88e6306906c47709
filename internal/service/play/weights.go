package play

import (
	"gachapon_backend/internal/config"
	"gachapon_backend/internal/model"
)

// weightTable Таблица базовых весов по тирам редкости
type weightTable struct {
	tiers    map[int]int64
	fallback int64
}

func newWeightTable(cfg config.GachaConfig) weightTable {
	tiers := make(map[int]int64, len(cfg.RarityWeights()))
	for tier, w := range cfg.RarityWeights() {
		tiers[tier] = int64(w)
	}

	return weightTable{tiers: tiers, fallback: int64(cfg.DefaultWeight())}
}

func (t weightTable) baseWeight(tier int) int64 {
	if w, ok := t.tiers[tier]; ok {
		return w
	}

	return t.fallback
}

// effectiveWeights Посчитать итоговые веса призов с учётом бонуса за сжигание
// и накопленного улучшения шансов. Возвращает веса в порядке items и их сумму
func effectiveWeights(items []model.GachaItem, t weightTable, bonusPct int, oddsBps int) ([]uint64, uint64) {
	mult := uint64(10000 + bonusPct*100 + oddsBps)

	weights := make([]uint64, len(items))
	var sum uint64
	for i, item := range items {
		w := uint64(t.baseWeight(item.RarityTier)) * mult / 10000
		if w == 0 {
			w = 1
		}
		weights[i] = w
		sum += w
	}

	return weights, sum
}

// pickByWeight Кумулятивный проход по весам: r обязан лежать в [0, sum)
func pickByWeight(weights []uint64, r uint64) int {
	var acc uint64
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}

	return len(weights) - 1
}
