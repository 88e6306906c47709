package play

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"context"
	"errors"
	"log"
	"time"
)

// Play - одна игра: оплата, розыгрыш приза и расчет строго в одной транзакции.
// Параллельные и вложенные игры отклоняются флагом занятости, а не ждут очереди
func (s *serv) Play(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	if s.platformState.IsPaused() {
		return nil, ErrPaused
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	if !s.platformState.TryBeginOperation() {
		return nil, ErrBusy
	}
	defer s.platformState.EndOperation()

	cabinet, err := s.cabinetRepo.GetCabinet(ctx, req.CabinetID)
	if err != nil {
		return nil, err
	}
	if !cabinet.IsActive {
		return nil, ErrCabinetInactive
	}
	if cabinet.InMaintenance {
		return nil, ErrInMaintenance
	}

	if req.Payment < cabinet.PlayPrice {
		return nil, ErrInsufficientPayment
	}
	if req.BurnAmount < 0 || req.BurnAmount*100 > cabinet.PlayPrice*model.MaxBurnSharePct {
		return nil, ErrBurnTooLarge
	}

	// Бонус за сжигание в этой игре: процент от цены, не больше MaxBurnSharePct
	bonusPct := int(req.BurnAmount * 100 / cabinet.PlayPrice)

	res := &model.PlayResult{BonusPct: bonusPct, Burned: req.BurnAmount}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		balance, errTx := s.userRepo.GetBalance(ctx, userID)
		if errTx != nil {
			return errTx
		}
		if balance < cabinet.PlayPrice {
			return ErrInsufficientBalance
		}

		if errTx = s.userRepo.UpdateBalance(ctx, userID, balance-cabinet.PlayPrice); errTx != nil {
			return errTx
		}
		res.Balance = balance - cabinet.PlayPrice

		oddsBps, errTx := s.tokenServ.OddsImprovement(ctx, userID)
		if errTx != nil {
			return errTx
		}
		res.OddsBps = oddsBps

		pool, errTx := s.escrowServ.ActiveItems(ctx, req.CabinetID)
		if errTx != nil {
			return errTx
		}

		// Пустой пул призов разыгрывается сразу как проигрыш, генератор не трогаем
		if len(pool) > 0 {
			weights, sum := effectiveWeights(pool, s.weights, bonusPct, oddsBps)

			// Диапазон удвоен: верхняя половина - без приза, шанс выигрыша 50%
			r, errRnd := s.randomServ.GenerateInRange(uint64(time.Now().UnixNano()), RandomConsumerName, 0, 2*sum-1)
			if errRnd != nil {
				return errRnd
			}

			if r < sum {
				item := pool[pickByWeight(weights, r)]
				if errTx = s.escrowServ.ReleaseToPlayer(ctx, item, userID); errTx != nil {
					return errTx
				}
				res.Won = true
				res.Item = &item
			}
		}

		if req.BurnAmount > 0 {
			if errTx = s.tokenServ.BurnForGachaPlay(ctx, userID, req.BurnAmount, req.CabinetID); errTx != nil {
				return errTx
			}
		}

		// Утешительный выпуск токена только при проигрыше
		if !res.Won {
			minted, errMint := s.tokenServ.MintForGachaReward(ctx, userID, cabinet.PlayPrice, req.CabinetID)
			if errMint != nil {
				return errMint
			}
			res.Minted = minted
		}

		if errTx = s.revenueServ.AccruePlay(ctx, req.CabinetID, cabinet.PlayPrice, cabinet.FeeRateBps); errTx != nil {
			return errTx
		}

		stats, errTx := s.tokenServ.Stats(ctx, userID)
		if errTx != nil {
			return errTx
		}
		res.TokenBalance = stats.Balance

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Зеркало счетчиков обновляется после коммита, ошибка кеша игру не ломает
	if err = s.statsCache.RecordPlay(ctx, req.CabinetID, cabinet.PlayPrice); err != nil {
		log.Printf("failed to record play stats for cabinet %d: %v", req.CabinetID, err)
	}

	return res, nil
}
