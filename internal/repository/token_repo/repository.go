package token_repo

import (
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	balanceTable = "token_balances"
	colUserID    = "user_id"
	colBalance   = "balance"

	supplyTable    = "token_supply"
	colID          = "id"
	colTotalMinted = "total_minted"
	colTotalBurned = "total_burned"

	burnStatTable = "burn_stats"
	colBurnCount  = "burn_count"

	cabinetTable       = "cabinet_token_configs"
	colCabinetID       = "cabinet_id"
	colIsActive        = "is_active"
	colTotalEmitted    = "total_emitted"
	colEmissionMultBps = "emission_mult_bps"

	emissionTable  = "emission_config"
	colBaseRate    = "base_rate"
	colMaxRate     = "max_rate"
	colDecayFactor = "decay_factor"

	// В token_supply и emission_config всегда ровно одна строка
	singletonRowID = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTokenRepository(dbc *pgxpool.Pool) repository.TokenRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetTokenBalance - баланс утилитарного токена пользователя. 0, если записи нет
func (r *repo) GetTokenBalance(ctx context.Context, userID int) (int64, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		From(balanceTable).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return balance, nil
}

// AddTokenBalance - изменяет баланс токена на delta. Достаточность проверяет сервис до вызова
func (r *repo) AddTokenBalance(ctx context.Context, userID int, delta int64) error {
	// Формируем запрос: вставка или инкремент существующей строки
	query := sq.Insert(balanceTable).
		Columns(colUserID, colBalance).
		Values(userID, delta).
		Suffix("ON CONFLICT (" + colUserID + ") DO UPDATE SET " +
			colBalance + " = " + balanceTable + "." + colBalance + " + EXCLUDED." + colBalance).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetSupply - глобальные счетчики выпуска и сжигания токена
func (r *repo) GetSupply(ctx context.Context) (*model.TokenSupply, error) {
	// Формируем запрос
	query := sq.Select(colTotalMinted, colTotalBurned).
		From(supplyTable).
		Where(sq.Eq{colID: singletonRowID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var supply model.TokenSupply
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&supply.TotalMinted, &supply.TotalBurned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.TokenSupply{}, nil
		}
		return nil, err
	}

	return &supply, nil
}

// addSupply - инкремент одного из глобальных счетчиков выпуска
func (r *repo) addSupply(ctx context.Context, column string, amount int64) error {
	minted, burned := int64(0), int64(0)
	if column == colTotalMinted {
		minted = amount
	} else {
		burned = amount
	}

	query := sq.Insert(supplyTable).
		Columns(colID, colTotalMinted, colTotalBurned).
		Values(singletonRowID, minted, burned).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " +
			column + " = " + supplyTable + "." + column + " + EXCLUDED." + column).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *repo) AddMinted(ctx context.Context, amount int64) error {
	return r.addSupply(ctx, colTotalMinted, amount)
}

func (r *repo) AddSupplyBurned(ctx context.Context, amount int64) error {
	return r.addSupply(ctx, colTotalBurned, amount)
}

// GetBurnStat - персональная статистика сжиганий пользователя. Нулевая, если записи нет
func (r *repo) GetBurnStat(ctx context.Context, userID int) (*model.BurnStat, error) {
	// Формируем запрос
	query := sq.Select(colTotalBurned, colBurnCount).
		From(burnStatTable).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	stat := model.BurnStat{UserID: userID}
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&stat.TotalBurned, &stat.BurnCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &stat, nil
		}
		return nil, err
	}

	return &stat, nil
}

// AddBurnStat - накапливает персональную статистику сжиганий. Статистика только растет
func (r *repo) AddBurnStat(ctx context.Context, userID int, amount int64) error {
	// Формируем запрос
	query := sq.Insert(burnStatTable).
		Columns(colUserID, colTotalBurned, colBurnCount).
		Values(userID, amount, 1).
		Suffix("ON CONFLICT (" + colUserID + ") DO UPDATE SET " +
			colTotalBurned + " = " + burnStatTable + "." + colTotalBurned + " + EXCLUDED." + colTotalBurned + ", " +
			colBurnCount + " = " + burnStatTable + "." + colBurnCount + " + 1").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetCabinetTokenConfig - регистрация кабинета в токен-экономике
func (r *repo) GetCabinetTokenConfig(ctx context.Context, cabinetID int) (*model.CabinetTokenConfig, error) {
	// Формируем запрос
	query := sq.Select(colIsActive, colTotalEmitted, colTotalBurned, colEmissionMultBps).
		From(cabinetTable).
		Where(sq.Eq{colCabinetID: cabinetID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	cfg := model.CabinetTokenConfig{CabinetID: cabinetID}
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&cfg.IsActive, &cfg.TotalEmitted, &cfg.TotalBurned, &cfg.EmissionMultBps)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCabinetNotRegistered
		}
		return nil, err
	}

	return &cfg, nil
}

// CreateCabinetTokenConfig - регистрирует кабинет. Повторная регистрация отклоняется
func (r *repo) CreateCabinetTokenConfig(ctx context.Context, cfg *model.CabinetTokenConfig) error {
	// Формируем запрос
	query := sq.Insert(cabinetTable).
		Columns(colCabinetID, colIsActive, colTotalEmitted, colTotalBurned, colEmissionMultBps).
		Values(cfg.CabinetID, cfg.IsActive, cfg.TotalEmitted, cfg.TotalBurned, cfg.EmissionMultBps).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// SetCabinetTokenActive - включает или выключает участие кабинета в токен-экономике
func (r *repo) SetCabinetTokenActive(ctx context.Context, cabinetID int, active bool) error {
	// Формируем запрос
	query := sq.Update(cabinetTable).
		Set(colIsActive, active).
		Where(sq.Eq{colCabinetID: cabinetID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrCabinetNotRegistered
	}

	return nil
}

// addCabinetCounter - инкремент счетчика эмиссии или сжигания на кабинете
func (r *repo) addCabinetCounter(ctx context.Context, cabinetID int, column string, amount int64) error {
	query := sq.Update(cabinetTable).
		Set(column, sq.Expr(column+" + ?", amount)).
		Where(sq.Eq{colCabinetID: cabinetID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrCabinetNotRegistered
	}

	return nil
}

func (r *repo) AddCabinetEmitted(ctx context.Context, cabinetID int, amount int64) error {
	return r.addCabinetCounter(ctx, cabinetID, colTotalEmitted, amount)
}

func (r *repo) AddCabinetBurned(ctx context.Context, cabinetID int, amount int64) error {
	return r.addCabinetCounter(ctx, cabinetID, colTotalBurned, amount)
}

// GetEmissionConfig - глобальные границы эмиссии.
// Если админ их еще не задавал, возвращает ErrNoEmissionConfig и сервис берет значения из config.yaml
func (r *repo) GetEmissionConfig(ctx context.Context) (*model.EmissionConfig, error) {
	// Формируем запрос
	query := sq.Select(colBaseRate, colMaxRate, colDecayFactor, colIsActive).
		From(emissionTable).
		Where(sq.Eq{colID: singletonRowID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cfg model.EmissionConfig
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&cfg.BaseRate, &cfg.MaxRate, &cfg.DecayFactor, &cfg.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoEmissionConfig
		}
		return nil, err
	}

	return &cfg, nil
}

// SetEmissionConfig - задает глобальные границы эмиссии
func (r *repo) SetEmissionConfig(ctx context.Context, cfg *model.EmissionConfig) error {
	// Формируем запрос
	query := sq.Insert(emissionTable).
		Columns(colID, colBaseRate, colMaxRate, colDecayFactor, colIsActive).
		Values(singletonRowID, cfg.BaseRate, cfg.MaxRate, cfg.DecayFactor, cfg.IsActive).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " +
			colBaseRate + " = EXCLUDED." + colBaseRate + ", " +
			colMaxRate + " = EXCLUDED." + colMaxRate + ", " +
			colDecayFactor + " = EXCLUDED." + colDecayFactor + ", " +
			colIsActive + " = EXCLUDED." + colIsActive).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}
