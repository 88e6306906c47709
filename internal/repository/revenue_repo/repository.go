package revenue_repo

import (
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "cabinet_revenue"
	colCabinetID    = "cabinet_id"
	colBalance      = "balance"
	colTotalPlays   = "total_plays"
	colTotalRevenue = "total_revenue"
	colFirstPlayAt  = "first_play_at"
	colLastPlayAt   = "last_play_at"

	platformTable  = "platform_revenue"
	colID          = "id"
	colRecipientID = "recipient_id"

	// В platform_revenue всегда ровно одна строка
	platformRowID = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRevenueRepository(dbc *pgxpool.Pool) repository.RevenueRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetCabinetRevenue - накопленная выручка и счетчики игр кабинета.
// Возвращает нулевую запись, если по кабинету еще не играли
func (r *repo) GetCabinetRevenue(ctx context.Context, cabinetID int) (*model.CabinetRevenue, error) {
	// Формируем запрос
	query := sq.Select(colBalance, colTotalPlays, colTotalRevenue, colFirstPlayAt, colLastPlayAt).
		From(table).
		Where(sq.Eq{colCabinetID: cabinetID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rev := model.CabinetRevenue{CabinetID: cabinetID}
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&rev.Balance, &rev.TotalPlays, &rev.TotalRevenue, &rev.FirstPlayAt, &rev.LastPlayAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &rev, nil
		}
		return nil, err
	}

	return &rev, nil
}

// AccruePlay - начисляет долю владельца и двигает счетчики игр одним запросом.
// Вызывается только внутри транзакции игры
func (r *repo) AccruePlay(ctx context.Context, cabinetID int, ownerShare, price int64) error {
	now := time.Now()

	// Формируем запрос: вставка или инкремент существующей строки.
	// first_play_at заполняется только при вставке
	query := sq.Insert(table).
		Columns(colCabinetID, colBalance, colTotalPlays, colTotalRevenue, colFirstPlayAt, colLastPlayAt).
		Values(cabinetID, ownerShare, 1, price, now, now).
		Suffix("ON CONFLICT (" + colCabinetID + ") DO UPDATE SET " +
			colBalance + " = " + table + "." + colBalance + " + EXCLUDED." + colBalance + ", " +
			colTotalPlays + " = " + table + "." + colTotalPlays + " + 1, " +
			colTotalRevenue + " = " + table + "." + colTotalRevenue + " + EXCLUDED." + colTotalRevenue + ", " +
			colLastPlayAt + " = EXCLUDED." + colLastPlayAt).
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

// ZeroBalance - обнуляет накопленный баланс кабинета при выводе
func (r *repo) ZeroBalance(ctx context.Context, cabinetID int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, 0).
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
		return repository.ErrNotFound
	}

	return nil
}

// GetPlatformBalance - накопленная невыведенная комиссия платформы
func (r *repo) GetPlatformBalance(ctx context.Context) (int64, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		From(platformTable).
		Where(sq.Eq{colID: platformRowID}).
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

// AddPlatformBalance - начисляет комиссию платформы
func (r *repo) AddPlatformBalance(ctx context.Context, amount int64) error {
	// Формируем запрос
	query := sq.Insert(platformTable).
		Columns(colID, colBalance).
		Values(platformRowID, amount).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " +
			colBalance + " = " + platformTable + "." + colBalance + " + EXCLUDED." + colBalance).
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

// ZeroPlatformBalance - обнуляет баланс платформы при выводе
func (r *repo) ZeroPlatformBalance(ctx context.Context) error {
	// Формируем запрос
	query := sq.Update(platformTable).
		Set(colBalance, 0).
		Where(sq.Eq{colID: platformRowID}).
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

// GetPlatformRecipient - ID пользователя, которому зачисляется вывод платформы
func (r *repo) GetPlatformRecipient(ctx context.Context) (int, error) {
	// Формируем запрос
	query := sq.Select(colRecipientID).
		From(platformTable).
		Where(sq.Eq{colID: platformRowID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var recipientID *int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&recipientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	if recipientID == nil {
		return 0, repository.ErrNotFound
	}

	return *recipientID, nil
}

// SetPlatformRecipient - назначает получателя комиссии платформы
func (r *repo) SetPlatformRecipient(ctx context.Context, userID int) error {
	// Формируем запрос
	query := sq.Insert(platformTable).
		Columns(colID, colBalance, colRecipientID).
		Values(platformRowID, 0, userID).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " +
			colRecipientID + " = EXCLUDED." + colRecipientID).
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
