package cabinet_repo

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
	table            = "cabinets"
	colID            = "id"
	colOwnerID       = "owner_id"
	colPlayPrice     = "play_price"
	colMaxItems      = "max_items"
	colFeeRateBps    = "fee_rate_bps"
	colIsActive      = "is_active"
	colInMaintenance = "in_maintenance"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCabinetRepository(dbc *pgxpool.Pool) repository.CabinetRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateCabinet - создает кабинет в БД.
// Возвращает ID созданного кабинета
func (r *repo) CreateCabinet(ctx context.Context, cabinet *model.Cabinet) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colOwnerID, colPlayPrice, colMaxItems, colFeeRateBps, colIsActive, colInMaintenance).
		Values(cabinet.OwnerID, cabinet.PlayPrice, cabinet.MaxItems, cabinet.FeeRateBps, cabinet.IsActive, cabinet.InMaintenance).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetCabinet - возвращает конфигурацию кабинета по его ID
func (r *repo) GetCabinet(ctx context.Context, id int) (*model.Cabinet, error) {
	// Формируем запрос
	query := sq.Select(colID, colOwnerID, colPlayPrice, colMaxItems, colFeeRateBps, colIsActive, colInMaintenance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cabinet model.Cabinet
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&cabinet.ID, &cabinet.OwnerID, &cabinet.PlayPrice, &cabinet.MaxItems,
			&cabinet.FeeRateBps, &cabinet.IsActive, &cabinet.InMaintenance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &cabinet, nil
}

// setColumn - обновляет одну колонку кабинета
func (r *repo) setColumn(ctx context.Context, id int, column string, value interface{}) error {
	query := sq.Update(table).
		Set(column, value).
		Where(sq.Eq{colID: id}).
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

func (r *repo) UpdatePlayPrice(ctx context.Context, id int, price int64) error {
	return r.setColumn(ctx, id, colPlayPrice, price)
}

func (r *repo) UpdateMaxItems(ctx context.Context, id int, maxItems int) error {
	return r.setColumn(ctx, id, colMaxItems, maxItems)
}

func (r *repo) UpdateFeeRate(ctx context.Context, id int, feeRateBps int) error {
	return r.setColumn(ctx, id, colFeeRateBps, feeRateBps)
}

func (r *repo) SetMaintenance(ctx context.Context, id int, on bool) error {
	return r.setColumn(ctx, id, colInMaintenance, on)
}

func (r *repo) SetActive(ctx context.Context, id int, active bool) error {
	return r.setColumn(ctx, id, colIsActive, active)
}
