package escrow_repo

import (
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"context"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "gacha_items"
	colID         = "id"
	colCabinetID  = "cabinet_id"
	colKind       = "kind"
	colAssetRef   = "asset_ref"
	colUnitsOrID  = "units_or_id"
	colRarityTier = "rarity_tier"
	colIsActive   = "is_active"
	colLabel      = "label"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewEscrowRepository(dbc *pgxpool.Pool) repository.EscrowRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// ListItems - возвращает все призы кабинета в стабильном порядке вставки.
// Индексы операций эскроу считаются по этому порядку
func (r *repo) ListItems(ctx context.Context, cabinetID int) ([]model.GachaItem, error) {
	// Формируем запрос
	query := sq.Select(colID, colCabinetID, colKind, colAssetRef, colUnitsOrID, colRarityTier, colIsActive, colLabel).
		From(table).
		Where(sq.Eq{colCabinetID: cabinetID}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.GachaItem
	for rows.Next() {
		var item model.GachaItem
		err = rows.Scan(&item.ID, &item.CabinetID, &item.Kind, &item.AssetRef,
			&item.UnitsOrID, &item.RarityTier, &item.IsActive, &item.Label)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// CountItems - количество призов в кабинете, активных и неактивных
func (r *repo) CountItems(ctx context.Context, cabinetID int) (int, error) {
	// Формируем запрос
	query := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{colCabinetID: cabinetID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// InsertItem - добавляет запись приза. Вызывается только после успешного перевода кастодии
func (r *repo) InsertItem(ctx context.Context, item *model.GachaItem) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colCabinetID, colKind, colAssetRef, colUnitsOrID, colRarityTier, colIsActive, colLabel).
		Values(item.CabinetID, item.Kind, item.AssetRef, item.UnitsOrID, item.RarityTier, item.IsActive, item.Label).
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

// DeleteItem - удаляет запись приза. Вызывается только после успешного перевода кастодии наружу
func (r *repo) DeleteItem(ctx context.Context, itemID int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colID: itemID}).
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

// SetItemActive - переключает участие приза в розыгрыше без движения кастодии
func (r *repo) SetItemActive(ctx context.Context, itemID int, active bool) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colIsActive, active).
		Where(sq.Eq{colID: itemID}).
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
