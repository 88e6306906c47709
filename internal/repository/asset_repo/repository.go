package asset_repo

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
	table       = "asset_holdings"
	colHolder   = "holder"
	colKind     = "kind"
	colAssetRef = "asset_ref"
	colTokenID  = "token_id"
	colAmount   = "amount"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAssetRepository(dbc *pgxpool.Pool) repository.AssetRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// TransferDistinct - переводит уникальный актив между принципалами.
// Запись должна принадлежать принципалу from, иначе перевод отклоняется целиком
func (r *repo) TransferDistinct(ctx context.Context, assetRef string, tokenID int64, from, to string) error {
	// Формируем запрос: смена держателя с проверкой текущего владения в одном UPDATE
	query := sq.Update(table).
		Set(colHolder, to).
		Where(sq.Eq{colAssetRef: assetRef, colTokenID: tokenID, colHolder: from, colKind: model.AssetKindDistinct}).
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
		return repository.ErrInsufficientAssets
	}

	return nil
}

// TransferFungible - переводит количество актива между принципалами.
// Сначала уменьшаем остаток from с проверкой достаточности, затем пополняем to
func (r *repo) TransferFungible(ctx context.Context, assetRef string, amount int64, from, to string) error {
	if amount <= 0 {
		return errors.New("transfer amount must be positive")
	}

	// Списание с проверкой достаточности в одном UPDATE
	debit := sq.Update(table).
		Set(colAmount, sq.Expr(colAmount+" - ?", amount)).
		Where(sq.Expr(colAssetRef+" = ? AND "+colHolder+" = ? AND "+colKind+" = ? AND "+colAmount+" >= ?",
			assetRef, from, model.AssetKindFungible, amount)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := debit.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrInsufficientAssets
	}

	// Зачисление получателю, запись создается при первом зачислении
	credit := sq.Insert(table).
		Columns(colHolder, colKind, colAssetRef, colTokenID, colAmount).
		Values(to, model.AssetKindFungible, assetRef, 0, amount).
		Suffix("ON CONFLICT (" + colHolder + ", " + colAssetRef + ", " + colTokenID + ") DO UPDATE SET " +
			colAmount + " = " + table + "." + colAmount + " + EXCLUDED." + colAmount).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = credit.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetFungibleAmount - остаток количественного актива у принципала. 0, если записи нет
func (r *repo) GetFungibleAmount(ctx context.Context, assetRef string, holder string) (int64, error) {
	// Формируем запрос
	query := sq.Select(colAmount).
		From(table).
		Where(sq.Eq{colAssetRef: assetRef, colHolder: holder, colKind: model.AssetKindFungible}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var amount int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return amount, nil
}
