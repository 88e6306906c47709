package escrow

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/repository/platform_state_repo"
	"context"
	"fmt"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEscrowRepo struct {
	items  []model.GachaItem
	nextID int
}

func (f *fakeEscrowRepo) ListItems(_ context.Context, cabinetID int) ([]model.GachaItem, error) {
	out := make([]model.GachaItem, 0, len(f.items))
	for _, it := range f.items {
		if it.CabinetID == cabinetID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeEscrowRepo) CountItems(ctx context.Context, cabinetID int) (int, error) {
	items, _ := f.ListItems(ctx, cabinetID)
	return len(items), nil
}

func (f *fakeEscrowRepo) InsertItem(_ context.Context, item *model.GachaItem) (int, error) {
	f.nextID++
	item.ID = f.nextID
	f.items = append(f.items, *item)
	return item.ID, nil
}

func (f *fakeEscrowRepo) DeleteItem(_ context.Context, itemID int) error {
	for i, it := range f.items {
		if it.ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeEscrowRepo) SetItemActive(_ context.Context, itemID int, active bool) error {
	for i, it := range f.items {
		if it.ID == itemID {
			f.items[i].IsActive = active
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeAssetRepo ведет количественные остатки и владельцев уникальных активов
type fakeAssetRepo struct {
	distinct map[string]string // "<ref>/<id>" -> holder
	fungible map[string]int64  // "<holder>/<ref>" -> amount
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{distinct: map[string]string{}, fungible: map[string]int64{}}
}

func (f *fakeAssetRepo) TransferDistinct(_ context.Context, assetRef string, tokenID int64, from, to string) error {
	key := fmt.Sprintf("%s/%d", assetRef, tokenID)
	if f.distinct[key] != from {
		return repository.ErrInsufficientAssets
	}
	f.distinct[key] = to
	return nil
}

func (f *fakeAssetRepo) TransferFungible(_ context.Context, assetRef string, amount int64, from, to string) error {
	fromKey := from + "/" + assetRef
	if f.fungible[fromKey] < amount {
		return repository.ErrInsufficientAssets
	}
	f.fungible[fromKey] -= amount
	f.fungible[to+"/"+assetRef] += amount
	return nil
}

func (f *fakeAssetRepo) GetFungibleAmount(_ context.Context, assetRef string, holder string) (int64, error) {
	return f.fungible[holder+"/"+assetRef], nil
}

type fakeCabinetRepo struct {
	cabinets map[int]*model.Cabinet
}

func (f *fakeCabinetRepo) CreateCabinet(_ context.Context, c *model.Cabinet) (int, error) {
	id := len(f.cabinets) + 1
	c.ID = id
	f.cabinets[id] = c
	return id, nil
}

func (f *fakeCabinetRepo) GetCabinet(_ context.Context, id int) (*model.Cabinet, error) {
	c, ok := f.cabinets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCabinetRepo) UpdatePlayPrice(_ context.Context, id int, price int64) error {
	f.cabinets[id].PlayPrice = price
	return nil
}

func (f *fakeCabinetRepo) UpdateMaxItems(_ context.Context, id int, maxItems int) error {
	f.cabinets[id].MaxItems = maxItems
	return nil
}

func (f *fakeCabinetRepo) UpdateFeeRate(_ context.Context, id int, feeRateBps int) error {
	f.cabinets[id].FeeRateBps = feeRateBps
	return nil
}

func (f *fakeCabinetRepo) SetMaintenance(_ context.Context, id int, on bool) error {
	f.cabinets[id].InMaintenance = on
	return nil
}

func (f *fakeCabinetRepo) SetActive(_ context.Context, id int, active bool) error {
	f.cabinets[id].IsActive = active
	return nil
}

const (
	ownerID   = 10
	cabinetID = 1
)

func newTestEscrow() (*serv, *fakeEscrowRepo, *fakeAssetRepo, *platform_state_repo.StateRepo) {
	escrowRepo := &fakeEscrowRepo{}
	assetRepo := newFakeAssetRepo()
	cabinetRepo := &fakeCabinetRepo{cabinets: map[int]*model.Cabinet{
		cabinetID: {ID: cabinetID, OwnerID: ownerID, PlayPrice: 100, MaxItems: 10, IsActive: true},
	}}
	state := platform_state_repo.NewPlatformStateRepository()

	s := NewEscrowService(escrowRepo, assetRepo, cabinetRepo, state, fakeTxManager{})
	return s.(*serv), escrowRepo, assetRepo, state
}

func ownerCtx() context.Context {
	return middleware.WithUser(context.Background(), ownerID, model.RolePlayer)
}

func distinctDeposit(ref string, tokenID int64, tier int) model.DepositItem {
	return model.DepositItem{Kind: model.AssetKindDistinct, AssetRef: ref, UnitsOrID: tokenID, RarityTier: tier}
}

func grantDistinct(assets *fakeAssetRepo, holder, ref string, tokenID int64) {
	assets.distinct[fmt.Sprintf("%s/%d", ref, tokenID)] = holder
}

func TestDepositMovesCustodyAndAddsItems(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	owner := model.UserPrincipal(ownerID)
	grantDistinct(assets, owner, "swords", 7)
	assets.fungible[owner+"/gold"] = 500

	err := s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{
		distinctDeposit("swords", 7, 3),
		{Kind: model.AssetKindFungible, AssetRef: "gold", UnitsOrID: 200, RarityTier: 1},
	})
	require.NoError(t, err)

	items, err := s.Items(ownerCtx(), cabinetID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsActive)

	// Кастодия ушла от владельца к кабинету
	assert.Equal(t, model.CabinetPrincipal(cabinetID), assets.distinct["swords/7"])
	assert.Equal(t, int64(300), assets.fungible[owner+"/gold"])
	assert.Equal(t, int64(200), assets.fungible[model.CabinetPrincipal(cabinetID)+"/gold"])
}

func TestDepositRejectsOverCapacity(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	owner := model.UserPrincipal(ownerID)

	batch := make([]model.DepositItem, 11)
	for i := range batch {
		grantDistinct(assets, owner, "cards", int64(i))
		batch[i] = distinctDeposit("cards", int64(i), 2)
	}

	err := s.Deposit(ownerCtx(), cabinetID, batch)
	assert.ErrorIs(t, err, ErrPoolFull)

	items, _ := s.Items(ownerCtx(), cabinetID)
	assert.Empty(t, items)
}

func TestDepositRejectsEleventhItem(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	owner := model.UserPrincipal(ownerID)

	for i := 0; i < 10; i++ {
		grantDistinct(assets, owner, "cards", int64(i))
		require.NoError(t, s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("cards", int64(i), 2)}))
	}

	grantDistinct(assets, owner, "cards", 100)
	err := s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("cards", 100, 2)})
	assert.ErrorIs(t, err, ErrPoolFull)
}

func TestDepositValidation(t *testing.T) {
	s, _, _, _ := newTestEscrow()

	assert.ErrorIs(t, s.Deposit(ownerCtx(), cabinetID, nil), ErrEmptyDeposit)

	err := s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("swords", 7, 6)})
	assert.ErrorIs(t, err, ErrInvalidRarity)

	err = s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("swords", 7, 0)})
	assert.ErrorIs(t, err, ErrInvalidRarity)

	err = s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{
		{Kind: model.AssetKindFungible, AssetRef: "gold", UnitsOrID: 0, RarityTier: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestDepositRejectsNonOwner(t *testing.T) {
	s, _, _, _ := newTestEscrow()
	stranger := middleware.WithUser(context.Background(), 99, model.RolePlayer)

	err := s.Deposit(stranger, cabinetID, []model.DepositItem{distinctDeposit("swords", 7, 3)})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDepositRejectsWhenPaused(t *testing.T) {
	s, _, _, state := newTestEscrow()
	state.Pause()

	err := s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("swords", 7, 3)})
	assert.ErrorIs(t, err, ErrPaused)
}

func TestDepositWithoutCustodyFails(t *testing.T) {
	s, _, _, _ := newTestEscrow()

	// Владелец не держит этот актив, перевод в эскроу невозможен
	err := s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("swords", 7, 3)})
	assert.ErrorIs(t, err, repository.ErrInsufficientAssets)

	items, _ := s.Items(ownerCtx(), cabinetID)
	assert.Empty(t, items)
}

func TestWithdrawResolvesIndicesAgainstSnapshot(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	owner := model.UserPrincipal(ownerID)

	for i := 0; i < 3; i++ {
		grantDistinct(assets, owner, "cards", int64(i))
	}
	require.NoError(t, s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{
		distinctDeposit("cards", 0, 1),
		distinctDeposit("cards", 1, 2),
		distinctDeposit("cards", 2, 3),
	}))

	// Индексы 0 и 2 считаются по снимку: удаление нулевого не сдвигает второй
	require.NoError(t, s.Withdraw(ownerCtx(), cabinetID, []int{0, 2}))

	items, err := s.Items(ownerCtx(), cabinetID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].UnitsOrID)

	// Кастодия вернулась владельцу
	assert.Equal(t, owner, assets.distinct["cards/0"])
	assert.Equal(t, owner, assets.distinct["cards/2"])
}

func TestWithdrawRejectsBadIndices(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	grantDistinct(assets, model.UserPrincipal(ownerID), "cards", 0)
	require.NoError(t, s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("cards", 0, 1)}))

	assert.ErrorIs(t, s.Withdraw(ownerCtx(), cabinetID, []int{5}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Withdraw(ownerCtx(), cabinetID, []int{-1}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Withdraw(ownerCtx(), cabinetID, []int{0, 0}), ErrDuplicateIndex)
	assert.ErrorIs(t, s.Withdraw(ownerCtx(), cabinetID, nil), ErrIndexOutOfRange)
}

func TestToggleActiveExcludesItemFromPool(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	grantDistinct(assets, model.UserPrincipal(ownerID), "cards", 0)
	require.NoError(t, s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("cards", 0, 1)}))

	require.NoError(t, s.ToggleActive(ownerCtx(), cabinetID, 0))

	active, err := s.ActiveItems(ownerCtx(), cabinetID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Кастодия осталась у кабинета
	assert.Equal(t, model.CabinetPrincipal(cabinetID), assets.distinct["cards/0"])

	require.NoError(t, s.ToggleActive(ownerCtx(), cabinetID, 0))
	active, _ = s.ActiveItems(ownerCtx(), cabinetID)
	assert.Len(t, active, 1)
}

func TestReleaseToPlayerMovesCustodyAndDeletesItem(t *testing.T) {
	s, _, assets, _ := newTestEscrow()
	grantDistinct(assets, model.UserPrincipal(ownerID), "cards", 0)
	require.NoError(t, s.Deposit(ownerCtx(), cabinetID, []model.DepositItem{distinctDeposit("cards", 0, 1)}))

	items, _ := s.Items(ownerCtx(), cabinetID)
	require.Len(t, items, 1)

	playerID := 55
	require.NoError(t, s.ReleaseToPlayer(context.Background(), items[0], playerID))

	assert.Equal(t, model.UserPrincipal(playerID), assets.distinct["cards/0"])
	items, _ = s.Items(ownerCtx(), cabinetID)
	assert.Empty(t, items)
}
