package play

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/repository/platform_state_repo"
	"gachapon_backend/internal/repository/rng_state_repo"
	"gachapon_backend/internal/service"
	"gachapon_backend/internal/service/random"
	"context"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fakeUserRepo struct {
	balances map[int]int64
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (int, error) {
	return user.ID, nil
}

func (f *fakeUserRepo) GetUserByLogin(_ context.Context, _ string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetBalance(_ context.Context, id int) (int64, error) {
	return f.balances[id], nil
}

func (f *fakeUserRepo) UpdateBalance(_ context.Context, id int, amount int64) error {
	f.balances[id] = amount
	return nil
}

// fakeEscrow отдает фиксированный пул и записывает выданные призы.
// keepPool оставляет пул нетронутым для длинных прогонов
type fakeEscrow struct {
	service.EscrowService
	pool     []model.GachaItem
	released []model.GachaItem
	keepPool bool
}

func (f *fakeEscrow) ActiveItems(_ context.Context, _ int) ([]model.GachaItem, error) {
	out := make([]model.GachaItem, len(f.pool))
	copy(out, f.pool)
	return out, nil
}

func (f *fakeEscrow) ReleaseToPlayer(_ context.Context, item model.GachaItem, _ int) error {
	f.released = append(f.released, item)
	if !f.keepPool {
		for i, it := range f.pool {
			if it.ID == item.ID {
				f.pool = append(f.pool[:i], f.pool[i+1:]...)
				break
			}
		}
	}
	return nil
}

// fakeToken проводит выпуск 1:1 и записывает сжигания
type fakeToken struct {
	service.TokenService
	oddsBps      int
	tokenBalance int64
	minted       []int64
	burned       []int64
}

func (f *fakeToken) OddsImprovement(_ context.Context, _ int) (int, error) {
	return f.oddsBps, nil
}

func (f *fakeToken) MintForGachaReward(_ context.Context, _ int, baseAmount int64, _ int) (int64, error) {
	f.minted = append(f.minted, baseAmount)
	f.tokenBalance += baseAmount
	return baseAmount, nil
}

func (f *fakeToken) BurnForGachaPlay(_ context.Context, _ int, amount int64, _ int) error {
	f.burned = append(f.burned, amount)
	f.tokenBalance -= amount
	return nil
}

func (f *fakeToken) Stats(_ context.Context, _ int) (*model.TokenStats, error) {
	return &model.TokenStats{Balance: f.tokenBalance, OddsBps: f.oddsBps}, nil
}

type accrual struct {
	cabinetID  int
	price      int64
	feeRateBps int
}

type fakeRevenue struct {
	service.RevenueService
	accruals []accrual
}

func (f *fakeRevenue) AccruePlay(_ context.Context, cabinetID int, price int64, feeRateBps int) error {
	f.accruals = append(f.accruals, accrual{cabinetID: cabinetID, price: price, feeRateBps: feeRateBps})
	return nil
}

type fakeStatsCache struct {
	plays int
}

func (f *fakeStatsCache) RecordPlay(_ context.Context, _ int, _ int64) error {
	f.plays++
	return nil
}

func (f *fakeStatsCache) GetTotalPlays(_ context.Context, _ int) (int64, error) {
	return int64(f.plays), nil
}

type fakeGachaCfg struct{}

func (fakeGachaCfg) RarityWeights() map[int]int {
	return map[int]int{1: 400, 2: 250, 3: 150, 4: 80, 5: 20}
}

func (fakeGachaCfg) DefaultWeight() int { return 100 }

const (
	playerID  = 5
	cabinetID = 1
)

type testEnv struct {
	serv    *serv
	users   *fakeUserRepo
	escrow  *fakeEscrow
	token   *fakeToken
	revenue *fakeRevenue
	stats   *fakeStatsCache
	state   *platform_state_repo.StateRepo
}

func newTestPlay(pool []model.GachaItem) *testEnv {
	cabinets := &fakeCabinetRepo{cabinets: map[int]*model.Cabinet{
		cabinetID: {ID: cabinetID, OwnerID: 10, PlayPrice: 100, MaxItems: 10, FeeRateBps: 500, IsActive: true},
	}}
	users := &fakeUserRepo{balances: map[int]int64{playerID: 1_000_000}}
	esc := &fakeEscrow{pool: pool}
	tok := &fakeToken{}
	rev := &fakeRevenue{}
	stats := &fakeStatsCache{}
	state := platform_state_repo.NewPlatformStateRepository()
	rnd := random.NewSeededRandomService(rng_state_repo.NewRandomStateRepository(RandomConsumerName), state, 42)

	s := NewPlayService(cabinets, users, esc, tok, rev, rnd, state, stats, fakeTxManager{}, fakeGachaCfg{})
	return &testEnv{serv: s.(*serv), users: users, escrow: esc, token: tok, revenue: rev, stats: stats, state: state}
}

func playerContext() context.Context {
	return middleware.WithUser(context.Background(), playerID, model.RolePlayer)
}

func item(id, tier int) model.GachaItem {
	return model.GachaItem{ID: id, CabinetID: cabinetID, Kind: model.AssetKindDistinct, AssetRef: "cards", UnitsOrID: int64(id), RarityTier: tier, IsActive: true}
}

func TestPlayRejectsInsufficientPayment(t *testing.T) {
	env := newTestPlay(nil)

	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 50})
	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestPlayRejectsExcessiveBurn(t *testing.T) {
	env := newTestPlay(nil)

	// Цена 100, ограничение на сжигание 20
	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100, BurnAmount: 21})
	assert.ErrorIs(t, err, ErrBurnTooLarge)

	_, err = env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100, BurnAmount: -1})
	assert.ErrorIs(t, err, ErrBurnTooLarge)
}

func TestPlayRejectsUnknownCabinet(t *testing.T) {
	env := newTestPlay(nil)

	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: 77, Payment: 100})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlayRejectsInactiveAndMaintenance(t *testing.T) {
	env := newTestPlay(nil)
	cabinets := env.serv.cabinetRepo.(*fakeCabinetRepo)

	cabinets.cabinets[cabinetID].IsActive = false
	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
	assert.ErrorIs(t, err, ErrCabinetInactive)

	cabinets.cabinets[cabinetID].IsActive = true
	cabinets.cabinets[cabinetID].InMaintenance = true
	_, err = env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
	assert.ErrorIs(t, err, ErrInMaintenance)
}

func TestPlayRejectsWhenPaused(t *testing.T) {
	env := newTestPlay(nil)
	env.state.Pause()

	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
	assert.ErrorIs(t, err, ErrPaused)
}

func TestPlayRejectsConcurrentEntry(t *testing.T) {
	env := newTestPlay(nil)

	// Другая операция держит флаг занятости: игра отклоняется, не ждет
	require.True(t, env.state.TryBeginOperation())
	defer env.state.EndOperation()

	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
	assert.ErrorIs(t, err, ErrBusy)
}

func TestPlayRejectsInsufficientBalance(t *testing.T) {
	env := newTestPlay(nil)
	env.users.balances[playerID] = 50

	_, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestPlayEmptyPoolIsLossWithConsolation(t *testing.T) {
	env := newTestPlay(nil)

	res, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
	require.NoError(t, err)

	assert.False(t, res.Won)
	assert.Nil(t, res.Item)
	// Утешительный выпуск от цены игры
	assert.Equal(t, int64(100), res.Minted)
	assert.Equal(t, []int64{100}, env.token.minted)
	// Цена списана
	assert.Equal(t, int64(999_900), env.users.balances[playerID])
	assert.Equal(t, int64(999_900), res.Balance)
	// Выручка начислена той же операцией
	require.Len(t, env.revenue.accruals, 1)
	assert.Equal(t, accrual{cabinetID: cabinetID, price: 100, feeRateBps: 500}, env.revenue.accruals[0])
	// Зеркало счетчиков обновлено после игры
	assert.Equal(t, 1, env.stats.plays)
}

func TestPlayBurnFlowsThroughSettlement(t *testing.T) {
	env := newTestPlay(nil)

	res, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100, BurnAmount: 20})
	require.NoError(t, err)

	assert.Equal(t, 20, res.BonusPct)
	assert.Equal(t, int64(20), res.Burned)
	assert.Equal(t, []int64{20}, env.token.burned)
}

func TestPlayWinReleasesPrizeWithoutConsolation(t *testing.T) {
	env := newTestPlay([]model.GachaItem{item(1, 1)})
	env.escrow.keepPool = true

	// Гоняем до первого выигрыша, он обязан случиться за разумное число игр
	var res *model.PlayResult
	losses := 0
	for i := 0; i < 200; i++ {
		r, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
		require.NoError(t, err)
		if r.Won {
			res = r
			break
		}
		losses++
	}
	require.NotNil(t, res, "expected at least one win in 200 plays")

	require.NotNil(t, res.Item)
	assert.Equal(t, 1, res.Item.ID)
	assert.Zero(t, res.Minted)
	assert.Len(t, env.escrow.released, 1)
	// Утешительный выпуск был только на проигрышах
	assert.Len(t, env.token.minted, losses)
}

func TestPlayAggregateWinRateNearHalf(t *testing.T) {
	env := newTestPlay([]model.GachaItem{item(1, 1), item(2, 3), item(3, 5)})
	env.escrow.keepPool = true

	const plays = 2000
	wins := 0
	for i := 0; i < plays; i++ {
		res, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
		require.NoError(t, err)
		if res.Won {
			wins++
		}
	}

	rate := float64(wins) / float64(plays)
	assert.InDelta(t, 0.5, rate, 0.05, "aggregate win rate should converge to 50%%, got %.3f", rate)
}

func TestPlayHeavierTiersWinMoreOften(t *testing.T) {
	env := newTestPlay([]model.GachaItem{item(1, 1), item(2, 5)})
	env.escrow.keepPool = true

	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		res, err := env.serv.Play(playerContext(), model.PlayRequest{CabinetID: cabinetID, Payment: 100})
		require.NoError(t, err)
		if res.Won {
			counts[res.Item.ID]++
		}
	}

	// Тир 1 весит 400, тир 5 весит 20: частый приз должен сильно преобладать
	assert.Greater(t, counts[1], counts[2]*5)
}
