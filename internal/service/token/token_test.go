package token

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/repository/platform_state_repo"
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

// fakeTokenRepo держит все таблицы токен-экономики в памяти
type fakeTokenRepo struct {
	balances map[int]int64
	supply   model.TokenSupply
	burns    map[int]*model.BurnStat
	cabinets map[int]*model.CabinetTokenConfig
	emission *model.EmissionConfig
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		balances: map[int]int64{},
		burns:    map[int]*model.BurnStat{},
		cabinets: map[int]*model.CabinetTokenConfig{},
	}
}

func (f *fakeTokenRepo) GetTokenBalance(_ context.Context, userID int) (int64, error) {
	return f.balances[userID], nil
}

func (f *fakeTokenRepo) AddTokenBalance(_ context.Context, userID int, delta int64) error {
	f.balances[userID] += delta
	return nil
}

func (f *fakeTokenRepo) GetSupply(_ context.Context) (*model.TokenSupply, error) {
	s := f.supply
	return &s, nil
}

func (f *fakeTokenRepo) AddMinted(_ context.Context, amount int64) error {
	f.supply.TotalMinted += amount
	return nil
}

func (f *fakeTokenRepo) AddSupplyBurned(_ context.Context, amount int64) error {
	f.supply.TotalBurned += amount
	return nil
}

func (f *fakeTokenRepo) GetBurnStat(_ context.Context, userID int) (*model.BurnStat, error) {
	if stat, ok := f.burns[userID]; ok {
		s := *stat
		return &s, nil
	}
	return &model.BurnStat{UserID: userID}, nil
}

func (f *fakeTokenRepo) AddBurnStat(_ context.Context, userID int, amount int64) error {
	stat, ok := f.burns[userID]
	if !ok {
		stat = &model.BurnStat{UserID: userID}
		f.burns[userID] = stat
	}
	stat.TotalBurned += amount
	stat.BurnCount++
	return nil
}

func (f *fakeTokenRepo) GetCabinetTokenConfig(_ context.Context, cabinetID int) (*model.CabinetTokenConfig, error) {
	cfg, ok := f.cabinets[cabinetID]
	if !ok {
		return nil, repository.ErrCabinetNotRegistered
	}
	c := *cfg
	return &c, nil
}

func (f *fakeTokenRepo) CreateCabinetTokenConfig(_ context.Context, cfg *model.CabinetTokenConfig) error {
	c := *cfg
	f.cabinets[cfg.CabinetID] = &c
	return nil
}

func (f *fakeTokenRepo) SetCabinetTokenActive(_ context.Context, cabinetID int, active bool) error {
	cfg, ok := f.cabinets[cabinetID]
	if !ok {
		return repository.ErrCabinetNotRegistered
	}
	cfg.IsActive = active
	return nil
}

func (f *fakeTokenRepo) AddCabinetEmitted(_ context.Context, cabinetID int, amount int64) error {
	f.cabinets[cabinetID].TotalEmitted += amount
	return nil
}

func (f *fakeTokenRepo) AddCabinetBurned(_ context.Context, cabinetID int, amount int64) error {
	f.cabinets[cabinetID].TotalBurned += amount
	return nil
}

func (f *fakeTokenRepo) GetEmissionConfig(_ context.Context) (*model.EmissionConfig, error) {
	if f.emission == nil {
		return nil, repository.ErrNoEmissionConfig
	}
	c := *f.emission
	return &c, nil
}

func (f *fakeTokenRepo) SetEmissionConfig(_ context.Context, cfg *model.EmissionConfig) error {
	c := *cfg
	f.emission = &c
	return nil
}

type fakeTokenCfg struct {
	maxSupply int64
	defaults  model.EmissionConfig
}

func (c fakeTokenCfg) MaxSupply() int64                       { return c.maxSupply }
func (c fakeTokenCfg) EmissionDefaults() model.EmissionConfig { return c.defaults }

func newTestToken(maxSupply int64) (*serv, *fakeTokenRepo, *platform_state_repo.StateRepo) {
	repo := newFakeTokenRepo()
	state := platform_state_repo.NewPlatformStateRepository()
	cfg := fakeTokenCfg{maxSupply: maxSupply, defaults: model.EmissionConfig{BaseRate: 10, MaxRate: 1000}}

	s := NewTokenService(repo, state, fakeTxManager{}, cfg)
	return s.(*serv), repo, state
}

func adminCtx() context.Context {
	return middleware.WithUser(context.Background(), 1, model.RoleAdmin)
}

func playerCtx(userID int) context.Context {
	return middleware.WithUser(context.Background(), userID, model.RolePlayer)
}

func TestMintRequiresAdmin(t *testing.T) {
	s, _, _ := newTestToken(1000)

	assert.ErrorIs(t, s.Mint(playerCtx(2), 2, 100), middleware.ErrForbidden)
}

func TestMintAddsBalanceAndSupply(t *testing.T) {
	s, repo, _ := newTestToken(1000)

	require.NoError(t, s.Mint(adminCtx(), 2, 300))

	assert.Equal(t, int64(300), repo.balances[2])
	assert.Equal(t, int64(300), repo.supply.TotalMinted)
}

func TestMintRejectsZeroAndSupplyCap(t *testing.T) {
	s, repo, _ := newTestToken(1000)

	assert.ErrorIs(t, s.Mint(adminCtx(), 2, 0), ErrZeroAmount)
	assert.ErrorIs(t, s.Mint(adminCtx(), 2, -5), ErrZeroAmount)

	require.NoError(t, s.Mint(adminCtx(), 2, 900))
	assert.ErrorIs(t, s.Mint(adminCtx(), 2, 200), ErrSupplyCapExceeded)

	// Отклоненный выпуск ничего не изменил
	assert.Equal(t, int64(900), repo.balances[2])
	assert.Equal(t, int64(900), repo.supply.TotalMinted)
}

func TestBatchMintAllOrNothing(t *testing.T) {
	s, repo, _ := newTestToken(1000)

	// Совокупный объем превышает лимит, ни один получатель не получает токен
	err := s.BatchMint(adminCtx(), []int{2, 3}, []int64{600, 600})
	assert.ErrorIs(t, err, ErrSupplyCapExceeded)
	assert.Zero(t, repo.balances[2])
	assert.Zero(t, repo.balances[3])

	require.NoError(t, s.BatchMint(adminCtx(), []int{2, 3}, []int64{400, 400}))
	assert.Equal(t, int64(400), repo.balances[2])
	assert.Equal(t, int64(400), repo.balances[3])
	assert.Equal(t, int64(800), repo.supply.TotalMinted)
}

func TestBatchMintValidation(t *testing.T) {
	s, _, _ := newTestToken(1000)

	assert.ErrorIs(t, s.BatchMint(adminCtx(), nil, nil), ErrBatchMismatch)
	assert.ErrorIs(t, s.BatchMint(adminCtx(), []int{2}, []int64{10, 20}), ErrBatchMismatch)
	assert.ErrorIs(t, s.BatchMint(adminCtx(), []int{2, 3}, []int64{10, 0}), ErrZeroAmount)
}

func TestBurnForOddsUpdatesStats(t *testing.T) {
	s, repo, _ := newTestToken(100000)
	require.NoError(t, s.Mint(adminCtx(), 2, 5000))

	require.NoError(t, s.BurnForOdds(playerCtx(2), 2000))

	assert.Equal(t, int64(3000), repo.balances[2])
	assert.Equal(t, int64(2000), repo.supply.TotalBurned)

	odds, err := s.OddsImprovement(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, odds)
}

func TestBurnForOddsRejectsInsufficient(t *testing.T) {
	s, _, _ := newTestToken(100000)
	require.NoError(t, s.Mint(adminCtx(), 2, 100))

	assert.ErrorIs(t, s.BurnForOdds(playerCtx(2), 200), ErrInsufficientTokens)
	assert.ErrorIs(t, s.BurnForOdds(playerCtx(2), 0), ErrZeroAmount)
}

func TestOddsImprovementCap(t *testing.T) {
	s, repo, _ := newTestToken(100000000)

	// 10 миллионов сожженных единиц дали бы 10000 пунктов, потолок 500
	repo.burns[2] = &model.BurnStat{UserID: 2, TotalBurned: 10000000, BurnCount: 1}

	odds, err := s.OddsImprovement(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 500, odds)
}

func TestRegisterCabinet(t *testing.T) {
	s, repo, _ := newTestToken(1000)

	require.NoError(t, s.RegisterCabinet(adminCtx(), 1))
	assert.ErrorIs(t, s.RegisterCabinet(adminCtx(), 1), ErrAlreadyRegistered)

	cfg := repo.cabinets[1]
	require.NotNil(t, cfg)
	assert.True(t, cfg.IsActive)
	assert.Equal(t, model.DefaultEmissionMultBps, cfg.EmissionMultBps)
}

func TestUpdateEmissionConfigValidatesBounds(t *testing.T) {
	s, _, _ := newTestToken(1000)

	err := s.UpdateEmissionConfig(adminCtx(), model.EmissionConfig{BaseRate: 100, MaxRate: 10})
	assert.ErrorIs(t, err, ErrEmissionBounds)

	require.NoError(t, s.UpdateEmissionConfig(adminCtx(), model.EmissionConfig{BaseRate: 10, MaxRate: 100, IsActive: true}))
}

func TestMintForGachaRewardFlatWhenEmissionInactive(t *testing.T) {
	s, repo, _ := newTestToken(100000)
	require.NoError(t, s.RegisterCabinet(adminCtx(), 1))

	// Эмиссия выключена, base проходит как есть
	minted, err := s.MintForGachaReward(context.Background(), 2, 150, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(150), minted)
	assert.Equal(t, int64(150), repo.balances[2])
	assert.Equal(t, int64(150), repo.cabinets[1].TotalEmitted)
}

func TestMintForGachaRewardClampsWhenEmissionActive(t *testing.T) {
	s, repo, _ := newTestToken(100000)
	require.NoError(t, s.RegisterCabinet(adminCtx(), 1))
	require.NoError(t, s.UpdateEmissionConfig(adminCtx(), model.EmissionConfig{BaseRate: 50, MaxRate: 120, IsActive: true}))

	// Множитель кабинета 10000 (1:1), но результат зажат в [50, 120]
	minted, err := s.MintForGachaReward(context.Background(), 2, 500, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(120), minted)

	minted, err = s.MintForGachaReward(context.Background(), 2, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), minted)

	assert.Equal(t, int64(170), repo.balances[2])
}

func TestMintForGachaRewardRequiresActiveCabinet(t *testing.T) {
	s, _, _ := newTestToken(100000)

	_, err := s.MintForGachaReward(context.Background(), 2, 100, 1)
	assert.ErrorIs(t, err, repository.ErrCabinetNotRegistered)

	require.NoError(t, s.RegisterCabinet(adminCtx(), 1))
	require.NoError(t, s.SetCabinetActive(adminCtx(), 1, false))

	_, err = s.MintForGachaReward(context.Background(), 2, 100, 1)
	assert.ErrorIs(t, err, ErrCabinetInactive)
}

func TestBurnForGachaPlayDoesNotTouchPersonalStats(t *testing.T) {
	s, repo, _ := newTestToken(100000)
	require.NoError(t, s.RegisterCabinet(adminCtx(), 1))
	require.NoError(t, s.Mint(adminCtx(), 2, 1000))

	require.NoError(t, s.BurnForGachaPlay(context.Background(), 2, 300, 1))

	assert.Equal(t, int64(700), repo.balances[2])
	assert.Equal(t, int64(300), repo.supply.TotalBurned)
	assert.Equal(t, int64(300), repo.cabinets[1].TotalBurned)

	// Персональная статистика, питающая OddsImprovement, не изменилась
	odds, err := s.OddsImprovement(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, odds)
}

func TestMutationsRejectedWhenPaused(t *testing.T) {
	s, _, state := newTestToken(1000)
	state.Pause()

	assert.ErrorIs(t, s.Mint(adminCtx(), 2, 10), ErrPaused)
	assert.ErrorIs(t, s.BatchMint(adminCtx(), []int{2}, []int64{10}), ErrPaused)
	assert.ErrorIs(t, s.BurnForOdds(playerCtx(2), 10), ErrPaused)
	assert.ErrorIs(t, s.RegisterCabinet(adminCtx(), 1), ErrPaused)
	assert.ErrorIs(t, s.UpdateEmissionConfig(adminCtx(), model.EmissionConfig{}), ErrPaused)
}
