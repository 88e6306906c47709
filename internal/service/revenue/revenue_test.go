package revenue

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/repository/platform_state_repo"
	"context"
	"testing"
	"time"

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

type fakeRevenueRepo struct {
	cabinets          map[int]*model.CabinetRevenue
	platformBalance   int64
	platformRecipient int
	hasRecipient      bool
}

func newFakeRevenueRepo() *fakeRevenueRepo {
	return &fakeRevenueRepo{cabinets: map[int]*model.CabinetRevenue{}}
}

func (f *fakeRevenueRepo) GetCabinetRevenue(_ context.Context, cabinetID int) (*model.CabinetRevenue, error) {
	rev, ok := f.cabinets[cabinetID]
	if !ok {
		return &model.CabinetRevenue{CabinetID: cabinetID}, nil
	}
	r := *rev
	return &r, nil
}

func (f *fakeRevenueRepo) AccruePlay(_ context.Context, cabinetID int, ownerShare, price int64) error {
	rev, ok := f.cabinets[cabinetID]
	if !ok {
		rev = &model.CabinetRevenue{CabinetID: cabinetID, FirstPlayAt: time.Now()}
		f.cabinets[cabinetID] = rev
	}
	rev.Balance += ownerShare
	rev.TotalPlays++
	rev.TotalRevenue += price
	rev.LastPlayAt = time.Now()
	return nil
}

func (f *fakeRevenueRepo) ZeroBalance(_ context.Context, cabinetID int) error {
	if rev, ok := f.cabinets[cabinetID]; ok {
		rev.Balance = 0
	}
	return nil
}

func (f *fakeRevenueRepo) GetPlatformBalance(_ context.Context) (int64, error) {
	return f.platformBalance, nil
}

func (f *fakeRevenueRepo) AddPlatformBalance(_ context.Context, amount int64) error {
	f.platformBalance += amount
	return nil
}

func (f *fakeRevenueRepo) ZeroPlatformBalance(_ context.Context) error {
	f.platformBalance = 0
	return nil
}

func (f *fakeRevenueRepo) GetPlatformRecipient(_ context.Context) (int, error) {
	if !f.hasRecipient {
		return 0, repository.ErrNotFound
	}
	return f.platformRecipient, nil
}

func (f *fakeRevenueRepo) SetPlatformRecipient(_ context.Context, userID int) error {
	f.platformRecipient = userID
	f.hasRecipient = true
	return nil
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

const ownerID = 10

func newTestRevenue(ownedCabinets ...int) (*serv, *fakeRevenueRepo, *fakeUserRepo, *platform_state_repo.StateRepo) {
	repo := newFakeRevenueRepo()
	cabinets := &fakeCabinetRepo{cabinets: map[int]*model.Cabinet{}}
	for _, id := range ownedCabinets {
		cabinets.cabinets[id] = &model.Cabinet{ID: id, OwnerID: ownerID, PlayPrice: 100, MaxItems: 10, FeeRateBps: 500, IsActive: true}
	}
	users := &fakeUserRepo{balances: map[int]int64{}}
	state := platform_state_repo.NewPlatformStateRepository()

	s := NewRevenueService(repo, cabinets, users, state, fakeTxManager{})
	return s.(*serv), repo, users, state
}

func ownerCtx() context.Context {
	return middleware.WithUser(context.Background(), ownerID, model.RolePlayer)
}

func adminCtx() context.Context {
	return middleware.WithUser(context.Background(), 1, model.RoleAdmin)
}

func TestAccruePlaySplitsPrice(t *testing.T) {
	s, repo, _, _ := newTestRevenue(1)

	// 5% комиссии: 95 кабинету, 5 платформе
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 500))

	rev := repo.cabinets[1]
	assert.Equal(t, int64(95), rev.Balance)
	assert.Equal(t, int64(1), rev.TotalPlays)
	assert.Equal(t, int64(100), rev.TotalRevenue)
	assert.Equal(t, int64(5), repo.platformBalance)
}

func TestAccruePlayZeroFee(t *testing.T) {
	s, repo, _, _ := newTestRevenue(1)

	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 0))

	assert.Equal(t, int64(100), repo.cabinets[1].Balance)
	assert.Zero(t, repo.platformBalance)
}

func TestWithdrawCreditsOwnerAndZeroes(t *testing.T) {
	s, repo, users, _ := newTestRevenue(1)
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 500))
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 500))

	amount, err := s.Withdraw(ownerCtx(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(190), amount)
	assert.Equal(t, int64(190), users.balances[ownerID])
	assert.Zero(t, repo.cabinets[1].Balance)

	// Повторный вывод при нулевом балансе отклоняется
	_, err = s.Withdraw(ownerCtx(), 1)
	assert.ErrorIs(t, err, ErrNothingToWithdraw)
}

func TestWithdrawRejectsNonOwner(t *testing.T) {
	s, _, _, _ := newTestRevenue(1)
	stranger := middleware.WithUser(context.Background(), 99, model.RolePlayer)

	_, err := s.Withdraw(stranger, 1)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestBatchWithdraw(t *testing.T) {
	s, _, users, _ := newTestRevenue(1, 2, 3)
	for id := 1; id <= 3; id++ {
		require.NoError(t, s.AccruePlay(context.Background(), id, 100, 0))
	}

	total, err := s.BatchWithdraw(ownerCtx(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)
	assert.Equal(t, int64(300), users.balances[ownerID])
}

func TestBatchWithdrawRejectsOversizedBatch(t *testing.T) {
	s, _, _, _ := newTestRevenue(1)

	ids := make([]int, 11)
	for i := range ids {
		ids[i] = i + 1
	}

	_, err := s.BatchWithdraw(ownerCtx(), ids)
	assert.ErrorIs(t, err, ErrBatchSize)

	_, err = s.BatchWithdraw(ownerCtx(), nil)
	assert.ErrorIs(t, err, ErrBatchSize)
}

func TestBatchWithdrawAllOrNothing(t *testing.T) {
	s, _, users, _ := newTestRevenue(1, 2)
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 0))
	// Кабинет 2 без выручки

	_, err := s.BatchWithdraw(ownerCtx(), []int{1, 2})
	assert.ErrorIs(t, err, ErrNothingToWithdraw)
	assert.Zero(t, users.balances[ownerID])
}

func TestForecastBounds(t *testing.T) {
	s, _, _, _ := newTestRevenue(1)

	_, err := s.Forecast(ownerCtx(), 1, 0)
	assert.ErrorIs(t, err, ErrForecastDays)

	_, err = s.Forecast(ownerCtx(), 1, 366)
	assert.ErrorIs(t, err, ErrForecastDays)
}

func TestForecastWithoutHistoryIsZero(t *testing.T) {
	s, _, _, _ := newTestRevenue(1)

	amount, err := s.Forecast(ownerCtx(), 1, 30)
	require.NoError(t, err)
	assert.Zero(t, amount)
}

func TestForecastProjectsAveragePerDay(t *testing.T) {
	s, repo, _, _ := newTestRevenue(1)

	// 10 игр по 100 за один день истории
	repo.cabinets[1] = &model.CabinetRevenue{
		CabinetID:    1,
		TotalPlays:   10,
		TotalRevenue: 1000,
		FirstPlayAt:  time.Now().Add(-12 * time.Hour),
	}

	amount, err := s.Forecast(ownerCtx(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), amount)
}

func TestWithdrawPlatform(t *testing.T) {
	s, repo, users, _ := newTestRevenue(1)
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 1000))
	require.Equal(t, int64(10), repo.platformBalance)

	// Без назначенного получателя комиссия уходит вызывающему админу
	amount, err := s.WithdrawPlatform(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(10), amount)
	assert.Equal(t, int64(10), users.balances[1])
	assert.Zero(t, repo.platformBalance)

	_, err = s.WithdrawPlatform(adminCtx())
	assert.ErrorIs(t, err, ErrNothingToWithdraw)
}

func TestWithdrawPlatformToRecipient(t *testing.T) {
	s, _, users, _ := newTestRevenue(1)
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 1000))
	require.NoError(t, s.SetPlatformRecipient(adminCtx(), 42))

	_, err := s.WithdrawPlatform(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(10), users.balances[42])
	assert.Zero(t, users.balances[1])
}

func TestWithdrawPlatformRequiresAdmin(t *testing.T) {
	s, _, _, _ := newTestRevenue(1)

	_, err := s.WithdrawPlatform(ownerCtx())
	assert.ErrorIs(t, err, middleware.ErrForbidden)

	assert.ErrorIs(t, s.SetPlatformRecipient(ownerCtx(), 42), middleware.ErrForbidden)
}

func TestWithdrawRejectedWhenPaused(t *testing.T) {
	s, _, _, state := newTestRevenue(1)
	require.NoError(t, s.AccruePlay(context.Background(), 1, 100, 0))
	state.Pause()

	_, err := s.Withdraw(ownerCtx(), 1)
	assert.ErrorIs(t, err, ErrPaused)

	_, err = s.BatchWithdraw(ownerCtx(), []int{1})
	assert.ErrorIs(t, err, ErrPaused)
}
