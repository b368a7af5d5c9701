package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) CreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	args := m.Called(ctx, playerID)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (m *mockGameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	return m.Called(ctx, gameID).Error(0)
}

func (m *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (m *mockGameService) GetActiveGamesByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error) {
	args := m.Called(ctx, playerID)
	games, _ := args.Get(0).([]*entity.Game)

	return games, args.Error(1)
}

func (m *mockGameService) LockGame(ctx context.Context, id string) (func(ctx context.Context) error, error) {
	args := m.Called(ctx, id)
	unlock, _ := args.Get(0).(func(ctx context.Context) error)

	return unlock, args.Error(1)
}

type mockScoreRecorder struct {
	mock.Mock
}

func (m *mockScoreRecorder) RecordScore(ctx context.Context, gameID, playerID string, date time.Time, result entity.Result) error {
	return m.Called(ctx, gameID, playerID, date, result).Error(0)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (m *mockGameRepo) ListByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error) {
	args := m.Called(ctx, playerID)
	games, _ := args.Get(0).([]*entity.Game)

	return games, args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGameRepo) Lock(ctx context.Context, id string) (func(ctx context.Context) error, error) {
	args := m.Called(ctx, id)
	unlock, _ := args.Get(0).(func(ctx context.Context) error)

	return unlock, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	args := m.Called(ctx, name)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

// scriptedOpponent replays a fixed list of cells.
type scriptedOpponent struct {
	cells []int
}

func (that *scriptedOpponent) ChooseCell(_ entity.Board) (int, error) {
	cell := that.cells[0]
	that.cells = that.cells[1:]

	return cell, nil
}
