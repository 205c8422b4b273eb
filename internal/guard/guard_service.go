package guard

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-vigilancia/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const GuardOptionsKey = "guard:options"

//go:generate mockgen -source=guard_service.go -destination=mock/guard_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateGuardRequest) (GuardResponse, error)
	GetAll(ctx context.Context) ([]GuardResponse, error)
	GetOptions(ctx context.Context) ([]GuardOption, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("guard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("guard.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateGuardRequest) (GuardResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create guard requested",
		zap.String("request_id", rid),
		zap.String("legajo", req.Legajo),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create guard begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return GuardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g := &Guard{
		ID:       uuid.New(),
		FullName: req.FullName,
		Legajo:   req.Legajo,
		Phone:    req.Phone,
		Active:   true,
	}

	if err := qtx.Create(ctx, g); err != nil {
		s.logger.Error("create guard failed", zap.String("request_id", rid), zap.Error(err))
		return GuardResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return GuardResponse{}, err
	}

	s.invalidateOptions(ctx)

	s.logger.Info("create guard success",
		zap.String("request_id", rid),
		zap.String("guard_id", g.ID.String()),
	)
	return mapToResponse(*g), nil
}

func (s *service) GetAll(ctx context.Context) ([]GuardResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all guards failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]GuardResponse, len(rows))
	for i, g := range rows {
		res[i] = mapToResponse(g)
	}
	return res, nil
}

func (s *service) GetOptions(ctx context.Context) ([]GuardOption, error) {
	cacheKey := GuardOptionsKey

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []GuardOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// singleflight collapses the stampede when planners open the
	// assignment form at month start
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]GuardOption, 0, len(rows))
		for _, g := range rows {
			if !g.Active {
				continue
			}
			resp = append(resp, GuardOption{
				ID:       g.ID.String(),
				FullName: g.FullName,
				Legajo:   g.Legajo,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]GuardOption), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.SoftDelete(ctx, id); err != nil {
		s.logger.Error("delete guard failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptions(ctx)

	s.logger.Info("delete guard success",
		zap.String("request_id", rid),
		zap.String("guard_id", id),
	)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GuardOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate guard options cache",
			zap.Error(err),
			zap.String("key", GuardOptionsKey),
		)
	}
}

func mapToResponse(g Guard) GuardResponse {
	return GuardResponse{
		ID:       g.ID.String(),
		FullName: g.FullName,
		Legajo:   g.Legajo,
		Phone:    g.Phone,
		Active:   g.Active,
	}
}
