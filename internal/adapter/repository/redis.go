package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

const symbolSetKey = "stocks:symbols"

// RedisRepository keeps one JSON record per symbol. Update runs under
// WATCH, so a record changed between read and write fails the transaction
// and surfaces as model.ErrWriteConflict.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(addr, password string, db int) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRepository{client: client}, nil
}

var _ port.SymbolRepository = (*RedisRepository)(nil)

func recordKey(symbol string) string {
	return "stocks:record:" + symbol
}

func (r *RedisRepository) Register(ctx context.Context, stock model.Stock) error {
	data, err := json.Marshal(stock)
	if err != nil {
		return fmt.Errorf("failed to marshal stock: %w", err)
	}

	ok, err := r.client.SetNX(ctx, recordKey(stock.Symbol), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to register stock: %w", err)
	}
	if !ok {
		return model.ErrSymbolExists
	}

	if err := r.client.SAdd(ctx, symbolSetKey, stock.Symbol).Err(); err != nil {
		return fmt.Errorf("failed to index symbol: %w", err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, symbol string) (*model.Stock, error) {
	data, err := r.client.Get(ctx, recordKey(symbol)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("failed to get stock from redis: %w", err)
	}

	var stock model.Stock
	if err := json.Unmarshal(data, &stock); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stock: %w", err)
	}
	return &stock, nil
}

func (r *RedisRepository) List(ctx context.Context) ([]model.Stock, error) {
	symbols, err := r.Symbols(ctx)
	if err != nil {
		return nil, err
	}

	stocks := make([]model.Stock, 0, len(symbols))
	for _, sym := range symbols {
		st, err := r.Get(ctx, sym)
		if err != nil {
			if errors.Is(err, model.ErrSymbolNotFound) {
				continue
			}
			return nil, err
		}
		stocks = append(stocks, *st)
	}
	return stocks, nil
}

func (r *RedisRepository) Symbols(ctx context.Context) ([]string, error) {
	symbols, err := r.client.SMembers(ctx, symbolSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	return symbols, nil
}

func (r *RedisRepository) Update(ctx context.Context, symbol string, mutate func(*model.Stock) error) error {
	key := recordKey(symbol)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrSymbolNotFound
			}
			return fmt.Errorf("failed to get stock for update: %w", err)
		}

		var stock model.Stock
		if err := json.Unmarshal(data, &stock); err != nil {
			return fmt.Errorf("failed to unmarshal stock: %w", err)
		}

		if err := mutate(&stock); err != nil {
			return err
		}
		stock.Version++

		out, err := json.Marshal(&stock)
		if err != nil {
			return fmt.Errorf("failed to marshal stock: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrWriteConflict
	}
	return err
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
