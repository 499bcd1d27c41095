package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
)

const selectFunds = `
	SELECT name, category, nav, return_1y, return_3y, return_5y, risk_level, min_investment
	FROM funds
`

// PostgresStore справочник фондов в таблице funds
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore открывает пул соединений по DSN и проверяет доступность базы
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is not set")
	}
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// пул подключается лениво, поэтому ошибку в DSN ловим сразу
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close закрывает пул соединений
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) List(ctx context.Context) ([]FundRecord, error) {
	rows, err := s.pool.Query(ctx, selectFunds+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query funds: %w", err)
	}
	return collectFunds(rows)
}

func (s *PostgresStore) ListByRisk(ctx context.Context, level allocation.RiskLevel) ([]FundRecord, error) {
	rows, err := s.pool.Query(ctx, selectFunds+" WHERE risk_level = $1 ORDER BY name", string(level))
	if err != nil {
		return nil, fmt.Errorf("failed to query funds by risk: %w", err)
	}
	return collectFunds(rows)
}

func collectFunds(rows pgx.Rows) ([]FundRecord, error) {
	defer rows.Close()

	var funds []FundRecord
	for rows.Next() {
		var (
			raw                 rawFund
			ret1y, ret3y, ret5y *float64
		)
		if err := rows.Scan(&raw.Name, &raw.Category, &raw.NAV, &ret1y, &ret3y, &ret5y, &raw.Risk, &raw.MinInvestment); err != nil {
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}
		raw.Returns = map[string]float64{}
		for key, v := range map[string]*float64{"1y": ret1y, "3y": ret3y, "5y": ret5y} {
			if v != nil {
				raw.Returns[key] = *v
			}
		}
		funds = append(funds, raw.normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read funds: %w", err)
	}
	return funds, nil
}
