package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"multiplayer-quiz/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads question sets stored as JSONB in Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadSet(ctx context.Context, setID string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, setID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("unmarshal question set: %w", err)
	}
	if len(set.Questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	return set.Questions, nil
}
