package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"marketplace-ads/internal/core/domain"
)

func TestMapErr(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, domain.ErrConcurrencyConflict},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), domain.ErrConcurrencyConflict},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrInvalidArgument},
		{"missing advertiser", &pgconn.PgError{Code: "23503", ConstraintName: "campaigns_advertiser_id_fkey"}, domain.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidArgument},
		{"other", boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapErr(tt.err, "campaign c1"), tt.want)
		})
	}
	assert.NoError(t, mapErr(nil, "campaign c1"))
}

func TestLedgerErrKeepsDomainSentinels(t *testing.T) {
	err := ledgerErr(fmt.Errorf("event e1: %w", domain.ErrDuplicateEvent), "c1")
	assert.ErrorIs(t, err, domain.ErrDuplicateEvent)
	assert.NotErrorIs(t, err, domain.ErrConcurrencyConflict)

	err = ledgerErr(fmt.Errorf("apply spend: %w", domain.ErrDailyLimitReached), "c1")
	assert.ErrorIs(t, err, domain.ErrDailyLimitReached)

	err = ledgerErr(&pgconn.PgError{Code: "40001"}, "c1")
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Contains(t, err.Error(), "campaign c1")
}
