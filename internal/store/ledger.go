package store

import (
	"database/sql"
	"fmt"

	"hearth/internal/model"
)

// LedgerStore reads the append-only points ledger. The only writer is
// CompletionStore.Complete, which appends inside its transaction.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func scanLedgerEntry(scanner interface{ Scan(...any) error }) (*model.LedgerEntry, error) {
	var e model.LedgerEntry
	err := scanner.Scan(&e.ID, &e.UserID, &e.Delta, &e.Reason, &e.TS)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const ledgerCols = `id, user_id, delta, reason, ts`

// SumForUser returns the user's point total: the sum of all their deltas.
func (s *LedgerStore) SumForUser(userID int64) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(delta), 0) FROM points_ledger WHERE user_id = ?`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return total, nil
}

func (s *LedgerStore) ListForUser(userID int64) ([]model.LedgerEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+ledgerCols+` FROM points_ledger WHERE user_id = ? ORDER BY ts DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Leaderboard returns per-user point totals for a household, highest
// first. Users with no ledger entries appear with a zero total.
func (s *LedgerStore) Leaderboard(householdID int64) ([]model.PointBalance, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, COALESCE(SUM(l.delta), 0) AS total
		 FROM users u
		 LEFT JOIN points_ledger l ON l.user_id = u.id
		 WHERE u.household_id = ?
		 GROUP BY u.id, u.name
		 ORDER BY total DESC, u.name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var balances []model.PointBalance
	for rows.Next() {
		var b model.PointBalance
		if err := rows.Scan(&b.UserID, &b.UserName, &b.Total); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
