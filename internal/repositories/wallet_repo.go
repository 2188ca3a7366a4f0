package repositories

import (
	"database/sql"
	"errors"

	intdb "railbook/internal/db"
	"railbook/internal/domain"
)

// WalletRepo backs the mock payment collaborator with a balance table.
// Debits and credits run inside the ledger transaction, row-locked.
type WalletRepo struct{}

func (WalletRepo) BalanceForUpdate(q intdb.DBTX, account string) (int64, error) {
	var balance int64
	err := q.QueryRow(`SELECT balance FROM wallets WHERE account_id=? FOR UPDATE`, account).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.AccountNotFoundError{Account: account}
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (WalletRepo) Debit(q intdb.DBTX, account string, amount int64) error {
	_, err := q.Exec(`UPDATE wallets SET balance = balance - ? WHERE account_id=?`, amount, account)
	return err
}

func (WalletRepo) Credit(q intdb.DBTX, account string, amount int64) error {
	_, err := q.Exec(`UPDATE wallets SET balance = balance + ? WHERE account_id=?`, amount, account)
	return err
}
