package services

import (
	intdb "railbook/internal/db"
	"railbook/internal/domain"
	"railbook/internal/repositories"
)

// dbtx is the query surface shared by *sql.DB and *sql.Tx.
type dbtx = intdb.DBTX

// Payments is the collaborator the ledger consults before committing a
// booking and, last thing before commit, during a cancellation.
type Payments interface {
	Pay(q intdb.DBTX, account string, amount int64) error
	Refund(q intdb.DBTX, account string, amount int64) error
}

// WalletPayments implements Payments over the wallets table, inside the
// caller's transaction: a declined payment or failed later step rolls the
// balance change back together with everything else.
type WalletPayments struct {
	Wallets repositories.WalletRepo
}

func (p WalletPayments) Pay(q intdb.DBTX, account string, amount int64) error {
	balance, err := p.Wallets.BalanceForUpdate(q, account)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.PaymentDeclinedError{Account: account, Short: amount - balance}
	}
	return p.Wallets.Debit(q, account, amount)
}

func (p WalletPayments) Refund(q intdb.DBTX, account string, amount int64) error {
	// Lookup validates the account before any credit is written.
	if _, err := p.Wallets.BalanceForUpdate(q, account); err != nil {
		return err
	}
	return p.Wallets.Credit(q, account, amount)
}
