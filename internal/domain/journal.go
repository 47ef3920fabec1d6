package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger account names used by the booking engine. Accounts are created
// externally; the engine only references them on journal entries.
const (
	AccountCash                    = "Cash"
	AccountCautionDepositsReceived = "Caution Deposits Received"
	AccountOwnerCommissionExpense  = "Owner Commission Expense"
	AccountOwnerCommissionPayable  = "Owner Commission Payable"
)

type JournalPartyType string

const (
	PartyTypeSupplier JournalPartyType = "Supplier"
	PartyTypeCustomer JournalPartyType = "Customer"
)

// JournalEntry is a double-entry posting created as a side effect of a
// booking transition. Amounts are rounded to two decimals at posting time.
type JournalEntry struct {
	ID            int32            `json:"id"`
	EntryNumber   string           `json:"entry_number"`
	PostingDate   time.Time        `json:"posting_date"`
	DebitAccount  string           `json:"debit_account"`
	CreditAccount string           `json:"credit_account"`
	Amount        decimal.Decimal  `json:"amount"`
	Remark        string           `json:"remark"`
	PartyType     JournalPartyType `json:"party_type,omitempty"`
	PartyID       *int32           `json:"party_id,omitempty"`
	BookingID     *int32           `json:"booking_id,omitempty"`
	Cancelled     bool             `json:"cancelled"`
	CreatedOn     time.Time        `json:"created_on"`
}
