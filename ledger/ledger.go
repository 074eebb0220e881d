package ledger

import (
	chaincom "github.com/saveio/themis/common"
)

// HoldReason. tagged reason of a held balance, one reason space shared by
// every module
type HoldReason int

const (
	HoldCouncilMembership HoldReason = iota
	HoldBinding
)

func (this HoldReason) String() string {
	switch this {
	case HoldCouncilMembership:
		return "council_membership"
	case HoldBinding:
		return "binding"
	default:
		return "unknown"
	}
}

// Snapshot. opaque ledger state capture, restored on a failed call
type Snapshot interface{}

// Ledger. fungible currency collaborator. All operations are atomic and
// report the actual amount moved. Modules never touch raw balance storage.
type Ledger interface {
	// Balance. transferable balance, held amounts excluded
	Balance(who chaincom.Address) uint64
	// Withdraw. remove amount from who's transferable balance, fails on
	// shortfall
	Withdraw(who chaincom.Address, amount uint64) error
	// Deposit. credit amount to who, creating the account if needed
	Deposit(who chaincom.Address, amount uint64)
	// Hold. reserve amount for a reason, excluded from the transferable
	// balance until released
	Hold(reason HoldReason, who chaincom.Address, amount uint64) error
	// HeldBalance. amount currently on hold for a reason
	HeldBalance(reason HoldReason, who chaincom.Address) uint64
	// Release. free up to amount held for a reason. With bestEffort the
	// actual released amount may be less than requested, without it a
	// shortfall fails.
	Release(reason HoldReason, who chaincom.Address, amount uint64, bestEffort bool) (uint64, error)
	// Mint. increase supply into dest, returns the actual increase
	Mint(dest chaincom.Address, amount uint64) (uint64, error)
	// Burn. decrease supply from who. With bestEffort the burn is capped to
	// the reducible balance, with force frozen funds do not block it.
	Burn(who chaincom.Address, amount uint64, bestEffort, force bool) (uint64, error)
	// Snapshot / Restore. transactional boundary used by the dispatcher
	Snapshot() Snapshot
	Restore(snapshot Snapshot)
}
