package ledger

import (
	"sync"

	sdkErr "github.com/saveio/chain-go-sdk/error"
	chaincom "github.com/saveio/themis/common"
)

type accountState struct {
	free  uint64
	holds map[HoldReason]uint64
}

func (this *accountState) heldTotal() uint64 {
	total := uint64(0)
	for _, amount := range this.holds {
		total += amount
	}
	return total
}

func (this *accountState) clone() *accountState {
	holds := make(map[HoldReason]uint64, len(this.holds))
	for reason, amount := range this.holds {
		holds[reason] = amount
	}
	return &accountState{free: this.free, holds: holds}
}

// MemLedger. in-memory fungible currency ledger with per-reason holds,
// used as the chain's balances collaborator in tests and local runs
type MemLedger struct {
	accounts map[chaincom.Address]*accountState
	issuance uint64
	lock     sync.Mutex
}

func NewMemLedger() *MemLedger {
	return &MemLedger{
		accounts: make(map[chaincom.Address]*accountState),
	}
}

func (this *MemLedger) account(who chaincom.Address) *accountState {
	acc, ok := this.accounts[who]
	if !ok {
		acc = &accountState{holds: make(map[HoldReason]uint64)}
		this.accounts[who] = acc
	}
	return acc
}

func (this *MemLedger) Balance(who chaincom.Address) uint64 {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc, ok := this.accounts[who]
	if !ok {
		return 0
	}
	return acc.free
}

// TotalIssuance. sum of everything minted minus everything burned
func (this *MemLedger) TotalIssuance() uint64 {
	this.lock.Lock()
	defer this.lock.Unlock()
	return this.issuance
}

func (this *MemLedger) Withdraw(who chaincom.Address, amount uint64) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc := this.account(who)
	if acc.free < amount {
		return sdkErr.New(sdkErr.LEDGER_WITHDRAW_ERROR,
			"withdraw %d from %s exceeds balance %d", amount, who.ToBase58(), acc.free)
	}
	acc.free -= amount
	this.issuance -= amount
	return nil
}

func (this *MemLedger) Deposit(who chaincom.Address, amount uint64) {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc := this.account(who)
	acc.free += amount
	this.issuance += amount
}

func (this *MemLedger) Hold(reason HoldReason, who chaincom.Address, amount uint64) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc := this.account(who)
	if acc.free < amount {
		return sdkErr.New(sdkErr.LEDGER_HOLD_ERROR,
			"hold %d (%s) from %s exceeds balance %d", amount, reason, who.ToBase58(), acc.free)
	}
	acc.free -= amount
	acc.holds[reason] += amount
	return nil
}

func (this *MemLedger) HeldBalance(reason HoldReason, who chaincom.Address) uint64 {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc, ok := this.accounts[who]
	if !ok {
		return 0
	}
	return acc.holds[reason]
}

func (this *MemLedger) Release(reason HoldReason, who chaincom.Address, amount uint64,
	bestEffort bool) (uint64, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc := this.account(who)
	held := acc.holds[reason]
	actual := amount
	if held < amount {
		if !bestEffort {
			return 0, sdkErr.New(sdkErr.LEDGER_RELEASE_ERROR,
				"release %d (%s) from %s exceeds held %d", amount, reason, who.ToBase58(), held)
		}
		actual = held
	}
	acc.holds[reason] -= actual
	acc.free += actual
	return actual, nil
}

func (this *MemLedger) Mint(dest chaincom.Address, amount uint64) (uint64, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc := this.account(dest)
	acc.free += amount
	this.issuance += amount
	return amount, nil
}

func (this *MemLedger) Burn(who chaincom.Address, amount uint64, bestEffort, force bool) (uint64, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	acc := this.account(who)
	reducible := acc.free
	if force {
		reducible += acc.heldTotal()
	}
	actual := amount
	if reducible < amount {
		if !bestEffort {
			return 0, sdkErr.New(sdkErr.LEDGER_BURN_ERROR,
				"burn %d from %s exceeds reducible %d", amount, who.ToBase58(), reducible)
		}
		actual = reducible
	}
	remaining := actual
	if acc.free >= remaining {
		acc.free -= remaining
		remaining = 0
	} else {
		remaining -= acc.free
		acc.free = 0
	}
	if remaining > 0 {
		// forced burn eats into held funds
		for reason, held := range acc.holds {
			if remaining == 0 {
				break
			}
			if held >= remaining {
				acc.holds[reason] -= remaining
				remaining = 0
			} else {
				remaining -= held
				acc.holds[reason] = 0
			}
		}
	}
	this.issuance -= actual
	return actual, nil
}

type memSnapshot struct {
	accounts map[chaincom.Address]*accountState
	issuance uint64
}

func (this *MemLedger) Snapshot() Snapshot {
	this.lock.Lock()
	defer this.lock.Unlock()
	accounts := make(map[chaincom.Address]*accountState, len(this.accounts))
	for who, acc := range this.accounts {
		accounts[who] = acc.clone()
	}
	return &memSnapshot{accounts: accounts, issuance: this.issuance}
}

func (this *MemLedger) Restore(snapshot Snapshot) {
	snap, ok := snapshot.(*memSnapshot)
	if !ok {
		return
	}
	this.lock.Lock()
	defer this.lock.Unlock()
	this.accounts = snap.accounts
	this.issuance = snap.issuance
}
