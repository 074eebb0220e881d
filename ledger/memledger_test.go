package ledger

import (
	"testing"

	chaincom "github.com/saveio/themis/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddr(tag byte) chaincom.Address {
	var addr chaincom.Address
	addr[0] = tag
	return addr
}

func TestHoldReleaseConservation(t *testing.T) {
	l := NewMemLedger()
	who := testAddr(1)
	l.Deposit(who, 1000)

	require.NoError(t, l.Hold(HoldCouncilMembership, who, 400))
	assert.Equal(t, uint64(600), l.Balance(who))
	assert.Equal(t, uint64(400), l.HeldBalance(HoldCouncilMembership, who))

	released, err := l.Release(HoldCouncilMembership, who, 400, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), released)
	assert.Equal(t, uint64(1000), l.Balance(who))
}

func TestReleaseBestEffort(t *testing.T) {
	l := NewMemLedger()
	who := testAddr(2)
	l.Deposit(who, 100)
	require.NoError(t, l.Hold(HoldBinding, who, 100))

	// strict release beyond held fails
	_, err := l.Release(HoldBinding, who, 150, false)
	require.Error(t, err)

	// best effort release never errors and returns what was there
	released, err := l.Release(HoldBinding, who, 150, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), released)
	assert.Equal(t, uint64(100), l.Balance(who))
}

func TestHoldBeyondBalance(t *testing.T) {
	l := NewMemLedger()
	who := testAddr(3)
	l.Deposit(who, 10)
	err := l.Hold(HoldBinding, who, 20)
	require.Error(t, err)
	assert.Equal(t, uint64(10), l.Balance(who))
}

func TestWithdrawDepositIssuance(t *testing.T) {
	l := NewMemLedger()
	who := testAddr(4)
	l.Deposit(who, 500)
	assert.Equal(t, uint64(500), l.TotalIssuance())

	require.NoError(t, l.Withdraw(who, 200))
	assert.Equal(t, uint64(300), l.Balance(who))
	assert.Equal(t, uint64(300), l.TotalIssuance())

	require.Error(t, l.Withdraw(who, 1000))
}

func TestBurnBestEffortForce(t *testing.T) {
	l := NewMemLedger()
	who := testAddr(5)
	l.Deposit(who, 100)
	require.NoError(t, l.Hold(HoldBinding, who, 60))

	// without force only the free part is reducible
	burned, err := l.Burn(who, 1000, true, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), burned)

	// forced burn reaches into held funds
	burned, err = l.Burn(who, 1000, true, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), burned)
	assert.Equal(t, uint64(0), l.HeldBalance(HoldBinding, who))
}

func TestSnapshotRestore(t *testing.T) {
	l := NewMemLedger()
	who := testAddr(6)
	l.Deposit(who, 1000)

	snap := l.Snapshot()
	require.NoError(t, l.Withdraw(who, 700))
	require.NoError(t, l.Hold(HoldBinding, who, 100))
	l.Restore(snap)

	assert.Equal(t, uint64(1000), l.Balance(who))
	assert.Equal(t, uint64(0), l.HeldBalance(HoldBinding, who))
}
