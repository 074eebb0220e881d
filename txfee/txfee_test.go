package txfee

import (
	"math"
	"testing"

	"github.com/saveio/chain-go-sdk/consts"
	"github.com/saveio/chain-go-sdk/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T, info *store.TransactionFeeInfo) (*Calculator, *store.StateDB) {
	db, err := store.NewMemLevelDBStore()
	require.NoError(t, err)
	state, err := store.NewStateDB(db)
	require.NoError(t, err)
	tx := state.NewTx()
	require.NoError(t, tx.SetFeeInfo(info))
	require.NoError(t, tx.Commit())
	return NewCalculator(state), state
}

func TestWeightToFeeMinimumClamp(t *testing.T) {
	calc, state := newTestCalculator(t, &store.TransactionFeeInfo{
		WeightToFeeMultiplier: 1,
		WeightToFeeDivider:    consts.REF_TIME_GAS_FEE_DIVIDER,
		MinimumTransactionFee: consts.MIN_GAS_FEE,
	})
	defer state.Close()

	// tiny weights pay the minimum
	fee, serr := calc.WeightToFee(1)
	require.Nil(t, serr)
	assert.Equal(t, uint64(consts.MIN_GAS_FEE), fee)

	// large weights scale linearly
	refTime := uint64(consts.MIN_GAS_FEE) * consts.REF_TIME_GAS_FEE_DIVIDER * 3
	fee, serr = calc.WeightToFee(refTime)
	require.Nil(t, serr)
	assert.Equal(t, uint64(consts.MIN_GAS_FEE)*3, fee)
}

func TestWeightToFeeSaturates(t *testing.T) {
	calc, state := newTestCalculator(t, &store.TransactionFeeInfo{
		WeightToFeeMultiplier: math.MaxUint64,
		WeightToFeeDivider:    1,
		MinimumTransactionFee: 0,
	})
	defer state.Close()

	fee, serr := calc.WeightToFee(math.MaxUint64)
	require.Nil(t, serr)
	assert.Equal(t, uint64(math.MaxUint64), fee)
}

func TestLengthToFee(t *testing.T) {
	calc, state := newTestCalculator(t, &store.TransactionFeeInfo{
		WeightToFeeMultiplier: 1,
		WeightToFeeDivider:    1,
		MinimumTransactionFee: 0,
	})
	defer state.Close()

	assert.Equal(t, consts.GetFee(1, 0), calc.LengthToFee(0))
	assert.Equal(t, consts.GetFee(1, 100), calc.LengthToFee(100))
	// monotonic non-decreasing
	assert.True(t, calc.LengthToFee(101) >= calc.LengthToFee(100))
}
