package txfee

import (
	"math"

	"github.com/saveio/chain-go-sdk/consts"
	sdkErr "github.com/saveio/chain-go-sdk/error"
	"github.com/saveio/chain-go-sdk/store"
)

// Calculator turns execution weight and payload length into a transaction
// fee, using the live council-controlled parameters.
type Calculator struct {
	state *store.StateDB
}

func NewCalculator(state *store.StateDB) *Calculator {
	return &Calculator{state: state}
}

// WeightToFee normalizes reference execution time into a fee, clamped from
// below by the minimum transaction fee. Multiplication saturates.
func (this *Calculator) WeightToFee(refTime uint64) (uint64, *sdkErr.Error) {
	info, err := this.state.GetFeeInfo()
	if err != nil {
		return 0, sdkErr.New(sdkErr.STATE_DB_ERROR, "read fee info: %s", err)
	}
	if info == nil {
		return 0, sdkErr.New(sdkErr.FATAL_ERROR, "fee parameters missing from state")
	}
	fee := saturatingMul(refTime, info.WeightToFeeMultiplier) / info.WeightToFeeDivider
	if fee < info.MinimumTransactionFee {
		fee = info.MinimumTransactionFee
	}
	return fee, nil
}

// LengthToFee prices the byte length of a submitted transaction as one item
// plus its payload bytes.
func (this *Calculator) LengthToFee(length uint64) uint64 {
	return consts.GetFee(1, length)
}

func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}
