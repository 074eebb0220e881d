package config

import (
	"github.com/saveio/chain-go-sdk/consts"
	chaincom "github.com/saveio/themis/common"
)

// FeeFromBytes. fee curve from a byte size, must be monotonic non-decreasing
type FeeFromBytes func(size uint64) uint64

type ChainConfig struct {
	DBPath      string           // level DB data path
	BurnAddress chaincom.Address // chain's burn address

	MaxMembers                uint32 // council capacity
	RegistrationDepositAmount uint64 // council membership hold amount

	InitialWeightToFeeMultiplier uint64
	InitialWeightToFeeDivider    uint64
	InitialMinimumTransactionFee uint64

	UploadFeePerByte           FeeFromBytes
	DownloadFeePerByte         FeeFromBytes
	StorageFeePerBytePerPeriod FeeFromBytes
	StoragePeriod              uint64 // blocks between storage fee collections

	ServicerUploadFeePercent     uint64 // servicer portion of upload fee
	BigBrotherDownloadFeePercent uint64 // big brother portion of download fee
	RoyaltyFeePercent            uint64 // uploader + big brother portion of transfer fee

	BindingDepositAmount  uint64 // held per attester binding
	RegistrationFeeAmount uint64 // once per servicer existence
	MaxMediators          uint32
}

func DefaultChainConfig() *ChainConfig {
	config := &ChainConfig{
		DBPath:                       "./db",
		BurnAddress:                  chaincom.ADDRESS_EMPTY,
		MaxMembers:                   consts.MAX_MEMBERS,
		RegistrationDepositAmount:    consts.REGISTRATION_DEPOSIT_AMOUNT,
		InitialWeightToFeeMultiplier: consts.INITIAL_WEIGHT_TO_FEE_MULTIPLIER,
		InitialWeightToFeeDivider:    consts.INITIAL_WEIGHT_TO_FEE_DIVIDER,
		InitialMinimumTransactionFee: consts.INITIAL_MINIMUM_TRANSACTION_FEE,
		UploadFeePerByte:             consts.UploadFee,
		DownloadFeePerByte:           consts.DownloadFee,
		StorageFeePerBytePerPeriod:   consts.StorageFeePerPeriod,
		StoragePeriod:                consts.STORAGE_PERIOD_BLOCKS,
		ServicerUploadFeePercent:     consts.SERVICER_UPLOAD_FEE_PERCENT,
		BigBrotherDownloadFeePercent: consts.BB_DOWNLOAD_FEE_PERCENT,
		RoyaltyFeePercent:            consts.ROYALTY_FEE_PERCENT,
		BindingDepositAmount:         consts.BINDING_DEPOSIT_AMOUNT,
		RegistrationFeeAmount:        consts.REGISTRATION_FEE_AMOUNT,
		MaxMediators:                 consts.MAX_MEDIATORS,
	}
	return config
}
