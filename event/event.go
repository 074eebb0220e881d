package event

import (
	dspCom "github.com/saveio/chain-go-sdk/common"
	"github.com/saveio/chain-go-sdk/store"
	chaincom "github.com/saveio/themis/common"
)

// Event. typed payload appended to the external event log. Nothing in the
// core depends on emission succeeding.
type Event interface {
	Name() string
}

// council events

type ElderAscended struct {
	Who chaincom.Address
}

type ElderDescended struct {
	Who chaincom.Address
}

type BigBrotherAdded struct {
	Who  chaincom.Address
	By   *chaincom.Address // nil when added by root
	Hold uint64
}

type BigBrotherRemoved struct {
	Who     chaincom.Address
	By      *chaincom.Address
	Release uint64
}

type CirculationIncreased struct {
	Increase uint64
	By       *chaincom.Address
}

type CirculationDecreased struct {
	Decrease uint64
	By       *chaincom.Address
}

type TxFeeParametersChange struct {
	Old store.TransactionFeeInfo
	New store.TransactionFeeInfo
}

type TxFeeParametersRejected struct {
	Rejected store.TransactionFeeInfo
	By       chaincom.Address
}

type TxFeeParametersChangeProposed struct {
	Proposal store.TransactionFeeInfo
	By       chaincom.Address
}

type TxFeeParametersChangeVoted struct {
	By             chaincom.Address
	RemainingCount uint32
}

func (ElderAscended) Name() string                 { return "ElderAscended" }
func (ElderDescended) Name() string                { return "ElderDescended" }
func (BigBrotherAdded) Name() string               { return "BigBrotherAdded" }
func (BigBrotherRemoved) Name() string             { return "BigBrotherRemoved" }
func (CirculationIncreased) Name() string          { return "CirculationIncreased" }
func (CirculationDecreased) Name() string          { return "CirculationDecreased" }
func (TxFeeParametersChange) Name() string         { return "TxFeeParametersChange" }
func (TxFeeParametersRejected) Name() string       { return "TxFeeParametersRejected" }
func (TxFeeParametersChangeProposed) Name() string { return "TxFeeParametersChangeProposed" }
func (TxFeeParametersChangeVoted) Name() string    { return "TxFeeParametersChangeVoted" }

// files events

type FileUploaded struct {
	File   chaincom.Address
	Length uint64
}

type UploadFeePaid struct {
	By     chaincom.Address
	Amount uint64
	File   chaincom.Address
}

type UploadFeeDistributed struct {
	To     chaincom.Address
	Amount uint64
	File   chaincom.Address
}

type DownloadFeePaid struct {
	By     chaincom.Address
	Amount uint64
	File   chaincom.Address
}

type DownloadFeeDistributed struct {
	To     chaincom.Address
	Amount uint64
	File   chaincom.Address
}

type OwnershipTransferFeePaid struct {
	By     chaincom.Address
	Amount uint64
	File   chaincom.Address
}

type OwnershipTransferFeeDistributed struct {
	To     chaincom.Address
	Amount uint64
	File   chaincom.Address
}

type FileOwnershipTransferred struct {
	From chaincom.Address
	To   chaincom.Address
	File chaincom.Address
}

type InsufficientAmountForKeepingFile struct {
	File chaincom.Address
}

type StorageFeePaid struct {
	File   chaincom.Address
	Amount uint64
}

type StorageFeeDistributed struct {
	File   chaincom.Address
	To     chaincom.Address
	Amount uint64
}

func (FileUploaded) Name() string                     { return "FileUploaded" }
func (UploadFeePaid) Name() string                    { return "UploadFeePaid" }
func (UploadFeeDistributed) Name() string             { return "UploadFeeDistributed" }
func (DownloadFeePaid) Name() string                  { return "DownloadFeePaid" }
func (DownloadFeeDistributed) Name() string           { return "DownloadFeeDistributed" }
func (OwnershipTransferFeePaid) Name() string         { return "OwnershipTransferFeePaid" }
func (OwnershipTransferFeeDistributed) Name() string  { return "OwnershipTransferFeeDistributed" }
func (FileOwnershipTransferred) Name() string         { return "FileOwnershipTransferred" }
func (InsufficientAmountForKeepingFile) Name() string { return "InsufficientAmountForKeepingFile" }
func (StorageFeePaid) Name() string                   { return "StorageFeePaid" }
func (StorageFeeDistributed) Name() string            { return "StorageFeeDistributed" }

// registry events

type BigBrotherAttesterSupplied struct {
	Id dspCom.AttesterId
	Bb chaincom.Address
}

type BigBrotherAttesterRecalled struct {
	Id dspCom.AttesterId
	Bb chaincom.Address
}

type ServicerReputationIncreased struct {
	By  chaincom.Address
	On  dspCom.AttesterId
	Who chaincom.Address
}

type ServicerReputationDecreased struct {
	By  chaincom.Address
	On  dspCom.AttesterId
	Who chaincom.Address
}

type AttesterBinded struct {
	To     chaincom.Address
	Which  dspCom.AttesterId
	PeerId dspCom.PeerId
}

type MediatorAdded struct {
	Who chaincom.Address
	By  chaincom.Address
}

type MediatorRemoved struct {
	Who chaincom.Address
	By  chaincom.Address
}

type ServicerRegistrationFeePaid struct {
	Who    chaincom.Address
	Amount uint64
}

type ServicerBalanceHeldForBinding struct {
	Who    chaincom.Address
	Amount uint64
}

type ServicerBalanceHeldForBindingReleased struct {
	Who    chaincom.Address
	Amount uint64
}

type RemoteAttestationDeviceRebindedForcefully struct {
	Device dspCom.AttesterId
	From   chaincom.Address
	To     chaincom.Address
	By     chaincom.Address
}

func (BigBrotherAttesterSupplied) Name() string  { return "BigBrotherAttesterSupplied" }
func (BigBrotherAttesterRecalled) Name() string  { return "BigBrotherAttesterRecalled" }
func (ServicerReputationIncreased) Name() string { return "ServicerReputationIncreased" }
func (ServicerReputationDecreased) Name() string { return "ServicerReputationDecreased" }
func (AttesterBinded) Name() string              { return "AttesterBinded" }
func (MediatorAdded) Name() string               { return "MediatorAdded" }
func (MediatorRemoved) Name() string             { return "MediatorRemoved" }
func (ServicerRegistrationFeePaid) Name() string { return "ServicerRegistrationFeePaid" }
func (ServicerBalanceHeldForBinding) Name() string {
	return "ServicerBalanceHeldForBinding"
}
func (ServicerBalanceHeldForBindingReleased) Name() string {
	return "ServicerBalanceHeldForBindingReleased"
}
func (RemoteAttestationDeviceRebindedForcefully) Name() string {
	return "RemoteAttestationDeviceRebindedForcefully"
}
