package files

import (
	dspCom "github.com/saveio/chain-go-sdk/common"
	"github.com/saveio/chain-go-sdk/config"
	sdkErr "github.com/saveio/chain-go-sdk/error"
	"github.com/saveio/chain-go-sdk/event"
	"github.com/saveio/chain-go-sdk/ledger"
	"github.com/saveio/chain-go-sdk/store"
	chaincom "github.com/saveio/themis/common"
	"github.com/saveio/themis/common/log"
)

// Files is the storage marketplace. Every fee is withdrawn before any state
// mutation, and every split leaves the remainder with the counterparty so
// shares always sum to the total.
type Files struct {
	cfg    *config.ChainConfig
	ledger ledger.Ledger
}

func NewFiles(cfg *config.ChainConfig, ldg ledger.Ledger) *Files {
	return &Files{
		cfg:    cfg,
		ledger: ldg,
	}
}

// UploadArgs carries the immutable metadata of a new file.
type UploadArgs struct {
	Hash        dspCom.FileHash
	Uploader    chaincom.Address
	BigBrother  chaincom.Address
	Servicer    chaincom.Address
	TransferFee uint64
	Size        uint64
	FreeForAll  bool
}

// percentOf. floor(total * percent / 100) without overflowing the product
func percentOf(total, percent uint64) uint64 {
	return (total/100)*percent + (total%100)*percent/100
}

// halves. split by the literal 2, second half keeps the remainder
func halves(total uint64) (uint64, uint64) {
	half := total / 2
	return half, total - half
}

// Upload registers a new file under fileId, owned by its uploader. The
// upload fee is withdrawn from the uploader and split between the big
// brother and the servicer.
func (this *Files) Upload(tx *store.StateTx, origin dspCom.Origin, fileId chaincom.Address, args UploadArgs) ([]event.Event, *sdkErr.Error) {
	if args.TransferFee == 0 {
		return nil, sdkErr.New(sdkErr.OWNERSHIP_TRANSFER_FEE_MUST_NOT_ZERO, "transfer fee must not be zero")
	}
	existing, err := tx.GetFile(fileId)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read file: %s", err)
	}
	if existing != nil {
		return nil, sdkErr.New(sdkErr.FILE_ALREADY_EXIST, "file id %s already registered", fileId.ToBase58())
	}
	byHash, err := tx.GetFileIdByHash(args.Hash)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read hash index: %s", err)
	}
	if byHash != nil {
		return nil, sdkErr.New(sdkErr.FILE_ALREADY_EXIST, "file hash %s already registered", args.Hash)
	}

	totalFee := this.cfg.UploadFeePerByte(args.Size)
	servicerShare := percentOf(totalFee, this.cfg.ServicerUploadFeePercent)
	bbShare := totalFee - servicerShare
	if err := this.ledger.Withdraw(args.Uploader, totalFee); err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_WITHDRAW_ERROR)
	}
	this.ledger.Deposit(args.BigBrother, bbShare)
	this.ledger.Deposit(args.Servicer, servicerShare)

	info := &store.FileInformation{
		Hash:        args.Hash,
		Uploader:    args.Uploader,
		BigBrother:  args.BigBrother,
		Servicer:    args.Servicer,
		Owner:       args.Uploader,
		TransferFee: args.TransferFee,
		Size:        args.Size,
		FreeForAll:  args.FreeForAll,
	}
	if e := tx.SetFile(fileId, info); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set file: %s", e)
	}
	if e := tx.SetFileHash(args.Hash, fileId); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set hash index: %s", e)
	}
	log.Debugf("file %s uploaded, size %d, fee %d", fileId.ToBase58(), args.Size, totalFee)
	return []event.Event{
		event.UploadFeePaid{By: args.Uploader, Amount: totalFee, File: fileId},
		event.FileUploaded{File: fileId, Length: args.Size},
		event.UploadFeeDistributed{To: args.BigBrother, Amount: bbShare, File: fileId},
		event.UploadFeeDistributed{To: args.Servicer, Amount: servicerShare, File: fileId},
	}, nil
}

// Download charges the downloader for a paid file. The big brother share is
// halved with the servicer, the remainder goes to the owner. Free-for-all
// files download without any fee flow.
func (this *Files) Download(tx *store.StateTx, origin dspCom.Origin, fileId chaincom.Address, downloader chaincom.Address) ([]event.Event, *sdkErr.Error) {
	info, serr := this.getFile(tx, fileId)
	if serr != nil {
		return nil, serr
	}
	if info.FreeForAll {
		return nil, nil
	}
	totalFee := this.cfg.DownloadFeePerByte(info.Size)
	bbCut := percentOf(totalFee, this.cfg.BigBrotherDownloadFeePercent)
	ownerShare := totalFee - bbCut
	bbShare, servicerShare := halves(bbCut)
	if err := this.ledger.Withdraw(downloader, totalFee); err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_WITHDRAW_ERROR)
	}
	this.ledger.Deposit(info.Owner, ownerShare)
	this.ledger.Deposit(info.BigBrother, bbShare)
	this.ledger.Deposit(info.Servicer, servicerShare)
	return []event.Event{
		event.DownloadFeePaid{By: downloader, Amount: totalFee, File: fileId},
		event.DownloadFeeDistributed{To: info.Owner, Amount: ownerShare, File: fileId},
		event.DownloadFeeDistributed{To: info.BigBrother, Amount: bbShare, File: fileId},
		event.DownloadFeeDistributed{To: info.Servicer, Amount: servicerShare, File: fileId},
	}, nil
}

// TakeStorageFee collects one storage period's fee from the file's own
// account, halved between the big brother and the servicer. An insolvent
// file is deleted instead; that is the defined outcome, not an error.
func (this *Files) TakeStorageFee(tx *store.StateTx, origin dspCom.Origin, fileId chaincom.Address) ([]event.Event, *sdkErr.Error) {
	info, serr := this.getFile(tx, fileId)
	if serr != nil {
		return nil, serr
	}
	totalFee := this.cfg.StorageFeePerBytePerPeriod(info.Size)
	if err := this.ledger.Withdraw(fileId, totalFee); err != nil {
		tx.DeleteFile(fileId)
		tx.DeleteFileHash(info.Hash)
		log.Debugf("file %s deleted on storage insolvency, fee %d", fileId.ToBase58(), totalFee)
		return []event.Event{event.InsufficientAmountForKeepingFile{File: fileId}}, nil
	}
	bbShare, servicerShare := halves(totalFee)
	this.ledger.Deposit(info.BigBrother, bbShare)
	this.ledger.Deposit(info.Servicer, servicerShare)
	return []event.Event{
		event.StorageFeePaid{File: fileId, Amount: totalFee},
		event.StorageFeeDistributed{File: fileId, To: info.BigBrother, Amount: bbShare},
		event.StorageFeeDistributed{File: fileId, To: info.Servicer, Amount: servicerShare},
	}, nil
}

// Buy transfers ownership of a file to the caller for its transfer fee. A
// royalty cut is halved between uploader and big brother, the remainder
// pays the previous owner.
func (this *Files) Buy(tx *store.StateTx, origin dspCom.Origin, fileId chaincom.Address) ([]event.Event, *sdkErr.Error) {
	buyer, ok := origin.Signer()
	if !ok {
		return nil, sdkErr.New(sdkErr.SIGNED_CALLER_ONLY, "buy needs a signed caller")
	}
	info, serr := this.getFile(tx, fileId)
	if serr != nil {
		return nil, serr
	}
	totalFee := info.TransferFee
	royalty := percentOf(totalFee, this.cfg.RoyaltyFeePercent)
	ownerShare := totalFee - royalty
	uploaderShare, bbShare := halves(royalty)
	if err := this.ledger.Withdraw(buyer, totalFee); err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_WITHDRAW_ERROR)
	}
	this.ledger.Deposit(info.Uploader, uploaderShare)
	this.ledger.Deposit(info.BigBrother, bbShare)
	this.ledger.Deposit(info.Owner, ownerShare)

	prevOwner := info.Owner
	info.Owner = buyer
	if e := tx.SetFile(fileId, info); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set file: %s", e)
	}
	return []event.Event{
		event.OwnershipTransferFeePaid{By: buyer, Amount: totalFee, File: fileId},
		event.OwnershipTransferFeeDistributed{To: info.Uploader, Amount: uploaderShare, File: fileId},
		event.OwnershipTransferFeeDistributed{To: info.BigBrother, Amount: bbShare, File: fileId},
		event.OwnershipTransferFeeDistributed{To: prevOwner, Amount: ownerShare, File: fileId},
		event.FileOwnershipTransferred{From: prevOwner, To: buyer, File: fileId},
	}, nil
}

func (this *Files) getFile(tx *store.StateTx, fileId chaincom.Address) (*store.FileInformation, *sdkErr.Error) {
	info, err := tx.GetFile(fileId)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read file: %s", err)
	}
	if info == nil {
		return nil, sdkErr.New(sdkErr.FILE_NOT_FOUND, "file %s not found", fileId.ToBase58())
	}
	return info, nil
}
