package store

import (
	"encoding/json"

	dspCom "github.com/saveio/chain-go-sdk/common"
	chaincom "github.com/saveio/themis/common"
)

// FileInformation. metadata of a registered file, keyed by an account-like
// file id with a uniqueness index on the content hash
type FileInformation struct {
	Hash        dspCom.FileHash  `json:"hash"`
	Uploader    chaincom.Address `json:"uploader"`
	BigBrother  chaincom.Address `json:"big_brother"`
	Servicer    chaincom.Address `json:"servicer"`
	Owner       chaincom.Address `json:"owner"`
	TransferFee uint64           `json:"transfer_fee"`
	Size        uint64           `json:"size"`
	FreeForAll  bool             `json:"free_for_all"`
}

func (this *StateTx) GetFile(file chaincom.Address) (*FileInformation, error) {
	key := FileInfoKey(file.ToBase58())
	if buf, ok := this.staged[key]; ok {
		if buf == nil {
			return nil, nil
		}
		info := new(FileInformation)
		if err := json.Unmarshal(buf, info); err != nil {
			return nil, err
		}
		return info, nil
	}
	return this.state.getFile(key)
}

func (this *StateTx) SetFile(file chaincom.Address, info *FileInformation) error {
	buf, err := json.Marshal(info)
	if err != nil {
		return err
	}
	this.put(FileInfoKey(file.ToBase58()), buf)
	return nil
}

func (this *StateTx) DeleteFile(file chaincom.Address) {
	this.del(FileInfoKey(file.ToBase58()))
}

// GetFileIdByHash. uniqueness index lookup, nil when the hash is unknown
func (this *StateTx) GetFileIdByHash(hash dspCom.FileHash) (*chaincom.Address, error) {
	buf, err := this.get(FileHashKey(hash.String()))
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	file := new(chaincom.Address)
	if err := json.Unmarshal(buf, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (this *StateTx) SetFileHash(hash dspCom.FileHash, file chaincom.Address) error {
	buf, err := json.Marshal(file)
	if err != nil {
		return err
	}
	this.put(FileHashKey(hash.String()), buf)
	return nil
}

func (this *StateTx) DeleteFileHash(hash dspCom.FileHash) {
	this.del(FileHashKey(hash.String()))
}

// getFile. committed read with lru front
func (this *StateDB) getFile(key string) (*FileInformation, error) {
	if cached, ok := this.fileCache.Get(key); ok {
		info := cached.(FileInformation)
		return &info, nil
	}
	buf, err := this.db.Get([]byte(key))
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	info := new(FileInformation)
	if err := json.Unmarshal(buf, info); err != nil {
		return nil, err
	}
	this.fileCache.Add(key, *info)
	return info, nil
}

// GetFile. committed file record, read outside any transaction
func (this *StateDB) GetFile(file chaincom.Address) (*FileInformation, error) {
	return this.getFile(FileInfoKey(file.ToBase58()))
}
