package store

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/saveio/themis/common/log"
)

const FILE_CACHE_SIZE = 2048

// StateDB. typed view over the chain state key spaces. Reads outside a
// transaction observe committed state only; all writes go through a
// StateTx and land as one atomic batch.
type StateDB struct {
	db        *LevelDBStore
	fileCache *lru.ARCCache
}

func NewStateDB(db *LevelDBStore) (*StateDB, error) {
	fileCache, err := lru.NewARC(FILE_CACHE_SIZE)
	if err != nil {
		return nil, err
	}
	return &StateDB{
		db:        db,
		fileCache: fileCache,
	}, nil
}

func (this *StateDB) Close() error {
	this.fileCache.Purge()
	return this.db.Close()
}

// NewTx. start a per-call overlay transaction
func (this *StateDB) NewTx() *StateTx {
	return &StateTx{
		state:  this,
		staged: make(map[string][]byte),
	}
}

// StateTx. staged writes of a single command. A nil staged value marks a
// delete. Nothing reaches the database before Commit.
type StateTx struct {
	state  *StateDB
	staged map[string][]byte
}

func (this *StateTx) get(key string) ([]byte, error) {
	if buf, ok := this.staged[key]; ok {
		return buf, nil
	}
	return this.state.db.Get([]byte(key))
}

func (this *StateTx) put(key string, value []byte) {
	this.staged[key] = value
}

func (this *StateTx) del(key string) {
	this.staged[key] = nil
}

// Commit. write every staged operation as one leveldb batch
func (this *StateTx) Commit() error {
	if len(this.staged) == 0 {
		return nil
	}
	batch := this.state.db.NewBatch()
	for key, buf := range this.staged {
		if buf == nil {
			this.state.db.BatchDelete(batch, []byte(key))
		} else {
			this.state.db.BatchPut(batch, []byte(key), buf)
		}
		this.state.fileCache.Remove(key)
	}
	err := this.state.db.BatchCommit(batch)
	if err != nil {
		log.Errorf("state tx commit failed, %d staged keys, err %s", len(this.staged), err)
		return err
	}
	return nil
}
