package store

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

const BITSPERKEY = 10

// LevelDBStore. thin wrapper of goleveldb with batch helpers
type LevelDBStore struct {
	db *leveldb.DB
}

func NewLevelDBStore(file string) (*LevelDBStore, error) {
	o := opt.Options{
		NoSync: false,
		Filter: filter.NewBloomFilter(BITSPERKEY),
	}
	db, err := leveldb.OpenFile(file, &o)
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// NewMemLevelDBStore. memory backed variant for tests
func NewMemLevelDBStore() (*LevelDBStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func (this *LevelDBStore) Put(key []byte, value []byte) error {
	return this.db.Put(key, value, nil)
}

// Get. returns nil without error when the key is absent
func (this *LevelDBStore) Get(key []byte) ([]byte, error) {
	dat, err := this.db.Get(key, nil)
	if err != nil {
		if err == errors.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return dat, nil
}

func (this *LevelDBStore) Has(key []byte) (bool, error) {
	return this.db.Has(key, nil)
}

func (this *LevelDBStore) Delete(key []byte) error {
	return this.db.Delete(key, nil)
}

func (this *LevelDBStore) NewBatch() *leveldb.Batch {
	return new(leveldb.Batch)
}

func (this *LevelDBStore) BatchPut(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(key, value)
}

func (this *LevelDBStore) BatchDelete(batch *leveldb.Batch, key []byte) {
	batch.Delete(key)
}

func (this *LevelDBStore) BatchCommit(batch *leveldb.Batch) error {
	return this.db.Write(batch, nil)
}

func (this *LevelDBStore) Close() error {
	return this.db.Close()
}
