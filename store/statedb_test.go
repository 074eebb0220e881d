package store

import (
	"testing"

	"github.com/google/uuid"
	dspCom "github.com/saveio/chain-go-sdk/common"
	chaincom "github.com/saveio/themis/common"
)

func newTestStateDB(t *testing.T) *StateDB {
	db, err := NewMemLevelDBStore()
	if err != nil {
		t.Fatal(err)
	}
	state, err := NewStateDB(db)
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func addrOf(tag byte) chaincom.Address {
	var addr chaincom.Address
	addr[0] = tag
	return addr
}

func TestTxStagedWritesInvisibleBeforeCommit(t *testing.T) {
	state := newTestStateDB(t)
	defer state.Close()

	tx := state.NewTx()
	if err := tx.SetElder(addrOf(1)); err != nil {
		t.Fatal(err)
	}

	other := state.NewTx()
	elder, err := other.GetElder()
	if err != nil {
		t.Fatal(err)
	}
	if elder != nil {
		t.Fatal("uncommitted write leaked")
	}

	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	elder, err = state.NewTx().GetElder()
	if err != nil {
		t.Fatal(err)
	}
	if elder == nil || *elder != addrOf(1) {
		t.Fatal("committed elder not visible")
	}
}

func TestTxOverlayReadsOwnWrites(t *testing.T) {
	state := newTestStateDB(t)
	defer state.Close()

	tx := state.NewTx()
	members := []chaincom.Address{addrOf(1), addrOf(2)}
	if err := tx.SetMembers(members); err != nil {
		t.Fatal(err)
	}
	got, err := tx.GetMembers()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != addrOf(1) || got[1] != addrOf(2) {
		t.Fatalf("unexpected members %v", got)
	}
}

func TestFileRecordRoundTrip(t *testing.T) {
	state := newTestStateDB(t)
	defer state.Close()

	fileId := addrOf(9)
	hash := dspCom.FileHash{1, 2, 3}
	info := &FileInformation{
		Hash:        hash,
		Uploader:    addrOf(1),
		BigBrother:  addrOf(2),
		Servicer:    addrOf(3),
		Owner:       addrOf(1),
		TransferFee: 50,
		Size:        1000,
	}

	tx := state.NewTx()
	if err := tx.SetFile(fileId, info); err != nil {
		t.Fatal(err)
	}
	if err := tx.SetFileHash(hash, fileId); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err := state.GetFile(fileId)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Hash != hash || got.Owner != addrOf(1) || got.Size != 1000 {
		t.Fatalf("unexpected file record %+v", got)
	}

	// cached read returns an equal copy
	again, err := state.GetFile(fileId)
	if err != nil {
		t.Fatal(err)
	}
	if *again != *got {
		t.Fatal("cached read diverged")
	}

	byHash, err := state.NewTx().GetFileIdByHash(hash)
	if err != nil {
		t.Fatal(err)
	}
	if byHash == nil || *byHash != fileId {
		t.Fatal("hash index lookup failed")
	}
}

func TestFileDeleteClearsCache(t *testing.T) {
	state := newTestStateDB(t)
	defer state.Close()

	fileId := addrOf(7)
	tx := state.NewTx()
	if err := tx.SetFile(fileId, &FileInformation{Size: 1}); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, err := state.GetFile(fileId); err != nil {
		t.Fatal(err)
	}

	tx = state.NewTx()
	tx.DeleteFile(fileId)
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err := state.GetFile(fileId)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("deleted file still readable")
	}
}

func TestServicerRoundTrip(t *testing.T) {
	state := newTestStateDB(t)
	defer state.Close()

	who := addrOf(5)
	attesterId := dspCom.AttesterId{0xaa}
	peerId := dspCom.PeerId{0xbb}

	servicer := NewServicerInformation()
	if !servicer.TryAddBinding(attesterId, peerId) {
		t.Fatal("fresh binding rejected")
	}
	if servicer.TryAddBinding(attesterId, peerId) {
		t.Fatal("duplicated binding accepted")
	}
	servicer.IncreaseReputation()
	servicer.IncreaseReputation()
	servicer.DecreaseReputation()

	tx := state.NewTx()
	if err := tx.SetServicer(who, servicer); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err := state.NewTx().GetServicer(who)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.TotalReputation() != 1 {
		t.Fatalf("unexpected servicer %+v", got)
	}
	boundPeer, ok := got.GetPeerId(attesterId)
	if !ok || boundPeer != peerId {
		t.Fatal("binding lost in round trip")
	}
}

func TestAttesterRoundTrip(t *testing.T) {
	state := newTestStateDB(t)
	defer state.Close()

	id := dspCom.AttesterId{0x01, 0x02}
	device := &RemoteAttestationDevice{
		BigBrother:   addrOf(1),
		SerialNumber: 42,
		Guid:         uuid.MustParse("00e43174-dab8-11e9-8736-e470b8115fb3"),
	}

	tx := state.NewTx()
	if err := tx.SetAttester(id, device); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err := state.NewTx().GetAttester(id)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.SerialNumber != 42 || got.IsBinded() {
		t.Fatalf("unexpected device %+v", got)
	}
	if got.Guid != device.Guid {
		t.Fatal("guid lost in round trip")
	}
}
