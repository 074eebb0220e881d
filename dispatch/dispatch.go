package dispatch

import (
	"github.com/google/uuid"
	dspCom "github.com/saveio/chain-go-sdk/common"
	"github.com/saveio/chain-go-sdk/config"
	"github.com/saveio/chain-go-sdk/council"
	sdkErr "github.com/saveio/chain-go-sdk/error"
	"github.com/saveio/chain-go-sdk/event"
	"github.com/saveio/chain-go-sdk/files"
	"github.com/saveio/chain-go-sdk/ledger"
	"github.com/saveio/chain-go-sdk/registry"
	"github.com/saveio/chain-go-sdk/store"
	chaincom "github.com/saveio/themis/common"
	"github.com/saveio/themis/common/log"
)

// Dispatcher runs every command atomically: state writes are staged in a
// per-call transaction, the ledger is snapshotted on entry, and events
// reach the log only when the call commits. A failed call leaves nothing
// behind.
type Dispatcher struct {
	cfg      *config.ChainConfig
	state    *store.StateDB
	ledger   ledger.Ledger
	log      *event.Log
	Council  *council.Council
	Files    *files.Files
	Registry *registry.Registry
}

func NewDispatcher(cfg *config.ChainConfig, state *store.StateDB, ldg ledger.Ledger,
	identity council.IdentityRegistry, eventLog *event.Log, blockNum func() uint64) *Dispatcher {
	cou := council.NewCouncil(cfg, ldg, identity, blockNum)
	return &Dispatcher{
		cfg:      cfg,
		state:    state,
		ledger:   ldg,
		log:      eventLog,
		Council:  cou,
		Files:    files.NewFiles(cfg, ldg),
		Registry: registry.NewRegistry(cfg, ldg, cou),
	}
}

// EventLog exposes the committed event log.
func (this *Dispatcher) EventLog() *event.Log {
	return this.log
}

type handler func(tx *store.StateTx) ([]event.Event, *sdkErr.Error)

// execute runs one command inside the atomic boundary.
func (this *Dispatcher) execute(name string, fn handler) ([]event.Event, *sdkErr.Error) {
	tx := this.state.NewTx()
	snapshot := this.ledger.Snapshot()
	events, serr := fn(tx)
	if serr != nil {
		this.ledger.Restore(snapshot)
		log.Debugf("command %s failed: %s", name, serr)
		return nil, serr
	}
	if err := tx.Commit(); err != nil {
		this.ledger.Restore(snapshot)
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "commit %s: %s", name, err)
	}
	this.log.Append(events...)
	return events, nil
}

// Genesis seeds the chain once: elder, initial members, fee parameters.
func (this *Dispatcher) Genesis(elder *chaincom.Address, bigBrothers []chaincom.Address) *sdkErr.Error {
	_, serr := this.execute("genesis", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return nil, this.Council.BuildGenesis(tx, elder, bigBrothers)
	})
	return serr
}

// governance commands

func (this *Dispatcher) ReplaceElder(origin dspCom.Origin, newElder chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("replace_elder", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.ReplaceElder(tx, origin, newElder)
	})
}

func (this *Dispatcher) AddMember(origin dspCom.Origin, candidate chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("add_member", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.AddMember(tx, origin, candidate)
	})
}

func (this *Dispatcher) RemoveMember(origin dspCom.Origin, member chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("remove_member", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.RemoveMember(tx, origin, member)
	})
}

func (this *Dispatcher) Mint(origin dspCom.Origin, dest chaincom.Address, amount uint64) ([]event.Event, *sdkErr.Error) {
	return this.execute("mint", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.Mint(tx, origin, dest, amount)
	})
}

func (this *Dispatcher) Burn(origin dspCom.Origin, amount uint64) ([]event.Event, *sdkErr.Error) {
	return this.execute("burn", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.Burn(tx, origin, amount)
	})
}

func (this *Dispatcher) BurnAll(origin dspCom.Origin) ([]event.Event, *sdkErr.Error) {
	return this.execute("burn_all", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.BurnAll(tx, origin)
	})
}

func (this *Dispatcher) ProposeFeeChange(origin dspCom.Origin, newMultiplier, newDivider, newMinimumFee *uint64) ([]event.Event, *sdkErr.Error) {
	return this.execute("propose_fee_change", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.ProposeFeeChange(tx, origin, newMultiplier, newDivider, newMinimumFee)
	})
}

func (this *Dispatcher) Vote(origin dspCom.Origin, approve bool) ([]event.Event, *sdkErr.Error) {
	return this.execute("vote", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Council.Vote(tx, origin, approve)
	})
}

// storage marketplace commands

func (this *Dispatcher) Upload(origin dspCom.Origin, fileId chaincom.Address, args files.UploadArgs) ([]event.Event, *sdkErr.Error) {
	return this.execute("upload", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Files.Upload(tx, origin, fileId, args)
	})
}

func (this *Dispatcher) Download(origin dspCom.Origin, fileId, downloader chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("download", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Files.Download(tx, origin, fileId, downloader)
	})
}

func (this *Dispatcher) TakeStorageFee(origin dspCom.Origin, fileId chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("take_storage_fee", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Files.TakeStorageFee(tx, origin, fileId)
	})
}

func (this *Dispatcher) Buy(origin dspCom.Origin, fileId chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("buy", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Files.Buy(tx, origin, fileId)
	})
}

// registry commands

func (this *Dispatcher) Supply(origin dspCom.Origin, args registry.SupplyArgs) ([]event.Event, *sdkErr.Error) {
	return this.execute("supply", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.Supply(tx, origin, args)
	})
}

func (this *Dispatcher) BulkSupply(origin dspCom.Origin, batch []registry.SupplyArgs) ([]event.Event, *sdkErr.Error) {
	return this.execute("bulk_supply", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.BulkSupply(tx, origin, batch)
	})
}

func (this *Dispatcher) Recall(origin dspCom.Origin, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	return this.execute("recall", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.Recall(tx, origin, id)
	})
}

func (this *Dispatcher) BulkRecall(origin dspCom.Origin, ids []dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	return this.execute("bulk_recall", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.BulkRecall(tx, origin, ids)
	})
}

func (this *Dispatcher) Bind(origin dspCom.Origin, peerId dspCom.PeerId, attesterId dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	return this.execute("bind", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.Bind(tx, origin, peerId, attesterId)
	})
}

func (this *Dispatcher) AddMediator(origin dspCom.Origin, candidate chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("add_mediator", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.AddMediator(tx, origin, candidate)
	})
}

func (this *Dispatcher) RemoveMediator(origin dspCom.Origin, mediator chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("remove_mediator", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.RemoveMediator(tx, origin, mediator)
	})
}

func (this *Dispatcher) IncreaseReputation(origin dspCom.Origin, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	return this.execute("increase_reputation", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.IncreaseReputation(tx, origin, id)
	})
}

func (this *Dispatcher) DecreaseReputation(origin dspCom.Origin, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	return this.execute("decrease_reputation", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.DecreaseReputation(tx, origin, id)
	})
}

func (this *Dispatcher) ForceRebind(origin dspCom.Origin, id dspCom.AttesterId, to chaincom.Address) ([]event.Event, *sdkErr.Error) {
	return this.execute("force_rebind", func(tx *store.StateTx) ([]event.Event, *sdkErr.Error) {
		return this.Registry.ForceRebind(tx, origin, id, to)
	})
}

// Command is the name-addressed form of a call, for callers that route by
// (module, command) strings rather than typed methods.
type Command struct {
	Module string
	Name   string
	Origin dspCom.Origin
	Args   Args
}

// Args carries the union of every command's parameters; each command reads
// only the fields it needs.
type Args struct {
	Address    chaincom.Address
	Amount     uint64
	Approve    bool
	FileId     chaincom.Address
	Upload     *files.UploadArgs
	AttesterId dspCom.AttesterId
	PeerId     dspCom.PeerId
	Guid       uuid.UUID
	Serial     uint32
	Supplies   []registry.SupplyArgs
	Attesters  []dspCom.AttesterId
	FeeChange  [3]*uint64 // multiplier, divider, minimum fee
}

// Apply routes a name-addressed command to its handler.
func (this *Dispatcher) Apply(cmd Command) ([]event.Event, *sdkErr.Error) {
	switch cmd.Module + "." + cmd.Name {
	case "governance.replace_elder":
		return this.ReplaceElder(cmd.Origin, cmd.Args.Address)
	case "governance.add_member":
		return this.AddMember(cmd.Origin, cmd.Args.Address)
	case "governance.remove_member":
		return this.RemoveMember(cmd.Origin, cmd.Args.Address)
	case "governance.mint":
		return this.Mint(cmd.Origin, cmd.Args.Address, cmd.Args.Amount)
	case "governance.burn":
		return this.Burn(cmd.Origin, cmd.Args.Amount)
	case "governance.burn_all":
		return this.BurnAll(cmd.Origin)
	case "governance.propose_fee_change":
		return this.ProposeFeeChange(cmd.Origin, cmd.Args.FeeChange[0], cmd.Args.FeeChange[1], cmd.Args.FeeChange[2])
	case "governance.vote":
		return this.Vote(cmd.Origin, cmd.Args.Approve)
	case "marketplace.upload":
		if cmd.Args.Upload == nil {
			return nil, sdkErr.New(sdkErr.INVALID_PARAMS, "upload args missing")
		}
		return this.Upload(cmd.Origin, cmd.Args.FileId, *cmd.Args.Upload)
	case "marketplace.download":
		return this.Download(cmd.Origin, cmd.Args.FileId, cmd.Args.Address)
	case "marketplace.take_storage_fee":
		return this.TakeStorageFee(cmd.Origin, cmd.Args.FileId)
	case "marketplace.buy":
		return this.Buy(cmd.Origin, cmd.Args.FileId)
	case "registry.supply":
		return this.Supply(cmd.Origin, registry.SupplyArgs{
			Id:           cmd.Args.AttesterId,
			Guid:         cmd.Args.Guid,
			SerialNumber: cmd.Args.Serial,
		})
	case "registry.bulk_supply":
		return this.BulkSupply(cmd.Origin, cmd.Args.Supplies)
	case "registry.recall":
		return this.Recall(cmd.Origin, cmd.Args.AttesterId)
	case "registry.bulk_recall":
		return this.BulkRecall(cmd.Origin, cmd.Args.Attesters)
	case "registry.bind":
		return this.Bind(cmd.Origin, cmd.Args.PeerId, cmd.Args.AttesterId)
	case "registry.add_mediator":
		return this.AddMediator(cmd.Origin, cmd.Args.Address)
	case "registry.remove_mediator":
		return this.RemoveMediator(cmd.Origin, cmd.Args.Address)
	case "registry.increase_reputation":
		return this.IncreaseReputation(cmd.Origin, cmd.Args.AttesterId)
	case "registry.decrease_reputation":
		return this.DecreaseReputation(cmd.Origin, cmd.Args.AttesterId)
	case "registry.force_rebind":
		return this.ForceRebind(cmd.Origin, cmd.Args.AttesterId, cmd.Args.Address)
	default:
		return nil, sdkErr.New(sdkErr.INVALID_PARAMS, "unknown command %s.%s", cmd.Module, cmd.Name)
	}
}
