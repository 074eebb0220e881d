package registry

import (
	"github.com/google/uuid"
	dspCom "github.com/saveio/chain-go-sdk/common"
	"github.com/saveio/chain-go-sdk/config"
	"github.com/saveio/chain-go-sdk/council"
	sdkErr "github.com/saveio/chain-go-sdk/error"
	"github.com/saveio/chain-go-sdk/event"
	"github.com/saveio/chain-go-sdk/ledger"
	"github.com/saveio/chain-go-sdk/store"
	chaincom "github.com/saveio/themis/common"
	"github.com/saveio/themis/common/log"
)

// Registry manages attestation devices, servicer bindings, mediators and
// servicer reputation. Device lifecycle per attester id:
// unsupplied -> unbound -> bound.
type Registry struct {
	cfg     *config.ChainConfig
	ledger  ledger.Ledger
	council *council.Council
}

func NewRegistry(cfg *config.ChainConfig, ldg ledger.Ledger, cou *council.Council) *Registry {
	return &Registry{
		cfg:     cfg,
		ledger:  ldg,
		council: cou,
	}
}

// SupplyArgs identifies one attestation device to create.
type SupplyArgs struct {
	Id           dspCom.AttesterId
	Guid         uuid.UUID
	SerialNumber uint32
}

// Supply creates an unbound attestation device owned by the calling council
// member.
func (this *Registry) Supply(tx *store.StateTx, origin dspCom.Origin, args SupplyArgs) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	return this.supplyOne(tx, member, args)
}

// BulkSupply creates a batch of devices in one call. Any collision fails
// the whole batch.
func (this *Registry) BulkSupply(tx *store.StateTx, origin dspCom.Origin, batch []SupplyArgs) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	events := make([]event.Event, 0, len(batch))
	for _, args := range batch {
		supplied, serr := this.supplyOne(tx, member, args)
		if serr != nil {
			return nil, serr
		}
		events = append(events, supplied...)
	}
	return events, nil
}

func (this *Registry) supplyOne(tx *store.StateTx, member chaincom.Address, args SupplyArgs) ([]event.Event, *sdkErr.Error) {
	existing, err := tx.GetAttester(args.Id)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read attester: %s", err)
	}
	if existing != nil {
		return nil, sdkErr.New(sdkErr.ATTESTER_ALREADY_SUPPLIED, "attester %s already supplied", args.Id)
	}
	device := &store.RemoteAttestationDevice{
		BigBrother:   member,
		SerialNumber: args.SerialNumber,
		Guid:         args.Guid,
	}
	if e := tx.SetAttester(args.Id, device); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set attester: %s", e)
	}
	return []event.Event{event.BigBrotherAttesterSupplied{Id: args.Id, Bb: member}}, nil
}

// Recall removes an unbound device. Only its original supplier may recall.
func (this *Registry) Recall(tx *store.StateTx, origin dspCom.Origin, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	return this.recallOne(tx, member, id)
}

// BulkRecall removes a batch of unbound devices. Any failure fails the
// whole batch.
func (this *Registry) BulkRecall(tx *store.StateTx, origin dspCom.Origin, ids []dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	events := make([]event.Event, 0, len(ids))
	for _, id := range ids {
		recalled, serr := this.recallOne(tx, member, id)
		if serr != nil {
			return nil, serr
		}
		events = append(events, recalled...)
	}
	return events, nil
}

func (this *Registry) recallOne(tx *store.StateTx, member chaincom.Address, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	device, serr := this.getAttester(tx, id)
	if serr != nil {
		return nil, serr
	}
	if device.IsBinded() {
		return nil, sdkErr.New(sdkErr.ATTESTER_ALREADY_BINDED, "attester %s is bound", id)
	}
	if device.BigBrother != member {
		return nil, sdkErr.New(sdkErr.RESTRICTED_CALL, "attester %s was supplied by someone else", id)
	}
	tx.DeleteAttester(id)
	return []event.Event{event.BigBrotherAttesterRecalled{Id: id, Bb: member}}, nil
}

// Bind attaches an unbound device to the calling servicer under peerId. The
// binding deposit is held; a first-time servicer additionally pays the
// one-time registration fee. The whole bind is all-or-nothing: a failed
// registration fee withdrawal releases the hold again.
func (this *Registry) Bind(tx *store.StateTx, origin dspCom.Origin, peerId dspCom.PeerId, attesterId dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	servicer, ok := origin.Signer()
	if !ok {
		return nil, sdkErr.New(sdkErr.SIGNED_CALLER_ONLY, "bind needs a signed servicer")
	}
	device, serr := this.getAttester(tx, attesterId)
	if serr != nil {
		return nil, serr
	}
	if device.IsBinded() {
		return nil, sdkErr.New(sdkErr.ATTESTER_ALREADY_BINDED, "attester %s is bound", attesterId)
	}
	record, err := tx.GetServicer(servicer)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read servicer: %s", err)
	}
	isNew := record == nil
	if isNew {
		record = store.NewServicerInformation()
	}
	if _, bound := record.GetPeerId(attesterId); bound {
		return nil, sdkErr.New(sdkErr.ATTESTER_ALREADY_BINDED, "servicer %s already bound attester %s",
			servicer.ToBase58(), attesterId)
	}

	hold := this.cfg.BindingDepositAmount
	if err := this.ledger.Hold(ledger.HoldBinding, servicer, hold); err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_HOLD_ERROR)
	}
	events := []event.Event{event.ServicerBalanceHeldForBinding{Who: servicer, Amount: hold}}
	if isNew {
		fee := this.cfg.RegistrationFeeAmount
		if err := this.ledger.Withdraw(servicer, fee); err != nil {
			if _, rerr := this.ledger.Release(ledger.HoldBinding, servicer, hold, true); rerr != nil {
				log.Errorf("bind unwind: release hold for %s failed, err %s", servicer.ToBase58(), rerr)
			}
			return nil, sdkErr.New(sdkErr.SERVICER_CANNOT_PAY_REGISTRATION_FEE,
				"servicer %s cannot pay the registration fee: %s", servicer.ToBase58(), err)
		}
		events = append(events, event.ServicerRegistrationFeePaid{Who: servicer, Amount: fee})
	}

	record.TryAddBinding(attesterId, peerId)
	if e := tx.SetServicer(servicer, record); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set servicer: %s", e)
	}
	device.Binder = &servicer
	if e := tx.SetAttester(attesterId, device); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set attester: %s", e)
	}
	events = append(events, event.AttesterBinded{To: servicer, Which: attesterId, PeerId: peerId})
	return events, nil
}

// AddMediator admits a legally verified account into the mediator set.
func (this *Registry) AddMediator(tx *store.StateTx, origin dspCom.Origin, candidate chaincom.Address) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	if serr := this.council.EnsureVerifiedLegality(candidate); serr != nil {
		return nil, serr
	}
	mediators, err := tx.GetMediators()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read mediators: %s", err)
	}
	if store.HasAddress(mediators, candidate) {
		return nil, sdkErr.New(sdkErr.MEDIATOR_ALREADY_REGISTERED, "account %s is already a mediator", candidate.ToBase58())
	}
	if uint32(len(mediators)) >= this.cfg.MaxMediators {
		return nil, sdkErr.New(sdkErr.MEDIATOR_SET_FULL, "mediator set is at capacity %d", this.cfg.MaxMediators)
	}
	if e := tx.SetMediators(append(mediators, candidate)); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set mediators: %s", e)
	}
	return []event.Event{event.MediatorAdded{Who: candidate, By: member}}, nil
}

// RemoveMediator drops an account from the mediator set.
func (this *Registry) RemoveMediator(tx *store.StateTx, origin dspCom.Origin, mediator chaincom.Address) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	mediators, err := tx.GetMediators()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read mediators: %s", err)
	}
	if !store.HasAddress(mediators, mediator) {
		return nil, sdkErr.New(sdkErr.MEDIATOR_NOT_FOUND, "account %s is not a mediator", mediator.ToBase58())
	}
	if e := tx.SetMediators(store.RemoveAddress(mediators, mediator)); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set mediators: %s", e)
	}
	return []event.Event{event.MediatorRemoved{Who: mediator, By: member}}, nil
}

// IncreaseReputation applies +1 to the reputation of the servicer bound to
// the given device. Mediator only.
func (this *Registry) IncreaseReputation(tx *store.StateTx, origin dspCom.Origin, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	mediator, binder, record, serr := this.resolveReputationTarget(tx, origin, id)
	if serr != nil {
		return nil, serr
	}
	record.IncreaseReputation()
	if e := tx.SetServicer(binder, record); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set servicer: %s", e)
	}
	return []event.Event{event.ServicerReputationIncreased{By: mediator, On: id, Who: binder}}, nil
}

// DecreaseReputation applies -1 to the reputation of the servicer bound to
// the given device. Mediator only.
func (this *Registry) DecreaseReputation(tx *store.StateTx, origin dspCom.Origin, id dspCom.AttesterId) ([]event.Event, *sdkErr.Error) {
	mediator, binder, record, serr := this.resolveReputationTarget(tx, origin, id)
	if serr != nil {
		return nil, serr
	}
	record.DecreaseReputation()
	if e := tx.SetServicer(binder, record); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set servicer: %s", e)
	}
	return []event.Event{event.ServicerReputationDecreased{By: mediator, On: id, Who: binder}}, nil
}

// ForceRebind moves a bound device from its current servicer to another.
// Council member only. The binding record moves between the two servicer
// maps in the same call.
func (this *Registry) ForceRebind(tx *store.StateTx, origin dspCom.Origin, id dspCom.AttesterId, to chaincom.Address) ([]event.Event, *sdkErr.Error) {
	member, serr := this.council.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	device, err := tx.GetAttester(id)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read attester: %s", err)
	}
	if device == nil {
		return nil, sdkErr.New(sdkErr.DEVICE_DOESNT_EXIST, "device %s does not exist", id)
	}
	if !device.IsBinded() {
		return nil, sdkErr.New(sdkErr.DEVICE_FORCE_REBIND_REJECTED, "device %s is unbound", id)
	}
	from := *device.Binder
	if from == to {
		return nil, sdkErr.New(sdkErr.DEVICE_FORCE_REBIND_REJECTED, "device %s already belongs to %s", id, to.ToBase58())
	}
	fromRecord, err := tx.GetServicer(from)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read servicer: %s", err)
	}
	if fromRecord == nil {
		return nil, sdkErr.New(sdkErr.FATAL_ERROR, "bound device %s has no servicer record", id)
	}
	peerId, bound := fromRecord.GetPeerId(id)
	if !bound {
		return nil, sdkErr.New(sdkErr.FATAL_ERROR, "device %s missing from servicer %s bindings", id, from.ToBase58())
	}
	toRecord, err := tx.GetServicer(to)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read servicer: %s", err)
	}
	if toRecord == nil {
		toRecord = store.NewServicerInformation()
	}
	if !toRecord.TryAddBinding(id, peerId) {
		return nil, sdkErr.New(sdkErr.DEVICE_FORCE_REBIND_REJECTED, "servicer %s already holds device %s", to.ToBase58(), id)
	}
	fromRecord.RemoveBinding(id)
	device.Binder = &to
	if e := tx.SetServicer(from, fromRecord); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set servicer: %s", e)
	}
	if e := tx.SetServicer(to, toRecord); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set servicer: %s", e)
	}
	if e := tx.SetAttester(id, device); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set attester: %s", e)
	}
	return []event.Event{event.RemoteAttestationDeviceRebindedForcefully{Device: id, From: from, To: to, By: member}}, nil
}

// resolveReputationTarget authorizes the mediator and resolves the bound
// servicer record of a device.
func (this *Registry) resolveReputationTarget(tx *store.StateTx, origin dspCom.Origin, id dspCom.AttesterId) (chaincom.Address, chaincom.Address, *store.ServicerInformation, *sdkErr.Error) {
	mediator, ok := origin.Signer()
	if !ok {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil,
			sdkErr.New(sdkErr.SIGNED_CALLER_ONLY, "reputation change needs a signed mediator")
	}
	mediators, err := tx.GetMediators()
	if err != nil {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil,
			sdkErr.New(sdkErr.STATE_DB_ERROR, "read mediators: %s", err)
	}
	if !store.HasAddress(mediators, mediator) {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil,
			sdkErr.New(sdkErr.MEDIATOR_NOT_FOUND, "account %s is not a mediator", mediator.ToBase58())
	}
	device, serr := this.getAttester(tx, id)
	if serr != nil {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil, serr
	}
	if !device.IsBinded() {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil,
			sdkErr.New(sdkErr.ATTESTER_IS_UNBINDED, "attester %s is not bound", id)
	}
	binder := *device.Binder
	record, err := tx.GetServicer(binder)
	if err != nil {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil,
			sdkErr.New(sdkErr.STATE_DB_ERROR, "read servicer: %s", err)
	}
	if record == nil {
		return chaincom.ADDRESS_EMPTY, chaincom.ADDRESS_EMPTY, nil,
			sdkErr.New(sdkErr.FATAL_ERROR, "bound attester %s has no servicer record", id)
	}
	return mediator, binder, record, nil
}

func (this *Registry) getAttester(tx *store.StateTx, id dspCom.AttesterId) (*store.RemoteAttestationDevice, *sdkErr.Error) {
	device, err := tx.GetAttester(id)
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read attester: %s", err)
	}
	if device == nil {
		return nil, sdkErr.New(sdkErr.ATTESTER_DOESNT_EXIST, "attester %s does not exist", id)
	}
	return device, nil
}
