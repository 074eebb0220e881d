package registry

import (
	"testing"

	"github.com/google/uuid"
	dspCom "github.com/saveio/chain-go-sdk/common"
	"github.com/saveio/chain-go-sdk/config"
	"github.com/saveio/chain-go-sdk/council"
	sdkErr "github.com/saveio/chain-go-sdk/error"
	"github.com/saveio/chain-go-sdk/event"
	"github.com/saveio/chain-go-sdk/ledger"
	"github.com/saveio/chain-go-sdk/store"
	chaincom "github.com/saveio/themis/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfg      *config.ChainConfig
	ledger   *ledger.MemLedger
	state    *store.StateDB
	registry *Registry
}

var (
	elder    = addrOf(1)
	member   = addrOf(2)
	servicer = addrOf(3)
	mediator = addrOf(4)
)

func addrOf(tag byte) chaincom.Address {
	var addr chaincom.Address
	addr[0] = tag
	return addr
}

func attesterOf(tag byte) dspCom.AttesterId {
	var id dspCom.AttesterId
	id[0] = tag
	return id
}

func peerOf(tag byte) dspCom.PeerId {
	var id dspCom.PeerId
	id[0] = tag
	return id
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := store.NewMemLevelDBStore()
	require.NoError(t, err)
	state, err := store.NewStateDB(db)
	require.NoError(t, err)
	cfg := config.DefaultChainConfig()
	ldg := ledger.NewMemLedger()
	cou := council.NewCouncil(cfg, ldg, nil, func() uint64 { return 1 })

	tx := state.NewTx()
	require.Nil(t, cou.BuildGenesis(tx, &elder, nil))
	require.NoError(t, tx.Commit())
	ldg.Deposit(member, cfg.RegistrationDepositAmount)
	tx = state.NewTx()
	_, serr := cou.AddMember(tx, dspCom.RootOrigin(), member)
	require.Nil(t, serr)
	require.NoError(t, tx.Commit())

	return &testEnv{
		cfg:      cfg,
		ledger:   ldg,
		state:    state,
		registry: NewRegistry(cfg, ldg, cou),
	}
}

func (this *testEnv) supply(t *testing.T, id dspCom.AttesterId) {
	tx := this.state.NewTx()
	args := SupplyArgs{Id: id, Guid: uuid.New(), SerialNumber: 7}
	_, serr := this.registry.Supply(tx, dspCom.SignedOrigin(member), args)
	require.Nil(t, serr)
	require.NoError(t, tx.Commit())
}

// bind funds the servicer and binds the attester, committing the result.
func (this *testEnv) bind(t *testing.T, who chaincom.Address, id dspCom.AttesterId, peer dspCom.PeerId) {
	this.ledger.Deposit(who, this.cfg.BindingDepositAmount+this.cfg.RegistrationFeeAmount)
	tx := this.state.NewTx()
	_, serr := this.registry.Bind(tx, dspCom.SignedOrigin(who), peer, id)
	require.Nil(t, serr)
	require.NoError(t, tx.Commit())
}

func (this *testEnv) addMediator(t *testing.T, who chaincom.Address) {
	tx := this.state.NewTx()
	_, serr := this.registry.AddMediator(tx, dspCom.SignedOrigin(member), who)
	require.Nil(t, serr)
	require.NoError(t, tx.Commit())
}

func TestSupplyAndRecall(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()
	id := attesterOf(1)

	tx := env.state.NewTx()
	args := SupplyArgs{Id: id, Guid: uuid.New(), SerialNumber: 7}
	events, serr := env.registry.Supply(tx, dspCom.SignedOrigin(member), args)
	require.Nil(t, serr)
	require.Len(t, events, 1)
	supplied := events[0].(event.BigBrotherAttesterSupplied)
	assert.Equal(t, id, supplied.Id)
	assert.Equal(t, member, supplied.Bb)

	// outsiders cannot supply
	_, serr = env.registry.Supply(tx, dspCom.SignedOrigin(servicer), args)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.COUNCIL_MEMBER_ONLY, serr.Code)

	// double supply
	_, serr = env.registry.Supply(tx, dspCom.SignedOrigin(member), args)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_ALREADY_SUPPLIED, serr.Code)

	// the elder counts as a council member but did not supply this device
	_, serr = env.registry.Recall(tx, dspCom.SignedOrigin(elder), id)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.RESTRICTED_CALL, serr.Code)

	events, serr = env.registry.Recall(tx, dspCom.SignedOrigin(member), id)
	require.Nil(t, serr)
	assert.Equal(t, "BigBrotherAttesterRecalled", events[0].Name())

	device, err := tx.GetAttester(id)
	require.NoError(t, err)
	assert.Nil(t, device)

	_, serr = env.registry.Recall(tx, dspCom.SignedOrigin(member), id)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_DOESNT_EXIST, serr.Code)
}

func TestBulkSupplyAndRecall(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()

	batch := []SupplyArgs{
		{Id: attesterOf(1), Guid: uuid.New(), SerialNumber: 1},
		{Id: attesterOf(2), Guid: uuid.New(), SerialNumber: 2},
		{Id: attesterOf(3), Guid: uuid.New(), SerialNumber: 3},
	}
	tx := env.state.NewTx()
	events, serr := env.registry.BulkSupply(tx, dspCom.SignedOrigin(member), batch)
	require.Nil(t, serr)
	assert.Len(t, events, 3)

	// one duplicate fails the whole batch
	_, serr = env.registry.BulkSupply(tx, dspCom.SignedOrigin(member), batch[2:])
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_ALREADY_SUPPLIED, serr.Code)

	ids := []dspCom.AttesterId{attesterOf(1), attesterOf(2), attesterOf(3)}
	events, serr = env.registry.BulkRecall(tx, dspCom.SignedOrigin(member), ids)
	require.Nil(t, serr)
	assert.Len(t, events, 3)
	for _, id := range ids {
		device, err := tx.GetAttester(id)
		require.NoError(t, err)
		assert.Nil(t, device)
	}
}

func TestBindHoldsDepositAndChargesRegistration(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()
	id := attesterOf(1)
	env.supply(t, id)

	spare := uint64(123)
	env.ledger.Deposit(servicer, env.cfg.BindingDepositAmount+env.cfg.RegistrationFeeAmount+spare)
	tx := env.state.NewTx()
	events, serr := env.registry.Bind(tx, dspCom.SignedOrigin(servicer), peerOf(9), id)
	require.Nil(t, serr)
	require.NoError(t, tx.Commit())
	require.Len(t, events, 3)
	assert.Equal(t, "ServicerBalanceHeldForBinding", events[0].Name())
	assert.Equal(t, "ServicerRegistrationFeePaid", events[1].Name())
	binded := events[2].(event.AttesterBinded)
	assert.Equal(t, servicer, binded.To)
	assert.Equal(t, peerOf(9), binded.PeerId)
	assert.Equal(t, spare, env.ledger.Balance(servicer))
	assert.Equal(t, env.cfg.BindingDepositAmount, env.ledger.HeldBalance(ledger.HoldBinding, servicer))

	tx = env.state.NewTx()
	device, err := tx.GetAttester(id)
	require.NoError(t, err)
	require.NotNil(t, device)
	require.True(t, device.IsBinded())
	assert.Equal(t, servicer, *device.Binder)
	record, err := tx.GetServicer(servicer)
	require.NoError(t, err)
	require.NotNil(t, record)
	peer, bound := record.GetPeerId(id)
	require.True(t, bound)
	assert.Equal(t, peerOf(9), peer)

	// a bound device cannot be bound again or recalled
	_, serr = env.registry.Bind(tx, dspCom.SignedOrigin(addrOf(9)), peerOf(1), id)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_ALREADY_BINDED, serr.Code)
	_, serr = env.registry.Recall(tx, dspCom.SignedOrigin(member), id)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_ALREADY_BINDED, serr.Code)

	// second device for the same servicer skips the registration fee
	second := attesterOf(2)
	env.supply(t, second)
	env.ledger.Deposit(servicer, env.cfg.BindingDepositAmount-spare)
	tx = env.state.NewTx()
	events, serr = env.registry.Bind(tx, dspCom.SignedOrigin(servicer), peerOf(10), second)
	require.Nil(t, serr)
	require.Len(t, events, 2)
	assert.Equal(t, "ServicerBalanceHeldForBinding", events[0].Name())
	assert.Equal(t, "AttesterBinded", events[1].Name())
}

func TestBindUnwindsHoldOnRegistrationFeeShortfall(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()
	id := attesterOf(1)
	env.supply(t, id)

	// enough for the hold, not for the registration fee
	balance := env.cfg.BindingDepositAmount + env.cfg.RegistrationFeeAmount - 1
	env.ledger.Deposit(servicer, balance)
	tx := env.state.NewTx()
	_, serr := env.registry.Bind(tx, dspCom.SignedOrigin(servicer), peerOf(9), id)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.SERVICER_CANNOT_PAY_REGISTRATION_FEE, serr.Code)

	// the hold was fully released, the device stays unbound
	assert.Equal(t, uint64(0), env.ledger.HeldBalance(ledger.HoldBinding, servicer))
	assert.Equal(t, balance, env.ledger.Balance(servicer))
	device, err := tx.GetAttester(id)
	require.NoError(t, err)
	require.NotNil(t, device)
	assert.False(t, device.IsBinded())
}

func TestMediators(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()

	tx := env.state.NewTx()
	events, serr := env.registry.AddMediator(tx, dspCom.SignedOrigin(member), mediator)
	require.Nil(t, serr)
	assert.Equal(t, "MediatorAdded", events[0].Name())

	_, serr = env.registry.AddMediator(tx, dspCom.SignedOrigin(member), mediator)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.MEDIATOR_ALREADY_REGISTERED, serr.Code)

	// outsiders cannot manage the set
	_, serr = env.registry.AddMediator(tx, dspCom.SignedOrigin(servicer), addrOf(8))
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.COUNCIL_MEMBER_ONLY, serr.Code)

	events, serr = env.registry.RemoveMediator(tx, dspCom.SignedOrigin(member), mediator)
	require.Nil(t, serr)
	assert.Equal(t, "MediatorRemoved", events[0].Name())

	_, serr = env.registry.RemoveMediator(tx, dspCom.SignedOrigin(member), mediator)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.MEDIATOR_NOT_FOUND, serr.Code)
}

func TestMediatorSetCapacity(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()
	env.cfg.MaxMediators = 2
	env.addMediator(t, addrOf(10))
	env.addMediator(t, addrOf(11))

	tx := env.state.NewTx()
	_, serr := env.registry.AddMediator(tx, dspCom.SignedOrigin(member), addrOf(12))
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.MEDIATOR_SET_FULL, serr.Code)
}

func TestReputation(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()
	bound, unbound := attesterOf(1), attesterOf(2)
	env.supply(t, bound)
	env.supply(t, unbound)
	env.bind(t, servicer, bound, peerOf(9))
	env.addMediator(t, mediator)

	tx := env.state.NewTx()
	// only mediators may touch reputation
	_, serr := env.registry.IncreaseReputation(tx, dspCom.SignedOrigin(member), bound)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.MEDIATOR_NOT_FOUND, serr.Code)

	events, serr := env.registry.IncreaseReputation(tx, dspCom.SignedOrigin(mediator), bound)
	require.Nil(t, serr)
	increased := events[0].(event.ServicerReputationIncreased)
	assert.Equal(t, mediator, increased.By)
	assert.Equal(t, servicer, increased.Who)

	events, serr = env.registry.DecreaseReputation(tx, dspCom.SignedOrigin(mediator), bound)
	require.Nil(t, serr)
	assert.Equal(t, "ServicerReputationDecreased", events[0].Name())

	_, serr = env.registry.DecreaseReputation(tx, dspCom.SignedOrigin(mediator), bound)
	require.Nil(t, serr)

	record, err := tx.GetServicer(servicer)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, uint32(1), record.RepPositive)
	assert.Equal(t, uint32(2), record.RepNegative)
	assert.Equal(t, int64(-1), record.TotalReputation())

	// unbound and unknown devices are rejected
	_, serr = env.registry.IncreaseReputation(tx, dspCom.SignedOrigin(mediator), unbound)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_IS_UNBINDED, serr.Code)
	_, serr = env.registry.IncreaseReputation(tx, dspCom.SignedOrigin(mediator), attesterOf(3))
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.ATTESTER_DOESNT_EXIST, serr.Code)
}

func TestForceRebind(t *testing.T) {
	env := newTestEnv(t)
	defer env.state.Close()
	id := attesterOf(1)
	other := addrOf(7)
	env.supply(t, id)
	env.bind(t, servicer, id, peerOf(9))

	tx := env.state.NewTx()
	// unknown device
	_, serr := env.registry.ForceRebind(tx, dspCom.SignedOrigin(member), attesterOf(2), other)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.DEVICE_DOESNT_EXIST, serr.Code)

	// same owner
	_, serr = env.registry.ForceRebind(tx, dspCom.SignedOrigin(member), id, servicer)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.DEVICE_FORCE_REBIND_REJECTED, serr.Code)

	events, serr := env.registry.ForceRebind(tx, dspCom.SignedOrigin(member), id, other)
	require.Nil(t, serr)
	require.NoError(t, tx.Commit())
	rebinded := events[0].(event.RemoteAttestationDeviceRebindedForcefully)
	assert.Equal(t, servicer, rebinded.From)
	assert.Equal(t, other, rebinded.To)
	assert.Equal(t, member, rebinded.By)

	tx = env.state.NewTx()
	device, err := tx.GetAttester(id)
	require.NoError(t, err)
	require.NotNil(t, device)
	assert.Equal(t, other, *device.Binder)
	// the binding record moved atomically, peer id preserved
	fromRecord, err := tx.GetServicer(servicer)
	require.NoError(t, err)
	_, stillBound := fromRecord.GetPeerId(id)
	assert.False(t, stillBound)
	toRecord, err := tx.GetServicer(other)
	require.NoError(t, err)
	require.NotNil(t, toRecord)
	peer, bound := toRecord.GetPeerId(id)
	require.True(t, bound)
	assert.Equal(t, peerOf(9), peer)

	// an unbound device cannot be force-rebound
	second := attesterOf(3)
	env.supply(t, second)
	_, serr = env.registry.ForceRebind(tx, dspCom.SignedOrigin(member), second, other)
	require.NotNil(t, serr)
	assert.Equal(t, sdkErr.DEVICE_FORCE_REBIND_REJECTED, serr.Code)
}
