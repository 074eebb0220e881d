package store

import (
	"encoding/json"

	"github.com/google/uuid"
	dspCom "github.com/saveio/chain-go-sdk/common"
	chaincom "github.com/saveio/themis/common"
)

// RemoteAttestationDevice. a physical attestation unit supplied by a big
// brother, bindable to exactly one servicer
type RemoteAttestationDevice struct {
	BigBrother   chaincom.Address  `json:"big_brother"`
	SerialNumber uint32            `json:"serial_number"`
	Guid         uuid.UUID         `json:"guid"` // important for windows drivers
	Binder       *chaincom.Address `json:"binder,omitempty"`
}

// IsBinded. nil binder means unbinded and recallable
func (this *RemoteAttestationDevice) IsBinded() bool {
	return this.Binder != nil
}

// ServicerInformation. reputation counters plus attester to peer bindings
type ServicerInformation struct {
	RepPositive uint32                   `json:"rep_positive"`
	RepNegative uint32                   `json:"rep_negative"`
	Bindings    map[string]dspCom.PeerId `json:"bindings"` // attester id hex -> peer id
}

func NewServicerInformation() *ServicerInformation {
	return &ServicerInformation{
		Bindings: make(map[string]dspCom.PeerId),
	}
}

func (this *ServicerInformation) GetPeerId(attesterId dspCom.AttesterId) (dspCom.PeerId, bool) {
	peerId, ok := this.Bindings[attesterId.String()]
	return peerId, ok
}

// TryAddBinding. false when this attester is already bound here
func (this *ServicerInformation) TryAddBinding(attesterId dspCom.AttesterId, peerId dspCom.PeerId) bool {
	key := attesterId.String()
	if _, exists := this.Bindings[key]; exists {
		return false
	}
	this.Bindings[key] = peerId
	return true
}

func (this *ServicerInformation) RemoveBinding(attesterId dspCom.AttesterId) {
	delete(this.Bindings, attesterId.String())
}

func (this *ServicerInformation) IncreaseReputation() {
	if this.RepPositive < ^uint32(0) {
		this.RepPositive++
	}
}

func (this *ServicerInformation) DecreaseReputation() {
	if this.RepNegative < ^uint32(0) {
		this.RepNegative++
	}
}

// TotalReputation. positive minus negative
func (this *ServicerInformation) TotalReputation() int64 {
	return int64(this.RepPositive) - int64(this.RepNegative)
}

func (this *StateTx) GetAttester(id dspCom.AttesterId) (*RemoteAttestationDevice, error) {
	buf, err := this.get(AttesterKey(id.String()))
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	device := new(RemoteAttestationDevice)
	if err := json.Unmarshal(buf, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (this *StateTx) SetAttester(id dspCom.AttesterId, device *RemoteAttestationDevice) error {
	buf, err := json.Marshal(device)
	if err != nil {
		return err
	}
	this.put(AttesterKey(id.String()), buf)
	return nil
}

func (this *StateTx) DeleteAttester(id dspCom.AttesterId) {
	this.del(AttesterKey(id.String()))
}

func (this *StateTx) GetServicer(who chaincom.Address) (*ServicerInformation, error) {
	buf, err := this.get(ServicerKey(who.ToBase58()))
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	servicer := new(ServicerInformation)
	if err := json.Unmarshal(buf, servicer); err != nil {
		return nil, err
	}
	if servicer.Bindings == nil {
		servicer.Bindings = make(map[string]dspCom.PeerId)
	}
	return servicer, nil
}

func (this *StateTx) SetServicer(who chaincom.Address, servicer *ServicerInformation) error {
	buf, err := json.Marshal(servicer)
	if err != nil {
		return err
	}
	this.put(ServicerKey(who.ToBase58()), buf)
	return nil
}

func (this *StateTx) GetMediators() ([]chaincom.Address, error) {
	buf, err := this.get(REGISTRY_MEDIATORS_KEY)
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	mediators := make([]chaincom.Address, 0)
	if err := json.Unmarshal(buf, &mediators); err != nil {
		return nil, err
	}
	return mediators, nil
}

func (this *StateTx) SetMediators(mediators []chaincom.Address) error {
	buf, err := json.Marshal(mediators)
	if err != nil {
		return err
	}
	this.put(REGISTRY_MEDIATORS_KEY, buf)
	return nil
}

// GetServicer. committed servicer record, read outside any transaction
func (this *StateDB) GetServicer(who chaincom.Address) (*ServicerInformation, error) {
	buf, err := this.db.Get([]byte(ServicerKey(who.ToBase58())))
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	servicer := new(ServicerInformation)
	if err := json.Unmarshal(buf, servicer); err != nil {
		return nil, err
	}
	return servicer, nil
}
