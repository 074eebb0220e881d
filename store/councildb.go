package store

import (
	"encoding/json"

	chaincom "github.com/saveio/themis/common"
)

// TransactionFeeInfo. live transaction fee computation parameters
type TransactionFeeInfo struct {
	WeightToFeeMultiplier uint64 `json:"weight_to_fee_multiplier"`
	WeightToFeeDivider    uint64 `json:"weight_to_fee_divider"`
	MinimumTransactionFee uint64 `json:"minimum_transaction_fee"`
}

// TransactionFeeChangeProposal. the single outstanding fee change proposal
type TransactionFeeChangeProposal struct {
	Initiator         chaincom.Address   `json:"initiator"`
	InitiatedAt       uint64             `json:"initiated_at"`
	NewParameters     TransactionFeeInfo `json:"new_parameters"`
	RequiredVoteCount uint32             `json:"required_vote_count"`
	Approvers         []chaincom.Address `json:"approvers"`
}

func (this *TransactionFeeChangeProposal) HasApproved(who chaincom.Address) bool {
	return HasAddress(this.Approvers, who)
}

func (this *TransactionFeeChangeProposal) AddApprover(who chaincom.Address) {
	this.Approvers = append(this.Approvers, who)
}

// HasAddress. membership test over an address list
func HasAddress(list []chaincom.Address, who chaincom.Address) bool {
	for _, addr := range list {
		if addr == who {
			return true
		}
	}
	return false
}

// RemoveAddress. drop who from the list, order of the rest preserved
func RemoveAddress(list []chaincom.Address, who chaincom.Address) []chaincom.Address {
	out := list[:0]
	for _, addr := range list {
		if addr != who {
			out = append(out, addr)
		}
	}
	return out
}

func (this *StateTx) GetElder() (*chaincom.Address, error) {
	buf, err := this.get(COUNCIL_ELDER_KEY)
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	elder := new(chaincom.Address)
	if err := json.Unmarshal(buf, elder); err != nil {
		return nil, err
	}
	return elder, nil
}

func (this *StateTx) SetElder(elder chaincom.Address) error {
	buf, err := json.Marshal(elder)
	if err != nil {
		return err
	}
	this.put(COUNCIL_ELDER_KEY, buf)
	return nil
}

func (this *StateTx) GetMembers() ([]chaincom.Address, error) {
	buf, err := this.get(COUNCIL_MEMBERS_KEY)
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	members := make([]chaincom.Address, 0)
	if err := json.Unmarshal(buf, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (this *StateTx) SetMembers(members []chaincom.Address) error {
	buf, err := json.Marshal(members)
	if err != nil {
		return err
	}
	this.put(COUNCIL_MEMBERS_KEY, buf)
	return nil
}

func (this *StateTx) GetFeeInfo() (*TransactionFeeInfo, error) {
	buf, err := this.get(COUNCIL_FEE_INFO_KEY)
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	info := new(TransactionFeeInfo)
	if err := json.Unmarshal(buf, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (this *StateTx) SetFeeInfo(info *TransactionFeeInfo) error {
	buf, err := json.Marshal(info)
	if err != nil {
		return err
	}
	this.put(COUNCIL_FEE_INFO_KEY, buf)
	return nil
}

func (this *StateTx) GetProposal() (*TransactionFeeChangeProposal, error) {
	buf, err := this.get(COUNCIL_PROPOSAL_KEY)
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	proposal := new(TransactionFeeChangeProposal)
	if err := json.Unmarshal(buf, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (this *StateTx) SetProposal(proposal *TransactionFeeChangeProposal) error {
	buf, err := json.Marshal(proposal)
	if err != nil {
		return err
	}
	this.put(COUNCIL_PROPOSAL_KEY, buf)
	return nil
}

func (this *StateTx) DeleteProposal() {
	this.del(COUNCIL_PROPOSAL_KEY)
}

// GetFeeInfo. committed fee parameters, read outside any transaction
func (this *StateDB) GetFeeInfo() (*TransactionFeeInfo, error) {
	buf, err := this.db.Get([]byte(COUNCIL_FEE_INFO_KEY))
	if err != nil || len(buf) == 0 {
		return nil, err
	}
	info := new(TransactionFeeInfo)
	if err := json.Unmarshal(buf, info); err != nil {
		return nil, err
	}
	return info, nil
}
