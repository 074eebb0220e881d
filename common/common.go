package common

import (
	chaincom "github.com/saveio/themis/common"
)

const (
	CHAIN_SDK_VERSION = "1.0.0" // chain go sdk version
)

// Origin. authenticated caller identity of a dispatched command, either the
// root authority or a signed account
type Origin struct {
	root   bool
	signer chaincom.Address
}

func RootOrigin() Origin {
	return Origin{root: true}
}

func SignedOrigin(signer chaincom.Address) Origin {
	return Origin{signer: signer}
}

func (this Origin) IsRoot() bool {
	return this.root
}

// Signer. signed caller account, false for the root origin
func (this Origin) Signer() (chaincom.Address, bool) {
	if this.root {
		return chaincom.ADDRESS_EMPTY, false
	}
	return this.signer, true
}
