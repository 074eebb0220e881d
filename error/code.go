package error

const (
	SUCCESS = 0
)

// sdk internal error code
const (
	INVALID_PARAMS  uint32 = iota + 10000 // 10000
	INTERNAL_ERROR                        // 10001
	INVALID_ADDRESS                       // 10002
	CLOSE_DB_ERROR                        // 10003
	STATE_DB_ERROR                        // 10004
)

// authorization error code
const (
	RESTRICTED_CALL     uint32 = iota + 20000 // 20000
	SUDO_OR_ELDER_ONLY                        // 20001
	COUNCIL_MEMBER_ONLY                       // 20002
	UNDEFINED_ELDER                           // 20003
	MEDIATOR_NOT_FOUND                        // 20004
	SIGNED_CALLER_ONLY                        // 20005
)

// council error code
const (
	COUNCIL_MEMBERSHIP_FULL         uint32 = iota + 30000 // 30000
	ACCOUNT_ALREADY_A_MEMBER                              // 30001
	ACCOUNT_IS_NOT_A_MEMBER                               // 30002
	ACCOUNT_ALREADY_AN_ELDER                              // 30003
	ACCOUNT_HAS_NO_LEGAL_NAME                             // 30004
	ACCOUNT_IS_NOT_VERIFIED_LEGALLY                       // 30005
	NO_PROPOSAL_EXISTS                                    // 30006
	INCORRECT_PROPOSAL                                    // 30007
	VOTE_ALREADY_COUNTED                                  // 30008
)

// files error code
const (
	FILE_NOT_FOUND                       uint32 = iota + 40000 // 40000
	FILE_ALREADY_EXIST                                         // 40001
	OWNERSHIP_TRANSFER_FEE_MUST_NOT_ZERO                       // 40002
)

// registry error code
const (
	ATTESTER_DOESNT_EXIST                uint32 = iota + 50000 // 50000
	ATTESTER_ALREADY_SUPPLIED                                  // 50001
	ATTESTER_ALREADY_BINDED                                    // 50002
	ATTESTER_IS_UNBINDED                                       // 50003
	SERVICER_CANNOT_PAY_REGISTRATION_FEE                       // 50004
	MEDIATOR_ALREADY_REGISTERED                                // 50005
	DEVICE_DOESNT_EXIST                                        // 50006
	DEVICE_FORCE_REBIND_REJECTED                               // 50007
	MEDIATOR_SET_FULL                                          // 50008
)

// ledger error code
const (
	LEDGER_WITHDRAW_ERROR uint32 = iota + 60000 // 60000
	LEDGER_HOLD_ERROR                           // 60001
	LEDGER_RELEASE_ERROR                        // 60002
	LEDGER_MINT_ERROR                           // 60003
	LEDGER_BURN_ERROR                           // 60004
)

// invariant violation error code
const (
	FATAL_ERROR uint32 = iota + 90000 // 90000
)
