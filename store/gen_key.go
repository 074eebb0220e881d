package store

import "fmt"

const (
	DB_PREFIX  = "chain_db"
	DB_VERSION = "v1"

	COUNCIL_ELDER_KEY    = DB_PREFIX + "_" + "council_elder" + "_" + DB_VERSION
	COUNCIL_MEMBERS_KEY  = DB_PREFIX + "_" + "council_members" + "_" + DB_VERSION
	COUNCIL_FEE_INFO_KEY = DB_PREFIX + "_" + "council_fee_info" + "_" + DB_VERSION
	COUNCIL_PROPOSAL_KEY = DB_PREFIX + "_" + "council_proposal" + "_" + DB_VERSION

	FILE_INFO_PREFIX = DB_PREFIX + "_" + "file_info" + "_" + DB_VERSION
	FILE_HASH_PREFIX = DB_PREFIX + "_" + "file_hash" + "_" + DB_VERSION

	ATTESTER_PREFIX        = DB_PREFIX + "_" + "registry_attester" + "_" + DB_VERSION
	SERVICER_PREFIX        = DB_PREFIX + "_" + "registry_servicer" + "_" + DB_VERSION
	REGISTRY_MEDIATORS_KEY = DB_PREFIX + "_" + "registry_mediators" + "_" + DB_VERSION
)

// FileInfoKey. Key of a file record, file id in base58
func FileInfoKey(file string) string {
	return fmt.Sprintf("[%s]%s", FILE_INFO_PREFIX, file)
}

// FileHashKey. Key of the file hash uniqueness index, hash in hex
func FileHashKey(hash string) string {
	return fmt.Sprintf("[%s]%s", FILE_HASH_PREFIX, hash)
}

// AttesterKey. Key of an attestation device record, attester id in hex
func AttesterKey(id string) string {
	return fmt.Sprintf("[%s]%s", ATTESTER_PREFIX, id)
}

// ServicerKey. Key of a servicer record, wallet address in base58
func ServicerKey(walletAddr string) string {
	return fmt.Sprintf("[%s]%s", SERVICER_PREFIX, walletAddr)
}
