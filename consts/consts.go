package consts

// token units
const (
	TOKEN_DIGIT  = 9
	TOKEN        = 1_000_000_000 // 10^TOKEN_DIGIT
	TOKEN_CENTS  = TOKEN / 100
	TOKEN_MILLIS = TOKEN / 1_000
	TOKEN_MICROS = TOKEN_MILLIS / 1_000
	TOKEN_NANOS  = TOKEN_MICROS / 1_000
)

// fee composition
const (
	TOKEN_PER_BYTE           = 14 * TOKEN_NANOS // per byte cost component
	TOKEN_PER_ITEM           = TOKEN_MICROS     // per item cost component
	REF_TIME_GAS_FEE_DIVIDER = 16 * 1024        // weight time to gas normalizer
	MIN_GAS_FEE              = TOKEN_PER_ITEM   // GetFee(1, 0)
)

// council defaults
const (
	MAX_MEMBERS                      = 16          // council capacity
	REGISTRATION_DEPOSIT_AMOUNT      = 200 * TOKEN // council membership hold
	INITIAL_WEIGHT_TO_FEE_MULTIPLIER = 1
	INITIAL_WEIGHT_TO_FEE_DIVIDER    = REF_TIME_GAS_FEE_DIVIDER
	INITIAL_MINIMUM_TRANSACTION_FEE  = MIN_GAS_FEE
)

// registry defaults
const (
	MAX_MEDIATORS           = 16
	BINDING_DEPOSIT_AMOUNT  = 10 * TOKEN // held once per attester binding
	REGISTRATION_FEE_AMOUNT = 50 * TOKEN // burned-in fee, once per servicer existence
)

// marketplace defaults
const (
	UPLOAD_FEE_PER_BYTE            = 14 * TOKEN_NANOS
	DOWNLOAD_FEE_PER_BYTE          = 7 * TOKEN_NANOS
	STORAGE_FEE_PER_BYTE           = 2 * TOKEN_NANOS // per storage period
	SERVICER_UPLOAD_FEE_PERCENT    = 40
	BB_DOWNLOAD_FEE_PERCENT        = 10
	ROYALTY_FEE_PERCENT            = 10
	STORAGE_PERIOD_BLOCKS   uint64 = 28800 // one day of 3s blocks
)

// GetFee. flat cost of a payload made of item count plus byte length
func GetFee(itemsCount, bytesLength uint64) uint64 {
	return itemsCount*TOKEN_PER_ITEM + bytesLength*TOKEN_PER_BYTE
}

// UploadFee. upload fee from byte size, monotonic non-decreasing
func UploadFee(size uint64) uint64 {
	return TOKEN_PER_ITEM + size*UPLOAD_FEE_PER_BYTE
}

// DownloadFee. retrieval fee from byte size, monotonic non-decreasing
func DownloadFee(size uint64) uint64 {
	return TOKEN_PER_ITEM + size*DOWNLOAD_FEE_PER_BYTE
}

// StorageFeePerPeriod. keeping fee from byte size, per storage period
func StorageFeePerPeriod(size uint64) uint64 {
	return TOKEN_PER_ITEM + size*STORAGE_FEE_PER_BYTE
}
