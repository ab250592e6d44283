package types

// TxnID is the identifier of a transaction.
type TxnID int32

const InvalidTxnID TxnID = -1

// LSN is a log sequence number issued by the recovery log manager.
type LSN int32

const InvalidLSN LSN = -1
