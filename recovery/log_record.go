package recovery

import (
	"github.com/fathurwithyou/silberschatz/types"
)

// LogRecordType enumerates the record kinds the execution core appends. The
// redo/undo replay that consumes them lives in the failure-recovery
// subsystem, outside this module.
type LogRecordType int32

const (
	INVALID LogRecordType = iota
	INSERT
	MARKDELETE
	APPLYDELETE
	ROLLBACKDELETE
	UPDATE
	BEGIN
	COMMIT
	ABORT
)

// LogRecord is one write-ahead entry.
//
// HEADER: | size | LSN | txnID | prevLSN | LogType |
// Write records additionally carry the table name, the slot and the encoded
// before/after images.
type LogRecord struct {
	size          uint32
	lsn           types.LSN
	txnID         types.TxnID
	prevLSN       types.LSN
	logRecordType LogRecordType

	table    string
	slotNum  uint32
	oldTuple []byte
	newTuple []byte
}

// NewLogRecordTxn builds a BEGIN/COMMIT/ABORT record.
func NewLogRecordTxn(txnID types.TxnID, prevLSN types.LSN, logRecordType LogRecordType) *LogRecord {
	return &LogRecord{
		lsn:           types.InvalidLSN,
		txnID:         txnID,
		prevLSN:       prevLSN,
		logRecordType: logRecordType,
	}
}

// NewLogRecordWrite builds an INSERT/UPDATE/*DELETE record with before and
// after images (either may be nil depending on the kind).
func NewLogRecordWrite(txnID types.TxnID, prevLSN types.LSN, logRecordType LogRecordType,
	table string, slotNum uint32, oldTuple []byte, newTuple []byte) *LogRecord {
	return &LogRecord{
		lsn:           types.InvalidLSN,
		txnID:         txnID,
		prevLSN:       prevLSN,
		logRecordType: logRecordType,
		table:         table,
		slotNum:       slotNum,
		oldTuple:      oldTuple,
		newTuple:      newTuple,
	}
}

func (r *LogRecord) GetLSN() types.LSN             { return r.lsn }
func (r *LogRecord) GetTxnID() types.TxnID         { return r.txnID }
func (r *LogRecord) GetPrevLSN() types.LSN         { return r.prevLSN }
func (r *LogRecord) GetLogRecordType() LogRecordType { return r.logRecordType }
