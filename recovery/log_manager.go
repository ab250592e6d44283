package recovery

import (
	"bytes"
	"encoding/binary"

	"github.com/dsnet/golib/memfile"
	"github.com/sasha-s/go-deadlock"

	"github.com/fathurwithyou/silberschatz/types"
)

// LogManager appends write-ahead records for the failure-recovery
// collaborator. The execution core only sequences appends; replay is out of
// scope here.
type LogManager struct {
	mutex          deadlock.Mutex
	nextLSN        types.LSN
	enableLogging  bool
	logFile        *memfile.File
	logFileSize    int64
}

func NewLogManager() *LogManager {
	return &LogManager{
		nextLSN:       0,
		enableLogging: true,
		logFile:       memfile.New(make([]byte, 0)),
	}
}

func (lm *LogManager) ActivateLogging()   { lm.mutex.Lock(); lm.enableLogging = true; lm.mutex.Unlock() }
func (lm *LogManager) DeactivateLogging() { lm.mutex.Lock(); lm.enableLogging = false; lm.mutex.Unlock() }

func (lm *LogManager) IsEnabledLogging() bool {
	lm.mutex.Lock()
	defer lm.mutex.Unlock()
	return lm.enableLogging
}

// AppendLogRecord assigns the record its LSN and appends its serialized form
// to the log tail.
func (lm *LogManager) AppendLogRecord(record *LogRecord) types.LSN {
	lm.mutex.Lock()
	defer lm.mutex.Unlock()

	record.lsn = lm.nextLSN
	lm.nextLSN++

	data := serializeRecord(record)
	record.size = uint32(len(data))

	lm.logFile.WriteAt(data, lm.logFileSize)
	lm.logFileSize += int64(len(data))
	return record.lsn
}

func serializeRecord(record *LogRecord) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, record.lsn)
	binary.Write(buf, binary.LittleEndian, record.txnID)
	binary.Write(buf, binary.LittleEndian, record.prevLSN)
	binary.Write(buf, binary.LittleEndian, record.logRecordType)
	binary.Write(buf, binary.LittleEndian, record.slotNum)
	binary.Write(buf, binary.LittleEndian, int32(len(record.table)))
	buf.WriteString(record.table)
	binary.Write(buf, binary.LittleEndian, int32(len(record.oldTuple)))
	buf.Write(record.oldTuple)
	binary.Write(buf, binary.LittleEndian, int32(len(record.newTuple)))
	buf.Write(record.newTuple)
	return buf.Bytes()
}
