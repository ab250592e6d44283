// Package disk provides the table-space layer: one append-only segment of
// encoded tuples per table, backed by in-memory files. It is the narrow
// surface the execution core sees of durable storage.
package disk

import (
	"github.com/dsnet/golib/memfile"
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/fathurwithyou/silberschatz/dberr"
)

type segment struct {
	file *memfile.File
	size int64
}

// DiskManager owns the segments of one database. All methods are safe for
// concurrent use by connection goroutines.
type DiskManager struct {
	dbName   string
	mutex    deadlock.RWMutex
	segments map[string]*segment
}

func NewDiskManager(dbName string) *DiskManager {
	return &DiskManager{
		dbName:   dbName,
		segments: make(map[string]*segment),
	}
}

func (d *DiskManager) CreateSegment(name string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if _, ok := d.segments[name]; ok {
		return errors.Errorf("segment %s already exists", name)
	}
	d.segments[name] = &segment{file: memfile.New(make([]byte, 0))}
	return nil
}

func (d *DiskManager) DropSegment(name string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.segments, name)
}

// Append writes data at the segment's tail and returns the offset it was
// written at.
func (d *DiskManager) Append(name string, data []byte) (int64, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	seg, ok := d.segments[name]
	if !ok {
		return 0, dberr.NewStorage(nil, "segment "+name+" does not exist")
	}
	offset := seg.size
	if _, err := seg.file.WriteAt(data, offset); err != nil {
		return 0, dberr.NewStorage(errors.Wrap(err, "segment append"), "write failed on "+name)
	}
	seg.size += int64(len(data))
	return offset, nil
}

// ReadAt reads exactly length bytes from the segment at offset.
func (d *DiskManager) ReadAt(name string, offset int64, length int32) ([]byte, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	seg, ok := d.segments[name]
	if !ok {
		return nil, dberr.NewStorage(nil, "segment "+name+" does not exist")
	}
	data := make([]byte, length)
	n, err := seg.file.ReadAt(data, offset)
	if err != nil || int32(n) != length {
		return nil, dberr.NewStorage(errors.Wrap(err, "segment read"), "short read on "+name)
	}
	return data, nil
}

func (d *DiskManager) Size(name string) int64 {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	if seg, ok := d.segments[name]; ok {
		return seg.size
	}
	return 0
}
