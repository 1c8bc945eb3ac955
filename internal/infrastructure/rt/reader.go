// Package rt memory-maps writer-owned real-time .dmb ring files and serves
// validity-checked live views of them. The reader never writes; the external
// writer appends in place and bumps the header's Size/Capacity fields.
package rt

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/muhammadchandra19/tickstore/internal/codec"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Kind identifies a real-time data stream.
type Kind int

const (
	// KindTicks is the live tick stream.
	KindTicks Kind = iota
	// KindOrderQueue is the live order queue stream.
	KindOrderQueue
	// KindOrderDetail is the live order detail stream.
	KindOrderDetail
	// KindTransaction is the live transaction stream.
	KindTransaction
	// KindMinute1 is the live 1 minute bar stream.
	KindMinute1
	// KindMinute5 is the live 5 minute bar stream.
	KindMinute5
)

// Dir returns the directory name of the kind under {root}/rt/.
func (k Kind) Dir() string {
	switch k {
	case KindTicks:
		return "ticks"
	case KindOrderQueue:
		return "queue"
	case KindOrderDetail:
		return "orders"
	case KindTransaction:
		return "trans"
	case KindMinute1:
		return "min1"
	case KindMinute5:
		return "min5"
	default:
		return "unknown"
	}
}

// IsBar reports whether the kind stores bars, whose last record may still be
// open (mutated in place by the writer until the period closes).
func (k Kind) IsBar() bool {
	return k == KindMinute1 || k == KindMinute5
}

// Block is one mapped ring file. Callers take the block mutex for the
// duration of any search plus copy-out, so the writer's in-place append
// cannot tear a multi-record read.
type Block struct {
	mu   sync.Mutex
	path string
	kind Kind

	data       []byte
	header     *codec.RTBlockHeader
	capacity   uint32 // capacity observed at map time
	lastAccess atomic.Int64
}

// Lock acquires the per-block read mutex.
func (b *Block) Lock() { b.mu.Lock() }

// Unlock releases the per-block read mutex.
func (b *Block) Unlock() { b.mu.Unlock() }

// Size returns the number of valid records, clamped to the mapped capacity.
// For bar kinds the record at Size-1 may still be open.
func (b *Block) Size() int {
	if b.header == nil {
		return 0
	}
	size := b.header.Size
	if size > b.capacity {
		size = b.capacity
	}
	return int(size)
}

// Capacity returns the record capacity observed when the block was mapped.
func (b *Block) Capacity() int {
	return int(b.capacity)
}

// Ticks returns the valid tick records of the ring. Only meaningful for
// KindTicks blocks; read under the block mutex.
func (b *Block) Ticks() []market.Tick {
	return viewRecords[market.Tick](b, market.TickSize)
}

// Bars returns the valid bar records of the ring; read under the block mutex.
func (b *Block) Bars() []market.Bar {
	return viewRecords[market.Bar](b, market.BarSize)
}

// OrderQueues returns the valid order queue records of the ring.
func (b *Block) OrderQueues() []market.OrderQueue {
	return viewRecords[market.OrderQueue](b, market.OrderQueueSize)
}

// OrderDetails returns the valid order detail records of the ring.
func (b *Block) OrderDetails() []market.OrderDetail {
	return viewRecords[market.OrderDetail](b, market.OrderDetailSize)
}

// Transactions returns the valid transaction records of the ring.
func (b *Block) Transactions() []market.Transaction {
	return viewRecords[market.Transaction](b, market.TransactionSize)
}

func viewRecords[T any](b *Block, recSize int) []T {
	if b.data == nil || len(b.data) <= codec.RTHeaderSize {
		return nil
	}
	body := b.data[codec.RTHeaderSize:]
	n := len(body) / recSize
	if n > b.Size() {
		n = b.Size()
	}
	if n == 0 {
		return nil
	}
	return recordsOf[T](body, recSize)[:n]
}

// recordsOf overlays the record array following the ring header. The mmap
// region is page aligned and the header is 16 bytes, so records stay on an
// 8 byte boundary.
func recordsOf[T any](buf []byte, recSize int) []T {
	n := len(buf) / recSize
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// touch refreshes the idle clock used by the janitor.
func (b *Block) touch() {
	b.lastAccess.Store(time.Now().UnixNano())
}

// Reader maps and caches real-time blocks keyed by (kind, exchange, code).
type Reader struct {
	root   string
	logger logger.Interface

	mu     sync.RWMutex
	blocks map[string]*Block
}

// NewReader creates a real-time reader rooted at root.
func NewReader(root string, log logger.Interface) *Reader {
	return &Reader{
		root:   root,
		logger: log,
		blocks: make(map[string]*Block),
	}
}

// GetBlock returns the live block of (exchg, code, kind), mapping it on
// first access and remapping when the writer has grown the file. Returns nil
// when the file does not exist: an expected miss, not an error.
func (r *Reader) GetBlock(exchg, code string, kind Kind) *Block {
	key := kind.Dir() + "/" + exchg + "/" + code

	r.mu.RLock()
	blk, ok := r.blocks[key]
	r.mu.RUnlock()

	if !ok {
		path := filepath.Join(r.root, "rt", kind.Dir(), exchg, code+".dmb")
		blk = &Block{path: path, kind: kind}

		r.mu.Lock()
		if existing, ok := r.blocks[key]; ok {
			blk = existing
		} else {
			r.blocks[key] = blk
		}
		r.mu.Unlock()
	}

	blk.Lock()
	defer blk.Unlock()

	if !r.ensureMapped(blk) {
		return nil
	}
	blk.touch()
	return blk
}

// ensureMapped maps or remaps blk as needed; the caller holds the block
// mutex. Returns false when the file is absent or unreadable.
func (r *Reader) ensureMapped(blk *Block) bool {
	for attempt := 0; attempt < 3; attempt++ {
		if blk.data == nil {
			data, err := mapFile(blk.path)
			if err != nil {
				r.logger.Error(err, logger.Field{Key: "path", Value: blk.path})
				return false
			}
			if data == nil {
				r.logger.Debug("realtime block missing", logger.Field{Key: "path", Value: blk.path})
				return false
			}
			header, err := codec.ParseRTHeader(data)
			if err != nil {
				_ = unmapFile(data)
				r.logger.Error(err, logger.Field{Key: "path", Value: blk.path})
				return false
			}
			blk.data = data
			blk.header = header
			blk.capacity = header.Capacity
		}

		// The writer may have grown the ring after (or while) we mapped:
		// the header lives inside the mapping, so a capacity bump is
		// visible even though the extra records are not. Remap until the
		// observed capacity is stable.
		if blk.header.Capacity == blk.capacity {
			return true
		}
		r.logger.Info("realtime block grown, remapping",
			logger.Field{Key: "path", Value: blk.path},
			logger.Field{Key: "capacity", Value: blk.header.Capacity},
		)
		r.dropMapping(blk)
	}
	return blk.data != nil
}

// dropMapping unmaps blk; the caller holds the block mutex.
func (r *Reader) dropMapping(blk *Block) {
	if blk.data == nil {
		return
	}
	if err := unmapFile(blk.data); err != nil {
		r.logger.Error(err, logger.Field{Key: "path", Value: blk.path})
	}
	blk.data = nil
	blk.header = nil
	blk.capacity = 0
}

// EvictIdle unmaps blocks untouched for longer than idle. stop aborts the
// scan between blocks so shutdown does not wait on a long walk. Returns the
// number of mappings released.
func (r *Reader) EvictIdle(idle time.Duration, stop <-chan struct{}) int {
	r.mu.RLock()
	blocks := make([]*Block, 0, len(r.blocks))
	for _, blk := range r.blocks {
		blocks = append(blocks, blk)
	}
	r.mu.RUnlock()

	now := time.Now().UnixNano()
	evicted := 0
	for _, blk := range blocks {
		select {
		case <-stop:
			return evicted
		default:
		}
		blk.Lock()
		if blk.data != nil && now-blk.lastAccess.Load() > idle.Nanoseconds() {
			r.dropMapping(blk)
			evicted++
		}
		blk.Unlock()
	}
	return evicted
}

// MappedCount returns the number of currently mapped blocks.
func (r *Reader) MappedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, blk := range r.blocks {
		blk.Lock()
		if blk.data != nil {
			count++
		}
		blk.Unlock()
	}
	return count
}

// Close unmaps everything. The reader is not usable afterwards.
func (r *Reader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, blk := range r.blocks {
		blk.Lock()
		r.dropMapping(blk)
		blk.Unlock()
		delete(r.blocks, key)
	}
}
