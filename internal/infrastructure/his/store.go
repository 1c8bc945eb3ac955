// Package his reads historical .dsb block files: day-partitioned tick and
// level 2 files, and per-contract bar files.
package his

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/muhammadchandra19/tickstore/internal/codec"
	loaderv1 "github.com/muhammadchandra19/tickstore/internal/domain/loader/v1"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Directory names under {root}/his/, part of the storage convention.
const (
	dirTicks       = "ticks"
	dirOrderQueue  = "queue"
	dirOrderDetail = "orders"
	dirTransaction = "trans"
)

// Store reads and caches historical blocks. Day-partitioned reads are cached
// for the process lifetime: once a trading day is over its file never
// changes. Bar files are left to the query layer's assembled-series cache.
type Store struct {
	root   string
	logger logger.Interface
	loader loaderv1.HistoryLoader // optional, consulted before the filesystem

	mu     sync.RWMutex
	ticks  map[string][]market.Tick
	queues map[string][]market.OrderQueue
	orders map[string][]market.OrderDetail
	trans  map[string][]market.Transaction
}

// NewStore creates a historical file store rooted at root. loader may be nil.
func NewStore(root string, loader loaderv1.HistoryLoader, log logger.Interface) *Store {
	return &Store{
		root:   root,
		logger: log,
		loader: loader,
		ticks:  make(map[string][]market.Tick),
		queues: make(map[string][]market.OrderQueue),
		orders: make(map[string][]market.OrderDetail),
		trans:  make(map[string][]market.Transaction),
	}
}

// ReadTicks returns the ticks of (exchg, code) for one trading date, nil
// when there is no data for that day.
func (s *Store) ReadTicks(exchg, code string, tradingDate uint32) []market.Tick {
	key := dayKey(exchg, code, tradingDate)

	s.mu.RLock()
	cached, ok := s.ticks[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	if s.loader != nil {
		if recs, ok := s.loader.LoadRawTicks(exchg+"."+code, tradingDate); ok {
			s.mu.Lock()
			s.ticks[key] = recs
			s.mu.Unlock()
			return recs
		}
	}

	payload := s.readDayFile(dirTicks, exchg, code, tradingDate, false)
	recs := market.TicksOf(payload)
	s.mu.Lock()
	s.ticks[key] = recs
	s.mu.Unlock()
	return recs
}

// ReadOrderQueue returns the order queue snapshots of (exchg, code) for one
// trading date, nil when there is no data for that day.
func (s *Store) ReadOrderQueue(exchg, code string, tradingDate uint32) []market.OrderQueue {
	key := dayKey(exchg, code, tradingDate)

	s.mu.RLock()
	cached, ok := s.queues[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	payload := s.readDayFile(dirOrderQueue, exchg, code, tradingDate, false)
	recs := market.OrderQueuesOf(payload)
	s.mu.Lock()
	s.queues[key] = recs
	s.mu.Unlock()
	return recs
}

// ReadOrderDetails returns the order detail events of (exchg, code) for one
// trading date, nil when there is no data for that day.
func (s *Store) ReadOrderDetails(exchg, code string, tradingDate uint32) []market.OrderDetail {
	key := dayKey(exchg, code, tradingDate)

	s.mu.RLock()
	cached, ok := s.orders[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	payload := s.readDayFile(dirOrderDetail, exchg, code, tradingDate, false)
	recs := market.OrderDetailsOf(payload)
	s.mu.Lock()
	s.orders[key] = recs
	s.mu.Unlock()
	return recs
}

// ReadTransactions returns the executed trades of (exchg, code) for one
// trading date, nil when there is no data for that day.
func (s *Store) ReadTransactions(exchg, code string, tradingDate uint32) []market.Transaction {
	key := dayKey(exchg, code, tradingDate)

	s.mu.RLock()
	cached, ok := s.trans[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	payload := s.readDayFile(dirTransaction, exchg, code, tradingDate, false)
	recs := market.TransactionsOf(payload)
	s.mu.Lock()
	s.trans[key] = recs
	s.mu.Unlock()
	return recs
}

// ReadBars returns the full bar history of (exchg, fileStem) for a period,
// nil when the file is absent. fileStem is the raw code, optionally carrying
// a Q/H suffix for pre-adjusted equity series. Results are not cached here;
// the query layer owns assembled bar series.
func (s *Store) ReadBars(exchg, fileStem string, period market.Period) []market.Bar {
	path := filepath.Join(s.root, "his", period.Dir(), exchg, fileStem+".dsb")
	payload := s.readFile(path, true)
	return market.BarsOf(payload)
}

// HasBarFile reports whether a bar file exists without decoding it.
func (s *Store) HasBarFile(exchg, fileStem string, period market.Period) bool {
	path := filepath.Join(s.root, "his", period.Dir(), exchg, fileStem+".dsb")
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) readDayFile(kind, exchg, code string, tradingDate uint32, isBar bool) []byte {
	path := filepath.Join(s.root, "his", kind, exchg, fmt.Sprintf("%d", tradingDate), code+".dsb")
	return s.readFile(path, isBar)
}

// readFile reads and normalizes one block file. A missing file is an
// expected miss; a corrupt one is logged and treated the same way.
func (s *Store) readFile(path string, isBar bool) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("historical file missing", logger.Field{Key: "path", Value: path})
			return nil
		}
		s.logger.Error(err, logger.Field{Key: "path", Value: path})
		return nil
	}

	payload, err := codec.Normalize(data, isBar, false)
	if err != nil {
		s.logger.Error(err, logger.Field{Key: "path", Value: path})
		return nil
	}
	return payload
}

func dayKey(exchg, code string, tradingDate uint32) string {
	return fmt.Sprintf("%s.%s.%d", exchg, code, tradingDate)
}
