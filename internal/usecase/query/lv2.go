package query

import (
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
)

// Level-2 queries share the tick walk. No price adjustment applies: order
// flow data is only stored for concrete contracts.

// OrderQueueSliceByCount returns the last count order queue snapshots of
// stdCode at or before etime.
func (e *Engine) OrderQueueSliceByCount(stdCode string, count int, etime uint64) (*market.Slice[market.OrderQueue], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByCount(e, info, rt.KindOrderQueue, count, etime,
		(*market.OrderQueue).Key,
		(*rt.Block).OrderQueues,
		func(rawCode string, date uint32) []market.OrderQueue {
			return e.his.ReadOrderQueue(info.Exchg, rawCode, date)
		},
		nil,
	), nil
}

// OrderQueueSliceByRange returns the order queue snapshots of stdCode with
// encoded times in [stime, etime].
func (e *Engine) OrderQueueSliceByRange(stdCode string, stime, etime uint64) (*market.Slice[market.OrderQueue], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByRange(e, info, rt.KindOrderQueue, stime, etime,
		(*market.OrderQueue).Key,
		(*rt.Block).OrderQueues,
		func(rawCode string, date uint32) []market.OrderQueue {
			return e.his.ReadOrderQueue(info.Exchg, rawCode, date)
		},
		nil,
	), nil
}

// OrderDetailSliceByCount returns the last count order detail events of
// stdCode at or before etime.
func (e *Engine) OrderDetailSliceByCount(stdCode string, count int, etime uint64) (*market.Slice[market.OrderDetail], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByCount(e, info, rt.KindOrderDetail, count, etime,
		(*market.OrderDetail).Key,
		(*rt.Block).OrderDetails,
		func(rawCode string, date uint32) []market.OrderDetail {
			return e.his.ReadOrderDetails(info.Exchg, rawCode, date)
		},
		nil,
	), nil
}

// OrderDetailSliceByRange returns the order detail events of stdCode with
// encoded times in [stime, etime].
func (e *Engine) OrderDetailSliceByRange(stdCode string, stime, etime uint64) (*market.Slice[market.OrderDetail], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByRange(e, info, rt.KindOrderDetail, stime, etime,
		(*market.OrderDetail).Key,
		(*rt.Block).OrderDetails,
		func(rawCode string, date uint32) []market.OrderDetail {
			return e.his.ReadOrderDetails(info.Exchg, rawCode, date)
		},
		nil,
	), nil
}

// TransactionSliceByCount returns the last count transactions of stdCode at
// or before etime.
func (e *Engine) TransactionSliceByCount(stdCode string, count int, etime uint64) (*market.Slice[market.Transaction], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByCount(e, info, rt.KindTransaction, count, etime,
		(*market.Transaction).Key,
		(*rt.Block).Transactions,
		func(rawCode string, date uint32) []market.Transaction {
			return e.his.ReadTransactions(info.Exchg, rawCode, date)
		},
		nil,
	), nil
}

// TransactionSliceByRange returns the transactions of stdCode with encoded
// times in [stime, etime].
func (e *Engine) TransactionSliceByRange(stdCode string, stime, etime uint64) (*market.Slice[market.Transaction], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByRange(e, info, rt.KindTransaction, stime, etime,
		(*market.Transaction).Key,
		(*rt.Block).Transactions,
		func(rawCode string, date uint32) []market.Transaction {
			return e.his.ReadTransactions(info.Exchg, rawCode, date)
		},
		nil,
	), nil
}
