package v1

import "unsafe"

// The overlay helpers below reinterpret a byte buffer as a record slice
// without copying. The buffer must start on an 8 byte boundary (heap buffers
// and mmap regions both qualify) and trailing bytes that do not make up a
// whole record are ignored. Callers never see a raw pointer, only a
// bounds-checked slice.

// BarsOf reinterprets buf as a slice of bars.
func BarsOf(buf []byte) []Bar {
	return overlay[Bar](buf, BarSize)
}

// TicksOf reinterprets buf as a slice of ticks.
func TicksOf(buf []byte) []Tick {
	return overlay[Tick](buf, TickSize)
}

// LegacyBarsOf reinterprets buf as a slice of legacy bars.
func LegacyBarsOf(buf []byte) []LegacyBar {
	return overlay[LegacyBar](buf, LegacyBarSize)
}

// LegacyTicksOf reinterprets buf as a slice of legacy ticks.
func LegacyTicksOf(buf []byte) []LegacyTick {
	return overlay[LegacyTick](buf, LegacyTickSize)
}

// OrderQueuesOf reinterprets buf as a slice of order queue snapshots.
func OrderQueuesOf(buf []byte) []OrderQueue {
	return overlay[OrderQueue](buf, OrderQueueSize)
}

// OrderDetailsOf reinterprets buf as a slice of order detail events.
func OrderDetailsOf(buf []byte) []OrderDetail {
	return overlay[OrderDetail](buf, OrderDetailSize)
}

// TransactionsOf reinterprets buf as a slice of transactions.
func TransactionsOf(buf []byte) []Transaction {
	return overlay[Transaction](buf, TransactionSize)
}

// BytesOfBars reinterprets a bar slice as its raw bytes.
func BytesOfBars(bars []Bar) []byte {
	return raw(bars, BarSize)
}

// BytesOfTicks reinterprets a tick slice as its raw bytes.
func BytesOfTicks(ticks []Tick) []byte {
	return raw(ticks, TickSize)
}

// BytesOfLegacyBars reinterprets a legacy bar slice as its raw bytes.
func BytesOfLegacyBars(bars []LegacyBar) []byte {
	return raw(bars, LegacyBarSize)
}

// BytesOfLegacyTicks reinterprets a legacy tick slice as its raw bytes.
func BytesOfLegacyTicks(ticks []LegacyTick) []byte {
	return raw(ticks, LegacyTickSize)
}

// BytesOfOrderQueues reinterprets an order queue slice as its raw bytes.
func BytesOfOrderQueues(queues []OrderQueue) []byte {
	return raw(queues, OrderQueueSize)
}

// BytesOfOrderDetails reinterprets an order detail slice as its raw bytes.
func BytesOfOrderDetails(details []OrderDetail) []byte {
	return raw(details, OrderDetailSize)
}

// BytesOfTransactions reinterprets a transaction slice as its raw bytes.
func BytesOfTransactions(trans []Transaction) []byte {
	return raw(trans, TransactionSize)
}

func overlay[T any](buf []byte, size int) []T {
	n := len(buf) / size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

func raw[T any](recs []T, size int) []byte {
	if len(recs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&recs[0])), len(recs)*size)
}
