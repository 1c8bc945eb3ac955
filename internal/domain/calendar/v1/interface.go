// Package v1 defines the trading calendar collaborator consumed by the
// storage engine. Session and holiday knowledge lives outside this module.
package v1

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// Service resolves logical trading dates. Trading dates differ from calendar
// dates around night sessions: a tick stamped 21:05 on Friday belongs to the
// next Monday's trading date.
type Service interface {
	// TradingDateFor returns the trading date (yyyymmdd) owning the given
	// action date (yyyymmdd) and action time (hhmm) for a commodity.
	TradingDateFor(commodity string, actionDate uint32, actionTime uint32) uint32

	// CurrentTradingDate returns the trading date currently in progress for
	// a commodity.
	CurrentTradingDate(commodity string) uint32
}
