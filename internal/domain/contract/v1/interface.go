// Package v1 defines the commodity/contract metadata collaborator consumed
// by the storage engine.
package v1

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// Category classifies an instrument.
type Category int32

const (
	// CategoryFuture is a futures contract.
	CategoryFuture Category = iota
	// CategoryStock is an equity.
	CategoryStock
	// CategoryOption is an option contract.
	CategoryOption
)

// Info carries the metadata the storage engine needs about one commodity.
type Info struct {
	Category Category
	// VolScale is the contract multiplier used when turning volume into
	// notional value.
	VolScale uint32
	// Rolling reports whether continuous codes exist for this commodity.
	Rolling bool
}

// Service looks up commodity metadata.
type Service interface {
	// Info returns the metadata for an exchange-qualified product. The
	// second return value is false when the product is unknown.
	Info(exchg string, product string) (Info, bool)
}
