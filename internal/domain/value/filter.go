package value

// All is the selector sentinel meaning "no restriction".
const All = "all"

// Filter narrows the deal set before any aggregation.
type Filter struct {
	Broker string
	Year   string
}

func (f Filter) ByBroker() bool {
	return f.Broker != "" && f.Broker != All
}

func (f Filter) ByYear() bool {
	return f.Year != "" && f.Year != All
}
