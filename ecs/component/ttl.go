package component

// TTL destroys the entity once Remaining seconds have passed.
type TTL struct {
	Remaining float64
}

var TTLComponent = NewComponent[TTL]()
