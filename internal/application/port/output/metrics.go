package output

type MetricsPort interface {
	ResponseSeen(shape string)
	ItemRemoved(reason string)
	ShelfRemoved(reason string)
	HelperKept()
	ItemError()
}
