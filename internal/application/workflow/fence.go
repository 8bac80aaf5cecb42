package workflow

// fence numbers the requests a workflow issues so that only the latest response is applied.
// It is not safe for concurrent use; callers hold the workflow lock.
type fence struct {
	issued uint64
}

func (f *fence) next() uint64 {
	f.issued++
	return f.issued
}

func (f *fence) isLatest(seq uint64) bool {
	return seq == f.issued
}
