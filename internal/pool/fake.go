package pool

import "context"

// Fake is an in-memory Querier for tests. Each field stands in for one
// zpool invocation; a pool name absent from the maps behaves like an
// unknown pool.
type Fake struct {
	// StatusText maps pool name to a canned status report.
	StatusText map[string]string

	// Capacities maps pool name to total capacity in bytes.
	Capacities map[string]int64

	// Err, when set, is returned by every method.
	Err error
}

func (f *Fake) Status(_ context.Context, pool string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.StatusText[pool], nil
}

func (f *Fake) Capacity(_ context.Context, pool string) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Capacities[pool], nil
}

func (f *Fake) Pools(_ context.Context) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	names := make([]string, 0, len(f.StatusText))
	for name := range f.StatusText {
		names = append(names, name)
	}
	return names, nil
}
