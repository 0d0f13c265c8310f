package blobstore

import (
	"context"

	"github.com/hupe1980/kmeans/resource"
)

// Throttled limits the bytes moved through a Store using the IO budget of a
// resource.Controller. Writes wait before they start; reads are charged after
// the payload size is known.
type Throttled struct {
	inner Store
	rc    *resource.Controller
}

// NewThrottled wraps inner. A nil controller disables throttling.
func NewThrottled(inner Store, rc *resource.Controller) *Throttled {
	return &Throttled{inner: inner, rc: rc}
}

// Put waits for len(data) bytes of IO budget, then writes.
func (t *Throttled) Put(ctx context.Context, name string, data []byte) error {
	if err := t.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return t.inner.Put(ctx, name, data)
}

// Get reads the blob and then waits for its size in IO budget.
func (t *Throttled) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := t.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := t.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete passes through.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	return t.inner.Delete(ctx, name)
}

// List passes through.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	return t.inner.List(ctx, prefix)
}
