// Package resource bounds shared resources across clustering jobs.
//
// A Controller limits two things:
//
//   - Workers: how many clustering runs may execute at once across every
//     sweep sharing the controller (weighted semaphore).
//   - IO: bytes per second written to blob stores by snapshot uploads
//     (token bucket).
//
// A nil *Controller imposes no limits, so callers can pass it through
// unconditionally:
//
//	rc := resource.NewController(resource.Config{MaxWorkers: 4})
//	res, err := kmeans.Sweep(ctx, data, ks, 42,
//	    kmeans.WithConcurrency(8),
//	    kmeans.WithResourceController(rc))
package resource
