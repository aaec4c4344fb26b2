// Package resilience provides concurrency limiting for gopar.
//
// Bulkhead bounds how many tasks hold a slot at once. Acquire and Release
// give explicit control. Go runs a function on its own goroutine while it
// holds a slot.
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
//	    Name:          "segments",
//	    MaxConcurrent: 8,
//	    MaxWait:       resilience.WaitForever,
//	})
//	for seg := range segments {
//	    if err := bh.Go(ctx, func() { process(seg) }); err != nil {
//	        break // ctx is done
//	    }
//	}
package resilience
