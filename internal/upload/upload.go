// Package upload defines the hand-off boundary between the staging manager
// and the upload collaborator. Network transport is out of scope here; the
// shipped implementation places a flushed batch into the local library
// directory.
package upload

import (
	"context"
	"fmt"
)

// Item is one staged image handed to the collaborator. Index is the position
// in the staged order; exactly the item at index 0 carries Primary.
type Item struct {
	Name     string
	Data     []byte
	MIMEType string
	Index    int
	Primary  bool
}

// Result reports the outcome for one item of a batch.
type Result struct {
	Index int
	Err   error
}

// Failed returns the subset of results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Uploader consumes an ordered batch and reports per-item outcomes. The
// returned slice has one entry per input item. A non-nil error means the
// batch could not be attempted at all.
type Uploader interface {
	Upload(ctx context.Context, items []Item) ([]Result, error)
}

// BatchError summarizes a partially failed batch.
type BatchError struct {
	Failed int
	Total  int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("upload batch: %d of %d items failed", e.Failed, e.Total)
}
