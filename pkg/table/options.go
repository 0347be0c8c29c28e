package table

import (
	"fmt"

	"github.com/ostafen/growtable/pkg/mem"
)

const (
	// DefaultBucketCapacity is the number of elements a bucket holds when
	// Options.BucketCapacity is zero.
	DefaultBucketCapacity = 2

	// MinCapacity is the smallest initial capacity accepted by New.
	MinCapacity = 1
)

// Observer is notified of the outcome of table operations.
type Observer interface {
	Inserted(updated bool)
	Searched(found bool)
	Removed(found bool)
	Resized(capacity int)
	// Destroyed is called once, when the table releases its entries.
	Destroyed()
}

type nopObserver struct{}

func (nopObserver) Inserted(bool) {}
func (nopObserver) Searched(bool) {}
func (nopObserver) Removed(bool)  {}
func (nopObserver) Resized(int)   {}
func (nopObserver) Destroyed()    {}

// Options tunes a table created by New. The zero value is valid.
type Options struct {
	// BucketCapacity is the fixed number of elements of every bucket.
	// Zero selects DefaultBucketCapacity.
	BucketCapacity int
	// MaxCapacity caps the number of slots the table may grow to.
	// Zero leaves growth unbounded.
	MaxCapacity int
	// Allocator is charged for every node the table creates.
	// Defaults to mem.Unlimited.
	Allocator mem.Allocator
	// Reporter receives every error returned by the table.
	Reporter Reporter
	// Observer receives operation outcomes.
	Observer Observer
}

func (o Options) withDefaults() Options {
	if o.BucketCapacity == 0 {
		o.BucketCapacity = DefaultBucketCapacity
	}
	if o.Allocator == nil {
		o.Allocator = mem.Unlimited
	}
	if o.Reporter == nil {
		o.Reporter = nopReporter{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	return o
}

func (o Options) validate(capacity int) error {
	if o.BucketCapacity < 1 {
		return fmt.Errorf("%w: bucket capacity %d", ErrInvalidArgument, o.BucketCapacity)
	}
	if o.MaxCapacity < 0 {
		return fmt.Errorf("%w: max capacity %d", ErrInvalidArgument, o.MaxCapacity)
	}
	if o.MaxCapacity > 0 && o.MaxCapacity < capacity {
		return fmt.Errorf("%w: max capacity %d below initial capacity %d", ErrInvalidArgument, o.MaxCapacity, capacity)
	}
	return nil
}
