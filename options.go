package bimap

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cbehopkins/bimap/treap"
)

type config struct {
	source   treap.Source
	logger   logrus.FieldLogger
	capacity int
}

// Option configures a Bimap at construction.
type Option func(*config)

// WithSeed makes node priorities, and so the tree shapes, reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.source = treap.NewRandSource(seed)
	}
}

// WithPrioritySource draws node priorities from src. The bimap owns src
// afterwards. Clone gives the copy its own source only when src has a
// Clone() treap.Source method; otherwise the original and the copy share src
// and must not be used from different goroutines.
func WithPrioritySource(src treap.Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithLogger sets the logger used for structural events such as the
// displacement of a pair by AtLeftOrDefault.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCapacity reserves room for n pairs up front.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func newConfig(opts []Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.source == nil {
		c.source = treap.NewEntropySource()
	}
	if c.logger == nil {
		c.logger = discardLogger
	}
	return c
}
