package checker

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SentinelConn is the sentinel-side surface the checks consume. The
// production implementation lives in the sentinel package; tests provide
// fakes.
type SentinelConn interface {
	// Master returns the flat state of one monitored master.
	Master(ctx context.Context, name string) (map[string]string, error)

	// Slaves and Sentinels return multi-record replies: one flat token
	// sequence per slave or peer sentinel of the named master.
	Slaves(ctx context.Context, name string) ([]interface{}, error)
	Sentinels(ctx context.Context, name string) ([]interface{}, error)

	// MasterAddr resolves the address the sentinel currently advertises for
	// a monitored master.
	MasterAddr(ctx context.Context, name string) (host string, port string, err error)

	// Info returns the INFO fields of the sentinel itself.
	Info(ctx context.Context) (map[string]string, error)

	// InstanceInfo connects directly to a data instance and returns its
	// INFO fields.
	InstanceInfo(ctx context.Context, host, port string) (map[string]string, error)
}

type CheckerOptions struct {
	Logger *zap.Logger
	Conn   SentinelConn
}

// Checker evaluates the health of a sentinel deployment over one established
// connection. A Checker serves a single check invocation; it keeps no state
// between calls.
type Checker struct {
	logger *zap.Logger
	conn   SentinelConn
}

func NewChecker(opts *CheckerOptions) (*Checker, error) {
	if opts.Conn == nil {
		return nil, errors.New("a sentinel connection is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Checker{
		logger: logger,
		conn:   opts.Conn,
	}, nil
}
