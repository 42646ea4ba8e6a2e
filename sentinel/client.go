package sentinel

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ClientOptions configures a point-in-time connection to a sentinel.
type ClientOptions struct {
	Logger        *zap.Logger
	Host          string
	Port          int
	Password      string
	Timeout       time.Duration
	UseTLS        bool
	TLSSkipVerify bool
}

// Client exposes the handful of sentinel queries the checks need. One Client
// holds one connection for one check invocation; there is no reconnect or
// retry behaviour anywhere below, a single failure is terminal.
type Client struct {
	logger    *zap.Logger
	rdb       *redis.SentinelClient
	addr      string
	password  string
	timeout   time.Duration
	tlsConfig *tls.Config
}

// NewClient connects to the sentinel and verifies the connection with a
// PING. The configured timeout bounds the dial and every later command.
func NewClient(ctx context.Context, opts *ClientOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))

	var tlsConfig *tls.Config
	if opts.UseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: opts.TLSSkipVerify,
		}
	}

	rdb := redis.NewSentinelClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
		PoolSize:     1,
		MaxRetries:   -1,
		TLSConfig:    tlsConfig,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "could not connect to sentinel at %s", addr)
	}

	logger.Debug("connected to sentinel", zap.String("addr", addr))

	return &Client{
		logger:    logger,
		rdb:       rdb,
		addr:      addr,
		password:  opts.Password,
		timeout:   opts.Timeout,
		tlsConfig: tlsConfig,
	}, nil
}

// Master returns the flat state of one monitored master.
func (c *Client) Master(ctx context.Context, name string) (map[string]string, error) {
	fields, err := c.rdb.Master(ctx, name).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "SENTINEL master %s", name)
	}

	c.logger.Debug("fetched master record",
		zap.String("master", name),
		zap.Int("numFields", len(fields)))

	return fields, nil
}

// Slaves returns one flat token sequence per slave of the named master.
func (c *Client) Slaves(ctx context.Context, name string) ([]interface{}, error) {
	reply, err := c.rdb.Slaves(ctx, name).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "SENTINEL slaves %s", name)
	}

	c.logger.Debug("fetched slave records",
		zap.String("master", name),
		zap.Int("numRecords", len(reply)))

	return reply, nil
}

// Sentinels returns one flat token sequence per peer sentinel of the named
// master. The answering sentinel is never part of the reply.
func (c *Client) Sentinels(ctx context.Context, name string) ([]interface{}, error) {
	reply, err := c.rdb.Sentinels(ctx, name).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "SENTINEL sentinels %s", name)
	}

	c.logger.Debug("fetched peer sentinel records",
		zap.String("master", name),
		zap.Int("numRecords", len(reply)))

	return reply, nil
}

// MasterAddr resolves the address the sentinel currently advertises for a
// monitored master. Both values are empty when no address comes back.
func (c *Client) MasterAddr(ctx context.Context, name string) (string, string, error) {
	addr, err := c.rdb.GetMasterAddrByName(ctx, name).Result()
	if err != nil {
		return "", "", errors.Wrapf(err, "SENTINEL get-master-addr-by-name %s", name)
	}
	if len(addr) != 2 {
		return "", "", nil
	}

	return addr[0], addr[1], nil
}

// Info fetches and decodes the INFO fields of the sentinel itself.
func (c *Client) Info(ctx context.Context) (map[string]string, error) {
	cmd := redis.NewStringCmd(ctx, "info")
	if err := c.rdb.Process(ctx, cmd); err != nil {
		return nil, errors.Wrapf(err, "INFO from %s", c.addr)
	}

	return parseInfo(cmd.Val()), nil
}

// InstanceInfo dials a data instance directly and returns its INFO fields.
// The connection is dedicated to this one call and reuses the client's
// timeout, credentials and TLS settings.
func (c *Client) InstanceInfo(ctx context.Context, host, port string) (map[string]string, error) {
	addr := net.JoinHostPort(host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     c.password,
		DialTimeout:  c.timeout,
		ReadTimeout:  c.timeout,
		WriteTimeout: c.timeout,
		PoolSize:     1,
		MaxRetries:   -1,
		TLSConfig:    c.tlsConfig,
	})
	defer func() {
		_ = rdb.Close()
	}()

	raw, err := rdb.Info(ctx).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "INFO from %s", addr)
	}

	c.logger.Debug("fetched instance info", zap.String("addr", addr))

	return parseInfo(raw), nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
