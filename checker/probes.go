package checker

import (
	"context"

	"go.uber.org/zap"
)

// CheckMaster verifies that the master the sentinel advertises under the
// given name is reachable and actually reports the master role.
func (c *Checker) CheckMaster(ctx context.Context, masterName string) Result {
	host, port, err := c.conn.MasterAddr(ctx, masterName)
	if err != nil {
		return Criticalf("could not resolve master %s: %s", masterName, err)
	}
	if host == "" {
		return Criticalf("sentinel returned no address for master %s", masterName)
	}

	c.logger.Debug("resolved master address",
		zap.String("master", masterName),
		zap.String("host", host),
		zap.String("port", port))

	info, err := c.conn.InstanceInfo(ctx, host, port)
	if err != nil {
		return Criticalf("could not connect to master %s at %s:%s: %s", masterName, host, port, err)
	}

	status := NewStatus()
	if role := info["role"]; role != "master" {
		status.Record(SeverityCritical, "%s:%s reports role %q, expected master", host, port, role)
	} else {
		status.Record(SeverityOK, "master %s is reachable at %s:%s", masterName, host, port)
	}

	return status.Result()
}

// CheckSentinel verifies that the answering instance is a live, sane
// sentinel: it must be running in sentinel mode, must not be in TILT mode
// and must be monitoring at least one master.
func (c *Checker) CheckSentinel(ctx context.Context) Result {
	info, err := c.conn.Info(ctx)
	if err != nil {
		return Criticalf("could not fetch sentinel info: %s", err)
	}

	if _, ok := info["sentinel_masters"]; !ok {
		return Criticalf("instance is not running in sentinel mode")
	}

	status := NewStatus()

	// TILT is the self-protection mode entered after a large clock jump;
	// the sentinel's judgments are unreliable until it clears. Any non-zero
	// value counts, regardless of magnitude.
	if tilt, ok := info["sentinel_tilt"]; ok && tilt != "0" {
		status.Record(SeverityCritical, "sentinel has entered TILT mode")
	}

	if numMasters := fieldInt(info, "sentinel_masters"); numMasters == 0 {
		status.Record(SeverityCritical, "sentinel is not monitoring any masters")
	} else {
		status.Record(SeverityOK, "sentinel is monitoring %d masters", numMasters)
	}

	return status.Result()
}
