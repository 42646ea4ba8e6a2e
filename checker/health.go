package checker

import (
	"context"

	"go.uber.org/zap"
)

// CheckMasterHealth runs the full health evaluation for one monitored
// master: down flags, known and healthy counts per category against the
// configured thresholds, and the quorum arithmetic. A command failure
// mid-run aborts the evaluation and yields a single CRITICAL finding with
// the underlying error; findings gathered before the failure are dropped.
func (c *Checker) CheckMasterHealth(ctx context.Context, masterName string, levels Thresholds) Result {
	status := NewStatus()

	masterFields, err := c.conn.Master(ctx, masterName)
	if err != nil {
		return Criticalf("could not get state of master %s: %s", masterName, err)
	}
	if len(masterFields) == 0 {
		return Criticalf("master %s is not known to the sentinel", masterName)
	}

	master := newMaster(masterFields)

	// The answering sentinel never lists itself, as a peer or in the
	// num-other-sentinels field, so it is added exactly once to the known
	// total here and to the healthy total below.
	numSentinels := master.NumOtherSentinels + 1

	c.logger.Debug("fetched master state",
		zap.String("master", masterName),
		zap.Strings("flags", master.Flags),
		zap.Int("numSlaves", master.NumSlaves),
		zap.Int("numOtherSentinels", master.NumOtherSentinels),
		zap.Int("quorum", master.Quorum))

	if master.HasFlag(flagObjectivelyDown) {
		status.Record(SeverityCritical, "master %s is OBJECTIVELY DOWN", masterName)
	} else if master.HasFlag(flagSubjectivelyDown) {
		status.Record(SeverityCritical, "master %s is SUBJECTIVELY DOWN", masterName)
	}

	slavesReply, err := c.conn.Slaves(ctx, masterName)
	if err != nil {
		return Criticalf("could not list slaves of master %s: %s", masterName, err)
	}
	slaves, err := slavesFromReply(slavesReply)
	if err != nil {
		return Criticalf("could not decode slave list of master %s: %s", masterName, err)
	}

	sentinelsReply, err := c.conn.Sentinels(ctx, masterName)
	if err != nil {
		return Criticalf("could not list sentinels of master %s: %s", masterName, err)
	}
	peers, err := sentinelsFromReply(sentinelsReply)
	if err != nil {
		return Criticalf("could not decode sentinel list of master %s: %s", masterName, err)
	}

	healthySlaves := 0
	for _, slave := range slaves {
		if slave.Healthy() {
			healthySlaves++
		}
	}

	healthySentinels := 1
	for _, peer := range peers {
		if peer.Healthy() {
			healthySentinels++
		}
	}

	c.logger.Debug("evaluated instance health",
		zap.Int("healthySlaves", healthySlaves),
		zap.Int("healthySentinels", healthySentinels))

	evaluateCounts(status, "slaves", master.NumSlaves, healthySlaves,
		levels.Warning.Slaves, levels.Critical.Slaves)
	evaluateCounts(status, "sentinels", numSentinels, healthySentinels,
		levels.Warning.Sentinels, levels.Critical.Sentinels)

	switch {
	case master.Quorum == 0:
		status.Record(SeverityCritical, "no quorum set for master %s", masterName)
	case numSentinels < master.Quorum:
		status.Record(SeverityCritical,
			"%d sentinels monitoring master %s, quorum of %d can never be met",
			numSentinels, masterName, master.Quorum)
	case healthySentinels < master.Quorum:
		status.Record(SeverityCritical,
			"only %d healthy sentinels monitoring master %s, quorum is %d",
			healthySentinels, masterName, master.Quorum)
	}

	return status.Result()
}

// evaluateCounts applies the two count gates of one category: the known
// count first, then the healthy count. Both compare with <=, so a bound of
// 1 demands at least 2. When neither tier trips on the known count, an
// informational healthy/known ratio is recorded instead.
func evaluateCounts(status *Status, kind string, known, healthy int, warn, crit *int) {
	if crit != nil && known <= *crit {
		status.Record(SeverityCritical, "%d known %s, expected at least %d", known, kind, *crit+1)
	} else if warn != nil && known <= *warn {
		status.Record(SeverityWarning, "%d known %s, expected at least %d", known, kind, *warn+1)
	} else {
		status.Record(SeverityOK, "%d/%d %s healthy", healthy, known, kind)
	}

	if crit != nil && healthy <= *crit {
		status.Record(SeverityCritical, "%d healthy %s, expected at least %d", healthy, kind, *crit+1)
	} else if warn != nil && healthy <= *warn {
		status.Record(SeverityWarning, "%d healthy %s, expected at least %d", healthy, kind, *warn+1)
	}
}
