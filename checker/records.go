package checker

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Status flag tokens reported by sentinels. s_down is one sentinel's own
// opinion that an instance is down; o_down means enough sentinels agree to
// reach quorum.
const (
	flagObjectivelyDown  = "o_down"
	flagSubjectivelyDown = "s_down"
	flagDisconnected     = "disconnected"
)

// maxPingReplyAge is how stale a slave's last successful ping reply may be,
// in milliseconds, before the slave stops counting as healthy. It mirrors
// the bound sentinels apply when selecting promotion candidates.
const maxPingReplyAge = 5000

// Master is the state of a monitored master as reported by SENTINEL master.
type Master struct {
	Name              string
	Flags             []string
	NumSlaves         int
	NumOtherSentinels int
	Quorum            int
}

func (m Master) HasFlag(flag string) bool {
	return slices.Contains(m.Flags, flag)
}

// Slave is the state of one replica of a monitored master.
type Slave struct {
	Addr            string
	Flags           []string
	Priority        int
	LastOKPingReply int
}

func (s Slave) HasFlag(flag string) bool {
	return slices.Contains(s.Flags, flag)
}

// Healthy reports whether the slave would be a viable promotion target: no
// down or disconnected flags, a non-zero priority (priority 0 marks a slave
// that must never be promoted) and a recent successful ping reply.
func (s Slave) Healthy() bool {
	return !s.HasFlag(flagObjectivelyDown) &&
		!s.HasFlag(flagSubjectivelyDown) &&
		!s.HasFlag(flagDisconnected) &&
		s.Priority > 0 &&
		s.LastOKPingReply < maxPingReplyAge
}

// Sentinel is the state of one peer sentinel watching a monitored master.
type Sentinel struct {
	Addr  string
	Flags []string
}

func (s Sentinel) HasFlag(flag string) bool {
	return slices.Contains(s.Flags, flag)
}

// Healthy reports whether the peer counts toward quorum. Peer records carry
// no priority or ping-recency fields, so flags are all there is to judge.
func (s Sentinel) Healthy() bool {
	return !s.HasFlag(flagObjectivelyDown) &&
		!s.HasFlag(flagSubjectivelyDown) &&
		!s.HasFlag(flagDisconnected)
}

func newMaster(fields map[string]string) Master {
	return Master{
		Name:              fields["name"],
		Flags:             splitFlags(fields["flags"]),
		NumSlaves:         fieldInt(fields, "num-slaves"),
		NumOtherSentinels: fieldInt(fields, "num-other-sentinels"),
		Quorum:            fieldInt(fields, "quorum"),
	}
}

func newSlave(fields map[string]string) Slave {
	return Slave{
		Addr:            fields["name"],
		Flags:           splitFlags(fields["flags"]),
		Priority:        fieldInt(fields, "slave-priority"),
		LastOKPingReply: fieldInt(fields, "last-ok-ping-reply"),
	}
}

func newSentinel(fields map[string]string) Sentinel {
	return Sentinel{
		Addr:  fields["name"],
		Flags: splitFlags(fields["flags"]),
	}
}

// replyFields converts one flat alternating key/value reply into a field
// map. Shape violations (wrong container type, odd token count, non-string
// tokens) are errors; value-level problems are left to the field readers.
func replyFields(reply interface{}) (map[string]string, error) {
	tokens, ok := reply.([]interface{})
	if !ok {
		return nil, errors.Errorf("expected a token array, got %T", reply)
	}
	if len(tokens)%2 != 0 {
		return nil, errors.Errorf("expected an even number of tokens, got %d", len(tokens))
	}

	fields := make(map[string]string, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		key, keyOK := tokens[i].(string)
		value, valueOK := tokens[i+1].(string)
		if !keyOK || !valueOK {
			return nil, errors.Errorf("expected string tokens at positions %d and %d", i, i+1)
		}
		fields[key] = value
	}

	return fields, nil
}

// replyRecords converts a multi-record reply, a sequence of flat token
// sequences, into one field map per record.
func replyRecords(reply []interface{}) ([]map[string]string, error) {
	records := make([]map[string]string, 0, len(reply))
	for i, item := range reply {
		fields, err := replyFields(item)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		records = append(records, fields)
	}

	return records, nil
}

func slavesFromReply(reply []interface{}) ([]Slave, error) {
	records, err := replyRecords(reply)
	if err != nil {
		return nil, err
	}

	slaves := make([]Slave, 0, len(records))
	for _, fields := range records {
		slaves = append(slaves, newSlave(fields))
	}

	return slaves, nil
}

func sentinelsFromReply(reply []interface{}) ([]Sentinel, error) {
	records, err := replyRecords(reply)
	if err != nil {
		return nil, err
	}

	sentinels := make([]Sentinel, 0, len(records))
	for _, fields := range records {
		sentinels = append(sentinels, newSentinel(fields))
	}

	return sentinels, nil
}

// fieldInt reads an integer field, treating a missing or malformed value as
// zero. A field that fails to parse must never abort a running check.
func fieldInt(fields map[string]string, key string) int {
	n, err := strconv.Atoi(fields[key])
	if err != nil {
		return 0
	}

	return n
}

func splitFlags(raw string) []string {
	if raw == "" {
		return nil
	}

	return strings.Split(raw, ",")
}
