package zonesync

import "zonesync/provider"

// DesiredState is rebuilt from scratch on every run: the record name a host
// entry expands to and the address it should hold.
type DesiredState struct {
	FQDN    string
	Address string
}

type Op int

const (
	OpNone Op = iota
	OpCreate
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Decision is the single corrective action for one record. RecordID is set
// only for OpUpdate.
type Decision struct {
	Op       Op
	RecordID string
}

// matchRecords filters a zone's record list down to the address records
// carrying exactly the given name. Pure; order preserved.
func matchRecords(records []provider.Record, fqdn string) []provider.Record {
	var matched []provider.Record
	for _, r := range records {
		if r.Type == provider.TypeA && r.Name == fqdn {
			matched = append(matched, r)
		}
	}

	return matched
}

// Decide compares the desired state against the matched record set and emits
// exactly one action. Values compare by exact string equality; "01.2.3.4"
// and "1.2.3.4" are different. Two or more matches mean the provider holds
// state this tool must not resolve by guessing, so that case comes back as a
// *ConflictError instead of an action.
func Decide(desired DesiredState, matched []provider.Record) (Decision, error) {
	switch {
	case len(matched) >= 2:
		return Decision{}, &ConflictError{FQDN: desired.FQDN, Count: len(matched)}
	case len(matched) == 0:
		return Decision{Op: OpCreate}, nil
	case matched[0].Value == desired.Address:
		return Decision{Op: OpNone}, nil
	default:
		return Decision{Op: OpUpdate, RecordID: matched[0].ID}, nil
	}
}
