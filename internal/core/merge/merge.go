// Package merge turns a computed diff plus per-group decisions into a
// final reconciled document.
package merge

import (
	"strings"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
)

// Group is a maximal run of consecutive diff entries sharing one kind.
// Groups cover exactly the entries whose kind is not unchanged; an
// unchanged entry always closes the open group. Groups are the atomic
// unit of merge decision-making.
type Group struct {
	ID      int
	Kind    diff.Kind
	Members []int // indices into the diff entry slice, in order
}

// Decision is one merge choice for a group. The valid vocabulary
// depends on the group kind:
//
//	added:    keep, discard
//	removed:  restore, accept
//	modified: original, modified, both
//
// For removed groups "original" and "both" behave like restore; for
// added groups "original" behaves like discard and "modified" like
// keep. The aliases are kind-conditional and deliberately preserved.
type Decision string

const (
	DecisionKeep     Decision = "keep"
	DecisionDiscard  Decision = "discard"
	DecisionRestore  Decision = "restore"
	DecisionAccept   Decision = "accept"
	DecisionOriginal Decision = "original"
	DecisionModified Decision = "modified"
	DecisionBoth     Decision = "both"
)

// Decisions maps group IDs to the decision taken for that group. A
// missing entry means the group's default applies.
type Decisions map[int]Decision

// Toggle applies a decision to a group. Selecting the decision already
// in effect clears it, reverting the group to its default.
func (d Decisions) Toggle(groupID int, decision Decision) {
	if d[groupID] == decision {
		delete(d, groupID)
		return
	}
	d[groupID] = decision
}

// GroupEntries partitions the diff-relevant entries into maximal
// same-kind runs. Group IDs are ordinal and only valid for the entry
// slice they were computed from; recomputing a diff replaces the
// groups wholesale.
func GroupEntries(entries []diff.Entry) []Group {
	var groups []Group
	var open *Group

	for i, e := range entries {
		if e.Kind == diff.KindUnchanged {
			open = nil
			continue
		}
		if open == nil || open.Kind != e.Kind {
			groups = append(groups, Group{ID: len(groups), Kind: e.Kind})
			open = &groups[len(groups)-1]
		}
		open.Members = append(open.Members, i)
	}

	return groups
}

// Reconcile reduces a diff and its decisions into the final document
// lines. It is a pure function: per entry kind the decision (or its
// default) picks which side's content survives.
func Reconcile(entries []diff.Entry, groups []Group, decisions Decisions) []string {
	decisionFor := make(map[int]Decision, len(entries))
	for _, g := range groups {
		d, ok := decisions[g.ID]
		if !ok {
			continue
		}
		for _, idx := range g.Members {
			decisionFor[idx] = d
		}
	}

	var out []string
	for i, e := range entries {
		d, hasDecision := decisionFor[i]
		switch e.Kind {
		case diff.KindUnchanged:
			out = append(out, e.Left)

		case diff.KindRemoved:
			// Default is to accept the removal.
			if hasDecision && (d == DecisionRestore || d == DecisionOriginal || d == DecisionBoth) {
				out = append(out, e.Left)
			}

		case diff.KindAdded:
			// Default is to keep the addition.
			if hasDecision && (d == DecisionDiscard || d == DecisionOriginal) {
				continue
			}
			out = append(out, e.Right)

		case diff.KindModified:
			switch {
			case hasDecision && d == DecisionOriginal:
				out = append(out, e.Left)
			case hasDecision && d == DecisionBoth:
				out = append(out, e.Left, e.Right)
			default:
				out = append(out, e.Right)
			}
		}
	}

	return out
}

// Output reconciles a diff and joins the result into one document.
func Output(entries []diff.Entry, groups []Group, decisions Decisions) string {
	return strings.Join(Reconcile(entries, groups, decisions), "\n")
}

// ValidDecisions returns the decision vocabulary for a group kind,
// aliases excluded, in toggle order for interactive use.
func ValidDecisions(kind diff.Kind) []Decision {
	switch kind {
	case diff.KindAdded:
		return []Decision{DecisionKeep, DecisionDiscard}
	case diff.KindRemoved:
		return []Decision{DecisionRestore, DecisionAccept}
	case diff.KindModified:
		return []Decision{DecisionOriginal, DecisionModified, DecisionBoth}
	default:
		return nil
	}
}
