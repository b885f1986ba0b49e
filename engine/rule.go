// Package engine holds the legality rule catalogue and the fixed-point
// scheduler that drives it. A rule is a stateless value with one operation:
// it observes the board and the fact store and either narrows the store or
// raises a contradiction. No rule may widen a set; the registry's ordering
// only affects convergence speed, never the final verdict.
package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// Verdict is a rule's self-report of what it did on one application. The
// scheduler does not trust it for correctness; actual progress is measured
// from the fact store's progress counter; but tests and callers that want
// to know which rule is still doing work can read it.
type Verdict uint8

const (
	Unchanged Verdict = iota
	Changed
	Illegal
)

// Rule observes (board, store) and performs one deduction step.
type Rule interface {
	Name() string
	Apply(b *board.Board, a *analysis.Analysis) Verdict
}

// Run drives rules to a fixed point over a. It stops as soon as the fact
// store turns illegal, and otherwise loops full passes until a pass makes no
// progress. Progress is the fact store's own counter, per rule 4.4: a rule
// over-reporting Unchanged cannot hide real narrowing from the scheduler.
func Run(b *board.Board, a *analysis.Analysis, rules []Rule) bool {
	for {
		before := a.Progress()
		for _, r := range rules {
			r.Apply(b, a)
			if a.IsIllegal() {
				return false
			}
		}
		if a.Progress() == before {
			return true
		}
	}
}

var colors = [2]board.Color{board.White, board.Black}

func opposite(c board.Color) board.Color {
	if c == board.White {
		return board.Black
	}
	return board.White
}

func bitOf(sq board.Square) uint64 { return uint64(1) << uint(sq) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
