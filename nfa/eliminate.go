package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// predJob is one (from, to, predicate) edge snapshotted at the start of a
// RemovePredicates round, so the round processes a consistent view even
// as new states (and possibly new predicates on them) are appended while
// the round runs.
type predJob struct {
	from, to StateID
	pred     predicate.Predicate
}

// triggerTable tracks, for states already registered as "initial after a
// preceding character in some range", which ranges trigger them - needed
// so that a later predicate elimination round can narrow an existing
// initial-after-char trigger by intersecting it with a new predicate's
// look-behind class.
type triggerTable map[StateID]charset.CharSet

// RemovePredicates eliminates every predicate-guarded transition,
// replacing each with a fresh state whose in/out edges are the
// look-behind/look-ahead-filtered intersections of the predicate's
// predecessor and successor closures, iterating to a fixed point. It also
// promotes predicates reachable from the initial states into the
// InitAtStart and InitAfterChar initial-state classes.
func (n *NFA) RemovePredicates(limits Limits) error {
	triggers := make(triggerTable)

	for {
		jobs := n.snapshotPredicateJobs()
		if len(jobs) == 0 {
			break
		}
		for _, job := range jobs {
			n.removePredicateEdge(job.from, job.to)
			rg := newReverseGraph(n)

			inStates := rg.epsClosure(charset.NewStateSet(job.from))
			outStates := n.EpsClosure(charset.NewStateSet(job.to))

			inTrans := filterIncoming(rg.transitionsInto(inStates), job.pred)
			outTrans := filterOutgoing(n.forwardTransitionsOf(outStates), job.pred)

			if err := limits.check(len(n.states) + 1); err != nil {
				return err
			}
			nID := n.AddState(job.pred.FilterAccept(n.Accept(outStates)))

			for _, e := range inTrans {
				n.AddTransition(e.From, nID, e.Range)
			}
			for _, e := range outTrans {
				n.AddTransition(nID, e.To, e.Range)
			}

			for _, qe := range rg.predicatesInto(inStates) {
				if merged, ok := job.pred.Intersect(qe.Pred); ok {
					n.AddPredicate(qe.From, nID, merged)
				}
			}
			for _, qe := range n.forwardPredicatesOf(outStates) {
				if merged, ok := job.pred.Intersect(qe.Pred); ok {
					n.AddPredicate(nID, qe.To, merged)
				}
			}

			n.promoteInitial(nID, inStates, job.pred, triggers)
		}
	}

	n.rebuildInitAfterChar(triggers)
	return nil
}

func (n *NFA) snapshotPredicateJobs() []predJob {
	var jobs []predJob
	for from := range n.states {
		for _, pe := range n.states[from].Predicates {
			jobs = append(jobs, predJob{from: StateID(from), to: pe.To, pred: pe.Pred})
		}
	}
	return jobs
}

// removePredicateEdge deletes the first predicate edge from -> to from
// the forward graph.
func (n *NFA) removePredicateEdge(from, to StateID) {
	edges := n.states[from].Predicates
	for i, e := range edges {
		if e.To == to {
			n.states[from].Predicates = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}

func (n *NFA) forwardTransitionsOf(set charset.StateSet) []ConsumingEdge {
	var out []ConsumingEdge
	for _, s := range set {
		out = append(out, n.states[s].Consuming...)
	}
	return out
}

func (n *NFA) forwardPredicatesOf(set charset.StateSet) []PredicateEdge {
	var out []PredicateEdge
	for _, s := range set {
		out = append(out, n.states[s].Predicates...)
	}
	return out
}

func filterIncoming(edges []revConsuming, p predicate.Predicate) []revConsuming {
	allowed := p.BehindCharSet()
	var out []revConsuming
	for _, e := range edges {
		for _, piece := range charset.NewCharSet(e.Range).Intersect(allowed) {
			out = append(out, revConsuming{Range: piece, From: e.From})
		}
	}
	return out
}

func filterOutgoing(edges []ConsumingEdge, p predicate.Predicate) []ConsumingEdge {
	allowed := p.AheadCharSet()
	var out []ConsumingEdge
	for _, e := range edges {
		for _, piece := range charset.NewCharSet(e.Range).Intersect(allowed) {
			out = append(out, ConsumingEdge{Range: piece, To: e.To})
		}
	}
	return out
}

// promoteInitial implements the boundary/initial handling paragraph of
// predicate elimination: a freshly created state becomes reachable as an
// initial state in its own right when the predicate it replaces guarded
// entry from somewhere already initial.
func (n *NFA) promoteInitial(nID StateID, inStates charset.StateSet, p predicate.Predicate, triggers triggerTable) {
	// Unconditionally initial states are initial at the start of input too;
	// the at-start seed replaces the unconditional one, so it carries them.
	startInitial := setsIntersect(inStates, n.init) || setsIntersect(inStates, n.initAtStart)
	if p.BehindAllowsNone() && startInitial {
		n.initAtStart = n.initAtStart.Union(n.init)
		n.initAtStart = insertSorted(n.initAtStart, nID)
	}

	var priorTrigger charset.CharSet
	unconditional := false
	for _, s := range inStates {
		if n.init.Contains(s) {
			unconditional = true
		}
		if cs, ok := triggers[s]; ok {
			priorTrigger = priorTrigger.Union(cs)
		}
	}
	if unconditional {
		priorTrigger = charset.Full()
	}
	if priorTrigger.IsEmpty() {
		return
	}
	final := priorTrigger.Intersect(p.BehindCharSet())
	if final.IsEmpty() {
		return
	}
	triggers[nID] = final
}

func setsIntersect(a, b charset.StateSet) bool {
	for _, s := range a {
		if b.Contains(s) {
			return true
		}
	}
	return false
}

// rebuildInitAfterChar builds the final InitAfterChar map by grouping
// every recorded (state, trigger-range) pair into disjoint elementary
// intervals via CharMultiMap.Group, unioning the state sets that land in
// the same interval.
func (n *NFA) rebuildInitAfterChar(triggers triggerTable) {
	mm := charset.NewCharMultiMap[StateID]()
	for s, cs := range triggers {
		for _, r := range cs {
			mm.Insert(r, s)
		}
	}
	groups := mm.Group(func(a, b StateID) bool { return a == b })
	out := charset.NewCharMap[charset.StateSet]()
	for _, g := range groups {
		out.Insert(g.Range, charset.NewStateSet(g.Values...))
	}
	n.initAfterChar = out
}
