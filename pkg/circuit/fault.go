package circuit

import "fmt"

// Fault is a single stuck-at fault: Polarity (0 or 1) on Stem, or on the
// branch edge from Stem to Branch when Branch is non-empty.
type Fault struct {
	Polarity int // 0 or 1
	Stem     string
	Branch   string // non-empty iff this is a branch fault
}

// NewStemFault builds a stuck-at fault located on a stem line.
func NewStemFault(polarity int, stem string) Fault {
	return Fault{Polarity: polarity, Stem: stem}
}

// NewBranchFault builds a stuck-at fault located on the branch edge
// stem->branch.
func NewBranchFault(polarity int, stem, branch string) Fault {
	return Fault{Polarity: polarity, Stem: stem, Branch: branch}
}

// IsBranch reports whether this fault sits on a branch edge rather than
// directly on the stem line.
func (f Fault) IsBranch() bool {
	return f.Branch != ""
}

// Equal is component-wise equality, per spec.
func (f Fault) Equal(other Fault) bool {
	return f.Polarity == other.Polarity && f.Stem == other.Stem && f.Branch == other.Branch
}

func (f Fault) String() string {
	if f.IsBranch() {
		return fmt.Sprintf("%s->%s/%d", f.Stem, f.Branch, f.Polarity)
	}
	return fmt.Sprintf("%s/%d", f.Stem, f.Polarity)
}

// FaultClass is one node of the equivalence/dominance forest: an ordered,
// nonempty list of equivalent faults (the first is the representative)
// and a list of dominated child classes. FaultClass nodes are allocated
// only by the collapser; the forest is immutable once built.
type FaultClass struct {
	Equivalent []Fault
	Dominated  []*FaultClass
}

// NewFaultClass creates a class whose representative (and sole member,
// initially) is rep.
func NewFaultClass(rep Fault) *FaultClass {
	return &FaultClass{Equivalent: []Fault{rep}}
}

// Representative is the fault that originally created this class.
func (fc *FaultClass) Representative() Fault {
	return fc.Equivalent[0]
}

// AddEquivalent appends f to this class's equivalent-fault list.
func (fc *FaultClass) AddEquivalent(f Fault) {
	fc.Equivalent = append(fc.Equivalent, f)
}

// AddDominated attaches child as a dominated subtree of fc.
func (fc *FaultClass) AddDominated(child *FaultClass) {
	fc.Dominated = append(fc.Dominated, child)
}

func (fc *FaultClass) String() string {
	return fmt.Sprintf("class(rep=%s, |equiv|=%d, |dominated|=%d)",
		fc.Representative(), len(fc.Equivalent), len(fc.Dominated))
}
