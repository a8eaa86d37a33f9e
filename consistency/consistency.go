// Package consistency is the vocabulary of "what part of an object's visual
// state is stale". General bits are shared by every visual element, family
// bits are allocated per component family with Family.
package consistency

import (
	"math/bits"
	"strconv"
	"strings"
	"sync"
)

// State is a set of dirty concerns.
type State uint64

const (
	// OnlyDispatching invalidates nothing and only forwards the signal. Used
	// by settings objects that can't be drawn.
	OnlyDispatching State = 0

	Enabled State = 1 << (iota - 1)
	Container
	Bounds
	ZIndex
	Appearance
	A11y

	All State = ^State(0)
)

// FirstFamilyBit is the first bit free for family specific states.
const FirstFamilyBit = 6

// Family returns the i-th family specific bit. Bits of different families
// may coincide: they never meet in one object's supported set.
func Family(i int) State {
	if i < 0 || FirstFamilyBit+i >= 64 {
		panic("consistency: family bit out of range")
	}
	return State(1) << (FirstFamilyBit + i)
}

// Has reports whether s contains any of the bits in o.
func (s State) Has(o State) bool {
	return s&o != 0
}

var (
	namesMu sync.RWMutex
	names   = map[State]string{
		Enabled:    "ENABLED",
		Container:  "CONTAINER",
		Bounds:     "BOUNDS",
		ZIndex:     "Z_INDEX",
		Appearance: "APPEARANCE",
		A11y:       "A11Y",
	}
	familyNames = map[string]map[State]string{}
)

// Register names a family bit for diagnostics. family scopes the name so two
// families can label the same bit differently.
func Register(family string, bit State, name string) State {
	namesMu.Lock()
	defer namesMu.Unlock()
	m, ok := familyNames[family]
	if !ok {
		m = map[State]string{}
		familyNames[family] = m
	}
	m[bit] = name
	return bit
}

func (s State) String() string {
	return s.Format("")
}

// Format renders s using the general names plus the names registered for
// family.
func (s State) Format(family string) string {
	if s == 0 {
		return "CONSISTENT"
	}
	if s == All {
		return "ALL"
	}
	namesMu.RLock()
	defer namesMu.RUnlock()
	fam := familyNames[family]

	var sb strings.Builder
	for rest := s; rest != 0; rest &= rest - 1 {
		bit := State(1) << bits.TrailingZeros64(uint64(rest))
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		if n, ok := names[bit]; ok {
			sb.WriteString(n)
		} else if n, ok := fam[bit]; ok {
			sb.WriteString(n)
		} else {
			sb.WriteString("BIT_")
			sb.WriteString(strconv.Itoa(bits.TrailingZeros64(uint64(bit))))
		}
	}
	return sb.String()
}
