// Package paint decides which nodes of a vehicle asset take the paint color.
//
// A Rule is evaluated against node names only, so the same rule gives the same
// answer for a node regardless of which graph or instance it came from.
package paint

import (
	"fmt"
	"sort"
	"strings"
)

// Rule reports whether a node with the given name is paintable.
type Rule interface {
	Paintable(name string) bool
	String() string
}

// Allowlist marks exactly the listed node names as paintable.
type Allowlist struct {
	names map[string]struct{}
}

func NewAllowlist(names ...string) Allowlist {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return Allowlist{names: set}
}

func (a Allowlist) Paintable(name string) bool {
	_, ok := a.names[name]
	return ok
}

// Names returns the allowlisted names in sorted order.
func (a Allowlist) Names() []string {
	out := make([]string, 0, len(a.names))
	for n := range a.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (a Allowlist) String() string {
	return fmt.Sprintf("allowlist%v", a.Names())
}

// Substring marks a node paintable when its name contains Needle and none
// of the Exclusions. Exclusions win over the needle.
type Substring struct {
	Needle     string
	Exclusions []string
}

func NewSubstring(needle string, exclusions ...string) Substring {
	return Substring{Needle: needle, Exclusions: append([]string(nil), exclusions...)}
}

func (s Substring) Paintable(name string) bool {
	if !strings.Contains(name, s.Needle) {
		return false
	}
	for _, ex := range s.Exclusions {
		if strings.Contains(name, ex) {
			return false
		}
	}
	return true
}

func (s Substring) String() string {
	if len(s.Exclusions) == 0 {
		return fmt.Sprintf("substring(%q)", s.Needle)
	}
	return fmt.Sprintf("substring(%q, not %q)", s.Needle, s.Exclusions)
}

// IsPaintable evaluates rule for name. A nil rule paints nothing.
func IsPaintable(rule Rule, name string) bool {
	if rule == nil {
		return false
	}
	return rule.Paintable(name)
}

// Partition splits names into paintable and non-paintable, keeping input order.
func Partition(rule Rule, names []string) (paintable, rest []string) {
	for _, n := range names {
		if IsPaintable(rule, n) {
			paintable = append(paintable, n)
		} else {
			rest = append(rest, n)
		}
	}
	return paintable, rest
}
