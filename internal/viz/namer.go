package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/trace3d/internal/geom"
)

// Namer assigns stable display names to traces. Each object gets a name
// like "Ray 0", "Ray 1" counted per type, and every trace produced from
// the same object shares a legend group so they toggle together.
type Namer struct {
	counts map[string]int
}

func NewNamer() *Namer {
	return &Namer{counts: make(map[string]int)}
}

// Assign names the traces produced from obj. Only the first unnamed trace
// gets the visible name; all of them get the legend group.
func (n *Namer) Assign(traces []Trace, obj any) {
	if len(traces) == 0 {
		return
	}
	base := displayName(obj)
	id := n.counts[base]
	n.counts[base]++
	label := fmt.Sprintf("%s %d", base, id)

	named := false
	for i := range traces {
		if !named && traces[i].Name == "" {
			traces[i].Name = label
			named = true
		}
		traces[i].LegendGroup = label
	}
}

func displayName(obj any) string {
	switch obj.(type) {
	case geom.Vec3, []geom.Vec3:
		return "points"
	}
	name := fmt.Sprintf("%T", obj)
	name = strings.TrimPrefix(name, "*")
	name = strings.TrimPrefix(name, "[]")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
