package quant

import (
	"container/heap"
	"fmt"
)

// Converter resolves a Conversion between any two same-dimension
// UnitTerms, preferring a registered direct or prefix-derived route and
// falling back to a best-first search over the known conversion graph
// when no direct route exists (spec §4.8/§4.9).
type Converter struct {
	Registry *ConversionRegistry
	Units    *UnitCatalog
	Prefixes *PrefixCatalog
}

// NewConverter builds a Converter over the given registry and catalogs.
func NewConverter(registry *ConversionRegistry, units *UnitCatalog, prefixes *PrefixCatalog) *Converter {
	return &Converter{Registry: registry, Units: units, Prefixes: prefixes}
}

// DefaultConverter is the process-wide Converter over the default
// registry and catalogs.
var DefaultConverter = NewConverter(DefaultConversionRegistry(), DefaultUnitCatalog(), DefaultPrefixCatalog())

// Convert resolves the Conversion from src to dest. It tries, in order:
// identity (same unit, same prefix, same exponent), a direct registry
// hit, a prefix-only rescale of the same unit, a registry hit between the
// unprefixed units, and finally a best-first graph search over the
// dimension's known exponent-1,
// unprefixed conversions, raised to the shared exponent and reprefixed
// at the end. Every route discovered by search is cached back into the
// registry.
func (cv *Converter) Convert(src, dest UnitTerm) (Conversion, error) {
	if src.Dimension() != dest.Dimension() {
		return Conversion{}, fmt.Errorf("convert %s -> %s: dimension mismatch (%s vs %s): %w",
			src.Format(true), dest.Format(true), src.Dimension(), dest.Dimension(), ErrDimensionMismatch)
	}
	if src.Exponent != dest.Exponent {
		return Conversion{}, fmt.Errorf("convert %s -> %s: exponent mismatch (%d vs %d): %w",
			src.Format(true), dest.Format(true), src.Exponent, dest.Exponent, ErrNotSupported)
	}

	if src.Unit.Name == dest.Unit.Name && src.Prefix == dest.Prefix {
		return Identity(src), nil
	}

	if c, ok := cv.Registry.get(src, dest); ok {
		return c, nil
	}

	baseSrc := src.RemoveExponent().RemovePrefix()
	baseDest := dest.RemoveExponent().RemovePrefix()

	var base Conversion
	var err error
	if baseSrc.Unit.Name == baseDest.Unit.Name {
		base = Identity(baseSrc)
	} else if c, ok := cv.Registry.get(baseSrc, baseDest); ok {
		base = c
	} else {
		base, err = cv.search(baseSrc, baseDest)
		if err != nil {
			return Conversion{}, err
		}
	}

	withExponent := base
	if src.Exponent != 1 {
		withExponent, err = base.ApplyExponent(src.Exponent)
		if err != nil {
			return Conversion{}, err
		}
	}
	final, err := withExponent.AlterPrefixes(src.Prefix, dest.Prefix)
	if err != nil {
		return Conversion{}, err
	}
	if err := cv.Registry.add(final); err != nil {
		return Conversion{}, err
	}
	return final, nil
}

// search performs a best-first (Dijkstra) search over the conversion
// graph restricted to baseSrc's dimension: nodes are unit names, edges
// are the dimension's registered exponent-1, unprefixed conversions
// (traversable in both directions via Invert). The path accumulating
// the least cumulative absolute error wins; ties break on the
// lexicographically smaller node name for determinism.
func (cv *Converter) search(baseSrc, baseDest UnitTerm) (Conversion, error) {
	edges := cv.edgesFor(baseSrc.Dimension())

	best := map[string]Conversion{baseSrc.Unit.Name: Identity(baseSrc)}
	pq := &routeQueue{{node: baseSrc.Unit.Name, conv: best[baseSrc.Unit.Name]}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(routeItem)
		if item.node != baseDest.Unit.Name {
			if existing, ok := best[item.node]; ok && existing.Factor.AbsoluteError < item.conv.Factor.AbsoluteError {
				continue // a cheaper route to this node was already settled
			}
		}
		if item.node == baseDest.Unit.Name {
			return item.conv, nil
		}
		for _, edge := range edges[item.node] {
			next, err := item.conv.Seq(edge)
			if err != nil {
				continue
			}
			nodeName := next.Dest.Unit.Name
			if existing, ok := best[nodeName]; ok && existing.Factor.AbsoluteError <= next.Factor.AbsoluteError {
				continue
			}
			best[nodeName] = next
			heap.Push(pq, routeItem{node: nodeName, conv: next})
		}
	}
	return Conversion{}, fmt.Errorf("no conversion path from %s to %s: %w",
		baseSrc.Unit.Name, baseDest.Unit.Name, ErrNoConversionPath)
}

// edgesFor indexes every registered exponent-1, unprefixed conversion of
// dim by its source unit name, adding each edge's Invert under the
// destination unit name too so the search can traverse in either
// direction.
func (cv *Converter) edgesFor(dim string) map[string][]Conversion {
	out := make(map[string][]Conversion)
	for _, c := range cv.Registry.getByDimension(dim) {
		if c.Src.Exponent != 1 || c.Dest.Exponent != 1 {
			continue
		}
		if c.Src.Prefix != nil || c.Dest.Prefix != nil {
			continue
		}
		out[c.Src.Unit.Name] = append(out[c.Src.Unit.Name], c)
		if inv, err := c.Invert(); err == nil {
			out[inv.Src.Unit.Name] = append(out[inv.Src.Unit.Name], inv)
		}
	}
	return out
}

// routeItem is one best-first search frontier entry: the cumulative
// Conversion from the search origin to node.
type routeItem struct {
	node string
	conv Conversion
}

// routeQueue is a container/heap priority queue ordered by cumulative
// absolute error, tie-broken by node name.
type routeQueue []routeItem

func (q routeQueue) Len() int { return len(q) }
func (q routeQueue) Less(i, j int) bool {
	ei, ej := q[i].conv.Factor.AbsoluteError, q[j].conv.Factor.AbsoluteError
	if ei != ej {
		return ei < ej
	}
	return q[i].node < q[j].node
}
func (q routeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *routeQueue) Push(x any)   { *q = append(*q, x.(routeItem)) }
func (q *routeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
