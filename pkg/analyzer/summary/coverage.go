package summary

import "github.com/RoaringBitmap/roaring/v2"

// Coverage records, per category, the indices of the folded reports that
// supplied it. Indices follow fold order, starting at zero.
// For every category the cardinality equals the accumulator count.
type Coverage struct {
	sets [numCategories]*roaring.Bitmap
}

func newCoverage() *Coverage {
	c := &Coverage{}
	for i := range c.sets {
		c.sets[i] = roaring.New()
	}
	return c
}

func (c *Coverage) mark(cat Category, idx uint32) {
	c.sets[cat].Add(idx)
}

// merge ors other into c with every index shifted by offset.
func (c *Coverage) merge(other *Coverage, offset uint32) {
	if other == nil {
		return
	}
	for i, set := range other.sets {
		if offset == 0 {
			c.sets[i].Or(set)
			continue
		}
		c.sets[i].Or(roaring.AddOffset(set, offset))
	}
}

// Cardinality returns how many reports supplied the category.
func (c *Coverage) Cardinality(cat Category) uint64 {
	if c == nil {
		return 0
	}
	return c.sets[cat].GetCardinality()
}

// Present returns the indices of the reports that supplied the category.
func (c *Coverage) Present(cat Category) []uint32 {
	if c == nil {
		return nil
	}
	return c.sets[cat].ToArray()
}

// Missing returns the indices below total of the reports that did not
// supply the category.
func (c *Coverage) Missing(cat Category, total int) []uint32 {
	if total <= 0 {
		return nil
	}
	if c == nil {
		missing := make([]uint32, total)
		for i := range missing {
			missing[i] = uint32(i)
		}
		return missing
	}
	return roaring.Flip(c.sets[cat], 0, uint64(total)).ToArray()
}

// Coverage returns the presence sets of the summary. It is nil when no
// folded report carried metrics.
func (s *Summary) Coverage() *Coverage {
	return s.coverage
}
