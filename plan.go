package patchline

// Plan returns the ordered patches needed to bring a database at current
// forward: the maximal contiguous run starting at current+1. A missing
// version terminates the run even when higher-numbered patches exist, so
// the result is either empty or strictly increasing by one.
func (c Catalog) Plan(current int) []Patch {
	var plan []Patch
	for v := current + 1; ; v++ {
		patch, ok := c[v]
		if !ok {
			break
		}
		plan = append(plan, patch)
	}
	return plan
}

// Destination returns the schema version a plan from current would reach
// if fully executed; current itself when the plan is empty.
func (c Catalog) Destination(current int) int {
	return current + len(c.Plan(current))
}
