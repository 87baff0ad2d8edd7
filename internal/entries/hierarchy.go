package entries

// ResolveRootUUID walks parent pointers up to the top-of-hierarchy entry and
// returns its uuid. The walk is iterative over a uuid to parent-uuid index
// (see Repository.ParentIndex), not recursive over live rows, so its depth
// is bounded by the index size and a broken chain cannot loop forever.
//
// An entry whose parent is unknown to the index is treated as a root; a
// form-0 entry resolves to itself.
func ResolveRootUUID(parents map[string]string, entryUUID string) string {
	var (
		current = entryUUID
		seen    = make(map[string]bool)
	)

	for {
		parent, ok := parents[current]
		if !ok || parent == "" {
			return current
		}

		if seen[current] {
			// cycle guard: should never happen with well-formed data
			return current
		}

		seen[current] = true
		current = parent
	}
}
