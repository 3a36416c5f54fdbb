package domain

import "slices"

// MergeIncremental limits the outcome of an incremental update to its targets.
// Entries named in targets are taken from after. Every other entry of before is kept
// exactly as it was. Names that before does not know at all are taken from after, since
// resolving a target may introduce packages that did not exist yet.
func MergeIncremental(before, after *Lockfile, targets []string) *Lockfile {
	isTarget := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		isTarget[t] = struct{}{}
	}
	known := make(map[string]struct{}, len(before.Entries))
	for _, e := range before.Entries {
		known[e.Name] = struct{}{}
	}

	merged := &Lockfile{Version: after.Version}
	if merged.Version == 0 {
		merged.Version = before.Version
	}

	for _, e := range before.Entries {
		if _, ok := isTarget[e.Name]; !ok {
			merged.Entries = append(merged.Entries, e.clone())
		}
	}
	for _, e := range after.Entries {
		_, target := isTarget[e.Name]
		_, existing := known[e.Name]
		if target || !existing {
			merged.Entries = append(merged.Entries, e.clone())
		}
	}

	slices.SortStableFunc(merged.Entries, compareEntries)
	return merged
}
