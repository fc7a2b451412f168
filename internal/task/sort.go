package task

import "slices"

type Group struct {
	Category Category
	Tasks    []Task
}

// GroupAndSort partitions tasks by category, one group per entry of
// categories in that order, and orders each group with Compare. Tasks whose
// category is not listed are left out. Empty groups are kept.
func GroupAndSort(tasks []Task, categories []Category) []Group {
	groups := make([]Group, 0, len(categories))
	for _, c := range categories {
		var members []Task
		for _, t := range tasks {
			if t.Category == c {
				members = append(members, t)
			}
		}
		slices.SortStableFunc(members, Compare)
		groups = append(groups, Group{Category: c, Tasks: members})
	}
	return groups
}

// Compare orders important tasks first, then dated tasks by calendar day,
// then undated tasks. Equal tasks keep their input order under a stable sort.
func Compare(a, b Task) int {
	if a.Important != b.Important {
		if a.Important {
			return -1
		}
		return 1
	}
	switch {
	case a.Due.Valid && b.Due.Valid:
		return StartOfDay(a.Due.Time).Compare(StartOfDay(b.Due.Time))
	case a.Due.Valid:
		return -1
	case b.Due.Valid:
		return 1
	}
	return 0
}

// Flatten concatenates the groups in order.
func Flatten(groups []Group) []Task {
	n := 0
	for _, g := range groups {
		n += len(g.Tasks)
	}
	out := make([]Task, 0, n)
	for _, g := range groups {
		out = append(out, g.Tasks...)
	}
	return out
}
