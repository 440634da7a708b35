package ir

// GroupLists returns elems with runs of consecutive list items wrapped in
// List containers. Items at a deeper level than the first item of a run
// become nested lists inside the run. Task items group with unordered items;
// a change between ordered and unordered at the same level starts a new
// list. Non-item elements are returned unchanged.
func GroupLists(elems []Element) []Element {
	var out []Element
	for i := 0; i < len(elems); {
		if _, ok := itemInfo(elems[i]); !ok {
			out = append(out, elems[i])
			i++
			continue
		}
		j := i
		for j < len(elems) {
			if _, ok := itemInfo(elems[j]); !ok {
				break
			}
			j++
		}
		out = append(out, groupRun(elems[i:j])...)
		i = j
	}
	return out
}

type listItemInfo struct {
	level   int
	ordered bool
}

func itemInfo(e Element) (listItemInfo, bool) {
	switch n := e.(type) {
	case ListItem:
		return listItemInfo{level: n.Level(), ordered: n.Ordered}, true
	case TaskListItem:
		return listItemInfo{level: n.Level()}, true
	}
	return listItemInfo{}, false
}

// groupRun turns a run of items into one or more sibling lists.
func groupRun(items []Element) []Element {
	var lists []Element
	for i := 0; i < len(items); {
		base, _ := itemInfo(items[i])
		list := List{Ordered: base.ordered}
		j := i
		for j < len(items) {
			info, _ := itemInfo(items[j])
			if info.level < base.level {
				break
			}
			if info.level == base.level {
				if info.ordered != base.ordered {
					break
				}
				list.Items = append(list.Items, items[j])
				j++
				continue
			}
			// Deeper items nest under the current list.
			k := j
			for k < len(items) {
				next, _ := itemInfo(items[k])
				if next.level <= base.level {
					break
				}
				k++
			}
			list.Items = append(list.Items, groupRun(items[j:k])...)
			j = k
		}
		lists = append(lists, list)
		i = j
	}
	return lists
}
