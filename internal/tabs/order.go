package tabs

import "github.com/samber/lo"

// Order is the display and adjacency order of live tabs. Derived state:
// only the Manager's create and close paths touch it.
type Order struct {
	ids []ID
}

func (o *Order) add(id ID)    { o.ids = append(o.ids, id) }
func (o *Order) remove(id ID) { o.ids = lo.Without(o.ids, id) }

func (o *Order) Len() int { return len(o.ids) }

// IDs returns the tab ids in display order.
func (o *Order) IDs() []ID {
	return append([]ID(nil), o.ids...)
}

// Index returns the position of id in the order, or -1.
func (o *Order) Index(id ID) int {
	return lo.IndexOf(o.ids, id)
}

// Adjacent returns the tab to activate when id goes away: the next one
// in order, else the previous, else none.
func (o *Order) Adjacent(id ID) (ID, bool) {
	i := lo.IndexOf(o.ids, id)
	if i == -1 {
		return 0, false
	}
	if i+1 < len(o.ids) {
		return o.ids[i+1], true
	}
	if i > 0 {
		return o.ids[i-1], true
	}
	return 0, false
}

// After returns the tab following id, wrapping around. Used for cycling
// with the tab key.
func (o *Order) After(id ID) (ID, bool) {
	i := lo.IndexOf(o.ids, id)
	if i == -1 || len(o.ids) < 2 {
		return 0, false
	}
	return o.ids[(i+1)%len(o.ids)], true
}

// Before returns the tab preceding id, wrapping around.
func (o *Order) Before(id ID) (ID, bool) {
	i := lo.IndexOf(o.ids, id)
	if i == -1 || len(o.ids) < 2 {
		return 0, false
	}
	return o.ids[(i-1+len(o.ids))%len(o.ids)], true
}
