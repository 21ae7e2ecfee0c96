package viewer

// Callbacks are the outbound notifications. Any of them may be nil.
type Callbacks struct {
	OnChangeCurrentPage func(page int)
	OnChangeExpansion   func(expanded bool)
	OnClickCenter       func()
}

// notifier reports settled changes. The values seen at mount are recorded
// as the baseline and never reported.
type notifier struct {
	cb        Callbacks
	page      int
	expansion bool
}

func newNotifier(cb Callbacks, s State) *notifier {
	return &notifier{cb: cb, page: s.Cursor, expansion: s.Expansion}
}

// flush compares s against the last reported values and fires once per
// changed value.
func (n *notifier) flush(s State) {
	if s.Cursor != n.page {
		n.page = s.Cursor
		if n.cb.OnChangeCurrentPage != nil {
			n.cb.OnChangeCurrentPage(s.Cursor)
		}
	}
	if s.Expansion != n.expansion {
		n.expansion = s.Expansion
		if n.cb.OnChangeExpansion != nil {
			n.cb.OnChangeExpansion(s.Expansion)
		}
	}
}

func (n *notifier) clickCenter() {
	if n.cb.OnClickCenter != nil {
		n.cb.OnClickCenter()
	}
}
