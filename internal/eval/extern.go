package eval

import "strings"

// resolveExternKey implements the extern backend disjunction grammar
// (SPEC_FULL §3): a selector is either a bare `capability`, or
// `backend1|backend2:capability`. The host's extern table is keyed by
// `backend:capability` for selectors that name a backend, and by the bare
// capability otherwise; backends are tried in the order written, and the
// first one present in the table wins.
func (ev *Evaluator) resolveExternKey(selector string) (string, bool) {
	colon := strings.IndexByte(selector, ':')
	if colon < 0 {
		_, ok := ev.Externs[selector]
		return selector, ok
	}
	backends := strings.Split(selector[:colon], "|")
	capability := selector[colon+1:]
	for _, b := range backends {
		key := b + ":" + capability
		if _, ok := ev.Externs[key]; ok {
			return key, true
		}
	}
	return selector, false
}
