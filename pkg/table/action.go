package table

// Receiver handles named messages sent on behalf of an item. Perform
// reports whether the selector was handled.
type Receiver interface {
	Perform(selector string, item *Item) bool
}

// Responder is a Receiver linked into a chain. Messages sent to the current
// responder walk the chain until one responder handles them.
type Responder interface {
	Receiver
	NextResponder() Responder
}

// Handlers is a Receiver backed by a selector -> func table.
type Handlers map[string]func(*Item)

// Perform implements Receiver.
func (h Handlers) Perform(selector string, item *Item) bool {
	fn, ok := h[selector]
	if !ok || fn == nil {
		return false
	}
	fn(item)
	return true
}

// Target says where a dispatched selector is delivered.
type Target interface {
	isTarget()
}

type controllerTarget struct{}

func (controllerTarget) isTarget() {}

type responderTarget struct{}

func (responderTarget) isTarget() {}

type selfTarget struct{}

func (selfTarget) isTarget() {}

var (
	// TargetController delivers to the item's enclosing controller. A nil
	// Target means the same.
	TargetController Target = controllerTarget{}
	// TargetResponder delivers to the controller's current first responder
	// and up its responder chain.
	TargetResponder Target = responderTarget{}
	// TargetSelf delivers to the item the action fired for, which runs the
	// handlers registered with Item.Handle and then those of its class.
	TargetSelf Target = selfTarget{}
)

// Explicit delivers to a specific receiver.
type Explicit struct {
	Receiver Receiver
}

func (Explicit) isTarget() {}

// Action is what runs when an item is selected or its control fires. It is
// one of NoAction, Callback or Dispatch.
type Action interface {
	perform(item *Item) bool
}

// NoAction does nothing.
type NoAction struct{}

func (NoAction) perform(*Item) bool { return false }

// Callback runs a closure with the item.
type Callback func(*Item)

func (fn Callback) perform(item *Item) bool {
	if fn == nil {
		return false
	}
	fn(item)
	return true
}

// Dispatch sends Selector to Target.
type Dispatch struct {
	Selector string
	Target   Target
}

func (d Dispatch) perform(item *Item) bool {
	if d.Selector == "" {
		return false
	}
	switch t := d.Target.(type) {
	case nil, controllerTarget:
		c := item.Controller()
		if c == nil {
			return false
		}
		return sendToChain(c, d.Selector, item)
	case responderTarget:
		c := item.Controller()
		if c == nil {
			return false
		}
		return sendToChain(c.FirstResponder(), d.Selector, item)
	case selfTarget:
		return item.Perform(d.Selector, item)
	case Explicit:
		if t.Receiver == nil {
			return false
		}
		return t.Receiver.Perform(d.Selector, item)
	}
	return false
}

// chainLimit guards against responder chains that loop back on themselves.
const chainLimit = 64

func sendToChain(r Responder, selector string, item *Item) bool {
	for i := 0; r != nil && i < chainLimit; i++ {
		if r.Perform(selector, item) {
			return true
		}
		r = r.NextResponder()
	}
	return false
}

// actionFor picks the action a selector/callback pair resolves to. A
// selector wins over a callback when both are set.
func actionFor(selector string, target Target, fn func(*Item)) Action {
	switch {
	case selector != "":
		return Dispatch{Selector: selector, Target: target}
	case fn != nil:
		return Callback(fn)
	default:
		return NoAction{}
	}
}
