package charts

import "strings"

type Action string

const (
	ActionPreviousPage  Action = "previous-page"
	ActionNextPage      Action = "next-page"
	ActionOpenNotes     Action = "open-notes"
	ActionCloseNotes    Action = "close-notes"
	ActionBackdropClick Action = "backdrop-click"
	ActionEscapeKey     Action = "escape-key"
	ActionScrollLock    Action = "scroll-lock"
)

// ScrollLockEvent is the htmx event an instance response triggers with the
// host page's scroll lock state, {"page": id, "locked": bool, "holders": n}.
const ScrollLockEvent = "paycharts-scroll-lock"

const scrollLockHandler = "document.body.style.overflow = event.detail.locked ? 'hidden' : ''"

// Actions decorates interactive controls so a host can wire them to its own
// event handling.
type Actions interface {
	Bind(node *Node, action Action) *Node
}

// StaticActions marks controls with data-action only; the host page attaches
// its own listeners.
type StaticActions struct{}

func (StaticActions) Bind(node *Node, action Action) *Node {
	if action == ActionScrollLock {
		return node
	}
	return node.SetAttr("data-action", string(action))
}

// HTMXActions posts every control back to a mounted instance and swaps the
// returned chart in place.
type HTMXActions struct {
	InstancePath string
	TargetID     string
}

func (actions HTMXActions) Bind(node *Node, action Action) *Node {
	if action == ActionScrollLock {
		return node.SetAttr("hx-on:"+ScrollLockEvent, scrollLockHandler)
	}
	node.SetAttr("data-action", string(action))

	base := strings.TrimRight(actions.InstancePath, "/")
	switch action {
	case ActionPreviousPage:
		node.SetAttr("hx-post", base+"/pages/previous")
	case ActionNextPage:
		node.SetAttr("hx-post", base+"/pages/next")
	case ActionOpenNotes:
		node.SetAttr("hx-post", base+"/notes/open")
	case ActionCloseNotes:
		node.SetAttr("hx-post", base+"/notes/close")
	case ActionBackdropClick:
		node.SetAttr("hx-post", base+"/click?target=backdrop")
		node.SetAttr("hx-trigger", "click[target==this]")
	case ActionEscapeKey:
		node.SetAttr("hx-post", base+"/keydown?key=Escape")
		node.SetAttr("hx-trigger", "keyup[key=='Escape'] from:body")
	default:
		return node
	}

	if actions.TargetID != "" {
		node.SetAttr("hx-target", "#"+actions.TargetID)
		node.SetAttr("hx-swap", "outerHTML")
	}
	return node
}

func bindAction(actions Actions, node *Node, action Action) *Node {
	if actions == nil {
		return StaticActions{}.Bind(node, action)
	}
	return actions.Bind(node, action)
}
