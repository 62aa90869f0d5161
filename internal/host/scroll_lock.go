package host

import "strings"

const scrollLockDeclaration = "overflow: hidden"

// SetScrollLocked suspends or restores page scrolling by editing the body's
// inline overflow declaration. Other inline declarations are left alone.
func (document *Document) SetScrollLocked(locked bool) {
	body := document.Body()
	if body == nil {
		return
	}

	style, _ := Attr(body, "style")
	declarations := []string{}
	for _, declaration := range strings.Split(style, ";") {
		declaration = strings.TrimSpace(declaration)
		if declaration == "" || isOverflowDeclaration(declaration) {
			continue
		}
		declarations = append(declarations, declaration)
	}
	if locked {
		declarations = append(declarations, scrollLockDeclaration)
	}

	if len(declarations) == 0 {
		RemoveAttr(body, "style")
		return
	}
	SetAttr(body, "style", strings.Join(declarations, "; "))
}

func (document *Document) ScrollLocked() bool {
	body := document.Body()
	if body == nil {
		return false
	}
	style, _ := Attr(body, "style")
	for _, declaration := range strings.Split(style, ";") {
		declaration = strings.TrimSpace(declaration)
		if !isOverflowDeclaration(declaration) {
			continue
		}
		value := strings.TrimSpace(declaration[strings.Index(declaration, ":")+1:])
		return strings.EqualFold(value, "hidden")
	}
	return false
}

func isOverflowDeclaration(declaration string) bool {
	name, _, found := strings.Cut(declaration, ":")
	return found && strings.EqualFold(strings.TrimSpace(name), "overflow")
}
