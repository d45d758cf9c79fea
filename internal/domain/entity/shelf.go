package entity

type ShelfKind string

const (
	ShelfUnknown     ShelfKind = "unknown"
	ShelfPlain       ShelfKind = "shelf"
	ShelfRich        ShelfKind = "rich_shelf"
	ShelfRichSection ShelfKind = "rich_section"
	ShelfGrid        ShelfKind = "grid"
)

// Shelf is a titled container of video items inside a section list.
type Shelf struct {
	Kind ShelfKind
	node map[string]any
	body map[string]any
}

func ParseShelf(v any) Shelf {
	node := AsMap(v)
	if node == nil {
		return Shelf{Kind: ShelfUnknown}
	}
	if b := AsMap(node["shelfRenderer"]); b != nil {
		return Shelf{Kind: ShelfPlain, node: node, body: b}
	}
	if b := AsMap(node["richShelfRenderer"]); b != nil {
		return Shelf{Kind: ShelfRich, node: node, body: b}
	}
	if b := DigMap(node, "richSectionRenderer", "content", "richShelfRenderer"); b != nil {
		return Shelf{Kind: ShelfRichSection, node: node, body: b}
	}
	if b := AsMap(node["gridRenderer"]); b != nil {
		return Shelf{Kind: ShelfGrid, node: node, body: b}
	}
	return Shelf{Kind: ShelfUnknown, node: node}
}

// IsShelfNode reports whether v carries one of the shelf wrapper keys.
func IsShelfNode(v any) bool {
	node := AsMap(v)
	if node == nil {
		return false
	}
	return node["shelfRenderer"] != nil ||
		node["richShelfRenderer"] != nil ||
		node["richSectionRenderer"] != nil ||
		node["gridRenderer"] != nil
}

func (s Shelf) Node() map[string]any {
	return s.node
}

func (s Shelf) Title() string {
	if s.body == nil {
		return ""
	}
	if s.Kind == ShelfGrid {
		return Text(Dig(s.body, "header", "gridHeaderRenderer", "title"))
	}
	if t := Text(s.body["title"]); t != "" {
		return t
	}
	return Text(Dig(s.body, "headerRenderer", "shelfHeaderRenderer", "title"))
}

func (s Shelf) IsExplicitlyShortForm() bool {
	return s.body != nil && DigString(s.body, "tvhtml5ShelfRendererType") == ShelfTypeShorts
}

type itemsSlot struct {
	parent map[string]any
	key    string
}

// itemsRef locates the object and key that hold the shelf's item array.
func (s Shelf) itemsRef() (map[string]any, string) {
	if s.body == nil {
		return nil, ""
	}
	var slots []itemsSlot
	switch s.Kind {
	case ShelfPlain:
		content := DigMap(s.body, "content")
		for _, name := range []string{
			"horizontalListRenderer",
			"gridRenderer",
			"verticalListRenderer",
			"expandedShelfContentsRenderer",
		} {
			slots = append(slots, itemsSlot{DigMap(content, name), "items"})
		}
	case ShelfRich, ShelfRichSection:
		slots = append(slots,
			itemsSlot{s.body, "contents"},
			itemsSlot{DigMap(s.body, "content", "richGridRenderer"), "contents"},
		)
	case ShelfGrid:
		slots = append(slots, itemsSlot{s.body, "items"})
	}
	for _, slot := range slots {
		if slot.parent == nil {
			continue
		}
		if _, ok := slot.parent[slot.key].([]any); ok {
			return slot.parent, slot.key
		}
	}
	return nil, ""
}

// Items returns the shelf's item array; ok is false when no known array exists.
func (s Shelf) Items() ([]any, bool) {
	parent, key := s.itemsRef()
	if parent == nil {
		return nil, false
	}
	return AsSlice(parent[key]), true
}

// SetItems replaces the item array in place. It is a no-op for shelves
// without a recognisable item array.
func (s Shelf) SetItems(items []any) {
	parent, key := s.itemsRef()
	if parent == nil {
		return
	}
	parent[key] = items
}
