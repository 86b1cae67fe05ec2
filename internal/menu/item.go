package menu

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Item is one selectable entry.
type Item struct {
	// Value is returned by Run when the item is selected.
	Value any
	// Name is the label shown on the page. Empty means fmt.Sprint(Value).
	Name string
	// ID identifies the same logical item across menus rebuilt from fresh
	// data. Empty means derived by Config.IDFunc. IDs need not be unique.
	ID string
}

// IDFunc derives an identifier for an item that was built without one.
// It must return the same ID for the same logical value on every call,
// including across processes, or cross-render continuity breaks.
type IDFunc func(value any) string

// itemNamespace scopes ContentID so keymenu IDs never collide with other
// name-based UUIDs derived from the same bytes.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/johnconnor-sec/keymenu/item"))

// ContentID is the default IDFunc. It returns a version 5 UUID over the
// YAML encoding of value. Maps are encoded with sorted keys, so equal
// values give equal IDs regardless of construction order.
func ContentID(value any) string {
	return uuid.NewSHA1(itemNamespace, canonicalBytes(value)).String()
}

// canonicalBytes falls back to the Go syntax representation for values
// YAML cannot encode. The encoder panics on channels and funcs.
func canonicalBytes(value any) (data []byte) {
	defer func() {
		if r := recover(); r != nil {
			data = []byte(fmt.Sprintf("%T:%#v", value, value))
		}
	}()

	data, err := yaml.Marshal(value)
	if err != nil {
		return []byte(fmt.Sprintf("%T:%#v", value, value))
	}
	return data
}

// NewItem builds an item from a bare value.
func NewItem(value any) Item {
	return Item{Value: value}
}

// NamedItem builds an item with an explicit label.
func NamedItem(name string, value any) Item {
	return Item{Value: value, Name: name}
}

// IdentifiedItem builds an item with an explicit label and identifier.
func IdentifiedItem(value any, name string, id string) Item {
	return Item{Value: value, Name: name, ID: id}
}

// normalized fills the defaults for Name and ID.
func (i Item) normalized(idFunc IDFunc) Item {
	if i.Name == "" {
		i.Name = fmt.Sprint(i.Value)
	}
	if i.ID == "" {
		if idFunc == nil {
			idFunc = ContentID
		}
		i.ID = idFunc(i.Value)
	}
	return i
}

// NamedValue is a (name, value) pair for ItemList.Named.
type NamedValue struct {
	Name  string
	Value any
}

// IdentifiedValue is a (value, name, id) triple for ItemList.Identified.
type IdentifiedValue struct {
	Value any
	Name  string
	ID    string
}

// ItemList accumulates items from several input shapes. Each call
// appends after everything added before it; nothing is deduplicated.
type ItemList struct {
	items []Item
}

// NewItemList returns an empty list.
func NewItemList() *ItemList {
	return &ItemList{}
}

// Items appends ready-made items.
func (l *ItemList) Items(items ...Item) *ItemList {
	l.items = append(l.items, items...)
	return l
}

// Values appends one item per bare value.
func (l *ItemList) Values(values ...any) *ItemList {
	for _, v := range values {
		l.items = append(l.items, NewItem(v))
	}
	return l
}

// Named appends one item per (name, value) pair.
func (l *ItemList) Named(pairs ...NamedValue) *ItemList {
	for _, p := range pairs {
		l.items = append(l.items, NamedItem(p.Name, p.Value))
	}
	return l
}

// Identified appends one item per (value, name, id) triple.
func (l *ItemList) Identified(triples ...IdentifiedValue) *ItemList {
	for _, t := range triples {
		l.items = append(l.items, IdentifiedItem(t.Value, t.Name, t.ID))
	}
	return l
}

// Len returns the number of items added so far.
func (l *ItemList) Len() int {
	return len(l.items)
}

// Build returns the items with names and IDs filled in. A nil idFunc
// means ContentID.
func (l *ItemList) Build(idFunc IDFunc) []Item {
	out := make([]Item, len(l.items))
	for i, item := range l.items {
		out[i] = item.normalized(idFunc)
	}
	return out
}

// Collect concatenates the four input shapes in a fixed order: ready-made
// items, then bare values, then named pairs, then identified triples.
// Nil or empty slices contribute nothing.
func Collect(items []Item, values []any, named []NamedValue, identified []IdentifiedValue) *ItemList {
	return NewItemList().
		Items(items...).
		Values(values...).
		Named(named...).
		Identified(identified...)
}
