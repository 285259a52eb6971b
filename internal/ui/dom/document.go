// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var slotPattern = regexp.MustCompile(`data-slot="([a-z0-9_-]+)"`)

type entry struct {
	id        string
	container Container
	slots     []string
	scrollTop int
}

// KeyListener receives document-level key events.
type KeyListener func(event Event) error

// Document is the mounted view tree of one UI session. It is not safe for
// concurrent use; the owning session serialises access.
type Document struct {
	nextID   int
	entries  map[Node]*entry
	byID     map[string]Node
	children map[Container][]Node
	patches  []Patch

	nextListener int
	listeners    map[int]KeyListener
}

// NewDocument returns an empty document with the root slots available.
func NewDocument() *Document {
	return &Document{
		entries:   make(map[Node]*entry),
		byID:      make(map[string]Node),
		children:  make(map[Container][]Node),
		listeners: make(map[int]KeyListener),
	}
}

// # Tree Operations

// Mount renders node into container at position.
func (d *Document) Mount(node Node, container Container, position Position) error {
	if _, ok := d.entries[node]; ok {
		return ErrAlreadyMounted
	}
	if !d.hasContainer(container) {
		return fmt.Errorf("%w: %s", ErrUnknownContainer, container)
	}

	id := d.newID()
	html, slots, err := render(node, id)
	if err != nil {
		return err
	}

	d.track(node, &entry{id: id, container: container, slots: slots})
	if position == AfterBegin {
		d.children[container] = slices.Insert(d.children[container], 0, node)
	} else {
		position = BeforeEnd
		d.children[container] = append(d.children[container], node)
	}

	d.patches = append(d.patches, Patch{Op: OpMount, ViewID: id, Target: container.String(), Position: position, HTML: html})
	return nil
}

// Replace renders newNode in place of oldNode, keeping its container, its
// position and its scroll offset. newNode may be oldNode itself to re-render
// it with fresh data.
func (d *Document) Replace(newNode, oldNode Node) error {
	old, ok := d.entries[oldNode]
	if !ok {
		return ErrNotMounted
	}
	if newNode != oldNode {
		if _, mounted := d.entries[newNode]; mounted {
			return ErrAlreadyMounted
		}
	}
	for _, slot := range old.slots {
		if len(d.children[Container{ViewID: old.id, Name: slot}]) > 0 {
			return ErrHasChildren
		}
	}

	id := d.newID()
	html, slots, err := render(newNode, id)
	if err != nil {
		return err
	}

	siblings := d.children[old.container]
	siblings[slices.Index(siblings, oldNode)] = newNode

	d.untrack(oldNode)
	d.track(newNode, &entry{id: id, container: old.container, slots: slots, scrollTop: old.scrollTop})

	d.patches = append(d.patches, Patch{Op: OpReplace, ViewID: id, OldViewID: old.id, HTML: html, ScrollTop: old.scrollTop})
	return nil
}

// Unmount removes node and every node mounted inside it. Unmounting a node
// that is not mounted is a no-op.
func (d *Document) Unmount(node Node) {
	current, ok := d.entries[node]
	if !ok {
		return
	}

	d.removeSubtree(node)
	d.children[current.container] = slices.DeleteFunc(d.children[current.container], func(n Node) bool { return n == node })
	d.patches = append(d.patches, Patch{Op: OpUnmount, ViewID: current.id})
}

func (d *Document) removeSubtree(node Node) {
	current := d.entries[node]
	for _, slot := range current.slots {
		container := Container{ViewID: current.id, Name: slot}
		for _, child := range d.children[container] {
			d.removeSubtree(child)
		}
		delete(d.children, container)
	}
	d.untrack(node)
}

// Slot names the container declared by data-slot="name" inside node.
func (d *Document) Slot(node Node, name string) (Container, error) {
	current, ok := d.entries[node]
	if !ok {
		return Container{}, ErrNotMounted
	}
	if !slices.Contains(current.slots, name) {
		return Container{}, fmt.Errorf("%w: %s:%s", ErrUnknownContainer, current.id, name)
	}
	return Container{ViewID: current.id, Name: name}, nil
}

// # Inspection

// IsMounted reports whether node is in the tree.
func (d *Document) IsMounted(node Node) bool {
	_, ok := d.entries[node]
	return ok
}

// ViewID returns the current view id of node, or "" if it is not mounted.
func (d *Document) ViewID(node Node) string {
	if current, ok := d.entries[node]; ok {
		return current.id
	}
	return ""
}

// Children returns the nodes mounted in container, in document order.
func (d *Document) Children(container Container) []Node {
	return slices.Clone(d.children[container])
}

// ScrollTop returns the last scroll offset the browser reported for node.
func (d *Document) ScrollTop(node Node) int {
	if current, ok := d.entries[node]; ok {
		return current.scrollTop
	}
	return 0
}

// Flush returns the queued patches and clears the queue.
func (d *Document) Flush() []Patch {
	patches := d.patches
	d.patches = nil
	if patches == nil {
		return []Patch{}
	}
	return patches
}

// Pending reports whether patches are queued.
func (d *Document) Pending() bool {
	return len(d.patches) > 0
}

// # Events

// Dispatch routes event to its view. Key events then reach the document
// key listeners, as they would by bubbling in the browser; events without a
// view id only reach the listeners.
func (d *Document) Dispatch(event Event) error {
	if event.ViewID != "" {
		node, ok := d.byID[event.ViewID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownView, event.ViewID)
		}
		if event.Type == EventScroll {
			d.entries[node].scrollTop = event.ScrollTop
		}
		if err := node.Handle(event); err != nil {
			return err
		}
	}

	if event.Type != EventKeyDown {
		return nil
	}

	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		listener, ok := d.listeners[id]
		if !ok {
			continue
		}
		if err := listener(event); err != nil {
			return err
		}
	}
	return nil
}

// AddKeyListener registers a document-level key listener and returns its handle.
func (d *Document) AddKeyListener(listener KeyListener) int {
	d.nextListener++
	d.listeners[d.nextListener] = listener
	return d.nextListener
}

// RemoveKeyListener deregisters the listener with handle id.
func (d *Document) RemoveKeyListener(id int) {
	delete(d.listeners, id)
}

// KeyListenerCount returns the number of registered key listeners.
func (d *Document) KeyListenerCount() int {
	return len(d.listeners)
}

// # Internals

func (d *Document) newID() string {
	d.nextID++
	return "v" + strconv.Itoa(d.nextID)
}

func (d *Document) track(node Node, e *entry) {
	d.entries[node] = e
	d.byID[e.id] = node
}

func (d *Document) untrack(node Node) {
	if current, ok := d.entries[node]; ok {
		delete(d.byID, current.id)
		delete(d.entries, node)
	}
}

func (d *Document) hasContainer(container Container) bool {
	if container.ViewID == RootViewID {
		return slices.Contains(rootSlots, container.Name)
	}
	node, ok := d.byID[container.ViewID]
	return ok && slices.Contains(d.entries[node].slots, container.Name)
}

// render produces the node's markup with the view id on its root element.
func render(node Node, id string) (string, []string, error) {
	html, err := node.Template()
	if err != nil {
		return "", nil, err
	}

	start := strings.IndexByte(html, '<')
	if start < 0 || start+1 >= len(html) || !isTagStart(html[start+1]) {
		return "", nil, ErrNoElement
	}
	end := start + 1
	for end < len(html) && !strings.ContainsRune(" \t\r\n/>", rune(html[end])) {
		end++
	}

	var builder strings.Builder
	builder.Grow(len(html) + len(id) + 16)
	builder.WriteString(html[:end])
	builder.WriteString(` data-view-id="`)
	builder.WriteString(id)
	builder.WriteString(`"`)
	builder.WriteString(html[end:])

	var slots []string
	for _, match := range slotPattern.FindAllStringSubmatch(html, -1) {
		slots = append(slots, match[1])
	}

	return builder.String(), slots, nil
}

func isTagStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
