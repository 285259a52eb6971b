// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/filmdeck/internal/ui/dom"
)

type stubNode struct {
	html   string
	events []dom.Event
	err    error
}

func (n *stubNode) Template() (string, error) { return n.html, n.err }

func (n *stubNode) Handle(event dom.Event) error {
	n.events = append(n.events, event)
	return nil
}

func node(html string) *stubNode { return &stubNode{html: html} }

/*
TestDocument_MountTree assigns view ids, resolves slots and queues patches in order.
*/
func TestDocument_MountTree(t *testing.T) {
	doc := dom.NewDocument()

	board := node(`<section class="films"><div data-slot="list"></div></section>`)
	require.NoError(t, doc.Mount(board, dom.Main, dom.BeforeEnd))

	list, err := doc.Slot(board, "list")
	require.NoError(t, err)

	first, second := node(`<article>1</article>`), node(`<article>2</article>`)
	require.NoError(t, doc.Mount(first, list, dom.BeforeEnd))
	require.NoError(t, doc.Mount(second, list, dom.AfterBegin))

	assert.Equal(t, []dom.Node{second, first}, doc.Children(list))

	patches := doc.Flush()
	require.Len(t, patches, 3)
	assert.Equal(t, dom.Patch{
		Op:       dom.OpMount,
		ViewID:   "v1",
		Target:   "root:main",
		Position: dom.BeforeEnd,
		HTML:     `<section data-view-id="v1" class="films"><div data-slot="list"></div></section>`,
	}, patches[0])
	assert.Equal(t, "v1:list", patches[1].Target)
	assert.Equal(t, `<article data-view-id="v3">2</article>`, patches[2].HTML)
	assert.Empty(t, doc.Flush())
}

/*
TestDocument_MountErrors rejects double mounts, unknown slots and empty templates.
*/
func TestDocument_MountErrors(t *testing.T) {
	doc := dom.NewDocument()
	mounted := node(`<p>x</p>`)
	require.NoError(t, doc.Mount(mounted, dom.Footer, dom.BeforeEnd))

	tests := []struct {
		name      string
		node      dom.Node
		container dom.Container
		want      error
	}{
		{"already_mounted", mounted, dom.Footer, dom.ErrAlreadyMounted},
		{"unknown_root_slot", node(`<p>y</p>`), dom.Container{ViewID: dom.RootViewID, Name: "aside"}, dom.ErrUnknownContainer},
		{"unknown_view", node(`<p>y</p>`), dom.Container{ViewID: "v99", Name: "list"}, dom.ErrUnknownContainer},
		{"no_element", node(`plain text`), dom.Main, dom.ErrNoElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, doc.Mount(tt.node, tt.container, dom.BeforeEnd), tt.want)
		})
	}

	broken := &stubNode{err: errors.New("template failed")}
	assert.EqualError(t, doc.Mount(broken, dom.Main, dom.BeforeEnd), "template failed")
	assert.False(t, doc.IsMounted(broken))
}

/*
TestDocument_Replace keeps position and scroll offset and swaps the view id.
*/
func TestDocument_Replace(t *testing.T) {
	doc := dom.NewDocument()
	a, b, c := node(`<li>a</li>`), node(`<li>b</li>`), node(`<li>c</li>`)
	for _, n := range []dom.Node{a, b, c} {
		require.NoError(t, doc.Mount(n, dom.Main, dom.BeforeEnd))
	}

	// Browser reports a scroll on b
	require.NoError(t, doc.Dispatch(dom.Event{ViewID: doc.ViewID(b), Type: dom.EventScroll, ScrollTop: 240}))
	doc.Flush()

	fresh := node(`<li>b2</li>`)
	require.NoError(t, doc.Replace(fresh, b))

	assert.Equal(t, []dom.Node{a, fresh, c}, doc.Children(dom.Main))
	assert.False(t, doc.IsMounted(b))
	assert.Equal(t, 240, doc.ScrollTop(fresh))

	patches := doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, dom.OpReplace, patches[0].Op)
	assert.Equal(t, "v2", patches[0].OldViewID)
	assert.Equal(t, "v4", patches[0].ViewID)
	assert.Equal(t, 240, patches[0].ScrollTop)

	// In-place re-render of the same node
	require.NoError(t, doc.Replace(fresh, fresh))
	assert.Equal(t, "v5", doc.ViewID(fresh))
	assert.Equal(t, 240, doc.ScrollTop(fresh))

	assert.ErrorIs(t, doc.Replace(node(`<li/>`), b), dom.ErrNotMounted)
	assert.ErrorIs(t, doc.Replace(a, c), dom.ErrAlreadyMounted)
}

/*
TestDocument_ReplaceWithChildren refuses to drop mounted children silently.
*/
func TestDocument_ReplaceWithChildren(t *testing.T) {
	doc := dom.NewDocument()
	board := node(`<section><div data-slot="list"></div></section>`)
	require.NoError(t, doc.Mount(board, dom.Main, dom.BeforeEnd))
	list, err := doc.Slot(board, "list")
	require.NoError(t, err)
	require.NoError(t, doc.Mount(node(`<article></article>`), list, dom.BeforeEnd))

	assert.ErrorIs(t, doc.Replace(node(`<section></section>`), board), dom.ErrHasChildren)
}

/*
TestDocument_Unmount removes the whole subtree with one patch.
*/
func TestDocument_Unmount(t *testing.T) {
	doc := dom.NewDocument()
	board := node(`<section><div data-slot="list"></div></section>`)
	require.NoError(t, doc.Mount(board, dom.Main, dom.BeforeEnd))
	list, _ := doc.Slot(board, "list")
	card := node(`<article></article>`)
	require.NoError(t, doc.Mount(card, list, dom.BeforeEnd))
	cardID := doc.ViewID(card)
	doc.Flush()

	doc.Unmount(board)
	doc.Unmount(board)

	assert.False(t, doc.IsMounted(board))
	assert.False(t, doc.IsMounted(card))
	assert.Empty(t, doc.Children(dom.Main))
	assert.Equal(t, []dom.Patch{{Op: dom.OpUnmount, ViewID: "v1"}}, doc.Flush())
	assert.ErrorIs(t, doc.Dispatch(dom.Event{ViewID: cardID, Type: dom.EventClick}), dom.ErrUnknownView)

	// The card may be mounted again elsewhere
	require.NoError(t, doc.Mount(card, dom.Body, dom.BeforeEnd))
}

/*
TestDocument_Dispatch routes view events and bubbles key events to listeners.
*/
func TestDocument_Dispatch(t *testing.T) {
	doc := dom.NewDocument()
	popup := node(`<section></section>`)
	require.NoError(t, doc.Mount(popup, dom.Body, dom.BeforeEnd))

	var heard []string
	first := doc.AddKeyListener(func(event dom.Event) error {
		heard = append(heard, "first:"+event.Key)
		return nil
	})
	doc.AddKeyListener(func(event dom.Event) error {
		heard = append(heard, "second:"+event.Key)
		return nil
	})
	assert.Equal(t, 2, doc.KeyListenerCount())

	// 1. Click reaches only the view
	require.NoError(t, doc.Dispatch(dom.Event{ViewID: doc.ViewID(popup), Type: dom.EventClick, Action: "close"}))
	assert.Len(t, popup.events, 1)
	assert.Empty(t, heard)

	// 2. Key event in the view bubbles to the document
	require.NoError(t, doc.Dispatch(dom.Event{ViewID: doc.ViewID(popup), Type: dom.EventKeyDown, Key: "Enter"}))
	assert.Len(t, popup.events, 2)
	assert.Equal(t, []string{"first:Enter", "second:Enter"}, heard)

	// 3. Document-level key event
	doc.RemoveKeyListener(first)
	require.NoError(t, doc.Dispatch(dom.Event{Type: dom.EventKeyDown, Key: "Escape"}))
	assert.Equal(t, "second:Escape", heard[len(heard)-1])
	assert.Equal(t, 1, doc.KeyListenerCount())
}
