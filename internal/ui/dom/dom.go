// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dom is the server-side half of the render/mount primitives.

Architecture:

  - A [Node] renders itself to one HTML element and handles the events the
    browser reports for it.
  - The [Document] tracks which nodes are mounted where, assigns view ids and
    queues [Patch] values the browser applies in order.
  - Containers are named slots: the page shell exposes the root slots and any
    rendered element may declare more with a data-slot attribute.
*/
package dom

import "errors"

// Node is anything that can be mounted into a [Document].
type Node interface {
	// Template renders the node to exactly one root HTML element.
	Template() (string, error)

	// Handle receives the events the browser reports for the node.
	Handle(event Event) error
}

// # Events

// EventType is the browser event kind.
type EventType string

const (
	EventClick   EventType = "click"
	EventKeyDown EventType = "keydown"
	EventChange  EventType = "change"
	EventInput   EventType = "input"
	EventScroll  EventType = "scroll"
)

// EventTypes lists every event kind the client may send.
var EventTypes = []EventType{EventClick, EventKeyDown, EventChange, EventInput, EventScroll}

// Event is one browser interaction. ViewID is empty for document-level events.
type Event struct {
	ViewID    string    `json:"view_id"`
	Type      EventType `json:"type"`
	Action    string    `json:"action,omitempty"`
	Value     string    `json:"value,omitempty"`
	Key       string    `json:"key,omitempty"`
	Ctrl      bool      `json:"ctrl,omitempty"`
	Meta      bool      `json:"meta,omitempty"`
	ScrollTop int       `json:"scroll_top,omitempty"`
}

// # Patches

// Op is a patch operation.
type Op string

const (
	OpMount   Op = "mount"
	OpReplace Op = "replace"
	OpUnmount Op = "unmount"
)

// Position is where a mounted element goes inside its container.
type Position string

const (
	BeforeEnd  Position = "beforeend"
	AfterBegin Position = "afterbegin"
)

// Patch is one DOM change for the browser to apply.
type Patch struct {
	Op        Op       `json:"op"`
	ViewID    string   `json:"view_id"`
	Target    string   `json:"target,omitempty"`
	Position  Position `json:"position,omitempty"`
	OldViewID string   `json:"old_view_id,omitempty"`
	HTML      string   `json:"html,omitempty"`
	ScrollTop int      `json:"scroll_top,omitempty"`
}

// # Containers

// RootViewID is the view id of the page shell.
const RootViewID = "root"

// Container names a slot inside a mounted view.
type Container struct {
	ViewID string
	Name   string
}

// Root slots declared by the page shell.
var (
	Header = Container{ViewID: RootViewID, Name: "header"}
	Main   = Container{ViewID: RootViewID, Name: "main"}
	Body   = Container{ViewID: RootViewID, Name: "body"}
	Footer = Container{ViewID: RootViewID, Name: "footer"}
)

var rootSlots = []string{Header.Name, Main.Name, Body.Name, Footer.Name}

// String is the wire form "viewID:name".
func (c Container) String() string {
	return c.ViewID + ":" + c.Name
}

// # Errors

var (
	ErrUnknownView      = errors.New("dom: unknown view")
	ErrNotMounted       = errors.New("dom: node is not mounted")
	ErrAlreadyMounted   = errors.New("dom: node is already mounted")
	ErrUnknownContainer = errors.New("dom: unknown container")
	ErrHasChildren      = errors.New("dom: node has mounted children")
	ErrNoElement        = errors.New("dom: template rendered no element")
)
