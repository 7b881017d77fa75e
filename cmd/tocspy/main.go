//go:build js && wasm

// Command tocspy runs in the browser and keeps the table of contents in
// step with the reader's scroll position. Build with
//
//	GOOS=js GOARCH=wasm go build -o public/tocspy.wasm ./cmd/tocspy
package main

import (
	"fmt"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/eringen/folio/toc"
)

// scrollPadding is added below the sticky header when measuring anchors.
const scrollPadding = 8

var (
	window   = js.Global().Get("window")
	document = js.Global().Get("document")
)

// domSource reads headings straight from the live document.
type domSource struct {
	nodes []js.Value
}

func (s *domSource) Headings(containerID string) ([]toc.Heading, bool, error) {
	container := document.Call("getElementById", containerID)
	if container.IsNull() {
		return nil, false, nil
	}
	list := container.Call("querySelectorAll", "h1, h2, h3, h4, h5, h6")
	s.nodes = s.nodes[:0]
	out := make([]toc.Heading, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		el := list.Index(i)
		level, _ := strconv.Atoi(strings.TrimPrefix(strings.ToLower(el.Get("tagName").String()), "h"))
		title := ""
		children := el.Get("children")
		for j := 0; j < children.Length(); j++ {
			if child := children.Index(j); child.Get("classList").Call("contains", toc.AnchorClass).Bool() {
				title += child.Get("textContent").String()
			}
		}
		title = strings.TrimSpace(title)
		out = append(out, toc.Heading{
			Level:      toc.Level(level),
			ID:         el.Get("id").String(),
			Title:      title,
			Handle:     toc.Handle(len(s.nodes)),
			HasContent: el.Get("childNodes").Length() > 0,
		})
		s.nodes = append(s.nodes, el)
	}
	return out, true, nil
}

// domLayout measures the page through the browser's layout engine.
type domLayout struct {
	src    *domSource
	header js.Value
}

func (l *domLayout) AbsoluteTop(h toc.Handle) (float64, bool) {
	if int(h) < 0 || int(h) >= len(l.src.nodes) {
		return 0, false
	}
	el := l.src.nodes[h]
	if !el.Get("isConnected").Bool() || el.Get("offsetParent").IsNull() {
		return 0, false
	}
	return el.Call("getBoundingClientRect").Get("top").Float() + window.Get("scrollY").Float(), true
}

func (l *domLayout) Scroll() toc.ScrollState {
	return toc.ScrollState{
		Y:              window.Get("scrollY").Float(),
		ViewportHeight: window.Get("innerHeight").Float(),
		DocumentHeight: document.Get("documentElement").Get("scrollHeight").Float(),
	}
}

func (l *domLayout) ScrollOffset() float64 {
	if l.header.IsNull() {
		return scrollPadding
	}
	return l.header.Get("offsetHeight").Float() + scrollPadding
}

// domIndicator toggles the active class on outline links and moves the marker.
type domIndicator struct {
	nav    js.Value
	marker js.Value
}

func (d *domIndicator) ClearActive() {
	active := d.nav.Call("querySelectorAll", "a.active")
	for i := 0; i < active.Length(); i++ {
		active.Index(i).Get("classList").Call("remove", "active")
	}
}

func (d *domIndicator) MarkActive(link string) (float64, bool) {
	links := d.nav.Call("querySelectorAll", "a[href]")
	for i := 0; i < links.Length(); i++ {
		a := links.Index(i)
		if a.Call("getAttribute", "href").String() != link {
			continue
		}
		a.Get("classList").Call("add", "active")
		top := a.Call("getBoundingClientRect").Get("top").Float() -
			d.nav.Call("getBoundingClientRect").Get("top").Float()
		return top, true
	}
	return 0, false
}

func (d *domIndicator) SetMarker(top float64, visible bool) {
	if d.marker.IsNull() {
		return
	}
	style := d.marker.Get("style")
	style.Set("top", fmt.Sprintf("%gpx", top))
	if visible {
		style.Set("opacity", "1")
	} else {
		style.Set("opacity", "0")
	}
}

// mount resolves the outline under nav and starts tracking. The outline
// nav is already on the page, so a missing or empty container is a
// template wiring mistake and comes back as an error.
func mount(nav js.Value) (*toc.Tracker, error) {
	src := &domSource{}
	store := &toc.AnchorStore{}
	resolver := toc.Resolver{Store: store, RequireHeadings: true}
	if _, err := resolver.Resolve(src); err != nil {
		return nil, err
	}
	tracker := toc.NewTracker(store,
		&domLayout{src: src, header: document.Call("querySelector", ".site-header")},
		&domIndicator{nav: nav, marker: nav.Call("querySelector", ".toc-marker")},
	)
	tracker.Mount()
	return tracker, nil
}

func main() {
	nav := document.Call("querySelector", "nav.toc-navbar")
	if nav.IsNull() {
		return
	}
	tracker, err := mount(nav)
	if err != nil {
		js.Global().Get("console").Call("error", "tocspy: "+err.Error())
		return
	}

	done := make(chan struct{})
	onScroll := js.FuncOf(func(this js.Value, args []js.Value) any {
		tracker.Notify()
		return nil
	})
	var onHide js.Func
	onHide = js.FuncOf(func(this js.Value, args []js.Value) any {
		window.Call("removeEventListener", "scroll", onScroll)
		window.Call("removeEventListener", "resize", onScroll)
		window.Call("removeEventListener", "pagehide", onHide)
		tracker.Close()
		close(done)
		return nil
	})

	opts := map[string]any{"passive": true}
	window.Call("addEventListener", "scroll", onScroll, opts)
	window.Call("addEventListener", "resize", onScroll, opts)
	window.Call("addEventListener", "pagehide", onHide)

	<-done
	onScroll.Release()
	onHide.Release()
}
