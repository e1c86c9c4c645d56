package dom

// Window is the viewport: scroll position, size and pixel ratio.
type Window struct {
	EventTarget

	ScrollY          float64
	InnerWidth       float64
	InnerHeight      float64
	DevicePixelRatio float64
}

// NewWindow creates a viewport of the given size at scroll position zero.
func NewWindow(width, height float64) *Window {
	return &Window{InnerWidth: width, InnerHeight: height, DevicePixelRatio: 1}
}

// ScrollTo jumps to y and dispatches a scroll event.
func (w *Window) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	w.ScrollY = y
	w.Dispatch(&Event{Type: "scroll"})
}

// Resize changes the viewport size and dispatches a resize event.
func (w *Window) Resize(width, height float64) {
	w.InnerWidth = width
	w.InnerHeight = height
	w.Dispatch(&Event{Type: "resize"})
}

// ViewportTop returns where el's top edge sits relative to the viewport top.
func (w *Window) ViewportTop(el *Element) float64 {
	return el.Top - w.ScrollY
}
