// Package pageview implements a two-axis paging engine: a horizontal pager of
// child view controllers combined with a vertical parallax region (header,
// content and footer decorations) that follows whichever page is active.
//
// # Components
//
//   - [Pager] maps the horizontal offset of a paging scroll surface to a
//     window of visible pages and drives their appearance transitions.
//   - [Presenter] hosts the decorations, derives the vertical offset from the
//     active page's inner scroll surface and re-parents itself into it.
//   - [Coordinator] owns both and publishes one unified content offset,
//     content size and selected index to the host.
//
// # Usage
//
//	c := pageview.New(parent, toolkit, pageview.Options{})
//	c.AddListener(pageview.Listener{
//	    OnSelectedIndexChange: func(i int) { fmt.Println("page", i) },
//	})
//	c.SetViewControllers([]host.ViewController{home, feed, profile})
//	c.SetHeader(header)
//	c.SetFrame(graphics.RectFromLTWH(0, 0, 320, 480))
//	c.SetSelectedIndex(1, true)
//
// # Notifications
//
// Every mutating call runs inside a merge scope. Internal changes only mark
// dirty bits; when the outermost scope exits, listeners are notified at most
// once per kind, always in the order content size, content offset, selected
// index, and only for values that differ from the last notification.
//
// A Coordinator and everything it owns must be used from the host's main
// loop only.
package pageview
