// Package testing provides a test harness for the paging engine.
//
// # Quick Start
//
// Create a tester, give it pages, and make assertions:
//
//	func TestPaging(t *testing.T) {
//	    tester := pagertest.NewPagerTesterWithT(t, pageview.Options{})
//	    tester.SetPages(pagertest.Pages(3, 2000)...)
//
//	    tester.DragPager(-400)
//	    tester.PumpAndSettle(time.Second)
//
//	    if got := tester.Coordinator().SelectedIndex(); got != 1 {
//	        t.Errorf("SelectedIndex = %d, want 1", got)
//	    }
//	}
//
// # Notifications
//
// Every change the coordinator reports is recorded in order:
//
//	tester.TakeNotifications() // []Notification
//
// # Snapshot Testing
//
// Capture and compare view tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/paging.snapshot.json")
//
// Update snapshots with:
//
//	PARALLAXPAGER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Control time for deterministic animated scrolls:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pagertest "github.com/go-drift/parallaxpager/pkg/testing"
package testing
