package memhost_test

import (
	"slices"
	"testing"

	"github.com/go-drift/parallaxpager/pkg/host"
	"github.com/go-drift/parallaxpager/pkg/memhost"
)

func TestViewController_LazyView(t *testing.T) {
	vc := memhost.NewViewController("page", 1000)
	if vc.IsViewLoaded() {
		t.Fatal("view should load lazily")
	}
	scroll := vc.ScrollView()
	if !vc.IsViewLoaded() || scroll == nil {
		t.Fatal("ScrollView should load the default scroll view")
	}
	if got := scroll.ContentSize().Height; got != 1000 {
		t.Errorf("content height = %v, want 1000", got)
	}
	if vc.View() != host.View(scroll) {
		t.Error("View should return the same scroll view")
	}
}

func TestViewController_Static(t *testing.T) {
	vc := memhost.NewStaticViewController("static")
	if vc.ScrollView() != nil {
		t.Error("static controller should have no scroll view")
	}
	if host.FindScrollSurface(vc) != nil {
		t.Error("static controller should have no scroll surface")
	}
}

func TestViewController_AppearanceTransitions(t *testing.T) {
	vc := memhost.NewViewController("page", 0)
	vc.BeginAppearanceTransition(true, false)
	vc.EndAppearanceTransition()
	vc.EndAppearanceTransition()
	vc.BeginAppearanceTransition(false, false)
	vc.EndAppearanceTransition()

	want := []string{
		memhost.EventWillAppear, memhost.EventDidAppear,
		memhost.EventWillDisappear, memhost.EventDidDisappear,
	}
	if got := vc.TakeEvents(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if vc.IsAppeared() {
		t.Error("controller should be disappeared")
	}
	if len(vc.Events) != 0 {
		t.Error("TakeEvents should clear the log")
	}
}

func TestContainer_Containment(t *testing.T) {
	c := memhost.NewContainer()
	vc := memhost.NewViewController("page", 0)

	c.AddChild(vc)
	c.AddChild(vc)
	vc.DidMoveToParent(c)
	if len(c.Children) != 1 || vc.Parent != host.Container(c) {
		t.Fatalf("children = %v, parent = %v", c.Children, vc.Parent)
	}

	vc.WillMoveToParent(nil)
	c.RemoveChild(vc)
	if c.HasChild(vc) || vc.Parent != nil {
		t.Fatal("child should be removed")
	}

	want := []string{
		memhost.EventWillMove, memhost.EventDidMove,
		memhost.EventWillDetach, memhost.EventDidDetach,
	}
	if !slices.Equal(vc.Events, want) {
		t.Errorf("events = %v, want %v", vc.Events, want)
	}
}

func TestToolkit_NamesViews(t *testing.T) {
	tk := memhost.NewToolkit()
	v := tk.NewView().(*memhost.View)
	s := tk.NewScrollSurface(true).(*memhost.ScrollView)
	if v.Name != "view-1" || s.Name != "scroll-2" {
		t.Errorf("names = %q, %q", v.Name, s.Name)
	}
	if !s.Paging || s.Duration != memhost.DefaultScrollDuration {
		t.Errorf("scroll surface not configured: paging=%v duration=%v", s.Paging, s.Duration)
	}
	if len(tk.Views) != 2 {
		t.Errorf("Views = %d, want 2", len(tk.Views))
	}
}
