package pageview

// DefaultHeightPrecision is the step decoration heights are truncated to
// before they are summed.
const DefaultHeightPrecision = 0.1

// Options configures a [Coordinator]. The zero value is ready to use.
type Options struct {
	// HeightPrecision is the step decoration heights are truncated to.
	// Zero selects DefaultHeightPrecision; a negative value disables
	// truncation.
	HeightPrecision float64
	// ClipsContent applies a clipping mask to the content slot.
	ClipsContent bool
	// FixedOffsetOnInsetChange leaves a page's scroll offset untouched when
	// the parallax inset applied to it changes. By default the offset is
	// shifted by the inset delta so the visible content does not jump.
	FixedOffsetOnInsetChange bool
}

func (o Options) heightPrecision() float64 {
	switch {
	case o.HeightPrecision == 0:
		return DefaultHeightPrecision
	case o.HeightPrecision < 0:
		return 0
	default:
		return o.HeightPrecision
	}
}
