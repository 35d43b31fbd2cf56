package probe

// LogWindowBlocks is how far back from the head the log query reaches.
const LogWindowBlocks = 2000

// LogWindow is the block range of a log query, ending at the chain head.
type LogWindow struct {
	From uint64
	To   uint64
}

// NewLogWindow builds the window ending at height. Chains younger than the
// window are clamped to genesis rather than producing a negative fromBlock.
func NewLogWindow(height uint64) LogWindow {
	var from uint64
	if height > LogWindowBlocks {
		from = height - LogWindowBlocks
	}
	return LogWindow{From: from, To: height}
}

func (w LogWindow) FromBlock() string { return FormatQuantity(w.From) }

func (w LogWindow) ToBlock() string { return FormatQuantity(w.To) }
