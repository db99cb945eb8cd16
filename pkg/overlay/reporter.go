package overlay

import "github.com/arthur-debert/overlay/pkg/types"

// Reporter receives progress events from Apply. Implementations render them
// for the user; the applicator itself never prints.
type Reporter interface {
	// Start is called once before the first entry
	Start(m *types.Manifest)
	// Processing is called before an entry is touched
	Processing(entry types.Entry)
	// Applied is called after an entry was written successfully
	Applied(outcome Outcome)
	// Finished is called once after every entry was applied
	Finished(result *Result)
	// Failed is called once with the error that stopped the run
	Failed(err error)
}

// NopReporter discards every event
type NopReporter struct{}

func (NopReporter) Start(*types.Manifest) {}
func (NopReporter) Processing(types.Entry) {}
func (NopReporter) Applied(Outcome) {}
func (NopReporter) Finished(*Result) {}
func (NopReporter) Failed(error) {}
