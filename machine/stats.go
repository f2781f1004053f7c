package machine

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// StatsDashboard wraps statsview's live runtime-metrics page, offered
// as an optional debug aid while a machine runs — useful here
// specifically because the chipset/CPU RunFor loops are expected to run
// continuously at real-time rates, making goroutine/heap pressure from
// misbehaving machine code visible the same way it would be for any
// other long-running service.
type StatsDashboard struct {
	viewer *viewer.Viewer
}

// NewStatsDashboard constructs a dashboard bound to addr (e.g.
// "localhost:18081"), matching statsview's own default-address
// convention.
func NewStatsDashboard(addr string) *StatsDashboard {
	v := statsview.New(viewer.WithAddr(addr))
	return &StatsDashboard{viewer: v}
}

// Start runs the dashboard's HTTP server in the background until the
// process exits; statsview does not expose a graceful stop.
func (d *StatsDashboard) Start() {
	go d.viewer.Start()
}
