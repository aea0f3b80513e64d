package telemetry

import (
	"github.com/anand-ps/reverie/internal/engine"
)

// Record is one sampled observation of a running simulation, exportable as
// a CSV row.
type Record struct {
	Time       float64 `csv:"time"`
	Particles  int     `csv:"particles"`
	Sources    int     `csv:"sources"`
	Kinetic    float64 `csv:"kinetic_energy"`
	WarpPhase  float64 `csv:"warp_phase"`
	Population int     `csv:"population"`
	PileHeight int     `csv:"pile_height"`
	Avalanches int     `csv:"avalanches"`
	GrainsLost int     `csv:"grains_lost"`
}

// Collector samples snapshots at a fixed simulated-time interval.
type Collector struct {
	interval float64
	nextAt   float64
	records  []Record
}

// NewCollector samples every interval simulated seconds; a zero interval
// samples every snapshot.
func NewCollector(interval float64) *Collector {
	return &Collector{interval: interval}
}

// Observe records the snapshot if its sample is due.
func (c *Collector) Observe(snap engine.Snapshot) {
	if snap.Time < c.nextAt {
		return
	}
	c.nextAt = snap.Time + c.interval
	c.records = append(c.records, sample(snap))
}

func sample(snap engine.Snapshot) Record {
	rec := Record{
		Time:       snap.Time,
		Particles:  len(snap.Particles),
		Sources:    len(snap.Sources),
		WarpPhase:  snap.WarpPhase,
		Avalanches: len(snap.Avalanches),
		GrainsLost: snap.GrainsLost,
	}
	for _, p := range snap.Particles {
		rec.Kinetic += 0.5 * p.Vel.LenSq()
	}
	if snap.Grid != nil {
		for _, cell := range snap.Grid.Cells {
			if cell.Alive {
				rec.Population++
			}
		}
		for _, h := range snap.Grid.Heights {
			rec.PileHeight += h
		}
	}
	return rec
}

// Records returns the collected samples.
func (c *Collector) Records() []Record { return c.records }

// Series extracts one column for plotting.
func (c *Collector) Series(pick func(Record) float64) []float64 {
	out := make([]float64, len(c.records))
	for i, r := range c.records {
		out[i] = pick(r)
	}
	return out
}
