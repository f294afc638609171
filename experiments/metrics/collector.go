package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy string
	Depth    int
	Duration time.Duration
	Nodes    int
	Leaves   int
	Cutoffs  int
}

type MoveMetric struct {
	Step int
	Side string
	Move int // game.NoMove for a pass
	SearchMetric
}

type GameMetric struct {
	StartingSide string
	Winner       string // empty on a tie
	Black        int    // final disc counts
	White        int
	TotalMoves   int
	Passes       int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// AgentConfig describes one participant of an experiment.
type AgentConfig struct {
	ID          int
	Strategy    string
	Depth       int
	Seed        uint64
	FixedWindow bool
	URL         string // served by a remote othello server when set
}

type Collector interface {
	Start(strategy string, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	strategy  string
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters, so one collector can serve consecutive searches.
func (m *collector) Start(strategy string, depth int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy: m.strategy,
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddLeaf()                         {}
func (m *dummyCollector) AddCutoff()                       {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
