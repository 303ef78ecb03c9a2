package crawler

import (
	"testing"

	"sfmc2graph/internal/domain"
	"sfmc2graph/internal/sfmc"
)

func TestAddNodePrefixIdempotent(t *testing.T) {
	cc := NewCrawlContext()
	cc.DataExtensions["D1"] = &DataExtension{ID: "D1", Name: "Orders"}

	once := cc.AddNodePrefix("D1")
	if once != "de_D1" {
		t.Fatalf("expect de_D1, got %q", once)
	}
	if twice := cc.AddNodePrefix(once); twice != once {
		t.Fatalf("prefixing must be idempotent, got %q", twice)
	}
	if again := cc.AddNodePrefix("node_unknown"); again != "node_unknown" {
		t.Fatalf("already-prefixed fallback id must stay, got %q", again)
	}
}

func TestAddNodePrefixPriority(t *testing.T) {
	cc := NewCrawlContext()
	cc.Automations["X"] = &Automation{ID: "X", Activities: []*Activity{{ID: "ACT", Kind: domain.KindSQL}}}
	cc.Journeys["J"] = &Journey{ID: "J"}
	cc.TriggeredSends["T"] = &TriggeredSend{ID: "T"}

	if got := cc.AddNodePrefix("X"); got != "auto_X" {
		t.Fatalf("expect auto_X, got %q", got)
	}
	if got := cc.AddNodePrefix("J"); got != "journey_J" {
		t.Fatalf("expect journey_J, got %q", got)
	}
	if got := cc.AddNodePrefix("T"); got != "ts_T" {
		t.Fatalf("expect ts_T, got %q", got)
	}
	if got := cc.AddNodePrefix("ACT"); got != "activity_ACT" {
		t.Fatalf("expect activity_ACT, got %q", got)
	}
	if got := cc.AddNodePrefix("nope"); got != "node_nope" {
		t.Fatalf("unknown id falls back to node_, got %q", got)
	}
}

func TestSerializeNodesEdgesAndMetadata(t *testing.T) {
	cc := NewCrawlContext()
	cc.DataExtensions["D1"] = &DataExtension{ID: "D1", Name: "Orders", Key: "orders", FolderPath: "Data/Sales"}
	auto := &Automation{ID: "A1", Name: "Nightly", Activities: []*Activity{
		{ID: "Q1", Name: "load", Kind: domain.KindSQL, TargetID: "D1", QueryText: "SELECT 1"},
	}}
	cc.Automations["A1"] = auto
	cc.AddEdge(Edge{Source: "A1", Target: "Q1", Type: domain.EdgeContains, Label: "contains"})
	cc.AddEdge(Edge{Source: "D1", Target: "Q1", Type: domain.EdgeUses, Label: "reads from", Inferred: true})

	c := newTestCrawler(t, &fakeAPI{})
	graph := c.serialize(cc, sfmc.Stats{APICalls: 10, ErrorCount: 2, Retries: 1})

	if len(graph.Nodes) != 3 {
		t.Fatalf("expect 3 nodes (DE, automation, activity), got %d", len(graph.Nodes))
	}
	byID := make(map[string]domain.Node)
	for _, n := range graph.Nodes {
		byID[n.ID] = n
	}
	if n, ok := byID["de_D1"]; !ok || n.Type != "DataExtension" || n.Label != "Orders" {
		t.Fatalf("missing or wrong de node: %+v", n)
	}
	if n, ok := byID["activity_Q1"]; !ok || n.Type != "SQL" {
		t.Fatalf("activity must be its own node: %+v", n)
	}
	if n := byID["activity_Q1"]; n.Data["automationId"] != "A1" || n.Data["targetId"] != "D1" {
		t.Fatalf("activity data bag incomplete: %#v", n.Data)
	}

	if len(graph.Edges) != 2 {
		t.Fatalf("expect 2 edges, got %d", len(graph.Edges))
	}
	for _, e := range graph.Edges {
		switch e.Type {
		case domain.EdgeContains:
			if e.ID != "auto_A1_activity_Q1" || e.Source != "auto_A1" || e.Target != "activity_Q1" {
				t.Fatalf("unexpected contains edge %+v", e)
			}
			if e.Data != nil {
				t.Fatalf("explicit edge must not carry inferred mark: %+v", e)
			}
		case domain.EdgeUses:
			if e.Source != "de_D1" || e.Target != "activity_Q1" {
				t.Fatalf("unexpected uses edge %+v", e)
			}
			if v, _ := e.Data["inferred"].(bool); !v {
				t.Fatalf("inferred edge must be marked: %+v", e)
			}
		default:
			t.Fatalf("unexpected edge type %q", e.Type)
		}
	}

	meta := graph.Metadata
	if meta.TotalNodes != 3 || meta.TotalEdges != 2 {
		t.Fatalf("unexpected totals %+v", meta)
	}
	if meta.DataExtensions != 1 || meta.Automations != 1 || meta.Journeys != 0 || meta.TriggeredSends != 0 {
		t.Fatalf("unexpected counts %+v", meta)
	}
	if meta.CrawlerVersion != Version || meta.CrawledAt == "" {
		t.Fatalf("metadata missing version/timestamp %+v", meta)
	}
	if meta.Performance.APICalls != 10 || meta.Performance.Retries != 1 {
		t.Fatalf("unexpected performance %+v", meta.Performance)
	}
	if got := meta.Performance.SuccessRate; got < 0.79 || got > 0.81 {
		t.Fatalf("unexpected success rate %v", got)
	}
}
