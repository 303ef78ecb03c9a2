package crawler

import "testing"

func TestBuildFolderPath(t *testing.T) {
	cc := NewCrawlContext()
	cc.Folders["1"] = &Folder{ID: "1", Name: "A"}
	cc.Folders["2"] = &Folder{ID: "2", Name: "B", ParentID: "1"}

	if got := cc.BuildFolderPath("2"); got != "A/B" {
		t.Fatalf("expect A/B, got %q", got)
	}
	if got := cc.BuildFolderPath("1"); got != "A" {
		t.Fatalf("expect A, got %q", got)
	}
}

func TestBuildFolderPathRootMarkers(t *testing.T) {
	cc := NewCrawlContext()
	cc.Folders["1"] = &Folder{ID: "1", Name: "A", ParentID: "0"}

	if got := cc.BuildFolderPath("1"); got != "A" {
		t.Fatalf("parent 0 is root, expect A, got %q", got)
	}
	if got := cc.BuildFolderPath(""); got != "" {
		t.Fatalf("expect empty path for empty id, got %q", got)
	}
}

func TestBuildFolderPathMissingFolder(t *testing.T) {
	cc := NewCrawlContext()
	cc.Folders["2"] = &Folder{ID: "2", Name: "B", ParentID: "missing"}

	if got := cc.BuildFolderPath("missing"); got != "" {
		t.Fatalf("missing folder short-circuits to empty, got %q", got)
	}
	if got := cc.BuildFolderPath("2"); got != "B" {
		t.Fatalf("broken parent keeps own segment, got %q", got)
	}
}

func TestBuildFolderPathCycle(t *testing.T) {
	cc := NewCrawlContext()
	cc.Folders["1"] = &Folder{ID: "1", Name: "A", ParentID: "2"}
	cc.Folders["2"] = &Folder{ID: "2", Name: "B", ParentID: "1"}

	// 成环时停在环点，返回已累计的路径，不允许无限递归。
	if got := cc.BuildFolderPath("2"); got != "A/B" {
		t.Fatalf("cycle must terminate with accumulated path, got %q", got)
	}
}
