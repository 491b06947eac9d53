package workflow

import (
	"errors"
	"math"
	"testing"
)

func mustParse(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse(%s) returned error: %v", raw, err)
	}
	return doc
}

func TestParseRejectsNonObjects(t *testing.T) {
	if _, err := Parse([]byte(`[1,2]`)); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	if _, err := Parse([]byte(`{}`)); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := Parse([]byte(`{"nodes":`)); err == nil {
		t.Fatal("expected decode error for truncated JSON")
	}
}

func TestDocumentWithoutNodes(t *testing.T) {
	doc := mustParse(t, `{"version": 0.4}`)
	if doc.NodeCount() != 0 {
		t.Fatalf("node count = %d, want 0", doc.NodeCount())
	}
	if got := doc.UnpinnedNodes(); len(got) != 0 {
		t.Fatalf("expected no unpinned nodes, got %v", got)
	}
	if _, ok := doc.CheckDimensions(); ok {
		t.Fatal("expected dimension check to report it could not run")
	}

	empty := mustParse(t, `{"nodes": []}`)
	if _, ok := empty.CheckDimensions(); ok {
		t.Fatal("expected empty node list to skip dimension check")
	}
}

func TestNodeNameResolution(t *testing.T) {
	doc := mustParse(t, `{"nodes":[
		{"title":"Sampler","type":"KSampler"},
		{"type":"VAEDecode"},
		{"id": 7},
		{"title": null, "type":"CLIPTextEncode"},
		{"title": 12, "type":"KSampler"},
		{"title": 2.5},
		{"title": true}
	]}`)
	want := []string{"Sampler", "VAEDecode", "?", "CLIPTextEncode", "12", "2.5", "true"}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(doc.Nodes), len(want))
	}
	for i, name := range want {
		if doc.Nodes[i].Name != name {
			t.Fatalf("node %d name = %q, want %q", i, doc.Nodes[i].Name, name)
		}
	}
	if doc.Nodes[2].ID != "7" {
		t.Fatalf("node id = %q, want %q", doc.Nodes[2].ID, "7")
	}
}

func TestPinnedNodesExcluded(t *testing.T) {
	doc := mustParse(t, `{"nodes":[
		{"title":"A","pos":[1,2],"flags":{"pinned":true}},
		{"title":"B","pos":"garbage","size":[1,2,3],"flags":{"pinned":true}},
		{"title":"C","flags":{"pinned":false}},
		{"title":"D","flags":{}},
		{"title":"E"},
		{"title":"F","flags":{"pinned":1}}
	]}`)
	if doc.NodeCount() != 6 {
		t.Fatalf("node count = %d, want 6", doc.NodeCount())
	}
	unpinned := doc.UnpinnedNodes()
	var names []string
	for _, node := range unpinned {
		names = append(names, node.Name)
	}
	want := []string{"C", "D", "E"}
	if len(names) != len(want) {
		t.Fatalf("unpinned = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unpinned = %v, want %v", names, want)
		}
	}
}

func TestNonObjectNodeEntriesAreCountedOnly(t *testing.T) {
	doc := mustParse(t, `{"nodes":[{"title":"A"}, 5, "x", null]}`)
	if doc.NodeCount() != 4 {
		t.Fatalf("node count = %d, want 4", doc.NodeCount())
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("expected one parsed node, got %d", len(doc.Nodes))
	}
}

func TestPositionResolution(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Point
	}{
		{"sequence", `{"nodes":[{"pos":[10,-20]}]}`, Point{10, -20}},
		{"long sequence", `{"nodes":[{"pos":[1,2,3]}]}`, Point{1, 2}},
		{"short sequence", `{"nodes":[{"pos":[4]}]}`, Point{4, 0}},
		{"mapping", `{"nodes":[{"pos":{"0":3.5,"1":4}}]}`, Point{3.5, 4}},
		{"partial mapping", `{"nodes":[{"pos":{"1":9}}]}`, Point{0, 9}},
		{"missing", `{"nodes":[{"title":"x"}]}`, Point{}},
		{"scalar", `{"nodes":[{"pos":12}]}`, Point{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.raw)
			if got := doc.Nodes[0].Position; got != tc.want {
				t.Fatalf("position = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestIsTwoElementArrayLike(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"pair", []any{1.0, 2.0}, true},
		{"pair of strings", []any{"a", "b"}, true},
		{"single", []any{1.0}, false},
		{"triple", []any{1.0, 2.0, 3.0}, false},
		{"empty sequence", []any{}, false},
		{"index mapping", map[string]any{"0": 1.0, "1": 2.0}, true},
		{"index mapping with null values", map[string]any{"0": nil, "1": nil}, true},
		{"missing index", map[string]any{"0": 1.0, "2": 2.0}, false},
		{"extra key", map[string]any{"0": 1.0, "1": 2.0, "2": 3.0}, false},
		{"named keys", map[string]any{"x": 1.0, "y": 2.0}, false},
		{"number", 3.0, false},
		{"string", "10,20", false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTwoElementArrayLike(tc.value); got != tc.want {
				t.Fatalf("IsTwoElementArrayLike(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestCheckDimensions(t *testing.T) {
	doc := mustParse(t, `{"nodes":[
		{"pos":[1,2],"size":[100,50]},
		{"pos":{"0":1,"1":2,"2":3},"size":{"0":1,"1":2}},
		{"pos":[1,2,3],"size":[1]},
		{"pos":null,"size":0},
		{"pos":[],"size":{}},
		{"pos":"1,2"}
	]}`)
	report, ok := doc.CheckDimensions()
	if !ok {
		t.Fatal("expected dimension check to run")
	}
	if report.InvalidPos != 3 {
		t.Fatalf("invalid pos = %d, want 3", report.InvalidPos)
	}
	if report.InvalidSize != 1 {
		t.Fatalf("invalid size = %d, want 1", report.InvalidSize)
	}
}

func TestViewState(t *testing.T) {
	cases := []struct {
		name          string
		raw           string
		wantDisplaced bool
		wantUnscaled  bool
	}{
		{"missing extra", `{"nodes":[]}`, false, false},
		{"origin unit scale", `{"extra":{"ds":{"offset":[0,0],"scale":1}}}`, false, false},
		{"float unit scale", `{"extra":{"ds":{"offset":[0.0,-0.0],"scale":1.0}}}`, false, false},
		{"displaced x", `{"extra":{"ds":{"offset":[5,0],"scale":1}}}`, true, false},
		{"displaced y", `{"extra":{"ds":{"offset":[0,-3]}}}`, true, false},
		{"short offset ignored", `{"extra":{"ds":{"offset":[5]}}}`, false, false},
		{"zoomed", `{"extra":{"ds":{"scale":0.75}}}`, false, true},
		// Strict equality: a scale drifted by float round-tripping is still flagged.
		{"scale drift", `{"extra":{"ds":{"offset":[0,0],"scale":1.0000001}}}`, false, true},
		{"null scale", `{"extra":{"ds":{"scale":null}}}`, false, true},
		{"string offset", `{"extra":{"ds":{"offset":["0","0"]}}}`, true, false},
		{"ds not an object", `{"extra":{"ds":[1,2]}}`, false, false},
		{"boolean unit scale", `{"extra":{"ds":{"offset":[false,false],"scale":true}}}`, false, false},
		{"boolean zero scale", `{"extra":{"ds":{"offset":[true,false],"scale":false}}}`, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.raw)
			if got := doc.View.Displaced(); got != tc.wantDisplaced {
				t.Fatalf("Displaced() = %v, want %v (view %+v)", got, tc.wantDisplaced, doc.View)
			}
			if got := doc.View.Unscaled(); got != tc.wantUnscaled {
				t.Fatalf("Unscaled() = %v, want %v (view %+v)", got, tc.wantUnscaled, doc.View)
			}
		})
	}
}

func TestNonNumericScaleIsNaN(t *testing.T) {
	doc := mustParse(t, `{"extra":{"ds":{"scale":"1"}}}`)
	if !math.IsNaN(doc.View.Scale) {
		t.Fatalf("scale = %v, want NaN", doc.View.Scale)
	}
}
