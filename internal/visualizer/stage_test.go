package visualizer

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
)

var intSpec = CellSpec[int]{
	Parse: strconv.Atoi,
	Color: func(v int, _ DrawSettings) (Color, bool) {
		if v < 0 {
			return Color{}, false
		}
		return Color{R: uint8(v), A: 255}, true
	},
}

// writeNodes writes two node files splitting a 4x3 matrix by rows.
func writeNodes(t *testing.T) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "run")
	node0 := "" +
		"step 0 0 0 2 3\n1 1 1\n1 1 1\n" +
		"step 1 0 0 2 3\n2 2 2\n2 2 2\n" +
		"step 2 0 0 2 3\n3 -1 3\n3 3 3\n"
	node1 := "" +
		"step 0 2 0 4 3\n4 4 4\n4 4 4\n" +
		"step 2 2 0 4 3\n5 5 5\n5 5 9\n"
	for n, body := range []string{node0, node1} {
		if err := os.WriteFile(NodeFile(base, n), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func newLoadedStage(t *testing.T) *Stage[int] {
	t.Helper()
	s := NewStage(intSpec)
	s.InitMatrix(4, 3)
	s.PrepareStage(2, 1)
	if err := s.ReadStepsOffsets(2, 1, writeNodes(t)); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStage_AvailableStepsIntersectNodes(t *testing.T) {
	s := newLoadedStage(t)
	if diff := cmp.Diff([]StepIndex{0, 2}, s.AvailableSteps()); diff != "" {
		t.Fatalf("steps (-want +got):\n%s", diff)
	}
}

func TestStage_LoadStepState(t *testing.T) {
	g := NewWithT(t)
	s := newLoadedStage(t)

	lines, err := s.LoadStepState(2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(lines).To(HaveLen(8))
	g.Expect(lines[:4]).To(Equal(Region{X0: 0, Y0: 0, X1: 2, Y1: 3}.Boundary()))

	v, ok := s.Cell(0, 1)
	g.Expect(ok).To(BeTrue())
	g.Expect(v).To(Equal(-1))
	v, _ = s.Cell(3, 2)
	g.Expect(v).To(Equal(9))

	// Loading an earlier step overwrites every cell.
	_, err = s.LoadStepState(0)
	g.Expect(err).NotTo(HaveOccurred())
	v, _ = s.Cell(3, 2)
	g.Expect(v).To(Equal(4))
}

func TestStage_StepMissingFromANode(t *testing.T) {
	s := newLoadedStage(t)
	_, err := s.LoadStepState(1)
	if !IsStepNotFound(err) {
		t.Fatalf("expected step not found, got %v", err)
	}
}

func TestStage_LoadBeforeOffsets(t *testing.T) {
	s := NewStage(intSpec)
	s.InitMatrix(2, 2)
	if _, err := s.LoadStepState(0); err == nil {
		t.Fatal("expected error without offsets")
	}
}

func TestStage_MissingNodeFile(t *testing.T) {
	s := NewStage(intSpec)
	s.InitMatrix(2, 2)
	if err := s.ReadStepsOffsets(1, 1, filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing node file")
	}
}

func TestStage_RegionOutsideMatrix(t *testing.T) {
	s := NewStage(intSpec)
	s.InitMatrix(1, 1)
	base := filepath.Join(t.TempDir(), "run")
	if err := os.WriteFile(NodeFile(base, 0), []byte("step 0 0 0 1 2\n1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.ReadStepsOffsets(1, 1, base); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadStepState(0); err == nil {
		t.Fatal("expected out of bounds error")
	}
}

func TestStage_TruncatedRecord(t *testing.T) {
	s := NewStage(intSpec)
	s.InitMatrix(2, 2)
	base := filepath.Join(t.TempDir(), "run")
	if err := os.WriteFile(NodeFile(base, 0), []byte("step 0 0 0 2 2\n1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.ReadStepsOffsets(1, 1, base); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadStepState(0); err == nil {
		t.Fatal("expected truncated record error")
	}
}

func TestStage_DrawPaintsThroughActor(t *testing.T) {
	g := NewWithT(t)
	s := newLoadedStage(t)
	_, err := s.LoadStepState(2)
	g.Expect(err).NotTo(HaveOccurred())

	settings := DefaultDrawSettings()
	grid := NewGrid()
	s.Draw(5, 3, Handle(0), grid, settings)

	rows, cols := grid.Size()
	g.Expect([]int{rows, cols}).To(Equal([]int{5, 3}))
	g.Expect(grid.Cell(0, 0)).To(Equal(Color{R: 3, A: 255}))
	g.Expect(grid.Cell(0, 1)).To(Equal(settings.NoValue))
	g.Expect(grid.Cell(4, 0)).To(Equal(settings.Background))
	visible, c := grid.GridLines()
	g.Expect(visible).To(BeTrue())
	g.Expect(c).To(Equal(settings.Grid))

	_, err = s.LoadStepState(0)
	g.Expect(err).NotTo(HaveOccurred())
	s.Refresh(5, 3, grid, settings)
	g.Expect(grid.Cell(0, 0)).To(Equal(Color{R: 1, A: 255}))
}

func TestStage_FailedLoadKeepsPreviousStep(t *testing.T) {
	s := NewStage(intSpec)
	s.InitMatrix(4, 3)
	base := filepath.Join(t.TempDir(), "run")
	node0 := "step 0 0 0 2 3\n1 1 1\n1 1 1\nstep 3 0 0 2 3\n7 7 7\n7 7 7\n"
	node1 := "step 0 2 0 4 3\n4 4 4\n4 4 4\nstep 3 2 0 4 3\nx 8 8\n8 8 8\n"
	for n, body := range []string{node0, node1} {
		if err := os.WriteFile(NodeFile(base, n), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.ReadStepsOffsets(2, 1, base); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadStepState(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadStepState(3); err == nil {
		t.Fatal("expected parse error from node 1")
	}
	for _, c := range []struct{ x, y, want int }{{0, 0, 1}, {1, 2, 1}, {2, 0, 4}, {3, 2, 4}} {
		if v, _ := s.Cell(c.x, c.y); v != c.want {
			t.Fatalf("cell (%d,%d) = %d, want %d from step 0", c.x, c.y, v, c.want)
		}
	}
}

func TestStage_NilActorIsNoOp(t *testing.T) {
	s := newLoadedStage(t)
	if _, err := s.LoadStepState(0); err != nil {
		t.Fatal(err)
	}
	s.Draw(4, 3, nil, nil, DefaultDrawSettings())
	s.Refresh(4, 3, nil, DefaultDrawSettings())
}

func TestStage_ClearStageResetsCells(t *testing.T) {
	s := newLoadedStage(t)
	if _, err := s.LoadStepState(0); err != nil {
		t.Fatal(err)
	}
	s.ClearStage()
	if v, _ := s.Cell(0, 0); v != 0 {
		t.Fatalf("cell not cleared: %d", v)
	}
	if got := s.AvailableSteps(); len(got) != 0 {
		t.Fatalf("steps after clear: %v", got)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"step 3 0 0 2 2", false},
		{"step 3 0 0 2", true},
		{"step x 0 0 2 2", true},
		{"step 3 2 0 0 2", true},
		{"stop 3 0 0 2 2", true},
	}
	for _, tt := range tests {
		_, err := parseHeader(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHeader(%q) err=%v wantErr=%v", tt.in, err, tt.wantErr)
		}
	}
}

func TestColorRGBARoundTrip(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3, A: 4}
	if got := ColorFromRGBA(c.RGBA()); got != c {
		t.Fatalf("got %v", got)
	}
	if c.String() != "#01020304" {
		t.Fatalf("string %s", c)
	}
}

func TestGridRender(t *testing.T) {
	g := NewGrid()
	g.Resize(2, 2)
	g.SetCell(0, 0, Color{R: 1})
	g.SetCell(9, 9, Color{R: 2})
	if got := g.Render(".#"); got != ".#\n##\n" {
		t.Fatalf("render %q", got)
	}
}
