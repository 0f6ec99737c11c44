package visualizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Step files hold one record per step:
//
//	step <k> <x0> <y0> <x1> <y1>
//	<y1-y0 cell tokens>     repeated x1-x0 times
//
// The region covers rows [x0,x1) and columns [y0,y1) of the global matrix.
const stepKeyword = "step"

// NodeFile returns the step file of node n for the base filename.
func NodeFile(filename string, node int) string {
	return fmt.Sprintf("%s_%d.txt", filename, node)
}

// Region is the part of the matrix owned by one node.
type Region struct {
	X0, Y0, X1, Y1 int
}

// Boundary returns the four edges of r, clockwise from the top-left corner.
func (r Region) Boundary() []Line {
	return []Line{
		{X1: r.X0, Y1: r.Y0, X2: r.X0, Y2: r.Y1},
		{X1: r.X0, Y1: r.Y1, X2: r.X1, Y2: r.Y1},
		{X1: r.X1, Y1: r.Y1, X2: r.X1, Y2: r.Y0},
		{X1: r.X1, Y1: r.Y0, X2: r.X0, Y2: r.Y0},
	}
}

type stepHeader struct {
	Step   StepIndex
	Region Region
}

func parseHeader(line string) (stepHeader, error) {
	f := strings.Fields(line)
	if len(f) != 6 || f[0] != stepKeyword {
		return stepHeader{}, fmt.Errorf("malformed step header %q", strings.TrimSpace(line))
	}
	var n [5]int
	for i := range n {
		v, err := strconv.Atoi(f[i+1])
		if err != nil {
			return stepHeader{}, fmt.Errorf("step header %q: %w", strings.TrimSpace(line), err)
		}
		n[i] = v
	}
	h := stepHeader{Step: StepIndex(n[0]), Region: Region{X0: n[1], Y0: n[2], X1: n[3], Y1: n[4]}}
	if h.Region.X1 < h.Region.X0 || h.Region.Y1 < h.Region.Y0 {
		return stepHeader{}, fmt.Errorf("step %d: inverted region %+v", h.Step, h.Region)
	}
	return h, nil
}

// nodeIndex maps each step of one node file to the byte offset of its header.
type nodeIndex struct {
	path    string
	offsets map[StepIndex]int64
}

func indexNodeFile(path string) (nodeIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nodeIndex{}, err
	}
	defer f.Close()

	idx := nodeIndex{path: path, offsets: map[StepIndex]int64{}}
	br := bufio.NewReader(f)
	var off int64
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if strings.HasPrefix(line, stepKeyword+" ") {
			h, perr := parseHeader(line)
			if perr != nil {
				return nodeIndex{}, fmt.Errorf("%s:%d: %w", path, lineNo, perr)
			}
			idx.offsets[h.Step] = off
		}
		off += int64(len(line))
		if errors.Is(err, io.EOF) {
			return idx, nil
		}
		if err != nil {
			return nodeIndex{}, err
		}
	}
}

// readRecord reads the record starting at off and calls fn per cell row.
func readRecord(path string, off int64, fn func(h stepHeader, row int, tokens []string) error) (stepHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return stepHeader{}, err
	}
	defer f.Close()
	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return stepHeader{}, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	if !sc.Scan() {
		return stepHeader{}, fmt.Errorf("%s: missing header at offset %d", path, off)
	}
	h, err := parseHeader(sc.Text())
	if err != nil {
		return stepHeader{}, fmt.Errorf("%s: %w", path, err)
	}
	width := h.Region.Y1 - h.Region.Y0
	for row := 0; row < h.Region.X1-h.Region.X0; row++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return h, err
			}
			return h, fmt.Errorf("%s: step %d truncated after %d rows", path, h.Step, row)
		}
		tokens := strings.Fields(sc.Text())
		if len(tokens) != width {
			return h, fmt.Errorf("%s: step %d row %d has %d cells, want %d", path, h.Step, row, len(tokens), width)
		}
		if err := fn(h, row, tokens); err != nil {
			return h, fmt.Errorf("%s: step %d row %d: %w", path, h.Step, row, err)
		}
	}
	return h, nil
}
