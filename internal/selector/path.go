package selector

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clambin/cubecycler/internal/cube"
)

// Path is a tour of the cube. Each byte packs two vertex indices: the high nibble is visited first, the low nibble next.
type Path []byte

// DefaultPath walks edges, face diagonals and the space diagonal of the cube and ends next to where it starts:
//
//	0 1 3 7 6 4 0 2 3 1 5 7 2 6 5 4 (0 ...)
var DefaultPath = Path{0x01, 0x37, 0x64, 0x02, 0x31, 0x57, 0x26, 0x54}

// Len returns the number of vertex indices in the path (two per byte)
func (p Path) Len() int {
	return 2 * len(p)
}

// At decodes the vertex index at the cursor and returns the cursor for the next call.
// Once the cursor has run past the end of the path, it wraps to the first entry and wrapped is set.
func (p Path) At(cursor int) (index int, next int, wrapped bool) {
	if cursor < 0 || cursor >= p.Len() {
		cursor = 0
		wrapped = true
	}
	entry := p[cursor/2]
	if cursor%2 == 0 {
		index = int(entry >> 4)
	} else {
		index = int(entry & 0x0f)
	}
	return index, cursor + 1, wrapped
}

// Pair returns the (previous, next) vertex indices packed in entry
func (p Path) Pair(entry int) (int, int) {
	return int(p[entry] >> 4), int(p[entry] & 0x0f)
}

// Validate checks that the path is not empty and only refers to existing vertices
func (p Path) Validate() error {
	if len(p) == 0 {
		return errors.New("path is empty")
	}
	for i := range p {
		from, to := p.Pair(i)
		if from >= cube.VertexCount || to >= cube.VertexCount {
			return fmt.Errorf("path entry %d (%02x): vertex out of range", i, p[i])
		}
	}
	return nil
}

func (p Path) String() string {
	entries := make([]string, len(p))
	for i := range p {
		entries[i] = fmt.Sprintf("%02x", p[i])
	}
	return strings.Join(entries, ",")
}

// ParsePath parses a comma-separated list of hex bytes, e.g. "01,37,64"
func ParsePath(s string) (Path, error) {
	var p Path
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimPrefix(strings.TrimSpace(field), "0x")
		if field == "" {
			continue
		}
		b, err := hex.DecodeString(field)
		if err != nil || len(b) != 1 {
			return nil, fmt.Errorf("invalid path entry %q", field)
		}
		p = append(p, b[0])
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// PathSelector follows a Path, one vertex index per call, and starts over when the path is exhausted
type PathSelector struct {
	Path   Path
	cursor int
}

var _ Selector = &PathSelector{}

// Next returns the next vertex index on the path. elapsed and count are not used.
func (s *PathSelector) Next(_ time.Duration, _ int) Selection {
	var sel Selection
	sel.Index, s.cursor, sel.Wrapped = s.Path.At(s.cursor)
	return sel
}

// Cursor returns the position of the next vertex index to be read
func (s *PathSelector) Cursor() int {
	return s.cursor
}
