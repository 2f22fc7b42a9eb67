package gridstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/grid"
)

const (
	magic    = "AHLG"
	revision = 1

	compressNone = 0
	compressZstd = 1
)

// Save writes g to w. g is only read.
func Save(w io.Writer, g *grid.Grid, opts ...Option) error {
	o := buildOptions(opts)
	payload, err := writeRecords(encodeGrid(g, o.Clock()))
	if err != nil {
		return err
	}

	mode := byte(compressNone)
	if o.Compress {
		mode = compressZstd
	}
	if _, err := w.Write(append([]byte(magic), revision, mode)); err != nil {
		return fmt.Errorf("gridstore: write header: %w", err)
	}
	if !o.Compress {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("gridstore: write payload: %w", err)
		}
		return nil
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return fmt.Errorf("gridstore: zstd: %w", err)
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return fmt.Errorf("gridstore: write payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("gridstore: write payload: %w", err)
	}
	return nil
}

// SaveFile writes g to path atomically: the container is written to a
// temporary file in the same directory and renamed into place.
func SaveFile(path string, g *grid.Grid, opts ...Option) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gridstore-*")
	if err != nil {
		return fmt.Errorf("gridstore: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Save(bw, g, opts...); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("gridstore: %w", err)
	}
	if err = tmp.Chmod(fileMode(path)); err != nil {
		return fmt.Errorf("gridstore: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("gridstore: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("gridstore: %w", err)
	}
	return nil
}

// fileMode keeps the permissions of a file being replaced; new files get 0644.
func fileMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil {
		return fi.Mode().Perm()
	}
	return 0o644
}

// Load reads a container from r and restores an independent grid.
func Load(r io.Reader, opts ...Option) (*grid.Grid, error) {
	o := buildOptions(opts)
	recs, _, err := readContainer(r)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(recs); err != nil {
		return nil, err
	}
	return decodeGrid(recs, o.Logger)
}

// LoadFile opens path and calls Load. A missing file is ErrNotFound.
func LoadFile(path string, opts ...Option) (*grid.Grid, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(bufio.NewReader(f), opts...)
}

// ReadMetadata reports what a stored grid contains without restoring it.
func ReadMetadata(path string) (Metadata, error) {
	f, err := open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	recs, compressed, err := readContainer(bufio.NewReader(f))
	if err != nil {
		return Metadata{}, err
	}
	if err := checkVersion(recs); err != nil {
		return Metadata{}, err
	}

	md := Metadata{Version: string(recs[recVersion].data), Compressed: compressed}
	if ts, ok := recs[recTimestamp]; ok && ts.typ == dtString {
		md.Timestamp, _ = time.Parse(time.RFC3339, string(ts.data))
	}
	if md.Width, err = scalar(recs, recWidth); err != nil {
		return Metadata{}, err
	}
	if md.Height, err = scalar(recs, recHeight); err != nil {
		return Metadata{}, err
	}
	if r, ok := recs[recStarts]; ok && len(r.dims) == 2 {
		md.Starts = int(r.dims[0])
	}
	if r, ok := recs[recEnds]; ok && len(r.dims) == 2 {
		md.Ends = int(r.dims[0])
	}
	cfg := grid.Config{Width: md.Width, Height: md.Height}
	for _, name := range pathRecords(recs) {
		if _, _, reason := decodePath(name, recs[name], cfg); reason == "" {
			md.Paths++
		}
	}
	return md, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("gridstore: %w", err)
	}
	return f, nil
}

// readContainer checks the header and decodes the payload records.
func readContainer(r io.Reader) (map[string]record, bool, error) {
	var hdr [len(magic) + 2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, false, corrupt("header", err)
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, false, fmt.Errorf("%w: bad magic %q", ErrCorrupt, hdr[:len(magic)])
	}
	if rev := hdr[len(magic)]; rev != revision {
		return nil, false, fmt.Errorf("%w: container revision %d", ErrUnsupportedVersion, rev)
	}

	switch mode := hdr[len(magic)+1]; mode {
	case compressNone:
		recs, err := readRecords(r)
		return recs, false, err
	case compressZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, true, corrupt("zstd stream", err)
		}
		defer dec.Close()
		recs, err := readRecords(dec)
		return recs, true, err
	default:
		return nil, false, fmt.Errorf("%w: compression mode %d", ErrCorrupt, mode)
	}
}

// checkVersion accepts any "1.x" metadata version.
func checkVersion(recs map[string]record) error {
	v, ok := recs[recVersion]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrUnsupportedVersion, recVersion)
	}
	if v.typ != dtString || !strings.HasPrefix(string(v.data), "1.") {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, v.data)
	}
	return nil
}

// encodeGrid lists the records for g in write order.
func encodeGrid(g *grid.Grid, now time.Time) []record {
	cfg := g.Config()
	cells := g.Cells()
	raw := make([]byte, len(cells))
	for i, c := range cells {
		raw[i] = byte(c)
	}

	recs := []record{
		stringRecord(recVersion, Version),
		stringRecord(recTimestamp, now.Format(time.RFC3339)),
		int32Record(recWidth, nil, []int32{int32(cfg.Width)}),
		int32Record(recHeight, nil, []int32{int32(cfg.Height)}),
		int8Record(recDefaultCell, nil, []byte{byte(cfg.DefaultCell)}),
		int8Record(recCells, []uint32{uint32(cfg.Height), uint32(cfg.Width)}, raw),
		pointsRecord(recStarts, g.Starts()),
		pointsRecord(recEnds, g.Ends()),
	}
	paths := g.Paths()
	for _, key := range g.PathKeys() {
		recs = append(recs, pointsRecord(pathName(key), paths[key]))
	}
	return recs
}

func pointsRecord(name string, pts []cell.Point) record {
	vals := make([]int32, 0, 2*len(pts))
	for _, p := range pts {
		vals = append(vals, int32(p.Row), int32(p.Col))
	}
	return int32Record(name, []uint32{uint32(len(pts)), 2}, vals)
}

func pathName(k grid.PathKey) string {
	return pathPrefix + strconv.Itoa(k.Start) + "_" + strconv.Itoa(k.End)
}

// parsePathName inverts pathName. Indices are any decimal ints, negative
// included, since stored paths outlive the points they were planned from.
func parsePathName(name string) (grid.PathKey, bool) {
	rest, ok := strings.CutPrefix(name, pathPrefix)
	if !ok {
		return grid.PathKey{}, false
	}
	s, e, ok := strings.Cut(rest, "_")
	if !ok {
		return grid.PathKey{}, false
	}
	si, err1 := strconv.Atoi(s)
	ei, err2 := strconv.Atoi(e)
	if err1 != nil || err2 != nil {
		return grid.PathKey{}, false
	}
	return grid.PathKey{Start: si, End: ei}, true
}

// decodeGrid rebuilds a grid from version-checked records.
func decodeGrid(recs map[string]record, log *slog.Logger) (*grid.Grid, error) {
	var cfg grid.Config
	var err error
	if cfg.Width, err = scalar(recs, recWidth); err != nil {
		return nil, err
	}
	if cfg.Height, err = scalar(recs, recHeight); err != nil {
		return nil, err
	}
	def, err := scalar(recs, recDefaultCell)
	if err != nil {
		return nil, err
	}
	if def < 0 || def > 255 {
		return nil, fmt.Errorf("%w: default cell %d", ErrCorrupt, def)
	}
	cfg.DefaultCell = cell.Code(def)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	cr, ok := recs[recCells]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrCorrupt, recCells)
	}
	if cr.typ != dtInt8 || len(cr.dims) != 2 || int(cr.dims[0]) != cfg.Height || int(cr.dims[1]) != cfg.Width {
		return nil, fmt.Errorf("%w: %s has dtype %d shape %v for %dx%d grid", ErrCorrupt, recCells, cr.typ, cr.dims, cfg.Height, cfg.Width)
	}
	cells := make([]cell.Code, len(cr.data))
	for i, b := range cr.data {
		cells[i] = cell.Code(b)
	}

	starts, err := pointList(recs, recStarts)
	if err != nil {
		return nil, err
	}
	ends, err := pointList(recs, recEnds)
	if err != nil {
		return nil, err
	}

	paths := make(map[grid.PathKey][]cell.Point)
	for _, name := range pathRecords(recs) {
		key, path, reason := decodePath(name, recs[name], cfg)
		if reason != "" {
			log.Warn("gridstore: skipping path record",
				slog.String("record", name),
				slog.String("reason", reason))
			continue
		}
		paths[key] = path
	}

	g, err := grid.Restore(cfg, cells, starts, ends, paths)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return g, nil
}

// pathRecords lists the path record names in sorted order, so that two
// names parsing to the same key resolve the same way on every load.
func pathRecords(recs map[string]record) []string {
	var names []string
	for name := range recs {
		if strings.HasPrefix(name, pathPrefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// decodePath returns a non-empty reason when the record must be skipped:
// a name that is not path_<int>_<int>, a payload that is not int32 [L,2], or
// a point outside the grid. Empty paths are kept.
func decodePath(name string, r record, cfg grid.Config) (grid.PathKey, []cell.Point, string) {
	key, ok := parsePathName(name)
	if !ok {
		return key, nil, "malformed name"
	}
	pts, err := r.points()
	if err != nil {
		return key, nil, err.Error()
	}
	path := make([]cell.Point, len(pts))
	for i, rc := range pts {
		p := cell.Point{Row: int(rc[0]), Col: int(rc[1])}
		if p.Row < 0 || p.Row >= cfg.Height || p.Col < 0 || p.Col >= cfg.Width {
			return key, nil, fmt.Sprintf("point %v out of bounds", p)
		}
		path[i] = p
	}
	return key, path, ""
}

func scalar(recs map[string]record, name string) (int, error) {
	r, ok := recs[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrCorrupt, name)
	}
	v, err := r.scalarInt()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return v, nil
}

func pointList(recs map[string]record, name string) ([]cell.Point, error) {
	r, ok := recs[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrCorrupt, name)
	}
	pts, err := r.points()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	out := make([]cell.Point, len(pts))
	for i, rc := range pts {
		out[i] = cell.Point{Row: int(rc[0]), Col: int(rc[1])}
	}
	return out, nil
}
