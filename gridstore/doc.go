// Package gridstore persists a grid.Grid as a versioned container of named
// records.
//
// Layout (all integers little-endian):
//
//	header  : magic "AHLG" | revision uint8 (1) | compression uint8 (0 none, 1 zstd)
//	payload : record count uint32, then per record
//	          nameLen uint16 | name | dtype uint8 | ndim uint8 | dims uint32×ndim | byteLen uint32 | data
//
// dtypes are 1=int8, 2=int32 and 3=UTF-8 string. With compression 1 the
// payload is a single zstd frame.
//
// Records:
//
//   - cells                   int8  [height, width], row-major cell codes
//   - starts, ends            int32 [N, 2] of (row, col)
//   - path_<start>_<end>      int32 [L, 2], one per stored path
//   - config_width/height     int32 scalars
//   - config_default_cell     int8 scalar
//   - metadata_version        string "1.0"
//   - metadata_timestamp      string, RFC 3339
//
// Loading accepts any "1.x" version. Path records with a malformed name or
// payload are skipped with a warning; any other damage is ErrCorrupt. Load
// never returns a partially built grid.
package gridstore
