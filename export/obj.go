// Package export writes the live pipe chain as a Wavefront OBJ file,
// optionally zstd-compressed.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/into-the-hole/pipe"
)

// WriteOBJ writes one object per segment with chain-space positions and normals
// Face indices are 1-based and global across objects
func WriteOBJ(w io.Writer, segments []*pipe.Segment) error {
	bw := bufio.NewWriterSize(w, 64*1024)

	if _, err := fmt.Fprintf(bw, "# into-the-hole pipe chain, %d segments\n", len(segments)); err != nil {
		return err
	}

	base := 1
	for i, s := range segments {
		m := s.Mesh()
		if err := m.Validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		t := s.Transform()

		fmt.Fprintf(bw, "o segment_%d\n", i)
		for _, v := range m.Vertices {
			p := t.Apply(v)
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
		}
		for _, uv := range m.UV {
			fmt.Fprintf(bw, "vt %.6f %.6f\n", uv.X, uv.Y)
		}
		for _, n := range m.Normals {
			d := t.ApplyDir(n)
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", d.X, d.Y, d.Z)
		}
		tris := m.Triangles
		for k := 0; k+2 < len(tris); k += 3 {
			a, b, c := tris[k]+base, tris[k+1]+base, tris[k+2]+base
			if _, err := fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c); err != nil {
				return err
			}
		}
		base += m.VertexCount()
	}
	return bw.Flush()
}

// WriteOBJFile writes segments to path, compressing with zstd when the path ends in .zst
func WriteOBJFile(path string, segments []*pipe.Segment) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		return WriteOBJ(f, segments)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := WriteOBJ(enc, segments); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// OpenOBJFile opens path for reading, transparently decompressing .zst files
func OpenOBJFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &zstdFile{dec: dec, f: f}, nil
}

type zstdFile struct {
	dec *zstd.Decoder
	f   *os.File
}

func (z *zstdFile) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdFile) Close() error {
	z.dec.Close()
	return z.f.Close()
}
