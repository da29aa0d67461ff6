package export

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/lixenwraith/into-the-hole/pipe"
	"github.com/lixenwraith/into-the-hole/placement"
	"github.com/lixenwraith/into-the-hole/vmath"
)

func newChain(t *testing.T) *pipe.Chain {
	t.Helper()
	items := pipe.NewItemPool([]string{"cube"})
	chain, err := pipe.NewChain(pipe.DefaultConfig(), items, placement.NewSelector(placement.NewRandom("cube")), vmath.NewFastRand(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := chain.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	return chain
}

type objCounts struct {
	objects, v, vt, vn, f int
	maxIndex              int
}

func countOBJ(t *testing.T, r io.Reader) objCounts {
	t.Helper()
	var c objCounts
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "o":
			c.objects++
		case "v":
			c.v++
		case "vt":
			c.vt++
		case "vn":
			c.vn++
		case "f":
			c.f++
			for _, ref := range fields[1:] {
				idx, err := strconv.Atoi(strings.SplitN(ref, "/", 2)[0])
				if err != nil {
					t.Fatalf("bad face ref %q", ref)
				}
				if idx < 1 {
					t.Fatalf("face index %d not 1-based", idx)
				}
				if idx > c.maxIndex {
					c.maxIndex = idx
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return c
}

func expected(chain *pipe.Chain) objCounts {
	var c objCounts
	for _, s := range chain.Segments() {
		m := s.Mesh()
		c.objects++
		c.v += m.VertexCount()
		c.vt += len(m.UV)
		c.vn += len(m.Normals)
		c.f += m.TriangleCount()
	}
	c.maxIndex = c.v
	return c
}

func TestWriteOBJCounts(t *testing.T) {
	chain := newChain(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, chain.Segments()); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	got := countOBJ(t, &buf)
	if want := expected(chain); got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

func TestWriteOBJWorldSpace(t *testing.T) {
	chain := newChain(t)
	tail := chain.Tail()
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, []*pipe.Segment{tail}); err != nil {
		t.Fatal(err)
	}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "v ") {
			continue
		}
		f := strings.Fields(line)
		var p vmath.Vec3
		p.X, _ = strconv.ParseFloat(f[1], 64)
		p.Y, _ = strconv.ParseFloat(f[2], 64)
		p.Z, _ = strconv.ParseFloat(f[3], 64)
		want := tail.Transform().Apply(tail.Mesh().Vertices[0])
		if vmath.V3Dist(p, want) > 1e-5 {
			t.Errorf("first vertex = %v, want chain-space %v", p, want)
		}
		return
	}
	t.Fatal("no vertex written")
}

func TestWriteOBJFileCompressed(t *testing.T) {
	chain := newChain(t)
	dir := t.TempDir()
	plain := filepath.Join(dir, "chain.obj")
	packed := filepath.Join(dir, "out", "chain.obj.zst")

	if err := WriteOBJFile(plain, chain.Segments()); err != nil {
		t.Fatalf("plain: %v", err)
	}
	if err := WriteOBJFile(packed, chain.Segments()); err != nil {
		t.Fatalf("zst: %v", err)
	}

	pi, err := os.Stat(plain)
	if err != nil {
		t.Fatal(err)
	}
	zi, err := os.Stat(packed)
	if err != nil {
		t.Fatal(err)
	}
	if zi.Size() >= pi.Size() {
		t.Errorf("compressed %d >= plain %d", zi.Size(), pi.Size())
	}

	want, err := os.ReadFile(plain)
	if err != nil {
		t.Fatal(err)
	}
	rc, err := OpenOBJFile(packed)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("decompressed output differs from plain file")
	}
}
