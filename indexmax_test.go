package blockgrid

import (
	"math"
	"math/rand"
	"testing"
)

func randomGrid(t *testing.T, aNumBlock, bNumBlock int) (vals, indices DevicePtr) {
	t.Helper()
	n := aNumBlock * bNumBlock

	vals, err := Malloc(n * 4)
	if err != nil {
		t.Fatalf("Malloc vals failed: %v", err)
	}
	indices, err = Malloc(n * 4)
	if err != nil {
		t.Fatalf("Malloc indices failed: %v", err)
	}

	v := vals.Float32()
	idx := indices.Int32()
	for i := 0; i < n; i++ {
		v[i] = rand.Float32()*200 - 100
		idx[i] = rand.Int31n(200) - 100
	}
	return vals, indices
}

func TestIndexMax(t *testing.T) {
	cases := []struct {
		name                 string
		aNumBlock, bNumBlock int
	}{
		{"single block", 1, 1},
		{"one row", 1, 64},
		{"one column", 64, 1},
		{"square", 32, 32},
		{"tail not block aligned", 7, 43},
		{"larger than one launch block", 64, 48},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d_vals, d_idx := randomGrid(t, tc.aNumBlock, tc.bNumBlock)
			defer Free(d_vals)
			defer Free(d_idx)

			d_out, err := IndexMax(d_vals, d_idx, tc.aNumBlock, tc.bNumBlock)
			if err != nil {
				t.Fatalf("IndexMax failed: %v", err)
			}
			defer Free(d_out)

			n := tc.aNumBlock * tc.bNumBlock
			if got := len(d_out.Float32()); got != n {
				t.Fatalf("Output has %d elements, want %d", got, n)
			}

			want := Reference{}.IndexMax(d_vals.Float32(), d_idx.Int32(), tc.aNumBlock, tc.bNumBlock)
			out := d_out.Float32()
			for i := 0; i < n; i++ {
				if out[i] != want[i] {
					t.Fatalf("Mismatch at %d: got %f, want %f", i, out[i], want[i])
				}
			}
		})
	}
}

// The integer operand is cast to float32 before comparison, so large and
// negative indices follow float ordering, not integer ordering.
func TestIndexMaxCastSemantics(t *testing.T) {
	d_vals, _ := Malloc(4 * 4)
	d_idx, _ := Malloc(4 * 4)
	defer Free(d_vals)
	defer Free(d_idx)

	v := d_vals.Float32()
	idx := d_idx.Int32()

	v[0], idx[0] = -5.5, -5 // cast wins: -5 > -5.5
	v[1], idx[1] = 3.25, 3  // value wins: 3.25 > 3
	v[2], idx[2] = 0, 0     // tie
	v[3], idx[3] = float32(math.Inf(-1)), -2147483648

	d_out, err := IndexMax(d_vals, d_idx, 2, 2)
	if err != nil {
		t.Fatalf("IndexMax failed: %v", err)
	}
	defer Free(d_out)

	out := d_out.Float32()
	want := []float32{-5, 3.25, 0, -2147483648}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("Element %d: got %f, want %f", i, out[i], want[i])
		}
	}
}

func TestIndexMaxOutputIsFresh(t *testing.T) {
	d_vals, d_idx := randomGrid(t, 8, 8)
	defer Free(d_vals)
	defer Free(d_idx)

	d_out, err := IndexMax(d_vals, d_idx, 8, 8)
	if err != nil {
		t.Fatalf("IndexMax failed: %v", err)
	}
	defer Free(d_out)

	if d_out.ptr == d_vals.ptr || d_out.ptr == d_idx.ptr {
		t.Error("Output aliases an input buffer")
	}
}

func TestSegmentMax(t *testing.T) {
	const n = 1000
	const segments = 17

	d_vals, err := Malloc(n * 4)
	if err != nil {
		t.Fatalf("Malloc failed: %v", err)
	}
	d_idx, _ := Malloc(n * 4)
	d_out, _ := Malloc(segments * 4)
	defer Free(d_vals)
	defer Free(d_idx)
	defer Free(d_out)

	v := d_vals.Float32()
	idx := d_idx.Int32()
	for i := 0; i < n; i++ {
		v[i] = rand.Float32()*100 - 50
		idx[i] = rand.Int31n(segments)
	}

	if err := SegmentMax(d_vals, d_idx, n, segments, d_out); err != nil {
		t.Fatalf("SegmentMax failed: %v", err)
	}

	want := Reference{}.SegmentMax(v[:n], idx[:n], segments)
	out := d_out.Float32()
	for s := 0; s < segments; s++ {
		if out[s] != want[s] {
			t.Errorf("Segment %d: got %f, want %f", s, out[s], want[s])
		}
	}
}

func TestSegmentMaxEmptyBuckets(t *testing.T) {
	d_vals, _ := Malloc(2 * 4)
	d_idx, _ := Malloc(2 * 4)
	d_out, _ := Malloc(4 * 4)
	defer Free(d_vals)
	defer Free(d_idx)
	defer Free(d_out)

	v := d_vals.Float32()
	idx := d_idx.Int32()
	v[0], v[1] = 1.5, -2
	idx[0], idx[1] = 0, 3

	if err := SegmentMax(d_vals, d_idx, 2, 4, d_out); err != nil {
		t.Fatalf("SegmentMax failed: %v", err)
	}

	out := d_out.Float32()
	if out[0] != 1.5 || out[3] != -2 {
		t.Errorf("Populated buckets wrong: %v", out[:4])
	}
	negInf := float32(math.Inf(-1))
	if out[1] != negInf || out[2] != negInf {
		t.Errorf("Empty buckets should be -Inf, got %v", out[:4])
	}
}

func TestSegmentMaxEmptyInput(t *testing.T) {
	d_vals, _ := Malloc(4)
	d_idx, _ := Malloc(4)
	d_out, _ := Malloc(3 * 4)
	defer Free(d_vals)
	defer Free(d_idx)
	defer Free(d_out)

	out := d_out.Float32()
	out[0], out[1], out[2] = 7, 8, 9 // stale values from a previous run

	if err := SegmentMax(d_vals, d_idx, 0, 3, d_out); err != nil {
		t.Fatalf("SegmentMax failed: %v", err)
	}

	// Every bucket is reset to -Inf even when no element scatters into it.
	negInf := float32(math.Inf(-1))
	for s := 0; s < 3; s++ {
		if out[s] != negInf {
			t.Errorf("Bucket %d: got %f, want -Inf", s, out[s])
		}
	}
}

func TestSegmentMaxInvalidIndex(t *testing.T) {
	d_vals, _ := Malloc(1 * 4)
	d_idx, _ := Malloc(1 * 4)
	d_out, _ := Malloc(2 * 4)
	defer Free(d_vals)
	defer Free(d_idx)
	defer Free(d_out)

	d_idx.Int32()[0] = 5
	if err := SegmentMax(d_vals, d_idx, 1, 2, d_out); err != ErrInvalidIndex {
		t.Errorf("Expected ErrInvalidIndex, got %v", err)
	}

	d_idx.Int32()[0] = -1
	if err := SegmentMax(d_vals, d_idx, 1, 2, d_out); err != ErrInvalidIndex {
		t.Errorf("Expected ErrInvalidIndex for negative index, got %v", err)
	}
}

func BenchmarkIndexMax(b *testing.B) {
	const aNumBlock, bNumBlock = 256, 256
	n := aNumBlock * bNumBlock

	d_vals, _ := Malloc(n * 4)
	d_idx, _ := Malloc(n * 4)
	defer Free(d_vals)
	defer Free(d_idx)

	v := d_vals.Float32()
	idx := d_idx.Int32()
	for i := 0; i < n; i++ {
		v[i] = rand.Float32()
		idx[i] = rand.Int31n(1000)
	}

	b.SetBytes(int64(n * 12)) // two reads, one write, 4 bytes each
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d_out, err := IndexMax(d_vals, d_idx, aNumBlock, bNumBlock)
		if err != nil {
			b.Fatal(err)
		}
		Free(d_out)
	}
}
