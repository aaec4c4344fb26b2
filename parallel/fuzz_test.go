package parallel

import (
	"context"
	"slices"
	"testing"
)

func FuzzFilter(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5}, uint8(3), uint8(0))
	f.Add([]byte{}, uint8(1), uint8(1))
	f.Add([]byte("a parallel sequence of bytes"), uint8(7), uint8(4))

	f.Fuzz(func(t *testing.T, data []byte, mod, length uint8) {
		m := int(mod%7) + 1
		keep := func(b byte) bool { return int(b)%m == 0 }

		var want []byte
		for _, b := range data {
			if keep(b) {
				want = append(want, b)
			}
		}

		opts := []Option{WithConcurrency(m)}
		if length > 0 {
			opts = append(opts, WithSegmentLength(int(length)))
		}
		for _, src := range []Source[byte]{Slice(data), Seq(slices.Values(data))} {
			got, err := Filter(context.Background(), src, keep, opts...)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, want) {
				t.Fatalf("Filter(%v) = %v, want %v", data, got, want)
			}
		}

		all, err := All(context.Background(), Slice(data), keep, opts...)
		if err != nil {
			t.Fatal(err)
		}
		if all != (len(want) == len(data)) {
			t.Fatalf("All = %v, want %v", all, len(want) == len(data))
		}
	})
}
