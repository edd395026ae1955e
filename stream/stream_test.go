package stream

import (
	"context"
	"slices"
	"strings"
	"testing"
)

func TestSliceCollect(t *testing.T) {
	data := []int{0, 2, 4, 6, 8}
	ctx := context.Background()
	result := Collect(ctx, Slice(ctx, data))
	if !slices.Equal(data, result) {
		t.Errorf("Expected %v, got %v", data, result)
	}
}

func TestConcurrent(t *testing.T) {
	data := make([]int, 100)
	for i := range data {
		data[i] = i
	}
	ctx := context.Background()
	result := Collect(ctx, Concurrent(ctx, 4, func(n int) int { return n * 2 }, Slice(ctx, data)))
	slices.Sort(result)
	if len(result) != 100 {
		t.Fatalf("Expected 100 results, got %d", len(result))
	}
	for i, v := range result {
		if v != 2*i {
			t.Fatalf("Expected %d at %d, got %d", 2*i, i, v)
		}
	}
}

func TestNDJSON(t *testing.T) {
	type row struct {
		X    float64 `json:"x"`
		Pace float64 `json:"pace"`
	}
	ctx := context.Background()
	in := strings.NewReader("{\"x\":0,\"pace\":8}\n{\"x\":1,\"pace\":9}\n")
	rows, errs := NDJSON[row](ctx, in)
	got := Collect(ctx, rows)
	if err := <-errs; err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Pace != 9 {
		t.Errorf("unexpected rows %v", got)
	}

	rows, errs = NDJSON[row](ctx, strings.NewReader("{\"x\":0}\nnot json\n"))
	got = Collect(ctx, rows)
	if err := <-errs; err == nil {
		t.Error("expected decode error")
	}
	if len(got) != 1 {
		t.Errorf("expected the row before the error, got %v", got)
	}
}
