package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
)

// Slice, et al., taken from:
// https://betterprogramming.pub/writing-a-stream-api-in-go-afbc3c4350e2

func Slice[T any](ctx context.Context, in []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// NDJSON decodes one value per line of in.
// The error channel receives at most one error, the first decode failure, and is closed
// after the output channel.
func NDJSON[T any](ctx context.Context, in io.Reader) (<-chan T, <-chan error) {
	out := make(chan T)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(out)
		dec := json.NewDecoder(in)
		for {
			var element T
			if err := dec.Decode(&element); err != nil {
				if !errors.Is(err, io.EOF) {
					errs <- err
				}
				return
			}
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out, errs
}

// Concurrent applies transformer to every element of in over n workers.
// Output order is not preserved.
func Concurrent[I any, O any](ctx context.Context, n int, transformer func(I) O, in <-chan I) <-chan O {
	if n < 1 {
		n = 1
	}
	out := make(chan O)
	wg := sync.WaitGroup{}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for element := range in {
				select {
				case <-ctx.Done():
					return
				case out <- transformer(element):
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := make([]T, 0)
	for element := range in {
		select {
		case <-ctx.Done():
			return out
		default:
			out = append(out, element)
		}
	}
	return out
}
