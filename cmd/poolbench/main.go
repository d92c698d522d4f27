// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command poolbench drives a slotpool.Pool with many concurrent
// acquire/release workers and reports the final statistics. It is a
// demonstration/stress driver, not part of the core engine.
package main

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/geek0x0/slotpool"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

type payload struct {
	id int64
}

func main() {
	capacity := flag.IntP("capacity", "c", 256, "logical slot capacity")
	workers := flag.IntP("workers", "w", 16, "concurrent acquire/release workers")
	iterations := flag.IntP("iterations", "i", 100000, "acquire/release pairs per worker")
	flag.Parse()

	var created atomic.Int64
	factory := func() (*payload, error) {
		return &payload{id: created.Add(1)}, nil
	}

	p, err := slotpool.New(slotpool.DefaultOptions(*capacity, factory))
	if err != nil {
		log.Fatalf("slotpool.New: %v", err)
	}
	defer p.Close()

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < *workers; w++ {
		g.Go(func() error {
			for i := 0; i < *iterations; i++ {
				obj, err := p.Acquire()
				if err != nil {
					return fmt.Errorf("worker acquire: %w", err)
				}
				p.Release(obj)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("poolbench: %v", err)
	}

	st := p.Stats()
	fmt.Printf("capacity=%d workers=%d iterations=%d\n", *capacity, *workers, *iterations)
	fmt.Printf("gets=%d returns=%d drops=%d creates=%d stackHits=%d bitTrickHits=%d\n",
		st.TotalGets, st.TotalReturns, st.TotalDrops, st.TotalCreates, st.StackHits, st.BitTrickHits)
	fmt.Printf("busy=%d free=%d\n", st.BusyCount, st.FreeCount)
}
