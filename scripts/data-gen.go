/*
	Basic Script that churns random data through a cache file, to produce
	large backing files for testing load and flush times.

	go run ./scripts [path]
*/

package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/0xRadioAc7iv/go-picklecache/core"
)

const (
	concurrency = 6

	// Fixed universe
	totalKeys   = 10000
	totalValues = 100

	// Per-cycle behavior
	keysPerCycleWrite  = 20
	keysPerCycleDelete = 10
	cyclesPerWorker    = 500

	// A flush every N cycles per worker; the whole file is rewritten each time.
	flushEvery = 50

	progressEvery = 100
)

func main() {
	path := "datastore.gob"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	start := time.Now()
	fmt.Println("Starting picklecache churn-heavy load generator on", path)

	cache, err := core.Open[string, string](path, false, core.WithFileLock(true))
	if err != nil {
		fmt.Println("open error:", err)
		os.Exit(1)
	}
	defer cache.Close()

	fmt.Printf("Loaded %d entries in %v\n", cache.Size(), time.Since(start))

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(id, cache, keys, values)
		}(i)
	}

	wg.Wait()

	flushStart := time.Now()
	if err := cache.Flush(); err != nil {
		fmt.Println("final flush error:", err)
		os.Exit(1)
	}

	fmt.Printf("Final flush of %d entries took %v\n", cache.Size(), time.Since(flushStart))
	fmt.Printf("Load finished in %v\n", time.Since(start))
}

func runWorker(id int, cache *core.Cache[string, string], keys []string, values []string) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for cycle := 1; cycle <= cyclesPerWorker; cycle++ {

		// ---- WRITE / OVERWRITE PHASE ----
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := cache.Set(key, val); err != nil {
				fmt.Printf("[worker %d] SET error: %v\n", id, err)
				return
			}
		}

		// ---- DELETE PHASE ----
		for i := 0; i < keysPerCycleDelete; i++ {
			key := keys[rng.Intn(len(keys))]

			err := cache.Delete(key)
			if err != nil && !errors.Is(err, core.ErrKeyNotFound) {
				fmt.Printf("[worker %d] DELETE error: %v\n", id, err)
				return
			}
		}

		if cycle%flushEvery == 0 {
			if err := cache.Flush(); err != nil {
				fmt.Printf("[worker %d] FLUSH error: %v\n", id, err)
				return
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("[worker %d] completed %d cycles (%d entries)\n", id, cycle, cache.Size())
		}
	}
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%05d", i)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", i)
	}
	return values
}
