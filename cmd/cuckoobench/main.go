// Command cuckoobench drives a cuckoo table with random keys and
// prints a metrics snapshot, as a small end-to-end exercise of the
// engine rather than a production server. Flag parsing follows the
// pflag style used elsewhere in the example pack this module draws
// its ambient stack from.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	cuckoo "github.com/patriat/cuckoo-store"
)

func main() {
	var (
		chunkSize = flag.Uint32("chunk-size", 128, "bytes per slot")
		maxItem   = flag.Uint32("max-item", 1<<16, "number of slots")
		ops       = flag.Int("ops", 100000, "number of insert operations to run")
		policy    = flag.String("policy", "random", "victim selection policy: random or expire")
		displace  = flag.Int("displace", cuckoo.DefaultDisplace, "displacement walk step budget")
		cas       = flag.Bool("cas", false, "reserve a CAS token per item")
		keyLen    = flag.Int("key-len", 16, "length in bytes of generated keys")
		valLen    = flag.Int("val-len", 32, "length in bytes of generated values")
	)
	flag.Parse()

	selectPolicy := cuckoo.Random
	if *policy == "expire" {
		selectPolicy = cuckoo.Expire
	}

	metrics := &cuckoo.AtomicMetrics{}
	engine := cuckoo.NewEngine()
	err := engine.Setup(cuckoo.Config{
		ChunkSize:    *chunkSize,
		MaxItem:      *maxItem,
		SelectPolicy: selectPolicy,
		Displace:     *displace,
		CASEnabled:   *cas,
		Metrics:      metrics,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup:", err)
		os.Exit(1)
	}
	defer engine.Teardown()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	key := make([]byte, *keyLen)
	val := make([]byte, *valLen)

	start := time.Now()
	for i := 0; i < *ops; i++ {
		rng.Read(key)
		rng.Read(val)
		if err := engine.Insert(key, cuckoo.StrValue(val), cuckoo.Never, nil); err != nil {
			if !cuckoo.IsOversized(err) {
				fmt.Fprintln(os.Stderr, "insert:", err)
				os.Exit(1)
			}
		}
	}
	elapsed := time.Since(start)

	snap := metrics.Snapshot()
	fmt.Printf("ops=%d elapsed=%s ops/sec=%.0f\n", *ops, elapsed, float64(*ops)/elapsed.Seconds())
	fmt.Printf("item_curr=%d item_insert=%d item_evict=%d item_expire=%d item_displace=%d insert_ex=%d\n",
		snap.ItemCurr, snap.ItemInsert, snap.ItemEvict, snap.ItemExpire, snap.ItemDisplace, snap.InsertEx)
}
