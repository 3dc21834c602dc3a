package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"flowex/internal/domain"
)

func main() {
	totalOrders := flag.Int("orders", 10000, "number of order rows to generate")
	output := flag.String("out", "orders.csv", "output CSV file")
	basePrice := flag.Int64("base-price", 100, "mid price used for randomization")
	priceLevels := flag.Int64("price-levels", 20, "unique price levels around the mid")
	invalidRatio := flag.Int("invalid-ratio", 50, "1 in N rows carries an invalid field (0 disables)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for deterministic random streams")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"client_order_id", "instrument", "side", "quantity", "price"}); err != nil {
		fmt.Fprintf(os.Stderr, "write header: %v\n", err)
		os.Exit(1)
	}

	instruments := domain.Instruments()
	start := time.Now()
	for i := 0; i < *totalOrders; i++ {
		row := nextRandomRow(rng, instruments, *basePrice, *priceLevels)
		if *invalidRatio > 0 && rng.Intn(*invalidRatio) == 0 {
			corrupt(rng, row)
		}
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "write row %d: %v\n", i, err)
			os.Exit(1)
		}
	}
	w.Flush()

	fmt.Printf("wrote %d order rows to %s in %s\n", *totalOrders, *output, time.Since(start).Truncate(time.Millisecond))
}

func nextRandomRow(rng *rand.Rand, instruments []domain.Instrument, mid, width int64) []string {
	side := 1 + rng.Intn(2)
	var price int64
	if side == 1 {
		price = mid + rng.Int63n(width)
	} else {
		offset := rng.Int63n(width)
		if mid > offset {
			price = mid - offset
		} else {
			price = 1
		}
	}

	// Valid quantities are multiples of 10 in [10, 1000].
	qty := (rng.Int63n(100) + 1) * 10

	return []string{
		uuid.NewString(),
		string(instruments[rng.Intn(len(instruments))]),
		strconv.Itoa(side),
		strconv.FormatInt(qty, 10),
		strconv.FormatInt(price, 10),
	}
}

// corrupt makes one field fail validation so reject paths get exercised.
func corrupt(rng *rand.Rand, row []string) {
	switch rng.Intn(4) {
	case 0:
		row[1] = "Daisy" // not a tradable instrument
	case 1:
		row[2] = "3"
	case 2:
		row[3] = "15" // not a multiple of 10
	case 3:
		row[4] = "-5"
	}
}
