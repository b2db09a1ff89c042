// Command datagen regenerates the four input record files the pipeline
// consumes: prices.txt, marketdata.txt, trades.txt and inquiries.txt.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
)

var (
	outDir        = flag.String("out_dir", "data", "Directory the record files are written to")
	priceUpdates  = flag.Int("price_updates", 1000, "Price updates per instrument")
	bookUpdates   = flag.Int("book_updates", 1000, "Order book updates per instrument")
	tradesPerBond = flag.Int("trades", 10, "Trades per instrument")
	inquiriesEach = flag.Int("inquiries", 10, "Inquiries per instrument")
	depth         = flag.Int("book_depth", 10, "Order book depth per side")
	seed          = flag.Int64("seed", 1, "PRNG seed for jitter")
)

// Prices oscillate between 99 and 101 in single 1/256 steps.
const (
	floorTicks   = 99 * bondprice.TicksPerPoint
	ceilingTicks = 101 * bondprice.TicksPerPoint
)

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	bonds := refdata.OnTheRun().Bonds()

	green := color.New(color.FgGreen).SprintfFunc()
	cyan := color.New(color.FgCyan).SprintfFunc()

	fmt.Println(cyan("Generating record files in %s", *outDir))

	writeFile("prices.txt", func(w *bufio.Writer) {
		for _, bond := range bonds {
			mid := int64(floorTicks)
			dir := int64(1)
			for i := 0; i < *priceUpdates; i++ {
				// Spread cycles 2..8 ticks with occasional jitter.
				spread := int64(2 + 2*(i%4))
				if rng.Intn(10) == 0 {
					spread += 2
				}
				bid := bondprice.FromTicks(mid - spread/2)
				offer := bondprice.FromTicks(mid + spread - spread/2)
				fmt.Fprintf(w, "%s,%s,%s\n", bond.ProductID(), bondprice.Format(bid), bondprice.Format(offer))

				mid += dir
				if mid >= ceilingTicks || mid <= floorTicks {
					dir = -dir
				}
			}
		}
	})

	writeFile("marketdata.txt", func(w *bufio.Writer) {
		for _, bond := range bonds {
			mid := int64(floorTicks)
			dir := int64(1)
			for i := 0; i < *bookUpdates; i++ {
				// Top-of-book spread cycles 1/128 to 1/32 then back.
				topSpread := int64(2 + 2*(i%4))
				for level := int64(0); level < int64(*depth); level++ {
					bid := bondprice.FromTicks(mid - topSpread/2 - level)
					offer := bondprice.FromTicks(mid + topSpread - topSpread/2 + level)
					size := (level + 1) * 10000000
					fmt.Fprintf(w, "%s,%s,%d,BID\n", bond.ProductID(), bondprice.Format(bid), size)
					fmt.Fprintf(w, "%s,%s,%d,OFFER\n", bond.ProductID(), bondprice.Format(offer), size)
				}

				mid += dir
				if mid >= ceilingTicks || mid <= floorTicks {
					dir = -dir
				}
			}
		}
	})

	writeFile("trades.txt", func(w *bufio.Writer) {
		books := []string{"TRSY1", "TRSY2", "TRSY3"}
		for _, bond := range bonds {
			for i := 0; i < *tradesPerBond; i++ {
				side := "BUY"
				price := bondprice.FromTicks(99 * bondprice.TicksPerPoint)
				if i%2 == 1 {
					side = "SELL"
					price = bondprice.FromTicks(100 * bondprice.TicksPerPoint)
				}
				qty := int64(1+i%5) * 1000000
				fmt.Fprintf(w, "%s,T%s%d,%s,%s,%d,%s\n",
					bond.ProductID(), bond.ProductID(), i, bondprice.Format(price), books[i%len(books)], qty, side)
			}
		}
	})

	writeFile("inquiries.txt", func(w *bufio.Writer) {
		for _, bond := range bonds {
			for i := 0; i < *inquiriesEach; i++ {
				side := "BUY"
				if i%2 == 1 {
					side = "SELL"
				}
				qty := int64(1+i%5) * 1000000
				price := bondprice.FromTicks(int64(floorTicks) + int64(rng.Intn(2*bondprice.TicksPerPoint)))
				fmt.Fprintf(w, "INQ%s%d,%s,%s,%d,%s,RECEIVED\n",
					bond.ProductID(), i, bond.ProductID(), side, qty, bondprice.Format(price))
			}
		}
	})

	fmt.Println(green("Done"))
}

func writeFile(name string, fill func(w *bufio.Writer)) {
	f, err := os.Create(filepath.Join(*outDir, name))
	if err != nil {
		log.Fatalf("Failed to create %s: %v", name, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fill(w)
	if err := w.Flush(); err != nil {
		log.Fatalf("Failed to write %s: %v", name, err)
	}
	fmt.Printf("  wrote %s\n", name)
}
