// Command loadtest drives synthetic order book updates through the full
// in-process pipeline and reports end-to-end propagation latency.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/execution"
	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/position"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/risk"
)

var (
	updates   = flag.Int("updates", 100000, "Book updates to push through the pipeline")
	rateLimit = flag.Float64("rate", 0, "Updates per second, 0 for unlimited")
	depth     = flag.Int("book_depth", 10, "Order book depth per side")
)

func main() {
	flag.Parse()

	logging.Setup(logging.Config{Level: "warn", Output: os.Stderr})

	src := refdata.OnTheRun()
	bonds := src.Bonds()

	mdSvc := marketdata.NewService(*depth)

	algoCfg, err := execution.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load algo configuration: %v", err)
	}
	algoExecSvc := execution.NewAlgoService(algoCfg, execution.UUIDSource{})
	execSvc := execution.NewService()
	bookingSvc := booking.NewService()
	positionSvc := position.NewService()
	riskSvc := risk.NewService(src)

	mdSvc.AddListener(algoExecSvc.BookListener())
	algoExecSvc.AddListener(execSvc.AlgoListener())
	execSvc.AddListener(bookingSvc.ExecutionListener())
	bookingSvc.AddListener(positionSvc.TradeListener())
	positionSvc.AddListener(riskSvc.PositionListener())

	var limiter *rate.Limiter
	if *rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(*rateLimit), 1)
	}

	hist := hdrhistogram.New(1, int64(10*time.Second), 3)
	ctx := context.Background()

	mid := int64(100 * bondprice.TicksPerPoint)
	start := time.Now()
	for i := 0; i < *updates; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				log.Fatalf("Rate limiter: %v", err)
			}
		}

		bond := bonds[i%len(bonds)]
		book := syntheticBook(bond, mid+int64(i%16), int64(*depth))

		t0 := time.Now()
		if err := mdSvc.OnMessage(book); err != nil {
			log.Fatalf("Pipeline error on update %d: %v", i, err)
		}
		if err := hist.RecordValue(time.Since(t0).Nanoseconds()); err != nil {
			log.Fatalf("Histogram: %v", err)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("updates:    %d in %s (%.0f/s)\n", *updates, elapsed.Round(time.Millisecond), float64(*updates)/elapsed.Seconds())
	fmt.Printf("latency p50:  %s\n", time.Duration(hist.ValueAtQuantile(50)))
	fmt.Printf("latency p90:  %s\n", time.Duration(hist.ValueAtQuantile(90)))
	fmt.Printf("latency p99:  %s\n", time.Duration(hist.ValueAtQuantile(99)))
	fmt.Printf("latency max:  %s\n", time.Duration(hist.Max()))
}

// syntheticBook builds a tight two-tick book around mid so every update
// crosses the spread and exercises the whole downstream chain.
func syntheticBook(bond refdata.Bond, mid, depth int64) marketdata.OrderBook {
	bids := make([]marketdata.Order, 0, depth)
	offers := make([]marketdata.Order, 0, depth)
	for level := int64(0); level < depth; level++ {
		size := (level + 1) * 10000000
		bids = append(bids, marketdata.NewOrder(bondprice.FromTicks(mid-1-level), size, marketdata.Bid))
		offers = append(offers, marketdata.NewOrder(bondprice.FromTicks(mid+1+level), size, marketdata.Offer))
	}
	return marketdata.NewOrderBook(bond, bids, offers)
}
