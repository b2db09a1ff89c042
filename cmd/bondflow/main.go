package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/quantsys/bondflow/config"
	backend "github.com/quantsys/bondflow/pkg/backend/redis"
	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/db/queue"
	"github.com/quantsys/bondflow/pkg/execution"
	"github.com/quantsys/bondflow/pkg/gui"
	"github.com/quantsys/bondflow/pkg/history"
	"github.com/quantsys/bondflow/pkg/inquiry"
	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/messaging"
	kafkaq "github.com/quantsys/bondflow/pkg/messaging/kafka"
	"github.com/quantsys/bondflow/pkg/position"
	"github.com/quantsys/bondflow/pkg/pricing"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/risk"
	"github.com/quantsys/bondflow/pkg/streaming"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	logging.Setup(logging.Config{
		Level:  cfg.Pipeline.LogLevel,
		Pretty: cfg.Pipeline.LogFormat == "pretty",
		Output: os.Stdout,
	})
	logger := zlog.Logger

	if err := os.MkdirAll(cfg.Pipeline.OutDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create output directory")
	}

	// Optional audit row publisher
	var sender messaging.MessageSender
	if cfg.Kafka.Enabled {
		switch cfg.Kafka.Driver {
		case config.KafkaDriverKafkaGo:
			sender, err = kafkaq.NewKafkaMessageSender(cfg.Kafka.BrokerAddr, cfg.Kafka.Topic)
		default:
			sender, err = queue.NewSenderPool(queue.DefaultPoolSize)
		}
		if err != nil {
			logger.Fatal().Err(err).Str("driver", cfg.Kafka.Driver).Msg("Failed to create Kafka sender")
		}
		defer sender.Close()
	}

	// Optional latest-row snapshot store
	var snapshots *backend.SnapshotStore
	if cfg.Redis.Enabled {
		backend.SetDefaultRedisOptions(&backend.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		zapLogger, err := zap.NewProduction()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create zap logger")
		}
		snapshots = backend.NewSnapshotStore(backend.GetRedisClient(), "bondflow", zapLogger)
		defer snapshots.Close()
	}

	src := refdata.OnTheRun()

	// Core services
	pricingSvc := pricing.NewService()
	pricingConn := pricing.NewConnector(pricingSvc, src)

	algoStreamSvc := streaming.NewAlgoService()
	streamingSvc := streaming.NewService()

	guiSvc := gui.NewService(mustCreate(logger, cfg.Pipeline.OutDir, "gui.txt"))

	mdSvc := marketdata.NewService(cfg.Pipeline.BookDepth)
	mdConn := marketdata.NewConnector(mdSvc, src)

	algoCfg, err := execution.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load algo configuration")
	}
	algoExecSvc := execution.NewAlgoService(algoCfg, execution.UUIDSource{})
	execSvc := execution.NewService()

	bookingSvc := booking.NewService()
	bookingConn := booking.NewConnector(bookingSvc, src)

	positionSvc := position.NewService()
	riskSvc := risk.NewService(src)

	inquirySvc := inquiry.NewService()
	inquiryConn := inquiry.NewConnector(inquirySvc, src)

	// Audit sinks
	positionHist := newHistory[position.Position](logger, "positions", cfg.Pipeline.OutDir, "positions.txt", sender, snapshots)
	riskHist := newHistory[risk.PV01](logger, "risk", cfg.Pipeline.OutDir, "risk.txt", sender, snapshots)
	executionHist := newHistory[execution.Order](logger, "executions", cfg.Pipeline.OutDir, "executions.txt", sender, snapshots)
	streamingHist := newHistory[streaming.Stream](logger, "streaming", cfg.Pipeline.OutDir, "streaming.txt", sender, snapshots)
	inquiryHist := newHistory[inquiry.Inquiry](logger, "allinquiries", cfg.Pipeline.OutDir, "allinquiries.txt", sender, snapshots)

	// Listener graph
	pricingSvc.AddListener(algoStreamSvc.PriceListener())
	pricingSvc.AddListener(guiSvc.PriceListener())
	algoStreamSvc.AddListener(streamingSvc.AlgoListener())
	streamingSvc.AddListener(streamingHist.Listener())

	mdSvc.AddListener(algoExecSvc.BookListener())
	algoExecSvc.AddListener(execSvc.AlgoListener())
	execSvc.AddListener(bookingSvc.ExecutionListener())
	execSvc.AddListener(executionHist.Listener())

	bookingSvc.AddListener(positionSvc.TradeListener())
	positionSvc.AddListener(riskSvc.PositionListener())
	positionSvc.AddListener(positionHist.Listener())
	riskSvc.AddListener(riskHist.Listener())

	inquirySvc.AddListener(inquiryHist.Listener())

	// Drive the input files to completion
	feed(logger, cfg.Pipeline.DataDir, "prices.txt", pricingConn.Subscribe)
	feed(logger, cfg.Pipeline.DataDir, "trades.txt", bookingConn.Subscribe)
	feed(logger, cfg.Pipeline.DataDir, "marketdata.txt", mdConn.Subscribe)
	feed(logger, cfg.Pipeline.DataDir, "inquiries.txt", inquiryConn.Subscribe)

	logger.Info().Msg("All input streams processed")
}

// newHistory builds a history service persisting to outDir/name with the
// optional Kafka and Redis hooks attached.
func newHistory[V history.Record](logger zerolog.Logger, stream, outDir, name string, sender messaging.MessageSender, snapshots *backend.SnapshotStore) *history.Service[V] {
	conn := history.NewConnector[V](stream, mustCreate(logger, outDir, name))
	if sender != nil {
		conn.SetSender(sender)
	}
	if snapshots != nil {
		conn.SetSnapshots(snapshots)
	}
	return history.NewService[V](stream, conn)
}

func mustCreate(logger zerolog.Logger, dir, name string) *os.File {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		logger.Fatal().Err(err).Str("file", name).Msg("Failed to create output file")
	}
	return f
}

func feed(logger zerolog.Logger, dir, name string, subscribe func(r io.Reader) error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		logger.Fatal().Err(err).Str("file", name).Msg("Failed to open input file")
	}
	defer f.Close()

	if err := subscribe(f); err != nil {
		logger.Fatal().Err(err).Str("file", name).Msg("Failed to process input file")
	}
	logger.Info().Str("file", name).Msg("Processed input file")
}
