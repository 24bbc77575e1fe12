package main

import (
	"context"
	"delivery-schedule-service/internal/adapters/repositories"
	"delivery-schedule-service/internal/adapters/storage"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/services"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type options struct {
	input     string
	out       string
	maxPlanes int
	maxTrucks int
	verify    bool
	summary   bool
	logLevel  string
}

func main() {
	var opts options

	pflag.StringVarP(&opts.input, "input", "i", "data/seeds/deliveries.json", "deliveries JSON file")
	pflag.StringVarP(&opts.out, "out", "o", "schedule.json", "schedule output file")
	pflag.IntVar(&opts.maxPlanes, "max-planes", 1, "planes available per time slot")
	pflag.IntVar(&opts.maxTrucks, "max-trucks", 1, "trucks available per time slot")
	pflag.BoolVar(&opts.verify, "verify", false, "check the schedule invariants before writing")
	pflag.BoolVar(&opts.summary, "summary", false, "print per-vehicle usage")
	pflag.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pflag.Parse()

	logger, err := obs.InitLogger(opts.logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		logger.Error("schedule failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, w io.Writer) error {
	deliveries, err := repositories.NewJSONDeliveryRepository(opts.input).ListDeliveries(ctx)
	if err != nil {
		return err
	}

	capacity := domain.Capacity{MaxPlanes: opts.maxPlanes, MaxTrucks: opts.maxTrucks}

	schedule, err := services.ScheduleDeliveries(deliveries, capacity)
	if err != nil {
		return err
	}

	if opts.verify {
		if err := services.VerifySchedule(schedule, deliveries); err != nil {
			return err
		}
	}

	if err := storage.NewJSONScheduleStore(opts.out).SaveSchedule(ctx, uuid.NewString(), schedule); err != nil {
		return err
	}

	fmt.Fprintf(w, "Makespan: %d\n", schedule.Makespan())

	if opts.summary {
		for _, u := range services.Summarize(schedule).Usage {
			fmt.Fprintf(w, "%s: capacity=%d busy=%d peak=%d utilization=%.2f\n",
				u.Vehicle, u.Capacity, u.BusySlots, u.Peak, u.Utilization)
		}
	}

	return nil
}
