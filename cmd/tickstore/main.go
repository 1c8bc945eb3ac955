package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muhammadchandra19/tickstore/internal/config"
	calendarv1 "github.com/muhammadchandra19/tickstore/internal/domain/calendar/v1"
	contractv1 "github.com/muhammadchandra19/tickstore/internal/domain/contract/v1"
	hotrulev1 "github.com/muhammadchandra19/tickstore/internal/domain/hotrule/v1"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rules"
	"github.com/muhammadchandra19/tickstore/internal/usecase/query"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

func main() {
	var (
		code   = flag.String("code", "", "standard code to query, e.g. SHFE.rb.HOT or SSE.600000Q")
		kind   = flag.String("kind", "bar", "record kind: bar, tick, queue, order, trans")
		period = flag.String("period", "min1", "bar period: min1, min5, day")
		count  = flag.Int("count", 0, "fetch the newest N records ending at -etime")
		stime  = flag.Uint64("stime", 0, "range start key (inclusive)")
		etime  = flag.Uint64("etime", 0, "end key, 0 means now")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	hotRules := rules.NewFileProvider(lg)
	if cfg.Store.HotsFile != "" {
		if err := hotRules.LoadFile(hotrulev1.RuleStd, cfg.Store.HotsFile); err != nil {
			os.Exit(1)
		}
	}
	if cfg.Store.SecondsFile != "" {
		if err := hotRules.LoadFile(hotrulev1.RuleSecond, cfg.Store.SecondsFile); err != nil {
			os.Exit(1)
		}
	}

	engine := query.NewEngine(cfg.Store, query.Deps{
		Calendar:  naiveCalendar{},
		Contracts: conventionContracts{},
		HotRules:  hotRules,
	}, lg)
	engine.Start()
	defer engine.Close()

	lg.Info("tickstore started",
		logger.Field{Key: "root", Value: cfg.Store.RootDir},
	)

	if *code == "" {
		// No query requested: stay up so the rings can be inspected under
		// the janitor until interrupted.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		lg.Info("shutting down")
		return
	}

	if err := runQuery(engine, *code, *kind, *period, *count, *stime, *etime); err != nil {
		lg.Error(err, logger.Field{Key: "code", Value: *code})
		os.Exit(1)
	}
}

func runQuery(engine *query.Engine, code, kind, periodName string, count int, stime, etime uint64) error {
	switch kind {
	case "bar":
		period, err := parsePeriod(periodName)
		if err != nil {
			return err
		}
		slice, err := queryKind(engine.BarSliceByCount, engine.BarSliceByRange, code, period, count, stime, etime)
		if err != nil {
			return err
		}
		printSlice(slice, func(b *market.Bar) string {
			return fmt.Sprintf("%d %010d O=%.4f H=%.4f L=%.4f C=%.4f V=%.0f",
				b.Date, b.Time, b.Open, b.High, b.Low, b.Close, b.Volume)
		})
		return nil
	case "tick":
		slice, err := queryFlat(engine.TickSliceByCount, engine.TickSliceByRange, code, count, stime, etime)
		if err != nil {
			return err
		}
		printSlice(slice, func(t *market.Tick) string {
			return fmt.Sprintf("%d %09d price=%.4f vol=%.0f bid=%.4f ask=%.4f",
				t.ActionDate, t.ActionTime, t.Price, t.Volume, t.BidPrices[0], t.AskPrices[0])
		})
		return nil
	case "queue":
		slice, err := queryFlat(engine.OrderQueueSliceByCount, engine.OrderQueueSliceByRange, code, count, stime, etime)
		if err != nil {
			return err
		}
		printSlice(slice, func(q *market.OrderQueue) string {
			return fmt.Sprintf("%d %09d side=%d price=%.4f orders=%d",
				q.ActionDate, q.ActionTime, q.Side, q.Price, q.OrderItems)
		})
		return nil
	case "order":
		slice, err := queryFlat(engine.OrderDetailSliceByCount, engine.OrderDetailSliceByRange, code, count, stime, etime)
		if err != nil {
			return err
		}
		printSlice(slice, func(d *market.OrderDetail) string {
			return fmt.Sprintf("%d %09d idx=%d side=%d price=%.4f vol=%d",
				d.ActionDate, d.ActionTime, d.Index, d.Side, d.Price, d.Volume)
		})
		return nil
	case "trans":
		slice, err := queryFlat(engine.TransactionSliceByCount, engine.TransactionSliceByRange, code, count, stime, etime)
		if err != nil {
			return err
		}
		printSlice(slice, func(x *market.Transaction) string {
			return fmt.Sprintf("%d %09d type=%d price=%.4f vol=%d",
				x.ActionDate, x.ActionTime, x.TType, x.Price, x.Volume)
		})
		return nil
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
}

func parsePeriod(name string) (market.Period, error) {
	switch name {
	case "min1":
		return market.PeriodMinute1, nil
	case "min5":
		return market.PeriodMinute5, nil
	case "day":
		return market.PeriodDay, nil
	default:
		return 0, fmt.Errorf("unknown period %q", name)
	}
}

func queryKind[T any](
	byCount func(string, market.Period, int, uint64) (*market.Slice[T], error),
	byRange func(string, market.Period, uint64, uint64) (*market.Slice[T], error),
	code string, period market.Period, count int, stime, etime uint64,
) (*market.Slice[T], error) {
	if count > 0 {
		return byCount(code, period, count, etime)
	}
	return byRange(code, period, stime, etime)
}

func queryFlat[T any](
	byCount func(string, int, uint64) (*market.Slice[T], error),
	byRange func(string, uint64, uint64) (*market.Slice[T], error),
	code string, count int, stime, etime uint64,
) (*market.Slice[T], error) {
	if count > 0 {
		return byCount(code, count, etime)
	}
	return byRange(code, stime, etime)
}

func printSlice[T any](s *market.Slice[T], format func(*T) string) {
	for i := 0; i < s.Len(); i++ {
		fmt.Println(format(s.At(i)))
	}
	fmt.Printf("%d records\n", s.Len())
}

// naiveCalendar treats every calendar day as a trading date and rolls night
// session data (19:00 onward) into the next day. Deployments with real
// holiday calendars plug their own implementation into the engine.
type naiveCalendar struct{}

const nightSessionStart = 1900 // hhmm

var _ calendarv1.Service = naiveCalendar{}

func (naiveCalendar) TradingDateFor(commodity string, actionDate, actionTime uint32) uint32 {
	if actionTime < nightSessionStart {
		return actionDate
	}
	return nextCalendarDate(actionDate)
}

func (naiveCalendar) CurrentTradingDate(commodity string) uint32 {
	now := time.Now()
	date := uint32(now.Year()*10000 + int(now.Month())*100 + now.Day())
	hhmm := uint32(now.Hour()*100 + now.Minute())
	if hhmm < nightSessionStart {
		return date
	}
	return nextCalendarDate(date)
}

func nextCalendarDate(date uint32) uint32 {
	t := time.Date(int(date/10000), time.Month(date/100%100), int(date%100), 0, 0, 0, 0, time.UTC)
	t = t.AddDate(0, 0, 1)
	return uint32(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// conventionContracts classifies instruments by product id convention: the
// stock product is an equity, everything else a rolling future.
type conventionContracts struct{}

var _ contractv1.Service = conventionContracts{}

func (conventionContracts) Info(exchg, product string) (contractv1.Info, bool) {
	if strings.EqualFold(product, market.StockProduct) {
		return contractv1.Info{Category: contractv1.CategoryStock, VolScale: 1}, true
	}
	return contractv1.Info{Category: contractv1.CategoryFuture, VolScale: 1, Rolling: true}, true
}
