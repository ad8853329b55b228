package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clambin/cubecycler/internal/configuration"
	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/cycler"
	"github.com/clambin/cubecycler/internal/output"
	"github.com/clambin/cubecycler/internal/selector"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := configuration.GetConfigFromArgs(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("version", configuration.BuildVersion).Info("cubecycler starting")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, prometheus.DefaultRegisterer); err != nil {
		log.WithError(err).Fatal("cubecycler failed")
	}
	log.Info("cubecycler exiting")
}

func run(ctx context.Context, cfg configuration.Configuration, reg prometheus.Registerer) error {
	sink, closer, err := makeSink(cfg.Output)
	if err != nil {
		return err
	}
	defer closer()

	s, err := selector.New(cfg.Selector.Mode, cfg.Selector.Path)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	if cfg.SelfTest.Enabled {
		if err = cycler.SelfTest(ctx, sink, cfg.SelfTest.Hold, clock); err != nil {
			// interrupted
			return nil
		}
	}

	c := cycler.New(cfg.Traversal.Engine(), s, sink, clock)
	reg.MustRegister(c.Metrics)

	log.WithFields(log.Fields{
		"mode":   cfg.Selector.Mode,
		"output": cfg.Output.Mode,
		"bounds": cfg.Traversal.Bounds(),
	}).Info("cycling through the color cube")

	g, ctx := errgroup.WithContext(ctx)
	if cfg.PrometheusAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		runHTTPServer(ctx, cfg.PrometheusAddr, mux, g)
	}
	g.Go(func() error { return c.Run(ctx, cfg.Poll) })
	return g.Wait()
}

func makeSink(cfg configuration.OutputConfiguration) (output.Sink, func(), error) {
	logSink := output.Log{}
	switch cfg.Mode {
	case configuration.OutputSysfs:
		s, err := output.NewSysfs(cfg.Red, cfg.Green, cfg.Blue)
		if err != nil {
			return nil, nil, err
		}
		return output.Multi{s, logSink}, func() { s.Write(cube.Coordinate{}) }, nil
	case configuration.OutputPWM:
		p, err := output.NewPWM(cfg.Red, cfg.Green, cfg.Blue, cfg.PWMFrequency)
		if err != nil {
			return nil, nil, err
		}
		return output.Multi{p, logSink}, func() {
			if err := p.Halt(); err != nil {
				log.WithError(err).Warning("failed to halt pwm output")
			}
		}, nil
	default:
		return logSink, func() {}, nil
	}
}

func runHTTPServer(ctx context.Context, addr string, h http.Handler, g *errgroup.Group) {
	s := &http.Server{Addr: addr, Handler: h}
	g.Go(func() error {
		err := s.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			log.WithError(err).Error("metrics server failed to start")
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.Shutdown(stopCtx)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			log.WithError(err).Error("metrics server failed to stop")
		}
		return err
	})
}
