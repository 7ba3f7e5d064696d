package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/brokerscore/internal/config"
	"github.com/okian/brokerscore/internal/domain/fields"
	"github.com/okian/brokerscore/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.TierTable, convey.ShouldEqual, scoring.TableNameA)
			convey.So(cfg.FoldAccents, convey.ShouldBeTrue)
			convey.So(cfg.MinAliasLength, convey.ShouldEqual, fields.DefaultMinAliasLength)
			convey.So(cfg.NormalizeWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.BenchmarkMode, convey.ShouldEqual, config.BenchmarkStatic)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
			convey.So(cfg.ReloadInterval, convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then Table resolves to table A", func() {
			convey.So(cfg.Table().Name, convey.ShouldEqual, scoring.TableNameA)
			convey.So(cfg.PopulationBenchmark(), convey.ShouldBeFalse)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one invalid setting each", t, func() {
		cases := map[string]func(c *config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = "" },
			"zero limit":        func(c *config.Config) { c.MaxLeaderboardLimit = 0 },
			"zero workers":      func(c *config.Config) { c.NormalizeWorkers = 0 },
			"negative alias":    func(c *config.Config) { c.MinAliasLength = -1 },
			"negative sheet":    func(c *config.Config) { c.SheetIndex = -2 },
			"negative interval": func(c *config.Config) { c.ReloadInterval = -time.Second },
			"unknown table":     func(c *config.Config) { c.TierTable = "C" },
			"unknown mode":      func(c *config.Config) { c.BenchmarkMode = "live" },
			"unknown level":     func(c *config.Config) { c.LogLevel = "verbose" },
			"unknown format":    func(c *config.Config) { c.LogFormat = "xml" },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+name+" is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given table B and population mode in mixed case", t, func() {
		cfg := config.New()
		cfg.TierTable = "b"
		cfg.BenchmarkMode = "Population"

		convey.Convey("Then it validates and resolves accordingly", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.Table().Name, convey.ShouldEqual, scoring.TableNameB)
			convey.So(cfg.PopulationBenchmark(), convey.ShouldBeTrue)
		})
	})
}
