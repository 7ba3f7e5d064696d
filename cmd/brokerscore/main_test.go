package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tealeg/xlsx/v2"

	"github.com/okian/brokerscore/internal/domain/benchmark"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Avaliacoes")
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range [][]string{
		{"Nome", "Tempo Primeira Resposta", "Tempo Contato Corretor", "Personalização", "Número de Follow-ups", "Opções de Imóveis Enviadas", "Quantas Opções Enviadas"},
		{"Acme Imóveis", "00:04:30", "00:08:00", "6", "3", "Sim", "5"},
		{"Slow Realty", "02:00:00", "", "2", "0", "Não", ""},
		{"Broken Ltda", "ontem", "N/A", "muito bom", "", "", ""},
	} {
		row := sheet.AddRow()
		for _, v := range data {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "avaliacoes.xlsx")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command and returns stdout, stderr and the error.
func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestScoreCommand(t *testing.T) {
	convey.Convey("Given a workbook with three evaluations", t, func() {
		path := writeWorkbook(t)

		convey.Convey("When scored as a table", func() {
			out, errOut, err := run("score", path)

			convey.Convey("Then rows are printed best first with a diagnostics footer", func() {
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				convey.So(lines, convey.ShouldHaveLength, 4)
				convey.So(lines[0], convey.ShouldContainSubstring, "TOTAL")
				convey.So(lines[1], convey.ShouldContainSubstring, "Acme Imóveis")
				convey.So(lines[1], convey.ShouldEndWith, "35.0")
				convey.So(lines[3], convey.ShouldContainSubstring, "Broken Ltda")
				convey.So(errOut, convey.ShouldContainSubstring, "3 evaluations")
				convey.So(errOut, convey.ShouldContainSubstring, "2 malformed values")
			})
		})

		convey.Convey("When scored as JSON with table B and a limit", func() {
			out, _, err := run("score", path, "--json", "--top", "2", "--table", "B")

			convey.Convey("Then only the best two are encoded with their rank", func() {
				convey.So(err, convey.ShouldBeNil)
				var rows []scoredRow
				convey.So(json.Unmarshal([]byte(out), &rows), convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 2)
				convey.So(rows[0].Rank, convey.ShouldEqual, 1)
				convey.So(rows[1].Name, convey.ShouldEqual, "Slow Realty")
				convey.So(rows[1].Scores.FirstResponse, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When problems are requested", func() {
			_, errOut, err := run("score", path, "--problems")

			convey.Convey("Then each malformed cell is listed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(errOut, convey.ShouldContainSubstring, `"ontem"`)
				convey.So(errOut, convey.ShouldContainSubstring, `"muito bom"`)
			})
		})

		convey.Convey("When the workbook does not exist", func() {
			_, _, err := run("score", filepath.Join(t.TempDir(), "missing.xlsx"))

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRankCommand(t *testing.T) {
	convey.Convey("Given a workbook with three evaluations", t, func() {
		path := writeWorkbook(t)

		convey.Convey("When one brokerage is ranked by name", func() {
			out, _, err := run("rank", path, "ACME imóveis")

			convey.Convey("Then its position and benchmark band are shown", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldStartWith, "Acme Imóveis\n")
				convey.So(out, convey.ShouldContainSubstring, "1 of 3")
				convey.So(out, convey.ShouldContainSubstring, "second quartile")
				convey.So(out, convey.ShouldContainSubstring, "first response 00:04:30 (excellent)")
				convey.So(out, convey.ShouldNotContainSubstring, "estimated")
			})
		})

		convey.Convey("When ranked as JSON", func() {
			out, _, err := run("rank", path, "Slow Realty", "--json")

			convey.Convey("Then the standing decodes", func() {
				convey.So(err, convey.ShouldBeNil)
				var st standing
				convey.So(json.Unmarshal([]byte(out), &st), convey.ShouldBeNil)
				convey.So(st.Position.Rank, convey.ShouldEqual, 2)
				convey.So(st.Quartile, convey.ShouldEqual, "bottom quartile")
				convey.So(st.Summary.Strongest, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When the name is unknown", func() {
			_, _, err := run("rank", path, "Nobody")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestBenchmarkCommand(t *testing.T) {
	convey.Convey("Given the benchmark command", t, func() {
		convey.Convey("When printing the default snapshot as YAML", func() {
			out, _, err := run("benchmark")

			convey.Convey("Then the version is present", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "version: "+benchmark.DefaultVersion)
				convey.So(out, convey.ShouldContainSubstring, "top_quintile:")
			})
		})

		convey.Convey("When printing it as JSON", func() {
			out, _, err := run("benchmark", "--format", "json")

			convey.Convey("Then it decodes to the default snapshot", func() {
				convey.So(err, convey.ShouldBeNil)
				var stats benchmark.Statistics
				convey.So(json.Unmarshal([]byte(out), &stats), convey.ShouldBeNil)
				convey.So(stats.Size, convey.ShouldEqual, benchmark.Default().Size)
			})
		})

		convey.Convey("When deriving it from a workbook", func() {
			out, _, err := run("benchmark", "--from", writeWorkbook(t), "--format", "json")

			convey.Convey("Then the population is summarized", func() {
				convey.So(err, convey.ShouldBeNil)
				var stats benchmark.Statistics
				convey.So(json.Unmarshal([]byte(out), &stats), convey.ShouldBeNil)
				convey.So(stats.Source, convey.ShouldEqual, benchmark.SourcePopulation)
				convey.So(stats.Size, convey.ShouldEqual, 3)
				convey.So(stats.MaxTotal, convey.ShouldEqual, 35)
			})
		})

		convey.Convey("When the format is unknown", func() {
			_, _, err := run("benchmark", "--format", "xml")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServeCommand(t *testing.T) {
	convey.Convey("Given the serve command", t, func() {
		convey.Convey("When no workbook is configured", func() {
			_, _, err := run("serve")

			convey.Convey("Then it refuses to start", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "no workbook")
			})
		})

		convey.Convey("When the context ends shortly after start", func() {
			path := writeWorkbook(t)
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"serve", path, "--addr", "127.0.0.1:0"})
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			err := root.ExecuteContext(ctx)

			convey.Convey("Then it loads, shuts down and returns cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the config is invalid", func() {
			_, _, err := run("serve", "--table", "Z")

			convey.Convey("Then setup fails before serving", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestCellText(t *testing.T) {
	convey.Convey("Given names wider than the column", t, func() {
		convey.Convey("Then they are truncated by display width", func() {
			got := cellText("Imobiliária São João dos Campos Elíseos", 12)
			convey.So(got, convey.ShouldEqual, "Imobiliária…")
		})

		convey.Convey("Then short names are padded", func() {
			convey.So(cellText("Acme", 6), convey.ShouldEqual, "Acme  ")
		})

		convey.Convey("Then quartile bands follow the benchmark", func() {
			q := benchmark.Quartiles{Q1: 25, Q2: 40, Q3: 58}
			convey.So(quartileBand(10, q), convey.ShouldEqual, "bottom quartile")
			convey.So(quartileBand(40, q), convey.ShouldEqual, "third quartile")
			convey.So(quartileBand(80, q), convey.ShouldEqual, "top quartile")
		})
	})
}
