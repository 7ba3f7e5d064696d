package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tealeg/xlsx/v2"

	"github.com/okian/brokerscore/internal/adapters/source"
	service "github.com/okian/brokerscore/internal/app"
	"github.com/okian/brokerscore/internal/domain/duration"
	"github.com/okian/brokerscore/internal/domain/normalize"
	"github.com/okian/brokerscore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Avaliacoes")
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range rows {
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

func TestServiceIntegration(t *testing.T) {
	Convey("Given a workbook exported by the shopper team", t, func() {
		path := writeWorkbook(t, [][]string{
			{"Nome", "Tempo Primeira Resposta", "Tempo Contato Corretor", "Personalização", "Número de Follow-ups", "Opções de Imóveis Enviadas", "Quantas Opções Enviadas"},
			{"Acme Imóveis", "00:04:30", "00:08:00", "6", "3", "Sim", "5"},
			{"Slow Realty", "02:00:00", "", "2", "0", "Não", ""},
			{"Broken Ltda", "ontem", "N/A", "muito bom", "", "", ""},
		})

		Convey("When loaded with table A", func() {
			svc := service.New(service.WithSource(source.NewXLSX(path)))
			report, err := svc.Load(context.Background())
			So(err, ShouldBeNil)
			So(report.Rows, ShouldEqual, 3)
			So(report.Malformed, ShouldEqual, 2)

			acme, _ := svc.GetByName(context.Background(), "acme imóveis")
			slow, _ := svc.GetByID(context.Background(), 2)
			broken, _ := svc.GetByID(context.Background(), 3)

			Convey("Then every row is scored from its columns", func() {
				So(acme.Scores.FirstResponse, ShouldEqual, 10)
				So(acme.Scores.BrokerHandoff, ShouldEqual, 8)
				So(acme.Scores.Personalization, ShouldEqual, 6)
				So(acme.Scores.Persistence, ShouldEqual, 6)
				So(acme.Scores.QuantitySent, ShouldEqual, 5)
				So(acme.TotalScore, ShouldEqual, 35)

				So(slow.Scores.FirstResponse, ShouldEqual, 0)
				So(slow.BrokerHandoffDuration, ShouldEqual, duration.NotAvailable)
				So(slow.TotalScore, ShouldEqual, 2)

				So(broken.TotalScore, ShouldEqual, 0)
				So(broken.FirstResponseDuration, ShouldEqual, duration.NotAvailable)
			})

			Convey("Then malformed cells are reported, not fatal", func() {
				So(report.Problems, ShouldHaveLength, 2)
				for _, p := range report.Problems {
					So(p.Row, ShouldEqual, 3)
					So(p.Kind, ShouldEqual, normalize.KindMalformed)
				}
			})
		})

		Convey("When loaded with table B", func() {
			n := normalize.New(normalize.WithClassifier(scoring.NewClassifier(scoring.WithTable(scoring.TableB))))
			svc := service.New(service.WithSource(source.NewXLSX(path)), service.WithNormalizer(n))
			_, err := svc.Load(context.Background())
			So(err, ShouldBeNil)

			slow, _ := svc.GetByID(context.Background(), 2)
			So(slow.Scores.FirstResponse, ShouldEqual, 6)
		})
	})
}
