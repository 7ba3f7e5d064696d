package model_test

import (
	"testing"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRawRecordKeys(t *testing.T) {
	convey.Convey("Given a raw record", t, func() {
		row := model.RawRecord{"Nome": "Acme", "Adaptabilidade": 3, "TempoPrimeiraResposta": "00:04:30"}

		convey.Convey("Then keys come back in lexical order", func() {
			convey.So(row.Keys(), convey.ShouldResemble, []string{"Adaptabilidade", "Nome", "TempoPrimeiraResposta"})
		})

		convey.Convey("Then an empty record has no keys", func() {
			convey.So(model.RawRecord{}.Keys(), convey.ShouldBeEmpty)
		})
	})
}

func TestCategoriesSum(t *testing.T) {
	convey.Convey("Given category totals at their maxima", t, func() {
		c := model.Categories{ResponseTime: 25, ServiceQuality: 25, ListingPresentation: 20, FollowUp: 15, ClientExperience: 15}
		convey.So(c.Sum(), convey.ShouldEqual, 100)
	})
}

func TestEvaluationSentItems(t *testing.T) {
	convey.Convey("Given the items-sent flag", t, func() {
		convey.So(model.Evaluation{ItemsSent: model.ItemsSentYes}.SentItems(), convey.ShouldBeTrue)
		convey.So(model.Evaluation{ItemsSent: model.ItemsSentNo}.SentItems(), convey.ShouldBeFalse)
		convey.So(model.Evaluation{}.SentItems(), convey.ShouldBeFalse)
	})
}
