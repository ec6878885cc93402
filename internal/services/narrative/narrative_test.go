package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vadiminshakov/geflip/internal/domain"
)

func TestEnglish_RendersEveryRemark(t *testing.T) {
	r := English{}
	for _, remark := range domain.Remarks() {
		t.Run(remark.String(), func(t *testing.T) {
			text := r.Render(remark)
			assert.NotEmpty(t, text)
			assert.NotEqual(t, remark.String(), text, "remark has no English wording")
		})
	}
}

func TestEnglish_UnknownRemark(t *testing.T) {
	assert.Equal(t, "something_new", English{}.Render(domain.Remark("something_new")))
}

func TestJoin(t *testing.T) {
	text := Join(English{}, []domain.Remark{domain.RemarkFrequentTrading, domain.RemarkLowerRisk})
	assert.Equal(t,
		"High volume makes this item suitable for frequent trading. Price stability is high, making this a lower-risk trade.",
		text,
	)

	assert.Equal(t, "", Join(English{}, nil))
}

func TestTexts_KeepsOrder(t *testing.T) {
	texts := Texts(English{}, []domain.Remark{domain.RemarkSplitOrders, domain.RemarkHighVolatility})
	assert.Equal(t, []string{
		"Use multiple small orders instead of one large order",
		"High price volatility",
	}, texts)
}
