package web

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/narrative"
)

// number encodes NaN and infinities as null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(decimal.NewFromFloat(f).String()), nil
}

type timeEstimateDTO struct {
	Min       number `json:"min"`
	Max       number `json:"max"`
	Formatted string `json:"formatted"`
}

type remarkDTO struct {
	Code domain.Remark `json:"code"`
	Text string        `json:"text"`
}

type timeAnalysisDTO struct {
	BuyTime    timeEstimateDTO `json:"buyTime"`
	SellTime   timeEstimateDTO `json:"sellTime"`
	TotalTime  timeEstimateDTO `json:"totalTime"`
	Confidence number          `json:"confidence"`
	Factors    []remarkDTO     `json:"factors"`
	Advice     []remarkDTO     `json:"advice"`
}

type opportunityDTO struct {
	ItemID               string          `json:"itemId"`
	Name                 string          `json:"name"`
	Icon                 string          `json:"icon"`
	BuyPrice             number          `json:"buyPrice"`
	SellPrice            number          `json:"sellPrice"`
	NetSellPrice         number          `json:"netSellPrice"`
	Volume               number          `json:"volume"`
	ProfitPerItem        number          `json:"profitPerItem"`
	TotalPotentialProfit number          `json:"totalPotentialProfit"`
	ROI                  number          `json:"roi"`
	BuyLimit             number          `json:"buyLimit"`
	Confidence           number          `json:"confidence"`
	PriceStability       number          `json:"priceStability"`
	RecommendedQuantity  number          `json:"recommendedQuantity"`
	ExpectedTimeToSell   string          `json:"expectedTimeToSell"`
	ConfidenceToProfit   number          `json:"confidenceToProfit"`
	TimeAnalysis         timeAnalysisDTO `json:"timeAnalysis"`
	Members              bool            `json:"members"`
}

type inspectionDTO struct {
	Validation    domain.ValidationResult `json:"validation"`
	Warnings      []string                `json:"warnings"`
	Opportunity   *opportunityDTO         `json:"opportunity"`
	VolumeRemarks []remarkDTO             `json:"volumeAnalysis"`
	AdviceRemarks []remarkDTO             `json:"tradingAdvice"`
	Profitable    bool                    `json:"profitable"`
}

type narrativeDTO struct {
	Remarks []remarkDTO `json:"remarks"`
	Text    string      `json:"text"`
}

func toTimeEstimate(e domain.TimeEstimate) timeEstimateDTO {
	return timeEstimateDTO{Min: number(e.Min), Max: number(e.Max), Formatted: e.Formatted}
}

func toRemarks(r narrative.Renderer, remarks []domain.Remark) []remarkDTO {
	out := make([]remarkDTO, len(remarks))
	for i, remark := range remarks {
		out[i] = remarkDTO{Code: remark, Text: r.Render(remark)}
	}
	return out
}

func toTimeAnalysis(r narrative.Renderer, t domain.TradeTimeAnalysis) timeAnalysisDTO {
	return timeAnalysisDTO{
		BuyTime:    toTimeEstimate(t.BuyTime),
		SellTime:   toTimeEstimate(t.SellTime),
		TotalTime:  toTimeEstimate(t.TotalTime),
		Confidence: number(t.Confidence),
		Factors:    toRemarks(r, t.Factors),
		Advice:     toRemarks(r, t.Advice),
	}
}

func toOpportunity(r narrative.Renderer, o domain.TradeOpportunity) opportunityDTO {
	return opportunityDTO{
		ItemID:               o.ItemID,
		Name:                 o.Name,
		Icon:                 o.Icon,
		BuyPrice:             number(o.BuyPrice),
		SellPrice:            number(o.SellPrice),
		NetSellPrice:         number(o.NetSellPrice),
		Volume:               number(o.Volume),
		ProfitPerItem:        number(o.ProfitPerItem),
		TotalPotentialProfit: number(o.TotalPotentialProfit),
		ROI:                  number(o.ROI),
		BuyLimit:             number(o.BuyLimit),
		Confidence:           number(o.Confidence),
		PriceStability:       number(o.PriceStability),
		RecommendedQuantity:  number(o.RecommendedQuantity),
		ExpectedTimeToSell:   o.ExpectedTimeToSell,
		ConfidenceToProfit:   number(o.ConfidenceToProfit),
		TimeAnalysis:         toTimeAnalysis(r, o.TimeAnalysis),
		Members:              o.Members,
	}
}

func toOpportunities(r narrative.Renderer, opps []domain.TradeOpportunity) []opportunityDTO {
	out := make([]opportunityDTO, len(opps))
	for i, o := range opps {
		out[i] = toOpportunity(r, o)
	}
	return out
}

func toInspection(r narrative.Renderer, in analyzer.Inspection) inspectionDTO {
	dto := inspectionDTO{
		Validation:    in.Validation,
		Warnings:      in.Warnings,
		VolumeRemarks: toRemarks(r, in.VolumeRemarks),
		AdviceRemarks: toRemarks(r, in.AdviceRemarks),
		Profitable:    in.Profitable(),
	}
	if dto.Warnings == nil {
		dto.Warnings = []string{}
	}
	if in.Opportunity != nil {
		opp := toOpportunity(r, *in.Opportunity)
		dto.Opportunity = &opp
	}
	return dto
}
