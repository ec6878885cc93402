package domain

// Remark tagged qualitative observation or recommendation.
// Remarks carry no wording; text is produced by a narrative renderer.
type Remark string

// time estimate factors
const (
	RemarkVeryLowVolume       Remark = "very_low_volume"
	RemarkHighVolumeLiquidity Remark = "high_volume_liquidity"
	RemarkHighVolatility      Remark = "high_volatility"
	RemarkStablePrices        Remark = "stable_prices"
	RemarkReachesBuyLimit     Remark = "reaches_buy_limit"
)

// time estimate advice
const (
	RemarkReduceTradeSize      Remark = "reduce_trade_size"
	RemarkFasterThanEstimated  Remark = "faster_than_estimated"
	RemarkSplitOrders          Remark = "split_orders"
	RemarkLargerOrders         Remark = "larger_orders"
	RemarkMultipleLimitPeriods Remark = "multiple_limit_periods"
)

// volume analysis
const (
	RemarkVolumeBelowLimit       Remark = "volume_below_limit"
	RemarkVolumeAboveLimit       Remark = "volume_above_limit"
	RemarkExcellentLiquidity     Remark = "excellent_liquidity"
	RemarkDecentLiquidity        Remark = "decent_liquidity"
	RemarkCautionLargeQuantities Remark = "caution_large_quantities"
	RemarkDelayedTradeRisk       Remark = "delayed_trade_risk"
)

// trading advice
const (
	RemarkFrequentTrading     Remark = "frequent_trading"
	RemarkPatientTraders      Remark = "patient_traders"
	RemarkLowerRisk           Remark = "lower_risk"
	RemarkVolatilityUpside    Remark = "volatility_upside"
	RemarkReliableOpportunity Remark = "reliable_opportunity"
	RemarkCarefulMonitoring   Remark = "careful_monitoring"
)

// Remarks lists every known remark, in declaration order.
func Remarks() []Remark {
	return []Remark{
		RemarkVeryLowVolume, RemarkHighVolumeLiquidity, RemarkHighVolatility,
		RemarkStablePrices, RemarkReachesBuyLimit,
		RemarkReduceTradeSize, RemarkFasterThanEstimated, RemarkSplitOrders,
		RemarkLargerOrders, RemarkMultipleLimitPeriods,
		RemarkVolumeBelowLimit, RemarkVolumeAboveLimit, RemarkExcellentLiquidity,
		RemarkDecentLiquidity, RemarkCautionLargeQuantities, RemarkDelayedTradeRisk,
		RemarkFrequentTrading, RemarkPatientTraders, RemarkLowerRisk,
		RemarkVolatilityUpside, RemarkReliableOpportunity, RemarkCarefulMonitoring,
	}
}

// String returns the remark code.
func (r Remark) String() string {
	return string(r)
}
