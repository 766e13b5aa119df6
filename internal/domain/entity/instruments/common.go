package instruments

// CommonDividend is the dividend of a common stock: its last declared dividend.
func CommonDividend(lastDividend float64) float64 {
	return lastDividend
}

// CommonDividendYield is dividend / ticker price. The caller guarantees a
// non-zero price.
func CommonDividendYield(dividend, tickerPrice float64) float64 {
	return dividend / tickerPrice
}
