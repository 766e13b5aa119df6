package instruments

// PreferredDividend is the fixed dividend ratio applied to the par value.
func PreferredDividend(fixedDividend, parValue float64) float64 {
	return fixedDividend * parValue
}

// PreferredDividendYield is (dividend * par value) / ticker price. The caller
// guarantees a non-zero price.
func PreferredDividendYield(dividend, parValue, tickerPrice float64) float64 {
	return (dividend * parValue) / tickerPrice
}
