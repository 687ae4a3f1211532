// Package eseries finds standard-value (E-series) component combinations
// that best realize an RC time constant or a resistor ratio.
//
// The search runs in-process; no server is required.
//
//	client, _ := eseries.New(eseries.WithWorkers(4))
//	results, _ := client.RC(10e-3).Tolerance(1).Limit(5).Do(ctx)
//	for _, r := range results {
//	    fmt.Println(r.A, r.B, r.Value, r.PercentError)
//	}
//
// Targets can be read from text with metric prefixes:
//
//	tau, _ := eseries.ParseQuantity("4.7ms", "s")
//	ratio, _ := client.Ratio(2.5).Series("E96").Do(ctx)
package eseries
