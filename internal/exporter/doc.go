// Package exporter writes loaded datasets to CSV and XLSX.
//
// Both writers emit the source header (Date, Open, High, Low, Close,
// Adj Close, Volume) and one row per trading day in source order, with
// prices rounded to two decimal places:
//
//	w, err := exporter.ForFormat("xlsx")
//	if err != nil {
//	    return err
//	}
//	err = w.Write(out, ds)
package exporter
