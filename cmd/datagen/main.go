// Command datagen writes a synthetic business dataset for the agent to chew
// on: inventory, financials, competitor pricing and daily sales history.
//
// The default run produces the small canonical fixture (scarce laptop,
// overstocked mouse, hot headphones, tight cash). With -products it generates
// a larger randomized catalog with overstock and low-stock scenarios forced
// in at fixed intervals, and with -xlsx it additionally emits a single Excel
// workbook carrying all four tables.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// tableOrder fixes file and sheet ordering across runs.
var tableOrder = []string{"financials", "inventory", "competitors", "sales_history"}

var adjectives = []string{"Pro", "Slim", "Ultra", "Gaming", "Office", "Smart", "Wireless", "Ergo", "Mechanical", "HD"}
var nouns = []string{"Laptop", "Mouse", "Keyboard", "Headphones", "Monitor", "Webcam", "Speaker", "Tablet", "Phone", "Charger"}

func main() {
	out := flag.String("out", "data", "output directory for the generated tables")
	products := flag.Int("products", 0, "number of randomized products (0 = canonical 4-product fixture)")
	days := flag.Int("days", 60, "days of sales history for randomized datasets")
	xlsx := flag.Bool("xlsx", false, "also write business_data.xlsx with one sheet per table")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if err := os.MkdirAll(*out, 0755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	var tables map[string][][]string
	if *products <= 0 {
		tables = canonicalFixture()
	} else {
		tables = randomizedDataset(rng, *products, *days)
	}

	for _, name := range tableOrder {
		rows := tables[name]
		path := filepath.Join(*out, name+".csv")
		if err := writeCSV(path, rows); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		log.Printf("wrote %s (%d rows)", path, len(rows)-1)
	}

	if *xlsx {
		path := filepath.Join(*out, "business_data.xlsx")
		if err := writeWorkbook(path, tables); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}
}

// canonicalFixture is the hand-built scenario set: each product exercises one
// inventory classification, and cash covers roughly 2.4 months of burn.
func canonicalFixture() map[string][][]string {
	inventory := [][]string{
		{"product_id", "product_name", "cost_price", "selling_price", "current_stock", "min_stock_threshold", "vendor_email"},
		{"P001", "High-End Laptop", "800", "1200", "5", "10", "vendor.tech.1@example.com"},    // scarce
		{"P002", "Basic Mouse", "5", "15", "600", "50", "vendor.supply.2@example.com"},        // dead stock
		{"P003", "Noise-Cancel Headphones", "50", "110", "45", "20", "vendor.abc.3@example.com"}, // hot seller
		{"P004", "Mech Keyboard", "40", "80", "120", "30", "vendor.xyz.4@example.com"},
	}

	financials := [][]string{
		{"metric", "value"},
		{"cash_balance", "12000"},
		{"monthly_burn_rate", "5000"},
		{"fixed_costs", "3000"},
	}

	competitors := [][]string{
		{"product_id", "competitor_price", "competitor_promo"},
		{"P001", "1150", "true"},
		{"P002", "10", "true"},
		{"P003", "120", "false"},
		{"P004", "75", "false"},
	}

	sales := [][]string{
		{"date", "P001_sales", "P002_sales", "P003_sales", "P004_sales"},
	}
	daily := map[string][]int{
		"P001": {1, 0, 1, 0, 0, 1, 0},
		"P002": {2, 1, 2, 1, 1, 2, 1},
		"P003": {5, 8, 6, 7, 9, 8, 7},
		"P004": {3, 2, 3, 4, 3, 2, 3},
	}
	for i := 0; i < 7; i++ {
		date := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		sales = append(sales, []string{
			date,
			strconv.Itoa(daily["P001"][i]),
			strconv.Itoa(daily["P002"][i]),
			strconv.Itoa(daily["P003"][i]),
			strconv.Itoa(daily["P004"][i]),
		})
	}

	return map[string][][]string{
		"inventory":     inventory,
		"financials":    financials,
		"competitors":   competitors,
		"sales_history": sales,
	}
}

// randomizedDataset builds a larger catalog. Every 10th product is forced
// into an overstock shape (high stock, trickle sales) and the one after it
// into low stock, so the classifications always have specimens.
func randomizedDataset(rng *rand.Rand, numProducts, numDays int) map[string][][]string {
	inventory := [][]string{{"product_id", "product_name", "cost_price", "selling_price", "current_stock", "min_stock_threshold", "vendor_email"}}
	competitors := [][]string{{"product_id", "competitor_price", "competitor_promo"}}

	type product struct {
		id       string
		avgDaily float64
	}
	catalog := make([]product, 0, numProducts)

	for i := 1; i <= numProducts; i++ {
		pid := fmt.Sprintf("P%03d", i)
		name := fmt.Sprintf("%s %s %d", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))], 100+rng.Intn(800))

		cost := 10 + rng.Intn(491)
		selling := int(float64(cost) * (1.2 + rng.Float64()*0.8))
		stock := rng.Intn(201)
		avgDaily := float64(rng.Intn(16))

		switch {
		case i%10 == 0:
			stock = 120 + rng.Intn(181)
			avgDaily = 0.5
			name = "Old Gen " + name
		case i%10 == 1:
			stock = rng.Intn(6)
		}

		vendor := fmt.Sprintf("vendor.%s.%d@example.com",
			[]string{"abc", "xyz", "global", "tech", "supply"}[rng.Intn(5)], 1+rng.Intn(99))

		inventory = append(inventory, []string{
			pid, name,
			strconv.Itoa(cost), strconv.Itoa(selling),
			strconv.Itoa(stock), strconv.Itoa(5 + rng.Intn(26)),
			vendor,
		})

		compPrice := int(float64(selling) * (0.85 + rng.Float64()*0.30))
		competitors = append(competitors, []string{
			pid, strconv.Itoa(compPrice), strconv.FormatBool(rng.Intn(2) == 0),
		})

		catalog = append(catalog, product{id: pid, avgDaily: avgDaily})
	}

	header := []string{"date"}
	for _, p := range catalog {
		header = append(header, p.id+"_sales")
	}
	sales := [][]string{header}
	for d := 0; d < numDays; d++ { // newest first
		row := []string{time.Now().AddDate(0, 0, -d).Format("2006-01-02")}
		for _, p := range catalog {
			row = append(row, strconv.Itoa(poisson(rng, p.avgDaily)))
		}
		sales = append(sales, row)
	}

	financials := [][]string{
		{"metric", "value"},
		{"cash_balance", strconv.Itoa(10000 + rng.Intn(90001))},
		{"monthly_burn_rate", strconv.Itoa(4000 + rng.Intn(8001))},
		{"fixed_costs", strconv.Itoa(2000 + rng.Intn(4001))},
	}

	return map[string][][]string{
		"inventory":     inventory,
		"financials":    financials,
		"competitors":   competitors,
		"sales_history": sales,
	}
}

// poisson draws from a Poisson distribution via Knuth's method. Fine for the
// small lambdas daily unit sales use.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// writeWorkbook emits the same tables as sheets of one Excel workbook.
func writeWorkbook(path string, tables map[string][][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, name := range tableOrder {
		rows := tables[name]
		if first {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return err
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			vals := make([]interface{}, len(row))
			for j, v := range row {
				vals[j] = v
			}
			if err := f.SetSheetRow(name, cell, &vals); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
