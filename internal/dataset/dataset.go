// Package dataset loads the read-only business tables the analyzers consume:
// financial metrics, inventory, competitor pricing and daily sales history.
// Tables live as CSV files in a single data directory, with an .xlsx fallback
// per table for operators who keep their sheets in Excel.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"commerce_agent/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Canonical file names inside the data directory.
const (
	FinancialsFile   = "financials.csv"
	InventoryFile    = "inventory.csv"
	CompetitorsFile  = "competitors.csv"
	SalesHistoryFile = "sales_history.csv"
)

// Store is an immutable in-memory snapshot of the four input tables.
// It is loaded once and only ever read afterwards, so it is safe to share
// across concurrent requests without locking.
type Store struct {
	metrics     map[string]decimal.Decimal
	products    map[string]models.ProductRecord
	order       []string // product IDs in file order, for stable listings
	competitors map[string]models.CompetitorRecord
	sales       map[string][]int // product ID -> daily unit sales, newest first
}

// Load reads all four tables from dir. A missing or malformed table is a hard
// error: the analyzers have nothing sensible to say without their inputs.
func Load(dir string) (*Store, error) {
	s := &Store{
		metrics:     make(map[string]decimal.Decimal),
		products:    make(map[string]models.ProductRecord),
		competitors: make(map[string]models.CompetitorRecord),
		sales:       make(map[string][]int),
	}

	if err := s.loadFinancials(dir); err != nil {
		return nil, fmt.Errorf("loading financials: %w", err)
	}
	if err := s.loadInventory(dir); err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	if err := s.loadCompetitors(dir); err != nil {
		return nil, fmt.Errorf("loading competitors: %w", err)
	}
	if err := s.loadSalesHistory(dir); err != nil {
		return nil, fmt.Errorf("loading sales history: %w", err)
	}

	return s, nil
}

// Metric returns a named financial metric (e.g. "cash_balance").
func (s *Store) Metric(name string) (decimal.Decimal, bool) {
	v, ok := s.metrics[name]
	return v, ok
}

// Product returns the inventory record for a product ID.
func (s *Store) Product(id string) (models.ProductRecord, bool) {
	p, ok := s.products[id]
	return p, ok
}

// Products returns all inventory records in file order.
func (s *Store) Products() []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

// Competitor returns the competitor record for a product ID.
func (s *Store) Competitor(id string) (models.CompetitorRecord, bool) {
	c, ok := s.competitors[id]
	return c, ok
}

// RecentSales returns up to `days` daily sale counts for a product, newest
// first. When the history is shorter than the window it returns whatever
// exists, deliberately without zero-padding: a short history means "we only
// know this much", not "nothing sold before".
func (s *Store) RecentSales(productID string, days int) []int {
	series := s.sales[productID]
	if days < len(series) {
		series = series[:days]
	}
	// Copy so callers can't reach into the shared snapshot.
	out := make([]int, len(series))
	copy(out, series)
	return out
}

// --- table loaders ---

func (s *Store) loadFinancials(dir string) error {
	rows, err := readTable(filepath.Join(dir, FinancialsFile))
	if err != nil {
		return err
	}
	cols, err := headerIndex(rows, "metric", "value")
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		metric := strings.TrimSpace(cell(row, cols["metric"]))
		if metric == "" {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(cell(row, cols["value"])))
		if err != nil {
			return fmt.Errorf("metric %q: %w", metric, err)
		}
		s.metrics[metric] = value
	}
	return nil
}

func (s *Store) loadInventory(dir string) error {
	rows, err := readTable(filepath.Join(dir, InventoryFile))
	if err != nil {
		return err
	}
	cols, err := headerIndex(rows, "product_id", "product_name", "selling_price", "current_stock")
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, cols["product_id"]))
		if id == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(cell(row, cols["selling_price"])))
		if err != nil {
			return fmt.Errorf("product %s selling_price: %w", id, err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(cell(row, cols["current_stock"])))
		if err != nil {
			return fmt.Errorf("product %s current_stock: %w", id, err)
		}

		rec := models.ProductRecord{
			ProductID:    id,
			Name:         strings.TrimSpace(cell(row, cols["product_name"])),
			SellingPrice: price,
			CurrentStock: stock,
		}
		// Optional columns: present in generated datasets, not required.
		if i, ok := optionalColumn(rows[0], "cost_price"); ok {
			if v, err := decimal.NewFromString(strings.TrimSpace(cell(row, i))); err == nil {
				rec.CostPrice = v
			}
		}
		if i, ok := optionalColumn(rows[0], "min_stock_threshold"); ok {
			if v, err := strconv.Atoi(strings.TrimSpace(cell(row, i))); err == nil {
				rec.MinStockThreshold = v
			}
		}
		if i, ok := optionalColumn(rows[0], "vendor_email"); ok {
			rec.VendorEmail = strings.TrimSpace(cell(row, i))
		}

		s.products[id] = rec
		s.order = append(s.order, id)
	}
	return nil
}

func (s *Store) loadCompetitors(dir string) error {
	rows, err := readTable(filepath.Join(dir, CompetitorsFile))
	if err != nil {
		return err
	}
	cols, err := headerIndex(rows, "product_id", "competitor_price", "competitor_promo")
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, cols["product_id"]))
		if id == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(cell(row, cols["competitor_price"])))
		if err != nil {
			return fmt.Errorf("competitor %s price: %w", id, err)
		}
		promo := strings.EqualFold(strings.TrimSpace(cell(row, cols["competitor_promo"])), "true")
		s.competitors[id] = models.CompetitorRecord{
			ProductID:       id,
			CompetitorPrice: price,
			PromoActive:     promo,
		}
	}
	return nil
}

// loadSalesHistory reads the wide-format sales table: one row per date, one
// "<productID>_sales" column per product. Rows are sorted newest-first on
// load so the trailing window is always a prefix, whatever order the file
// happened to be in.
func (s *Store) loadSalesHistory(dir string) error {
	rows, err := readTable(filepath.Join(dir, SalesHistoryFile))
	if err != nil {
		return err
	}
	cols, err := headerIndex(rows, "date")
	if err != nil {
		return err
	}
	dateCol := cols["date"]

	data := rows[1:]
	sort.SliceStable(data, func(i, j int) bool {
		return cell(data[i], dateCol) > cell(data[j], dateCol) // ISO dates sort lexically
	})

	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if !strings.HasSuffix(name, "_sales") {
			continue
		}
		productID := strings.TrimSuffix(name, "_sales")
		series := make([]int, 0, len(data))
		for _, row := range data {
			raw := strings.TrimSpace(cell(row, i))
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("sales column %s: %w", name, err)
			}
			series = append(series, n)
		}
		s.sales[productID] = series
	}
	return nil
}

// --- file reading helpers ---

// readTable reads a table as raw string rows. If the CSV file is missing it
// falls back to a sibling .xlsx workbook (first sheet) before giving up.
func readTable(path string) ([][]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		xlsx := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		if _, xerr := os.Stat(xlsx); xerr == nil {
			return readXLSX(xlsx)
		}
		return nil, fmt.Errorf("table not found: %s", path)
	}
	return readCSV(path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; lookups go through the header
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("empty table: %s", path)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("empty workbook: %s", path)
	}
	return rows, nil
}

// headerIndex maps required column names to indices, case-insensitively.
func headerIndex(rows [][]string, required ...string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	idx := make(map[string]int, len(required))
	for _, want := range required {
		found := false
		for i, name := range rows[0] {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				idx[want] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("missing column %q", want)
		}
	}
	return idx, nil
}

func optionalColumn(header []string, want string) (int, bool) {
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return i, true
		}
	}
	return 0, false
}

// cell returns row[i] or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
