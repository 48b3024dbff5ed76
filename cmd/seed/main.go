// Package main provides the listing bulk loader. It reads a CSV or
// JSON file of listings and upserts them into Firestore keyed by the
// id column, so reseeding the same file is idempotent.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/chungli-bot/house-linebot-go/internal/config"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/store"
)

var textFields = []string{
	"title", "genre", "address", "image_url", "detail1", "detail2",
	"project_name", "exclusive", "pattern", "old", "height",
	"pattern_url", "video_uri", "map_uri", "text",
}

var numberFields = []string{"price", "room", "square_meters", "square_meters2"}

var boolFields = []string{"top", "parking_space"}

func main() {
	file := flag.String("file", "./listings.csv", "CSV or JSON file of listings")
	flag.Parse()

	cfg, err := config.LoadSeed()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	items, err := loadItems(*file)
	if err != nil {
		log.WithError(err).Fatal("Failed to read listings file")
	}
	log.WithField("file", *file).WithField("item_count", len(items)).Info("Listings file loaded")

	docs := make(map[string]map[string]any, len(items))
	for _, item := range items {
		id := strings.TrimSpace(stringValue(item["id"]))
		if id == "" {
			log.WithField("item", item).Warn("Skipping row without id")
			continue
		}
		docs[id] = coerce(item)
	}

	ctx := context.Background()
	st, err := store.NewFirestore(ctx, cfg, log, nil)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Firestore")
	}
	defer func() { _ = st.Close() }()

	count, err := st.BulkUpsertListings(ctx, docs)
	if err != nil {
		log.WithError(err).WithField("written", count).Fatal("Seed failed")
	}
	log.WithField("written", count).Info("Seed complete")
}

// loadItems reads a CSV or JSON listings file into generic rows.
func loadItems(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Spreadsheet exports often carry a UTF-8 BOM.
	raw = []byte(strings.TrimPrefix(string(raw), "\uFEFF"))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var items []map[string]any
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return items, nil
	case ".csv":
		reader := csv.NewReader(strings.NewReader(string(raw)))
		records, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(records) < 1 {
			return nil, nil
		}
		header := records[0]
		items := make([]map[string]any, 0, len(records)-1)
		for _, record := range records[1:] {
			item := make(map[string]any, len(header))
			for i, key := range header {
				if i < len(record) {
					item[key] = record[i]
				}
			}
			items = append(items, item)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q, want .csv or .json", filepath.Ext(path))
	}
}

// coerce builds a Firestore document from a raw row, normalizing each
// field by its declared kind.
func coerce(item map[string]any) map[string]any {
	data := make(map[string]any)

	for _, key := range textFields {
		data[key] = strings.TrimSpace(stringValue(item[key]))
	}
	if data["status"] = strings.TrimSpace(stringValue(item["status"])); data["status"] == "" {
		data["status"] = "active"
	}
	for _, key := range numberFields {
		data[key] = toNumber(item[key])
	}
	for _, key := range boolFields {
		data[key] = toBool(item[key])
	}
	return data
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

var chineseDigits = strings.NewReplacer(
	"十", "10", "一", "1", "二", "2", "三", "3", "四", "4",
	"五", "5", "六", "6", "七", "7", "八", "8", "九", "9",
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// toNumber converts a raw value to an int or float, tolerating Chinese
// digits and unit suffixes like 萬 or 房. Unparseable input becomes nil.
func toNumber(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		return n
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
		return n
	}

	s := strings.TrimSpace(stringValue(v))
	if s == "" {
		return nil
	}
	s = nonNumeric.ReplaceAllString(chineseDigits.Replace(s), "")
	if s == "" {
		return nil
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return f
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return i
}

// toBool accepts common truthy spellings from spreadsheet exports.
func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(stringValue(v))) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
