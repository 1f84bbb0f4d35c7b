package vin

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// yearTable maps the 10th VIN character to a model year. Characters that can
// be confused with digits (I, O, Q, U, Z) are not valid year codes.
var yearTable = map[byte]int{
	'1': 2001, '2': 2002, '3': 2003, '4': 2004, '5': 2005,
	'6': 2006, '7': 2007, '8': 2008, '9': 2009,
	'A': 2010, 'B': 2011, 'C': 2012, 'D': 2013, 'E': 2014,
	'F': 2015, 'G': 2016, 'H': 2017, 'J': 2018, 'K': 2019,
	'L': 2020, 'M': 2021, 'N': 2022, 'P': 2023, 'R': 2024,
	'S': 2025,
}

const defaultYear = 2000

// modelTable resolves the single canonical model per make. Demo-grade: one
// flagship model stands in for the whole lineup.
var modelTable = map[string]string{
	"HONDA":     "CIVIC",
	"FORD":      "F-150",
	"TOYOTA":    "CAMRY",
	"CHEVROLET": "SILVERADO",
	"RAM":       "1500",
	"JEEP":      "WRANGLER",
	"DODGE":     "CHALLENGER",
}

var drivetrains = []string{"FWD", "RWD", "AWD", "4WD"}

// wmiEntry is one row of the manufacturer-prefix table.
type wmiEntry struct {
	Make        string
	VehicleType string
}

// makeRule lists the candidate engines and trims for a make.
type makeRule struct {
	Engines []string `json:"engines"`
	Trims   []string `json:"trims"`
}

// loadWMITable reads the wmi_prefix,make,vehicle_type CSV. A missing file is
// tolerated: the decoder runs with an empty table and marks every VIN
// unrecognized. Malformed rows are skipped.
func loadWMITable(path string) (map[string]wmiEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Warn("WMI table not found, VIN makes will not resolve")
			return map[string]wmiEntry{}, nil
		}
		return nil, fmt.Errorf("opening WMI table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	table := make(map[string]wmiEntry)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithFields(log.Fields{"path": path, "error": err}).Warn("stopping WMI table read on parse error")
			break
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "wmi_prefix") {
			continue // header
		}
		if len(record) < 2 {
			log.WithFields(log.Fields{"path": path, "line": line}).Warn("skipping short WMI row")
			continue
		}
		prefix := strings.ToUpper(strings.TrimSpace(record[0]))
		if len(prefix) != 3 {
			log.WithFields(log.Fields{"path": path, "line": line, "prefix": prefix}).Warn("skipping WMI row with bad prefix")
			continue
		}
		entry := wmiEntry{Make: strings.ToUpper(strings.TrimSpace(record[1]))}
		if len(record) > 2 {
			entry.VehicleType = strings.TrimSpace(record[2])
		}
		table[prefix] = entry
	}

	log.WithFields(log.Fields{"path": path, "prefixes": len(table)}).Info("loaded WMI table")
	return table, nil
}

// loadMakeRules reads the make -> {engines, trims} JSON. Missing file means
// no candidates: decoded vehicles fall back to the standard engine and trim.
func loadMakeRules(path string) (map[string]makeRule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Warn("VIN rules not found, engine/trim candidates unavailable")
			return map[string]makeRule{}, nil
		}
		return nil, fmt.Errorf("reading VIN rules: %w", err)
	}

	rules := make(map[string]makeRule)
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parsing VIN rules %s: %w", path, err)
	}

	normalized := make(map[string]makeRule, len(rules))
	for mk, rule := range rules {
		normalized[strings.ToUpper(mk)] = rule
	}

	log.WithFields(log.Fields{"path": path, "makes": len(normalized)}).Info("loaded VIN rules")
	return normalized, nil
}

func wmiTablePath(dataDir string) string {
	return filepath.Join(dataDir, "wmi_make.csv")
}

func rulesPath(dataDir string) string {
	return filepath.Join(dataDir, "vin_rules.json")
}
