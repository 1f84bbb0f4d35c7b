// Package vin decodes VINs into vehicle profiles using static reference
// tables. It is a demo-grade decoder: the manufacturer prefix and model-year
// character are decoded for real, while engine, trim, and drivetrain are
// sampled from per-make candidate lists.
package vin

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// Unknown marks profile fields the decoder could not resolve.
const Unknown = "UNKNOWN"

const (
	unknown        = Unknown
	unknownModel   = "Unknown Model"
	standardEngine = "Standard Engine"
	standardTrim   = "Base"

	// prefixConfidence is the fixed confidence for any recognized WMI prefix.
	prefixConfidence = 0.8
)

// Decoder resolves VINs against the loaded reference tables. All lookups are
// in-memory; Decode never touches the filesystem.
type Decoder struct {
	wmi   map[string]wmiEntry
	rules map[string]makeRule
	rng   *rand.Rand
}

// New builds a decoder from the reference files in dataDir, seeding the
// sampler from the clock. Missing reference files degrade to empty tables.
func New(dataDir string) (*Decoder, error) {
	return NewSeeded(dataDir, time.Now().UnixNano())
}

// NewSeeded builds a decoder with a fixed sampler seed so that engine, trim,
// and drivetrain picks are reproducible.
func NewSeeded(dataDir string, seed int64) (*Decoder, error) {
	wmi, err := loadWMITable(wmiTablePath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("loading WMI table: %w", err)
	}
	rules, err := loadMakeRules(rulesPath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("loading VIN rules: %w", err)
	}
	return &Decoder{
		wmi:   wmi,
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Decode resolves a VIN into a vehicle profile. Invalid input never fails:
// anything that is not a 17-character VIN comes back as an UNKNOWN profile
// with confidence 0.0, and the events explain what happened.
func (d *Decoder) Decode(vin string) (types.VehicleProfile, []types.Event) {
	events := []types.Event{}
	vin = strings.ToUpper(strings.TrimSpace(vin))

	profile := types.VehicleProfile{
		VIN:         vin,
		Make:        unknown,
		Model:       unknown,
		Engine:      unknown,
		Trim:        unknown,
		Drivetrain:  unknown,
		VehicleType: unknown,
	}

	if len(vin) != 17 {
		events = append(events, types.Event{
			Stage:    types.StageVINDecoder,
			Category: "vin_length",
			Message:  fmt.Sprintf("VIN %q is %d characters, expected 17; profile unknown", vin, len(vin)),
			Severity: types.SeverityFlagged,
		})
		return profile, events
	}

	profile.Year = decodeYear(vin[9])
	events = append(events, types.Event{
		Stage:    types.StageVINDecoder,
		Category: "year",
		Message:  fmt.Sprintf("Model year %d decoded from VIN position 10 (%q)", profile.Year, string(vin[9])),
		Severity: types.SeverityInfo,
	})

	prefix := vin[:3]
	entry, ok := d.wmi[prefix]
	if !ok {
		events = append(events, types.Event{
			Stage:    types.StageVINDecoder,
			Category: "wmi",
			Message:  fmt.Sprintf("WMI prefix %q not in reference table; make unknown", prefix),
			Severity: types.SeverityFlagged,
		})
		return profile, events
	}

	profile.Make = entry.Make
	profile.VehicleType = entry.VehicleType
	profile.Confidence = prefixConfidence
	events = append(events, types.Event{
		Stage:    types.StageVINDecoder,
		Category: "wmi",
		Message:  fmt.Sprintf("WMI prefix %q resolved to %s (%s)", prefix, entry.Make, entry.VehicleType),
		Severity: types.SeverityInfo,
	})

	if model, ok := modelTable[entry.Make]; ok {
		profile.Model = model
	} else {
		profile.Model = unknownModel
	}

	engines, trims := []string{standardEngine}, []string{standardTrim}
	if rule, ok := d.rules[entry.Make]; ok {
		if len(rule.Engines) > 0 {
			engines = rule.Engines
		}
		if len(rule.Trims) > 0 {
			trims = rule.Trims
		}
	}
	profile.Engine = d.pick(engines)
	profile.Trim = d.pick(trims)
	profile.Drivetrain = d.pick(drivetrains)

	events = append(events, types.Event{
		Stage:    types.StageVINDecoder,
		Category: "assumption",
		Message: fmt.Sprintf("Engine %q, trim %q, drivetrain %q sampled from %s candidates, not decoded from the VIN",
			profile.Engine, profile.Trim, profile.Drivetrain, entry.Make),
		Severity: types.SeverityInfo,
	})

	log.WithFields(log.Fields{
		"vin":        vin,
		"make":       profile.Make,
		"model":      profile.Model,
		"year":       profile.Year,
		"confidence": profile.Confidence,
	}).Debug("decoded VIN")

	return profile, events
}

// AssumedProfile builds the profile used when no VIN is supplied: the given
// make with standard equipment and zero decode confidence. Unlike Decode it
// never samples, so VIN-less runs are fully deterministic.
func AssumedProfile(vehicleMake string) types.VehicleProfile {
	vehicleMake = strings.ToUpper(strings.TrimSpace(vehicleMake))
	if vehicleMake == "" {
		vehicleMake = unknown
	}

	model := unknownModel
	if m, ok := modelTable[vehicleMake]; ok {
		model = m
	}

	return types.VehicleProfile{
		Make:        vehicleMake,
		Model:       model,
		Engine:      standardEngine,
		Trim:        standardTrim,
		Drivetrain:  unknown,
		VehicleType: unknown,
	}
}

func (d *Decoder) pick(candidates []string) string {
	return candidates[d.rng.Intn(len(candidates))]
}

func decodeYear(code byte) int {
	if year, ok := yearTable[code]; ok {
		return year
	}
	return defaultYear
}
