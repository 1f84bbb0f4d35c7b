package vin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()
	d, err := NewSeeded("testdata", 42)
	require.NoError(t, err)
	return d
}

func TestDecodeRecognizedPrefix(t *testing.T) {
	d := newTestDecoder(t)

	profile, events := d.Decode("1HGCM82633A123451")

	assert.Equal(t, "HONDA", profile.Make)
	assert.Equal(t, "CIVIC", profile.Model)
	assert.Equal(t, "Car", profile.VehicleType)
	assert.Equal(t, 2003, profile.Year)
	assert.InDelta(t, 0.8, profile.Confidence, 0.0001)

	assert.Contains(t, []string{"1.5L Turbo I4", "2.0L I4"}, profile.Engine)
	assert.Contains(t, []string{"LX", "EX", "Touring"}, profile.Trim)
	assert.Contains(t, []string{"FWD", "RWD", "AWD", "4WD"}, profile.Drivetrain)

	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, types.StageVINDecoder, ev.Stage)
	}
}

func TestDecodeNormalizesInput(t *testing.T) {
	d := newTestDecoder(t)

	profile, _ := d.Decode("  1hgcm82633a123451 ")

	assert.Equal(t, "1HGCM82633A123451", profile.VIN)
	assert.Equal(t, "HONDA", profile.Make)
}

func TestDecodeYearCodes(t *testing.T) {
	d := newTestDecoder(t)

	cases := []struct {
		code byte
		year int
	}{
		{'1', 2001},
		{'9', 2009},
		{'A', 2010},
		{'H', 2017},
		{'J', 2018},
		{'S', 2025},
		{'0', 2000}, // not a valid year code
		{'Z', 2000}, // skipped letter
		{'I', 2000}, // skipped letter
	}

	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			vin := fmt.Sprintf("1HGCM8263%cA123451", tc.code)
			profile, _ := d.Decode(vin)
			assert.Equal(t, tc.year, profile.Year)
		})
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	d := newTestDecoder(t)

	for _, vin := range []string{"", "1HG", "1HGCM82633A1234512345"} {
		profile, events := d.Decode(vin)

		assert.Equal(t, "UNKNOWN", profile.Make)
		assert.Equal(t, "UNKNOWN", profile.Model)
		assert.Equal(t, "UNKNOWN", profile.Engine)
		assert.Equal(t, 0, profile.Year)
		assert.Zero(t, profile.Confidence)

		require.Len(t, events, 1)
		assert.Equal(t, "vin_length", events[0].Category)
		assert.Equal(t, types.SeverityFlagged, events[0].Severity)
	}
}

func TestDecodeUnknownPrefix(t *testing.T) {
	d := newTestDecoder(t)

	profile, events := d.Decode("9ABCM82633A123451")

	assert.Equal(t, "UNKNOWN", profile.Make)
	assert.Zero(t, profile.Confidence)
	// Year still decodes; only the manufacturer lookup failed.
	assert.Equal(t, 2003, profile.Year)

	var flagged bool
	for _, ev := range events {
		if ev.Category == "wmi" && ev.Severity == types.SeverityFlagged {
			flagged = true
		}
	}
	assert.True(t, flagged, "expected a flagged wmi event")
}

func TestDecodeMakeWithoutRules(t *testing.T) {
	d := newTestDecoder(t)

	// DODGE is in the WMI table but has no rules entry.
	profile, _ := d.Decode("2C3CDZAG5KH123456")

	assert.Equal(t, "DODGE", profile.Make)
	assert.Equal(t, "CHALLENGER", profile.Model)
	assert.Equal(t, 2019, profile.Year)
	assert.Equal(t, "Standard Engine", profile.Engine)
	assert.Equal(t, "Base", profile.Trim)
	assert.Contains(t, []string{"FWD", "RWD", "AWD", "4WD"}, profile.Drivetrain)
	assert.InDelta(t, 0.8, profile.Confidence, 0.0001)
}

func TestDecodeDeterministicWithSeed(t *testing.T) {
	d1, err := NewSeeded("testdata", 7)
	require.NoError(t, err)
	d2, err := NewSeeded("testdata", 7)
	require.NoError(t, err)

	for _, vin := range []string{"1HGCM82633A123451", "1FTFW1ET5DFC12345", "2C3CDZAG5KH123456"} {
		p1, _ := d1.Decode(vin)
		p2, _ := d2.Decode(vin)
		assert.Equal(t, p1, p2, "same seed must sample the same profile for %s", vin)
	}
}

func TestDecodeMissingReferenceFiles(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	profile, _ := d.Decode("1HGCM82633A123451")

	// Empty tables mean no prefix resolves, but decoding never fails.
	assert.Equal(t, "UNKNOWN", profile.Make)
	assert.Zero(t, profile.Confidence)
	assert.Equal(t, 2003, profile.Year)
}

func TestAssumedProfile(t *testing.T) {
	profile := AssumedProfile("honda")

	assert.Equal(t, "HONDA", profile.Make)
	assert.Equal(t, "CIVIC", profile.Model)
	assert.Equal(t, "Standard Engine", profile.Engine)
	assert.Equal(t, "Base", profile.Trim)
	assert.Zero(t, profile.Confidence)
	assert.Empty(t, profile.VIN)
}

func TestAssumedProfileUnmappedMake(t *testing.T) {
	profile := AssumedProfile("studebaker")

	assert.Equal(t, "STUDEBAKER", profile.Make)
	assert.Equal(t, "Unknown Model", profile.Model)
}

func TestAssumedProfileEmptyMake(t *testing.T) {
	profile := AssumedProfile("  ")

	assert.Equal(t, Unknown, profile.Make)
}
