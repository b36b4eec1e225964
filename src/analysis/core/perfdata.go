package core

import (
	"regexp"
	"strconv"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/models"
)

// Matches 'in=575.159823Mb/s;800;950 out=22.757955Mb/s;15;25'.
var perfPattern = regexp.MustCompile(
	`^in=(\d*\.?\d+)([KkMmGgTtPp])?b/s;(\d*);(\d*) out=(\d*\.?\d+)([KkMmGgTtPp])?b/s;(\d*);(\d*)$`)

// -----------------------------------------------------------------------------

// ParsePerfData extracts the inbound and outbound fields of a bandwidth
// check's performance data. Empty warn/crit fields stay nil.
func ParsePerfData(text string) (models.MParsedSample, error) {
	m := perfPattern.FindStringSubmatch(text)
	if m == nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}

	var p models.MParsedSample
	var err error

	if p.InMagnitude, err = strconv.ParseFloat(m[1], 64); err != nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}
	p.InPrefix = m[2]
	if p.InWarn, err = optionalInt(m[3]); err != nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}
	if p.InCrit, err = optionalInt(m[4]); err != nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}

	if p.OutMagnitude, err = strconv.ParseFloat(m[5], 64); err != nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}
	p.OutPrefix = m[6]
	if p.OutWarn, err = optionalInt(m[7]); err != nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}
	if p.OutCrit, err = optionalInt(m[8]); err != nil {
		return models.MParsedSample{}, helpers.NewMalformedSampleError(text)
	}

	return p, nil
}

// optionalInt parses a digits-only field; "" yields nil. Overflow is an error.
func optionalInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// -----------------------------------------------------------------------------

// NormalizeSample converts a parsed sample into base units.
func NormalizeSample(p models.MParsedSample) (models.MNormalizedSample, error) {
	var n models.MNormalizedSample

	inBits, err := NormalizeBits(p.InMagnitude, p.InPrefix)
	if err != nil {
		return n, err
	}
	outBits, err := NormalizeBits(p.OutMagnitude, p.OutPrefix)
	if err != nil {
		return n, err
	}

	n.Values[models.ColInBits], n.Present[models.ColInBits] = inBits, true
	n.Values[models.ColOutBits], n.Present[models.ColOutBits] = outBits, true
	setOptional(&n, models.ColInWarn, p.InWarn)
	setOptional(&n, models.ColInCrit, p.InCrit)
	setOptional(&n, models.ColOutWarn, p.OutWarn)
	setOptional(&n, models.ColOutCrit, p.OutCrit)

	return n, nil
}

func setOptional(n *models.MNormalizedSample, col int, v *int64) {
	if v == nil {
		return
	}
	n.Values[col] = *v
	n.Present[col] = true
}

// ParseAndNormalize runs ParsePerfData then NormalizeSample.
func ParseAndNormalize(text string) (models.MNormalizedSample, error) {
	p, err := ParsePerfData(text)
	if err != nil {
		return models.MNormalizedSample{}, err
	}
	return NormalizeSample(p)
}
