package core

import (
	"errors"
	"testing"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/models"
)

func TestParsePerfDataReferenceSample(t *testing.T) {
	p, err := ParsePerfData("in=575.159823Mb/s;800;950 out=22.757955Mb/s;15;25")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.InMagnitude != 575.159823 || p.InPrefix != "M" || *p.InWarn != 800 || *p.InCrit != 950 {
		t.Fatalf("unexpected inbound fields: %+v", p)
	}
	if p.OutMagnitude != 22.757955 || p.OutPrefix != "M" || *p.OutWarn != 15 || *p.OutCrit != 25 {
		t.Fatalf("unexpected outbound fields: %+v", p)
	}

	n, err := NormalizeSample(p)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := [models.NumColumns]int64{603098786, 800, 950, 23863445, 15, 25}
	if n.Values != want {
		t.Fatalf("expected %v, got %v", want, n.Values)
	}
	for col, present := range n.Present {
		if !present {
			t.Fatalf("expected column %s to be present", models.ColumnNames[col])
		}
	}
}

func TestParsePerfDataVariants(t *testing.T) {
	cases := []struct {
		text    string
		inBits  int64
		outBits int64
	}{
		{"in=12b/s;1;2 out=7b/s;3;4", 12, 7},
		{"in=.5Kb/s;1;2 out=2kb/s;3;4", 512, 2048},
		{"in=1Gb/s;1;2 out=1tb/s;3;4", 1 << 30, 1 << 40},
		{"in=1pb/s;; out=0.5Pb/s;;", 1 << 50, 1 << 49},
	}
	for _, tc := range cases {
		n, err := ParseAndNormalize(tc.text)
		if err != nil {
			t.Fatalf("%q: %v", tc.text, err)
		}
		if n.Values[models.ColInBits] != tc.inBits || n.Values[models.ColOutBits] != tc.outBits {
			t.Fatalf("%q: got in=%d out=%d", tc.text, n.Values[models.ColInBits], n.Values[models.ColOutBits])
		}
	}
}

func TestParsePerfDataEmptyThresholdsAreUnset(t *testing.T) {
	p, err := ParsePerfData("in=1.5Mb/s;; out=2Kb/s;10;")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.InWarn != nil || p.InCrit != nil || p.OutCrit != nil {
		t.Fatalf("expected empty fields to be nil: %+v", p)
	}
	if p.OutWarn == nil || *p.OutWarn != 10 {
		t.Fatalf("expected out warn 10, got %v", p.OutWarn)
	}

	n, err := NormalizeSample(p)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if n.Present[models.ColInWarn] || n.Present[models.ColInCrit] || n.Present[models.ColOutCrit] {
		t.Fatalf("expected unset thresholds to be absent: %+v", n.Present)
	}
	if !n.Present[models.ColOutWarn] {
		t.Fatalf("expected out warn present")
	}
}

func TestParsePerfDataMalformed(t *testing.T) {
	inputs := []string{
		"garbage",
		"",
		"in=575.159823Mb/s;800;950",
		"in=575.159823Mb/s;800;950 out=22.757955Mb/s;15;25 ",
		" in=575.159823Mb/s;800;950 out=22.757955Mb/s;15;25",
		"in=575.159823Mb/s;800;950  out=22.757955Mb/s;15;25",
		"in=575.159823Eb/s;800;950 out=22.757955Mb/s;15;25",
		"in=575.159823Mb/s;800;950 out=22.757955Eb/s;15;25",
		"in=575.Mb/s;800;950 out=22Mb/s;15;25",
		"in=5Mb/s;-1;950 out=22Mb/s;15;25",
		"in=1pb/s;;; out=0.5Pb/s;;",
		"out=22Mb/s;15;25 in=5Mb/s;1;950",
		"in=5MB/s;1;950 out=22Mb/s;15;25",
		"in=5Mb/s;99999999999999999999;950 out=22Mb/s;15;25",
	}
	for _, in := range inputs {
		_, err := ParsePerfData(in)
		var malformed *helpers.MalformedSampleError
		if !errors.As(err, &malformed) {
			t.Fatalf("%q: expected MalformedSampleError, got %v", in, err)
		}
	}
}

func TestParseAndNormalizeRejectsOverflow(t *testing.T) {
	inputs := []string{
		"in=20000Pb/s;1;2 out=1Mb/s;1;2",
		"in=99999999999999999999b/s;1;2 out=1b/s;;",
		"in=1Mb/s;1;2 out=9000Pb/s;;",
	}
	for _, in := range inputs {
		n, err := ParseAndNormalize(in)
		var malformed *helpers.MalformedSampleError
		if !errors.As(err, &malformed) {
			t.Fatalf("%q: expected MalformedSampleError, got %v (values %v)", in, err, n.Values)
		}
	}
}
