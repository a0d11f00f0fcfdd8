package model

import (
	"reflect"
	"testing"
)

func TestStringListRoundtrip(t *testing.T) {
	options := StringList{"A", "B", "C", "D"}

	value, err := options.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned StringList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !reflect.DeepEqual(scanned, options) {
		t.Errorf("expected %v, got %v", options, scanned)
	}
}

func TestStringListNilAndLegacyValues(t *testing.T) {
	var empty StringList
	value, err := empty.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if value != "[]" {
		t.Errorf("nil list must serialize as empty array, got %v", value)
	}

	var scanned StringList
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(scanned) != 0 {
		t.Errorf("expected empty list, got %v", scanned)
	}

	// 老数据里可能是 []byte
	if err := scanned.Scan([]byte(`["True","False"]`)); err != nil {
		t.Fatalf("Scan([]byte) failed: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "True" {
		t.Errorf("unexpected scan result: %v", scanned)
	}
}

func TestAnswerMapRoundtrip(t *testing.T) {
	answers := AnswerMap{1: "B", 12: "True", 305: "Paris"}

	value, err := answers.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned AnswerMap
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !reflect.DeepEqual(scanned, answers) {
		t.Errorf("expected %v, got %v", answers, scanned)
	}
}

func TestAnswerMapScanRejectsNonNumericKeys(t *testing.T) {
	var scanned AnswerMap
	if err := scanned.Scan(`{"abc":"B"}`); err == nil {
		t.Fatalf("expected error for non-numeric question id key")
	}
}
