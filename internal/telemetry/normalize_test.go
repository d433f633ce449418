package telemetry

import "testing"

func TestNormalize_SoftCaps(t *testing.T) {
	v := Normalize(RawFeatures{FileDownloads24h: 25, UnusualProcessCount: 10})
	if v.Downloads != 0.5 {
		t.Fatalf("expected downloads 0.5, got %v", v.Downloads)
	}
	if v.UnusualProcesses != 1.0 {
		t.Fatalf("expected unusual processes saturated at 1.0, got %v", v.UnusualProcesses)
	}
	if v.RawDownloads != 25 {
		t.Fatalf("expected raw downloads preserved, got %d", v.RawDownloads)
	}

	v = Normalize(RawFeatures{FileDownloads24h: 80})
	if v.Downloads != 1.0 {
		t.Fatalf("expected downloads saturated at 1.0, got %v", v.Downloads)
	}
}

func TestNormalize_ZeroValuesAreSafe(t *testing.T) {
	v := Normalize(RawFeatures{})
	if v.OffHours != 0 || v.Downloads != 0 || v.USB != 0 || v.UnusualProcesses != 0 || v.Sentiment != 0 {
		t.Fatalf("expected all-zero vector, got %+v", v)
	}
}

func TestNormalize_USBIsBinary(t *testing.T) {
	if v := Normalize(RawFeatures{USBActivity: true}); v.USB != 1.0 || !v.RawUSB {
		t.Fatalf("expected usb 1.0, got %+v", v)
	}
	if v := Normalize(RawFeatures{USBActivity: false}); v.USB != 0.0 {
		t.Fatalf("expected usb 0.0, got %+v", v)
	}
}

func TestNormalize_ClampsOutOfRangeInputs(t *testing.T) {
	v := Normalize(RawFeatures{OffHoursActivity: 1.7, FileDownloads24h: -3, UnusualProcessCount: -1})
	if v.OffHours != 1.0 {
		t.Fatalf("expected off hours clamped to 1.0, got %v", v.OffHours)
	}
	if v.Downloads != 0 || v.UnusualProcesses != 0 {
		t.Fatalf("expected negative counts normalized to 0, got %+v", v)
	}
}
