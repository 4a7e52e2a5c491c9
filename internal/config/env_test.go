package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("RINGOUT_TEST_STR", "hello")
	if got := GetEnv("RINGOUT_TEST_STR", "fallback"); got != "hello" {
		t.Fatalf("GetEnv = %q, want hello", got)
	}
	if got := GetEnv("RINGOUT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("RINGOUT_TEST_INT", "42")
	if got := GetEnvInt("RINGOUT_TEST_INT", 7); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}

	t.Setenv("RINGOUT_TEST_INT", "not a number")
	if got := GetEnvInt("RINGOUT_TEST_INT", 7); got != 7 {
		t.Fatalf("GetEnvInt = %d, want fallback 7", got)
	}
	if got := GetEnvInt("RINGOUT_TEST_MISSING", 7); got != 7 {
		t.Fatalf("GetEnvInt = %d, want fallback 7", got)
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("RINGOUT_TEST_FLOAT", "1.5")
	if got := GetEnvFloat("RINGOUT_TEST_FLOAT", 2.5); got != 1.5 {
		t.Fatalf("GetEnvFloat = %f, want 1.5", got)
	}
	if got := GetEnvFloat("RINGOUT_TEST_MISSING", 2.5); got != 2.5 {
		t.Fatalf("GetEnvFloat = %f, want fallback 2.5", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("RINGOUT_TEST_BOOL", "true")
	if !GetEnvBool("RINGOUT_TEST_BOOL", false) {
		t.Fatal("GetEnvBool = false, want true")
	}
	t.Setenv("RINGOUT_TEST_BOOL", "maybe")
	if GetEnvBool("RINGOUT_TEST_BOOL", false) {
		t.Fatal("GetEnvBool = true, want fallback false")
	}
}
