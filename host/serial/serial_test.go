package serial

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	if cfg.Device != "/dev/ttyUSB0" || cfg.Baud != 115200 || cfg.ReadTimeout != 500 {
		t.Errorf("Unexpected default config %+v", cfg)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Errorf("Expected error for nil config")
	}
	if _, err := Open(&Config{Baud: 115200}); err == nil || !strings.Contains(err.Error(), "no serial device") {
		t.Errorf("Expected missing-device error, got %v", err)
	}
	if _, err := Open(DefaultConfig("/nonexistent/tty-coretime")); err == nil {
		t.Errorf("Expected error opening a missing device")
	}
}
