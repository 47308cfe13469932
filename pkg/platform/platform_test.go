package platform

import (
	"errors"
	"testing"

	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Kind
	}{
		{"tizen", "Mozilla/5.0 (SMART-TV; LINUX; Tizen 6.0) AppleWebKit/537.36 (KHTML, like Gecko) 76.0.3809.146/6.0 TV Safari/537.36", Samsung},
		{"webos", "Mozilla/5.0 (Web0S; Linux/SmartTV) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/79.0.3945.79 Safari/537.36 WebAppManager", LG},
		{"desktop", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", Web},
		{"empty", "", Web},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.ua); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if k, err := Resolve("auto", ""); err != nil || k != Web {
		t.Errorf("Resolve(auto) = %q, %v", k, err)
	}
	if k, err := Resolve("Tizen", ""); err != nil || k != Samsung {
		t.Errorf("Resolve(Tizen) = %q, %v", k, err)
	}
	if k, err := Resolve("lg", "ignored when explicit"); err != nil || k != LG {
		t.Errorf("Resolve(lg) = %q, %v", k, err)
	}
	if _, err := Resolve("roku", ""); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestDeviceKeyMapMatchesKind(t *testing.T) {
	if NewDevice(Samsung).KeyMap() != keys.Samsung {
		t.Error("samsung device should use the Tizen key map")
	}
	if NewDevice(LG).KeyMap() != keys.LG {
		t.Error("lg device should use the webOS key map")
	}
	if NewDevice(Web).KeyMap() != keys.Web {
		t.Error("web device should use the browser key map")
	}
}

func TestDeviceScreensaverProfile(t *testing.T) {
	if !NewDevice(Samsung).ScreensaverRequired() || !NewDevice(LG).ScreensaverRequired() {
		t.Error("TV platforms require a screensaver")
	}
	if NewDevice(Web).ScreensaverRequired() {
		t.Error("web does not require a screensaver")
	}
}

func TestDeviceUnsupportedCapabilities(t *testing.T) {
	d := NewDevice(Web)
	if err := d.Exit(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Exit() = %v, want ErrUnsupported", err)
	}
	if err := d.RegisterLifecycleHooks(LifecycleHooks{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("RegisterLifecycleHooks() = %v, want ErrUnsupported", err)
	}
}

type failingSource struct{}

func (failingSource) Subscribe(LifecycleHooks) error { return errors.New("no visibility api") }

type recordingSource struct{ hooks LifecycleHooks }

func (r *recordingSource) Subscribe(h LifecycleHooks) error { r.hooks = h; return nil }

func TestDeviceLifecycle(t *testing.T) {
	src := &recordingSource{}
	hidden := false
	d := NewDevice(LG, WithLifecycle(src))
	if err := d.RegisterLifecycleHooks(LifecycleHooks{OnHidden: func() { hidden = true }}); err != nil {
		t.Fatalf("RegisterLifecycleHooks: %v", err)
	}
	src.hooks.OnHidden()
	if !hidden {
		t.Error("hook not wired")
	}

	d = NewDevice(LG, WithLifecycle(failingSource{}))
	if err := d.RegisterLifecycleHooks(LifecycleHooks{}); err == nil {
		t.Error("expected wrapped subscribe error")
	}
}

func TestDeviceExit(t *testing.T) {
	called := false
	d := NewDevice(Samsung, WithExit(func() error { called = true; return nil }))
	if err := d.Exit(); err != nil || !called {
		t.Errorf("Exit() = %v, called = %v", err, called)
	}
}
