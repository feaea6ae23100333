package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"testing"

	"deskagent/internal/input/inputtest"
	"deskagent/internal/screen"
)

func TestInvokeDispatch(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{MoveMouse, `{"x":10,"y":20}`, []string{"move(10,20)"}},
		{ClickMouse, `{"button":"right"}`, []string{"button(right,click)"}},
		{MouseDown, `{"button":"left"}`, []string{"button(left,press)"}},
		{MouseUp, `{"button":"left"}`, []string{"button(left,release)"}},
		{ScrollWheel, `{"deltaX":0,"deltaY":-3}`, []string{"scroll(-3,vertical)"}},
		{TypeText, `{"text":"hi"}`, []string{`text("hi")`}},
		{PressKey, `{"key":"tab","modifiers":["Alt"]}`, []string{"key(alt,press)", "key(tab,click)", "key(alt,release)"}},
		{ScrollWheel, ``, nil},
	}
	for _, tc := range tests {
		rec := &inputtest.Recorder{}
		s := newSurface(rec, Options{})
		res, err := s.Invoke(tc.name, json.RawMessage(tc.args))
		if err != nil {
			t.Fatalf("Invoke(%s) failed: %v", tc.name, err)
		}
		if res != nil {
			t.Errorf("Invoke(%s) result = %v, want nil", tc.name, res)
		}
		expectCalls(t, rec, tc.want...)
	}
}

func TestInvokeCapture(t *testing.T) {
	d := &fakeDisplay{w: 64, h: 32, scale: 1, origin: image.Pt(0, 0)}
	s := New(nil, &fakeCapturer{displays: []screen.Display{d}}, Options{})
	res, err := s.Invoke(CaptureScreen, nil)
	if err != nil {
		t.Fatalf("Invoke(capture_screen) failed: %v", err)
	}
	r, ok := res.(*CaptureResult)
	if !ok {
		t.Fatalf("result type %T", res)
	}
	if r.ScaledWidth != 64 || r.ScaledHeight != 32 {
		t.Errorf("scaled = %dx%d", r.ScaledWidth, r.ScaledHeight)
	}
	b, _ := json.Marshal(r)
	var m map[string]interface{}
	json.Unmarshal(b, &m)
	for _, k := range []string{"image", "original_width", "original_height", "logical_width", "logical_height",
		"scaled_width", "scaled_height", "scale_factor", "x_offset", "y_offset"} {
		if _, ok := m[k]; !ok {
			t.Errorf("capture result JSON misses %q", k)
		}
	}
}

func TestInvokeErrors(t *testing.T) {
	s := newSurface(&inputtest.Recorder{}, Options{})
	_, err := s.Invoke("shutdown", nil)
	if KindOf(err) != InvalidArgument || !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown command error = %v", err)
	}
	_, err = s.Invoke(MoveMouse, json.RawMessage(`{"x":"ten"}`))
	if KindOf(err) != InvalidArgument {
		t.Errorf("bad args error = %v", err)
	}
}

func TestCommands(t *testing.T) {
	got := Commands()
	if len(got) != 8 {
		t.Fatalf("Commands() = %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("Commands() not sorted: %v", got)
		}
	}
}

func TestErrorFormat(t *testing.T) {
	err := opError("move mouse", errors.New("xdo: no display"))
	if err.Error() != "move mouse failed: xdo: no display" {
		t.Errorf("Error() = %q", err.Error())
	}
	wrapped := fmt.Errorf("bridge: %w", err)
	if KindOf(wrapped) != ProviderOperation {
		t.Errorf("KindOf(wrapped) = %v", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf(plain) should be 0")
	}
	if InvalidArgument.String() != "invalid_argument" || NoDisplay.String() != "no_display" {
		t.Error("unexpected Kind strings")
	}
}
