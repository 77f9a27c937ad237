package i18n

import (
	"sync"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"op": "decode", "type": "string"}

	// default is en
	if msg := T(MsgTypeMismatch, data); msg != "Failed to decode string - type mismatch" {
		t.Fatalf("unexpected english message, got %q", msg)
	}

	SetLanguage("ja")
	msg := T(MsgTypeMismatch, data)
	if msg == "Failed to decode string - type mismatch" || msg == MsgTypeMismatch {
		t.Fatalf("expected japanese message, got %q", msg)
	}
	if data["op"] != "decode" {
		t.Fatalf("caller data must not be modified, got %q", data["op"])
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownIDFallsBack(t *testing.T) {
	if msg := T("no_such_message", nil); msg != "no_such_message" {
		t.Fatalf("expected id fallback, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(id string, _ map[string]string) string { return "X:" + id }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upperTranslator{})
	defer SetTranslator(nil)
	if msg := T(MsgMissingProperty, map[string]string{"key": "a"}); msg != "X:missing_property" {
		t.Fatalf("expected custom translator output, got %q", msg)
	}
}

func TestTranslator_Placeholders(t *testing.T) {
	msg := T(MsgMissingProperty, map[string]string{"key": "bar"})
	if msg != "Missing property bar" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestTranslator_SwitchWhileTranslating(t *testing.T) {
	defer SetLanguage("en")
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if (i+j)%2 == 0 {
					SetLanguage("ja")
				} else {
					SetLanguage("en")
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if msg := T(MsgMissingProperty, map[string]string{"key": "a"}); msg == "" || msg == MsgMissingProperty {
					t.Errorf("expected a translated message, got %q", msg)
					return
				}
			}
		}()
	}
	wg.Wait()
}
