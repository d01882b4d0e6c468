package i18n

import (
	"reflect"
	"testing"
)

func TestEveryLanguageIsComplete(t *testing.T) {
	for _, lang := range []string{"en", "ru"} {
		m := reflect.ValueOf(Get(lang))
		for i := 0; i < m.NumField(); i++ {
			if m.Field(i).String() == "" {
				t.Errorf("%s: %s is empty", lang, m.Type().Field(i).Name)
			}
		}
	}
	if Get("xx") != Get("en") {
		t.Error("unknown language does not fall back to en")
	}
}
