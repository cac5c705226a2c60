package fonts

import "testing"

func TestBuiltinFonts(t *testing.T) {
	names := Names()
	if len(names) != 3 || names[0] != "go-bold" {
		t.Errorf("names = %v", names)
	}
	data, ok := Lookup(DefaultFont)
	if !ok || len(data) == 0 {
		t.Fatal("default font missing")
	}
	if _, ok := Lookup("comic-sans"); ok {
		t.Error("unexpected font")
	}
}
