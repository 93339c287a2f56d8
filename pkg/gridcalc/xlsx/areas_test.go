package xlsx

import (
	"testing"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

func TestParseArea(t *testing.T) {
	area := ParseArea("$A$1:$D$10")
	if area == nil {
		t.Fatal("Expected area, got nil")
	}
	expected := models.Area{R1: 0, C1: 0, R2: 9, C2: 3}
	if *area != expected {
		t.Errorf("Expected %+v, got %+v", expected, *area)
	}

	for _, input := range []string{"A1", "", "X:Y", "A1:B2:C3", "A0:B2"} {
		if got := ParseArea(input); got != nil {
			t.Errorf("ParseArea(%q) = %+v, expected nil", input, *got)
		}
	}
}

func TestParseAreaReference(t *testing.T) {
	sheet, areas := parseAreaReference("'My Sheet'!$A$1:$B$2,'My Sheet'!$D$4:$E$5")
	if sheet != "My Sheet" {
		t.Errorf("Expected sheet 'My Sheet', got %q", sheet)
	}
	if len(areas) != 2 {
		t.Fatalf("Expected 2 areas, got %d", len(areas))
	}
	if areas[1] != (models.Area{R1: 3, C1: 3, R2: 4, C2: 4}) {
		t.Errorf("Unexpected second area %+v", areas[1])
	}

	sheet, areas = parseAreaReference("$B$2:$C$3")
	if sheet != "" {
		t.Errorf("Expected no sheet, got %q", sheet)
	}
	if len(areas) != 1 || areas[0] != (models.Area{R1: 1, C1: 1, R2: 2, C2: 2}) {
		t.Errorf("Unexpected areas %+v", areas)
	}
}

func TestAreaReference(t *testing.T) {
	ref, err := areaReference("It's", models.Area{R1: 0, C1: 0, R2: 1, C2: 2})
	if err != nil {
		t.Fatalf("areaReference failed: %v", err)
	}
	if ref != "'It''s'!$A$1:$C$2" {
		t.Errorf("Unexpected reference %q", ref)
	}

	sheet, areas := parseAreaReference("'Data'!$A$1:$C$2")
	if sheet != "Data" || len(areas) != 1 {
		t.Fatalf("Round trip failed: %q %+v", sheet, areas)
	}
	if !contains(areas[0], 2, 1) || contains(areas[0], 3, 1) || contains(areas[0], 0, 2) {
		t.Errorf("contains mismatch for %+v", areas[0])
	}
}
