package appointment

import "testing"

func sampleRecords() []Record {
	return []Record{
		{ID: "1", PatientName: "An", PatientDisease: "Flu", Doctor: "Dr. Chi", Reason: "Fever", Date: "2025-02-20"},
		{ID: "2", PatientName: "Binh", PatientDisease: "Asthma", Doctor: "Dr. Chi", Reason: "Checkup", Date: "2025-02-21"},
		{ID: "3", PatientName: "Cuc", PatientDisease: "Migraine", Doctor: "Dr. Dung", Reason: "Headache", Date: "2025-02-20"},
	}
}

func TestFilterAndPaginate_CaseInsensitiveSearch(t *testing.T) {
	items, totalPages := FilterAndPaginate(sampleRecords(), "an", "", 1, 5)

	if totalPages != 1 {
		t.Errorf("Expected totalPages 1, got %d", totalPages)
	}
	if len(items) != 1 || items[0].PatientName != "An" {
		t.Fatalf("Expected only An's record, got %v", items)
	}
}

func TestFilterAndPaginate_SearchSpansFields(t *testing.T) {
	// Matches disease, doctor and reason fields, not just the name.
	if items, _ := FilterAndPaginate(sampleRecords(), "asthma", "", 1, 5); len(items) != 1 || items[0].ID != "2" {
		t.Errorf("Expected disease match for record 2, got %v", items)
	}
	if items, _ := FilterAndPaginate(sampleRecords(), "dr. chi", "", 1, 5); len(items) != 2 {
		t.Errorf("Expected two doctor matches, got %v", items)
	}
	if items, _ := FilterAndPaginate(sampleRecords(), "headache", "", 1, 5); len(items) != 1 || items[0].ID != "3" {
		t.Errorf("Expected reason match for record 3, got %v", items)
	}
}

func TestFilterAndPaginate_EmptySearchMatchesAll(t *testing.T) {
	items, totalPages := FilterAndPaginate(sampleRecords(), "", "", 1, 5)
	if len(items) != 3 || totalPages != 1 {
		t.Errorf("Expected all 3 records on one page, got %d items, %d pages", len(items), totalPages)
	}
}

func TestFilterAndPaginate_DateFilter(t *testing.T) {
	items, _ := FilterAndPaginate(sampleRecords(), "", "2025-02-20", 1, 5)
	if len(items) != 2 {
		t.Fatalf("Expected 2 records on 2025-02-20, got %d", len(items))
	}
	for _, rec := range items {
		if rec.Date != "2025-02-20" {
			t.Errorf("Expected date 2025-02-20, got %s", rec.Date)
		}
	}
}

func TestFilterAndPaginate_SearchAndDateCombine(t *testing.T) {
	items, _ := FilterAndPaginate(sampleRecords(), "dr. chi", "2025-02-20", 1, 5)
	if len(items) != 1 || items[0].ID != "1" {
		t.Errorf("Expected only record 1, got %v", items)
	}
}

func TestFilterAndPaginate_EmptyInput(t *testing.T) {
	items, totalPages := FilterAndPaginate([]Record{}, "", "", 1, 5)
	if len(items) != 0 {
		t.Errorf("Expected empty page, got %v", items)
	}
	if totalPages != 0 {
		t.Errorf("Expected totalPages 0 for empty input, got %d", totalPages)
	}
}

func TestFilterAndPaginate_Paging(t *testing.T) {
	records := make([]Record, 7)
	for i := range records {
		records[i] = Record{ID: string(rune('a' + i)), PatientName: "Patient"}
	}

	page1, totalPages := FilterAndPaginate(records, "", "", 1, 3)
	if totalPages != 3 {
		t.Errorf("Expected 3 pages for 7 records with pageSize 3, got %d", totalPages)
	}
	if len(page1) != 3 {
		t.Errorf("Expected 3 items on page 1, got %d", len(page1))
	}

	page3, _ := FilterAndPaginate(records, "", "", 3, 3)
	if len(page3) != 1 {
		t.Errorf("Expected 1 item on last page, got %d", len(page3))
	}

	// Out-of-range page yields an empty page, not an error.
	page9, totalPages := FilterAndPaginate(records, "", "", 9, 3)
	if len(page9) != 0 {
		t.Errorf("Expected empty out-of-range page, got %d items", len(page9))
	}
	if totalPages != 3 {
		t.Errorf("Expected totalPages unchanged for out-of-range page, got %d", totalPages)
	}
}

func TestFilterAndPaginate_PreservesOrder(t *testing.T) {
	items, _ := FilterAndPaginate(sampleRecords(), "", "2025-02-20", 1, 5)
	if items[0].ID != "1" || items[1].ID != "3" {
		t.Errorf("Expected input order preserved, got %v", items)
	}
}
