package time

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	t.Parallel()
	in := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("X", -2*3600)) // 01:30 UTC next day
	got := DateOf(in)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("DateOf = %v, want %v", got, want)
	}
	if got.Equal(in) {
		t.Fatalf("DateOf kept the time of day")
	}
}

func TestFromEpochMillis(t *testing.T) {
	t.Parallel()
	// 2021-07-05T23:00:00Z
	got := FromEpochMillis(1625526000000)
	if FormatDate(got) != "2021-07-05" || !got.Equal(DateOf(got)) {
		t.Fatalf("FromEpochMillis = %v", got)
	}
}

func TestParseAndFormat(t *testing.T) {
	t.Parallel()
	d, err := ParseDate("2019-12-31")
	if err != nil {
		t.Fatal(err)
	}
	if FormatDate(d) != "2019-12-31" || d.Location() != time.UTC {
		t.Fatalf("round trip = %v", d)
	}
	if _, err := ParseDate("31/12/2019"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()
	type row struct {
		Date Date `json:"date"`
	}
	b, err := json.Marshal(row{Date: NewDate(time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC))})
	if err != nil || string(b) != `{"date":"2024-01-01"}` {
		t.Fatalf("Marshal = %s %v", b, err)
	}

	var r row
	if err := json.Unmarshal([]byte(`{"date":"2024-02-29"}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Date.String() != "2024-02-29" || !r.Date.Equal(DateOf(r.Date.Time)) {
		t.Fatalf("decoded %v", r.Date)
	}
	for _, bad := range []string{`{"date":"2024-13-01"}`, `{"date":20240101}`, `{"date":"01/02/2024"}`, `{"date":null}`} {
		if err := json.Unmarshal([]byte(bad), &r); err == nil {
			t.Fatalf("Unmarshal(%s) should fail", bad)
		}
	}
}
